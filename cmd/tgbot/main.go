// Command tgbot is a small command line client for the Bot API built on the
// tgbot packages. It can inspect the bot, manage its webhook and commands,
// send messages and files, and run an echo bot over long polling or a
// webhook.
//
// Usage:
//
//	tgbot [-config tgbot.toml] <command> [flags] [args]
//
// Configuration is read from the file named by -config or TGBOT_CONFIG and
// overridden by TGBOT_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nevindra/tgbot/internal/config"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"getme", "show the bot account", runGetMe},
	{"webhook", "info | set <url> [-secret s] [-drop] | delete [-drop]", runWebhook},
	{"commands", "get | set name=description... | delete", runCommands},
	{"send", "-chat <id> [-md] [-file path] <text>", runSend},
	{"download", "<file_id> <output path>", runDownload},
	{"poll", "run the echo bot with long polling", runPoll},
	{"serve", "run the echo bot behind a webhook", runServe},
}

func main() {
	fs := flag.NewFlagSet("tgbot", flag.ExitOnError)
	configPath := fs.String("config", os.Getenv("TGBOT_CONFIG"), "config file (.toml or .yaml)")
	fs.Usage = usage
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, ok := lookup(fs.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "tgbot: unknown command %q\n", fs.Arg(0))
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tgbot:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "tgbot:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tgbot:", err)
		os.Exit(1)
	}
	err = cmd.run(ctx, a, fs.Args()[1:])
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tgbot %s: %v\n", cmd.name, err)
		os.Exit(1)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tgbot [-config file] <command> [args]")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.usage)
	}
}

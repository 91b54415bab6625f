package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nevindra/tgbot"
	"github.com/nevindra/tgbot/methods"
	"github.com/nevindra/tgbot/types"
)

var errUsage = errors.New("invalid arguments")

func runGetMe(ctx context.Context, a *app, _ []string) error {
	me, err := tgbot.Execute(ctx, a.bot, methods.NewGetMe())
	if err != nil {
		return err
	}
	fmt.Printf("id:       %d\nname:     %s\nusername: @%s\ninline:   %t\n",
		me.ID, me.FullName(), me.Username, me.SupportsInlineQueries)
	return nil
}

func runWebhook(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: webhook info|set|delete", errUsage)
	}
	switch args[0] {
	case "info":
		info, err := tgbot.Execute(ctx, a.bot, methods.NewGetWebhookInfo())
		if err != nil {
			return err
		}
		printWebhookInfo(info, time.Now())
		return nil
	case "set":
		fs := flag.NewFlagSet("webhook set", flag.ContinueOnError)
		secret := fs.String("secret", a.cfg.Webhook.SecretToken, "secret token echoed in every request")
		drop := fs.Bool("drop", false, "drop pending updates")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		url := a.cfg.Webhook.URL
		if fs.NArg() > 0 {
			url = fs.Arg(0)
		}
		if url == "" {
			return fmt.Errorf("%w: webhook set <url>", errUsage)
		}
		set := methods.NewSetWebhook(url).SecretToken(*secret).DropPendingUpdates(*drop)
		if _, err := tgbot.Execute(ctx, a.bot, set); err != nil {
			return err
		}
		fmt.Println("webhook set to", url)
		return nil
	case "delete":
		fs := flag.NewFlagSet("webhook delete", flag.ContinueOnError)
		drop := fs.Bool("drop", false, "drop pending updates")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if _, err := tgbot.Execute(ctx, a.bot, methods.NewDeleteWebhook().DropPendingUpdates(*drop)); err != nil {
			return err
		}
		fmt.Println("webhook deleted")
		return nil
	}
	return fmt.Errorf("%w: unknown webhook action %q", errUsage, args[0])
}

func printWebhookInfo(info types.WebhookInfo, now time.Time) {
	url := info.URL
	if url == "" {
		url = "(none, long polling)"
	}
	fmt.Println("url:     ", url)
	fmt.Println("pending: ", info.PendingUpdateCount)
	if info.MaxConnections > 0 {
		fmt.Println("max conn:", info.MaxConnections)
	}
	if info.LastErrorDate > 0 {
		at := time.Unix(info.LastErrorDate, 0)
		fmt.Printf("error:    %s (%s)\n", info.LastErrorMessage, humanize.RelTime(at, now, "ago", "from now"))
	}
}

func runCommands(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: commands get|set|delete", errUsage)
	}
	switch args[0] {
	case "get":
		cmds, err := tgbot.Execute(ctx, a.bot, methods.NewGetMyCommands())
		if err != nil {
			return err
		}
		for _, c := range cmds {
			fmt.Printf("/%s - %s\n", c.Name(), c.Description())
		}
		return nil
	case "set":
		cmds, err := parseCommands(args[1:])
		if err != nil {
			return err
		}
		_, err = tgbot.Execute(ctx, a.bot, methods.NewSetMyCommands(cmds...))
		return err
	case "delete":
		_, err := tgbot.Execute(ctx, a.bot, methods.NewDeleteMyCommands())
		return err
	}
	return fmt.Errorf("%w: unknown commands action %q", errUsage, args[0])
}

// parseCommands reads "name=description" pairs.
func parseCommands(args []string) ([]types.BotCommand, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: commands set name=description...", errUsage)
	}
	cmds := make([]types.BotCommand, 0, len(args))
	for _, arg := range args {
		name, desc, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not name=description", errUsage, arg)
		}
		c, err := types.NewBotCommand(strings.TrimPrefix(name, "/"), desc)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func runSend(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	chat := fs.String("chat", "", "chat id or @channel username")
	md := fs.Bool("md", false, "treat the text as Markdown")
	file := fs.String("file", "", "upload a file as a document, the text becomes its caption")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *chat == "" {
		return fmt.Errorf("%w: -chat is required", errUsage)
	}
	id := parseChatID(*chat)
	text := strings.Join(fs.Args(), " ")

	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		doc := methods.NewSendDocument(id, types.InputFileReader(filepath.Base(*file), f))
		if text != "" {
			doc = doc.Caption(text)
		}
		msg, err := tgbot.Execute(ctx, a.bot, doc)
		if err != nil {
			return err
		}
		fmt.Println("sent message", msg.ID)
		return nil
	}

	if text == "" {
		return fmt.Errorf("%w: nothing to send", errUsage)
	}
	send := methods.NewSendMessage(id, text)
	if *md {
		send = send.Markdown(text)
	}
	msg, err := tgbot.Execute(ctx, a.bot, send)
	if err != nil {
		return err
	}
	fmt.Println("sent message", msg.ID)
	return nil
}

// parseChatID reads a numeric id, falling back to a channel username.
func parseChatID(s string) types.ChatID {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return types.ChatIDInt(id)
	}
	return types.ChatIDUsername(s)
}

func runDownload(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: download <file_id> <output>", errUsage)
	}
	file, err := tgbot.Execute(ctx, a.bot, methods.NewGetFile(args[0]))
	if err != nil {
		return err
	}
	if file.FilePath == "" {
		return fmt.Errorf("file %s has no download path", args[0])
	}
	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	n, err := a.client.Download(ctx, file.FilePath, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Printf("saved %s to %s\n", humanize.Bytes(uint64(n)), args[1])
	return nil
}

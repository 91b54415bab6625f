package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nevindra/tgbot"
	"github.com/nevindra/tgbot/methods"
	"github.com/nevindra/tgbot/types"
)

const helpText = `*tgbot echo*

Send any text and it comes back with its formatting intact.
Send a file or photo to see what the server knows about it.

- /start shows a keyboard
- /help shows this message
- inline mode echoes your query`

// echoBot replies to everything it receives.
type echoBot struct {
	t   tgbot.Transport
	log *slog.Logger
}

// newEchoRouter routes updates to the echo bot handlers.
func newEchoRouter(t tgbot.Transport, log *slog.Logger) *tgbot.Router {
	b := &echoBot{t: t, log: log}
	return tgbot.NewRouter().
		Command("start", tgbot.HandlerFunc(b.start)).
		Command("help", tgbot.HandlerFunc(b.help)).
		Callback("ping", tgbot.HandlerFunc(b.ping)).
		On(types.UpdateInlineQuery, tgbot.HandlerFunc(b.inline)).
		On(types.UpdateMessage, tgbot.HandlerFunc(b.echo))
}

func (b *echoBot) start(ctx context.Context, u types.Update) error {
	m := u.Message
	ping, err := types.InlineButtonCallback("Ping", "ping")
	if err != nil {
		return err
	}
	kb := types.NewInlineKeyboard(
		[]types.InlineKeyboardButton{ping},
		[]types.InlineKeyboardButton{types.InlineButtonURL("Bot API", "https://core.telegram.org/bots/api")},
	)
	name := "there"
	if m.From != nil {
		name = m.From.FullName()
	}
	send := methods.NewSendMessage(types.ChatIDInt(m.Chat.ID), fmt.Sprintf("Hi %s!", name)).ReplyMarkup(kb)
	_, err = tgbot.Execute(ctx, b.t, send)
	return err
}

func (b *echoBot) help(ctx context.Context, u types.Update) error {
	send := methods.NewSendMessage(types.ChatIDInt(u.Message.Chat.ID), "").Markdown(helpText)
	_, err := tgbot.Execute(ctx, b.t, send)
	return err
}

func (b *echoBot) ping(ctx context.Context, u types.Update) error {
	_, err := tgbot.Execute(ctx, b.t, methods.NewAnswerCallbackQuery(u.CallbackQuery.ID).Text("pong"))
	return err
}

func (b *echoBot) inline(ctx context.Context, u types.Update) error {
	q := u.InlineQuery
	text := strings.TrimSpace(q.Query)
	if text == "" {
		text = "..."
	}
	article := types.NewResultArticle("echo", "Echo", types.NewInputText(text)).Description(text)
	answer := methods.NewAnswerInlineQuery(q.ID, article).CacheTime(10 * time.Second).IsPersonal(true)
	_, err := tgbot.Execute(ctx, b.t, answer)
	return err
}

func (b *echoBot) echo(ctx context.Context, u types.Update) error {
	m := u.Message
	chat := types.ChatIDInt(m.Chat.ID)
	var send methods.SendMessage
	switch {
	case m.Document != nil:
		send = methods.NewSendMessage(chat, describeDocument(m.Document))
	case len(m.Photo) > 0:
		send = methods.NewSendMessage(chat, describePhoto(types.Largest(m.Photo)))
	case m.Text != nil:
		var err error
		send, err = methods.NewSendMessage(chat, m.Text.Value).Entities(sendable(m.Text.Entities)...)
		if err != nil {
			return err
		}
	default:
		b.log.Debug("ignoring message", "chat", m.Chat.ID, "message", m.ID)
		return nil
	}
	_, err := tgbot.Execute(ctx, b.t, send.ReplyToMessageID(m.ID))
	return err
}

// sendable drops entity kinds that cannot be sent back.
func sendable(entities []types.TextEntity) []types.TextEntity {
	out := make([]types.TextEntity, 0, len(entities))
	for _, e := range entities {
		if e.Known() {
			out = append(out, e)
		}
	}
	return out
}

func describeDocument(d *types.Document) string {
	name := d.FileName
	if name == "" {
		name = "unnamed file"
	}
	s := fmt.Sprintf("%s, %s", name, humanize.Bytes(uint64(d.FileSize)))
	if d.MimeType != "" {
		s += ", " + d.MimeType
	}
	return s + "\nfile_id: " + d.FileID
}

func describePhoto(p *types.PhotoSize) string {
	return fmt.Sprintf("photo %dx%d, %s\nfile_id: %s",
		p.Width, p.Height, humanize.Bytes(uint64(p.FileSize)), p.FileID)
}

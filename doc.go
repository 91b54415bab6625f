// Package tgbot is a typed client for the Telegram Bot HTTP API.
//
// Requests are built from value builders in the methods package and executed
// through a Transport. The client package provides the HTTP transport; the
// wrappers in this package add retries, rate limiting and tracing on top of
// any Transport.
//
// # Quick Start
//
//	bot := client.New(token)
//	t := tgbot.WithRetry(tgbot.WithRateLimit(bot, tgbot.GlobalRate(30)))
//
//	me, err := tgbot.Execute(ctx, t, methods.NewGetMe())
//
//	msg, err := tgbot.Execute(ctx, t,
//		methods.NewSendMessage(types.ChatIDInt(chatID), "hello").
//			ParseMode(types.ParseModeHTML))
//
// # Core Interfaces
//
//   - [Transport] executes a request.Request and returns the raw result
//   - [OffsetStore] persists the long-polling offset between runs
//   - [Handler] reacts to a decoded types.Update
//   - [Tracer] creates spans around transport calls
//
// # Receiving Updates
//
// [Poller] runs a getUpdates loop and hands each update to a Handler.
// [WebhookHandler] serves the same Handler over HTTP. [Router] dispatches
// updates by command, callback data prefix or update kind.
package tgbot

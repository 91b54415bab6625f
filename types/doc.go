// Package types models the records exchanged with the Telegram Bot API.
//
// Response records (Message, User, Update, ...) have exported fields and are
// only ever produced by decoding API responses. Input values (ForceReply,
// InputMessageContentText, InlineQueryResultArticle, BotCommand, ...) are
// immutable builders: constructors take the mandatory fields and every setter
// returns a modified copy.
package types

package types

// InlineQueryChatType is the type of chat an inline query was sent from.
type InlineQueryChatType string

const (
	InlineChatSender     InlineQueryChatType = "sender"
	InlineChatPrivate    InlineQueryChatType = "private"
	InlineChatGroup      InlineQueryChatType = "group"
	InlineChatSupergroup InlineQueryChatType = "supergroup"
	InlineChatChannel    InlineQueryChatType = "channel"
)

// InlineQuery is an incoming inline query.
type InlineQuery struct {
	ID       string              `json:"id"`
	From     User                `json:"from"`
	Query    string              `json:"query"`
	Offset   string              `json:"offset"`
	ChatType InlineQueryChatType `json:"chat_type,omitempty"`
	Location *Location           `json:"location,omitempty"`
}

// ChosenInlineResult is an inline query result chosen by a user and sent to
// their chat partner.
type ChosenInlineResult struct {
	ResultID        string    `json:"result_id"`
	From            User      `json:"from"`
	Location        *Location `json:"location,omitempty"`
	InlineMessageID string    `json:"inline_message_id,omitempty"`
	Query           string    `json:"query"`
}

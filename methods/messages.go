package methods

import (
	"slices"

	"github.com/nevindra/tgbot/format"
	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// SendMessage sends a text message.
type SendMessage struct {
	Returns[types.Message]
	p sendMessageParams
}

type sendMessageParams struct {
	ChatID                   types.ChatID       `json:"chat_id"`
	MessageThreadID          int64              `json:"message_thread_id,omitempty"`
	Text                     string             `json:"text"`
	ParseMode                types.ParseMode    `json:"parse_mode,omitempty"`
	Entities                 []types.TextEntity `json:"entities,omitempty"`
	DisableWebPagePreview    bool               `json:"disable_web_page_preview,omitempty"`
	DisableNotification      bool               `json:"disable_notification,omitempty"`
	ProtectContent           bool               `json:"protect_content,omitempty"`
	ReplyToMessageID         int64              `json:"reply_to_message_id,omitempty"`
	AllowSendingWithoutReply bool               `json:"allow_sending_without_reply,omitempty"`
	ReplyMarkup              types.ReplyMarkup  `json:"reply_markup,omitempty"`
}

func NewSendMessage(chatID types.ChatID, text string) SendMessage {
	return SendMessage{p: sendMessageParams{ChatID: chatID, Text: text}}
}

// Markdown replaces the text with the HTML rendering of a Markdown document
// and switches the parse mode to HTML.
func (m SendMessage) Markdown(md string) SendMessage {
	m.p.Text = format.MarkdownToHTML(md)
	return m.ParseMode(types.ParseModeHTML)
}

// ParseMode sets the parse mode and drops explicit entities.
func (m SendMessage) ParseMode(mode types.ParseMode) SendMessage {
	m.p.ParseMode = mode
	m.p.Entities = nil
	return m
}

// Entities sets explicit entities and drops the parse mode. Entities must fit
// in the message text.
func (m SendMessage) Entities(entities ...types.TextEntity) (SendMessage, error) {
	if err := types.ValidateEntities(entities, types.UTF16Len(m.p.Text)); err != nil {
		return m, err
	}
	m.p.Entities = slices.Clone(entities)
	m.p.ParseMode = ""
	return m, nil
}

func (m SendMessage) MessageThreadID(id int64) SendMessage { m.p.MessageThreadID = id; return m }

func (m SendMessage) DisableWebPagePreview(v bool) SendMessage {
	m.p.DisableWebPagePreview = v
	return m
}

func (m SendMessage) DisableNotification(v bool) SendMessage { m.p.DisableNotification = v; return m }
func (m SendMessage) ProtectContent(v bool) SendMessage      { m.p.ProtectContent = v; return m }
func (m SendMessage) ReplyToMessageID(id int64) SendMessage  { m.p.ReplyToMessageID = id; return m }

func (m SendMessage) AllowSendingWithoutReply(v bool) SendMessage {
	m.p.AllowSendingWithoutReply = v
	return m
}

func (m SendMessage) ReplyMarkup(markup types.ReplyMarkup) SendMessage {
	m.p.ReplyMarkup = markup
	return m
}

func (m SendMessage) IntoRequest() request.Request { return request.NewJSON("sendMessage", m.p) }

// messageTarget addresses a message either in a chat or sent via inline mode.
type messageTarget struct {
	ChatID          *types.ChatID `json:"chat_id,omitempty"`
	MessageID       int64         `json:"message_id,omitempty"`
	InlineMessageID string        `json:"inline_message_id,omitempty"`
}

func chatMessage(chatID types.ChatID, messageID int64) messageTarget {
	return messageTarget{ChatID: &chatID, MessageID: messageID}
}

func (t messageTarget) setOn(f request.Form) request.Form {
	if t.InlineMessageID != "" {
		return f.SetText("inline_message_id", t.InlineMessageID)
	}
	if t.ChatID != nil {
		f = f.SetText("chat_id", t.ChatID.String())
	}
	return f.SetInt("message_id", t.MessageID)
}

// EditMessageText edits the text of a message.
type EditMessageText struct {
	Returns[types.EditMessageResult]
	p editMessageTextParams
}

type editMessageTextParams struct {
	messageTarget
	Text                  string                      `json:"text"`
	ParseMode             types.ParseMode             `json:"parse_mode,omitempty"`
	Entities              []types.TextEntity          `json:"entities,omitempty"`
	DisableWebPagePreview bool                        `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *types.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func NewEditMessageText(chatID types.ChatID, messageID int64, text string) EditMessageText {
	return EditMessageText{p: editMessageTextParams{messageTarget: chatMessage(chatID, messageID), Text: text}}
}

// NewEditInlineMessageText edits a message sent via inline mode.
func NewEditInlineMessageText(inlineMessageID, text string) EditMessageText {
	return EditMessageText{p: editMessageTextParams{
		messageTarget: messageTarget{InlineMessageID: inlineMessageID},
		Text:          text,
	}}
}

func (m EditMessageText) ParseMode(mode types.ParseMode) EditMessageText {
	m.p.ParseMode = mode
	m.p.Entities = nil
	return m
}

func (m EditMessageText) Entities(entities ...types.TextEntity) (EditMessageText, error) {
	if err := types.ValidateEntities(entities, types.UTF16Len(m.p.Text)); err != nil {
		return m, err
	}
	m.p.Entities = slices.Clone(entities)
	m.p.ParseMode = ""
	return m, nil
}

func (m EditMessageText) DisableWebPagePreview(v bool) EditMessageText {
	m.p.DisableWebPagePreview = v
	return m
}

func (m EditMessageText) ReplyMarkup(markup types.InlineKeyboardMarkup) EditMessageText {
	m.p.ReplyMarkup = &markup
	return m
}

func (m EditMessageText) IntoRequest() request.Request {
	return request.NewJSON("editMessageText", m.p)
}

// SendChatAction tells the chat that something is happening on the bot's
// side. The status lasts 5 seconds or until the next message.
type SendChatAction struct {
	Returns[bool]
	p sendChatActionParams
}

type sendChatActionParams struct {
	ChatID          types.ChatID     `json:"chat_id"`
	MessageThreadID int64            `json:"message_thread_id,omitempty"`
	Action          types.ChatAction `json:"action"`
}

func NewSendChatAction(chatID types.ChatID, action types.ChatAction) SendChatAction {
	return SendChatAction{p: sendChatActionParams{ChatID: chatID, Action: action}}
}

func (m SendChatAction) MessageThreadID(id int64) SendChatAction {
	m.p.MessageThreadID = id
	return m
}

func (m SendChatAction) IntoRequest() request.Request {
	return request.NewJSON("sendChatAction", m.p)
}

// GetFile prepares a file for download. The returned file path is valid for
// at least one hour.
type GetFile struct {
	Returns[types.File]
	p struct {
		FileID string `json:"file_id"`
	}
}

func NewGetFile(fileID string) GetFile {
	var m GetFile
	m.p.FileID = fileID
	return m
}

func (m GetFile) IntoRequest() request.Request { return request.NewJSON("getFile", m.p) }

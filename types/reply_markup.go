package types

import (
	"encoding/json"
	"fmt"
)

// ReplyMarkup is one of InlineKeyboardMarkup, ReplyKeyboardMarkup,
// ReplyKeyboardRemove or ForceReply.
type ReplyMarkup interface {
	json.Marshaler
	replyMarkup()
}

// ReplyMarkupError reports a reply markup that could not be serialized.
type ReplyMarkupError struct {
	Err error
}

func (e *ReplyMarkupError) Error() string { return "serialize reply markup: " + e.Err.Error() }
func (e *ReplyMarkupError) Unwrap() error { return e.Err }

// SerializeReplyMarkup encodes markup for a form field.
func SerializeReplyMarkup(markup ReplyMarkup) (string, error) {
	data, err := json.Marshal(markup)
	if err != nil {
		return "", &ReplyMarkupError{Err: err}
	}
	return string(data), nil
}

// CallbackGame is a placeholder, currently holds no information.
type CallbackGame struct{}

// InlineKeyboardButton is a button of an inline keyboard. Exactly one of the
// optional fields must be set; use the InlineButton* constructors.
type InlineKeyboardButton struct {
	Text                         string        `json:"text"`
	URL                          string        `json:"url,omitempty"`
	CallbackData                 string        `json:"callback_data,omitempty"`
	SwitchInlineQuery            *string       `json:"switch_inline_query,omitempty"`
	SwitchInlineQueryCurrentChat *string       `json:"switch_inline_query_current_chat,omitempty"`
	CallbackGame                 *CallbackGame `json:"callback_game,omitempty"`
	Pay                          bool          `json:"pay,omitempty"`
}

func InlineButtonURL(text, url string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, URL: url}
}

// InlineButtonCallback sends data back in a callback query. Data must be 1 to
// 64 bytes.
func InlineButtonCallback(text, data string) (InlineKeyboardButton, error) {
	if len(data) < 1 || len(data) > callbackDataMax {
		return InlineKeyboardButton{}, &CallbackDataError{Len: len(data)}
	}
	return InlineKeyboardButton{Text: text, CallbackData: data}, nil
}

// InlineButtonCallbackJSON encodes v as JSON callback data. Decode it with
// CallbackQuery.ParseData.
func InlineButtonCallbackJSON(text string, v any) (InlineKeyboardButton, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return InlineKeyboardButton{}, &CallbackDataError{Err: err}
	}
	return InlineButtonCallback(text, string(data))
}

// InlineButtonSwitchQuery asks the user to pick a chat and inserts the bot's
// username and query into the input field.
func InlineButtonSwitchQuery(text, query string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, SwitchInlineQuery: &query}
}

func InlineButtonSwitchQueryCurrentChat(text, query string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, SwitchInlineQueryCurrentChat: &query}
}

// InlineButtonGame launches a game. It must be the first button of the first
// row.
func InlineButtonGame(text string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackGame: &CallbackGame{}}
}

func InlineButtonPay(text string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, Pay: true}
}

const callbackDataMax = 64

// CallbackDataError reports callback data that is empty, longer than 64 bytes
// or could not be encoded.
type CallbackDataError struct {
	Len int
	Err error
}

func (e *CallbackDataError) Error() string {
	if e.Err != nil {
		return "encode callback data: " + e.Err.Error()
	}
	return fmt.Sprintf("callback data can have a length of 1 up to %d bytes, got %d", callbackDataMax, e.Len)
}

func (e *CallbackDataError) Unwrap() error { return e.Err }

// InlineKeyboardMarkup is a keyboard attached to a message.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// NewInlineKeyboard builds a keyboard from rows of buttons.
func NewInlineKeyboard(rows ...[]InlineKeyboardButton) InlineKeyboardMarkup {
	if rows == nil {
		rows = [][]InlineKeyboardButton{}
	}
	return InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Row returns a copy of the keyboard with one more row.
func (m InlineKeyboardMarkup) Row(buttons ...InlineKeyboardButton) InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, len(m.InlineKeyboard), len(m.InlineKeyboard)+1)
	copy(rows, m.InlineKeyboard)
	m.InlineKeyboard = append(rows, buttons)
	return m
}

func (m InlineKeyboardMarkup) MarshalJSON() ([]byte, error) {
	type plain InlineKeyboardMarkup
	if m.InlineKeyboard == nil {
		m.InlineKeyboard = [][]InlineKeyboardButton{}
	}
	return json.Marshal(plain(m))
}

func (InlineKeyboardMarkup) replyMarkup() {}

// KeyboardButton is a button of a custom reply keyboard.
type KeyboardButton struct {
	Text            string `json:"text"`
	RequestContact  bool   `json:"request_contact,omitempty"`
	RequestLocation bool   `json:"request_location,omitempty"`
}

func NewKeyboardButton(text string) KeyboardButton { return KeyboardButton{Text: text} }

// ReplyKeyboardMarkup replaces the user's keyboard with custom buttons.
type ReplyKeyboardMarkup struct {
	p replyKeyboard
}

type replyKeyboard struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	IsPersistent          bool               `json:"is_persistent,omitempty"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
	Selective             bool               `json:"selective,omitempty"`
}

func NewReplyKeyboard(rows ...[]KeyboardButton) ReplyKeyboardMarkup {
	if rows == nil {
		rows = [][]KeyboardButton{}
	}
	return ReplyKeyboardMarkup{p: replyKeyboard{Keyboard: rows}}
}

func (m ReplyKeyboardMarkup) Row(buttons ...KeyboardButton) ReplyKeyboardMarkup {
	rows := make([][]KeyboardButton, len(m.p.Keyboard), len(m.p.Keyboard)+1)
	copy(rows, m.p.Keyboard)
	m.p.Keyboard = append(rows, buttons)
	return m
}

func (m ReplyKeyboardMarkup) Persistent(v bool) ReplyKeyboardMarkup { m.p.IsPersistent = v; return m }
func (m ReplyKeyboardMarkup) Resize(v bool) ReplyKeyboardMarkup     { m.p.ResizeKeyboard = v; return m }
func (m ReplyKeyboardMarkup) OneTime(v bool) ReplyKeyboardMarkup    { m.p.OneTimeKeyboard = v; return m }
func (m ReplyKeyboardMarkup) Selective(v bool) ReplyKeyboardMarkup  { m.p.Selective = v; return m }

func (m ReplyKeyboardMarkup) InputFieldPlaceholder(s string) ReplyKeyboardMarkup {
	m.p.InputFieldPlaceholder = s
	return m
}

func (m ReplyKeyboardMarkup) Keyboard() [][]KeyboardButton { return m.p.Keyboard }

func (m ReplyKeyboardMarkup) MarshalJSON() ([]byte, error) { return json.Marshal(m.p) }
func (m *ReplyKeyboardMarkup) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &m.p)
}

func (ReplyKeyboardMarkup) replyMarkup() {}

// ReplyKeyboardRemove removes the custom keyboard.
type ReplyKeyboardRemove struct {
	selective bool
}

func NewReplyKeyboardRemove() ReplyKeyboardRemove { return ReplyKeyboardRemove{} }

func (r ReplyKeyboardRemove) Selective(v bool) ReplyKeyboardRemove { r.selective = v; return r }

type replyKeyboardRemoveJSON struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
	Selective      bool `json:"selective,omitempty"`
}

func (r ReplyKeyboardRemove) MarshalJSON() ([]byte, error) {
	return json.Marshal(replyKeyboardRemoveJSON{RemoveKeyboard: true, Selective: r.selective})
}

func (r *ReplyKeyboardRemove) UnmarshalJSON(data []byte) error {
	var raw replyKeyboardRemoveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.selective = raw.Selective
	return nil
}

func (ReplyKeyboardRemove) replyMarkup() {}

// ForceReply shows a reply interface to the user, as if they had selected the
// bot's message and tapped "Reply".
type ForceReply struct {
	selective   bool
	placeholder string
}

func NewForceReply() ForceReply { return ForceReply{} }

// Selective forces a reply only from mentioned users and the sender of the
// replied-to message.
func (f ForceReply) Selective(v bool) ForceReply { f.selective = v; return f }

// InputFieldPlaceholder is shown in the input field while the reply interface
// is active, 1 to 64 characters.
func (f ForceReply) InputFieldPlaceholder(s string) ForceReply { f.placeholder = s; return f }

type forceReplyJSON struct {
	ForceReply            bool   `json:"force_reply"`
	Selective             bool   `json:"selective,omitempty"`
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
}

func (f ForceReply) MarshalJSON() ([]byte, error) {
	return json.Marshal(forceReplyJSON{ForceReply: true, Selective: f.selective, InputFieldPlaceholder: f.placeholder})
}

func (f *ForceReply) UnmarshalJSON(data []byte) error {
	var raw forceReplyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = ForceReply{selective: raw.Selective, placeholder: raw.InputFieldPlaceholder}
	return nil
}

func (ForceReply) replyMarkup() {}

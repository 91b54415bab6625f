package types

import (
	"encoding/json"
	"errors"
)

// ErrNoCallbackData is returned by ParseData for queries without data.
var ErrNoCallbackData = errors.New("callback query has no data")

// CallbackQuery is a press on an inline keyboard button.
type CallbackQuery struct {
	ID              string   `json:"id"`
	From            User     `json:"from"`
	Message         *Message `json:"message,omitempty"`
	InlineMessageID string   `json:"inline_message_id,omitempty"`
	ChatInstance    string   `json:"chat_instance"`
	Data            string   `json:"data,omitempty"`
	GameShortName   string   `json:"game_short_name,omitempty"`
}

// ParseData decodes JSON callback data set with InlineButtonCallbackJSON.
func (q CallbackQuery) ParseData(v any) error {
	if q.Data == "" {
		return ErrNoCallbackData
	}
	return json.Unmarshal([]byte(q.Data), v)
}

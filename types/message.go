package types

import "encoding/json"

// Message is a message in a chat. Text and Caption combine the raw string
// with its entities and are nil when the message has none.
type Message struct {
	ID              int64                 `json:"message_id"`
	MessageThreadID int64                 `json:"message_thread_id,omitempty"`
	From            *User                 `json:"from,omitempty"`
	SenderChat      *Chat                 `json:"sender_chat,omitempty"`
	Date            int64                 `json:"date"`
	Chat            Chat                  `json:"chat"`
	ReplyToMessage  *Message              `json:"reply_to_message,omitempty"`
	ViaBot          *User                 `json:"via_bot,omitempty"`
	EditDate        int64                 `json:"edit_date,omitempty"`
	MediaGroupID    string                `json:"media_group_id,omitempty"`
	AuthorSignature string                `json:"author_signature,omitempty"`
	Text            *Text                 `json:"-"`
	Caption         *Text                 `json:"-"`
	Animation       *Animation            `json:"animation,omitempty"`
	Audio           *Audio                `json:"audio,omitempty"`
	Document        *Document             `json:"document,omitempty"`
	Photo           []PhotoSize           `json:"photo,omitempty"`
	Video           *Video                `json:"video,omitempty"`
	Voice           *Voice                `json:"voice,omitempty"`
	Contact         *Contact              `json:"contact,omitempty"`
	Location        *Location             `json:"location,omitempty"`
	Venue           *Venue                `json:"venue,omitempty"`
	Game            *Game                 `json:"game,omitempty"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	aux := struct {
		*plain
		Text            *string      `json:"text"`
		Entities        []TextEntity `json:"entities"`
		Caption         *string      `json:"caption"`
		CaptionEntities []TextEntity `json:"caption_entities"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if m.Text, err = decodeText(aux.Text, aux.Entities); err != nil {
		return err
	}
	if m.Caption, err = decodeText(aux.Caption, aux.CaptionEntities); err != nil {
		return err
	}
	return nil
}

func (m Message) MarshalJSON() ([]byte, error) {
	type plain Message
	text, entities := encodeText(m.Text)
	caption, captionEntities := encodeText(m.Caption)
	return json.Marshal(struct {
		plain
		Text            *string      `json:"text,omitempty"`
		Entities        []wireEntity `json:"entities,omitempty"`
		Caption         *string      `json:"caption,omitempty"`
		CaptionEntities []wireEntity `json:"caption_entities,omitempty"`
	}{plain: plain(m), Text: text, Entities: entities, Caption: caption, CaptionEntities: captionEntities})
}

// PlainText returns the message text or, for media, the caption.
func (m Message) PlainText() string {
	switch {
	case m.Text != nil:
		return m.Text.Value
	case m.Caption != nil:
		return m.Caption.Value
	}
	return ""
}

// IsCommand reports whether the message starts with a bot command.
func (m Message) IsCommand() bool {
	if m.Text == nil {
		return false
	}
	for _, e := range m.Text.Entities {
		if e.Kind == EntityBotCommand && e.Offset == 0 {
			return true
		}
	}
	return false
}

// EditMessageResult is the result of editing a message: the edited Message,
// or true when the edited message was sent via inline mode.
type EditMessageResult struct {
	Message *Message
	Inline  bool
}

func (r EditMessageResult) MarshalJSON() ([]byte, error) {
	if r.Message != nil {
		return json.Marshal(r.Message)
	}
	return json.Marshal(r.Inline)
}

func (r *EditMessageResult) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && (data[0] == 't' || data[0] == 'f') {
		*r = EditMessageResult{}
		return json.Unmarshal(data, &r.Inline)
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*r = EditMessageResult{Message: &m}
	return nil
}

// ResponseParameters describes why a request was unsuccessful.
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

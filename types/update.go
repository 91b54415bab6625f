package types

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// AllowedUpdate names an update type, as used by allowed_updates and by the
// key of an update's payload.
type AllowedUpdate string

const (
	UpdateMessage            AllowedUpdate = "message"
	UpdateEditedMessage      AllowedUpdate = "edited_message"
	UpdateChannelPost        AllowedUpdate = "channel_post"
	UpdateEditedChannelPost  AllowedUpdate = "edited_channel_post"
	UpdateInlineQuery        AllowedUpdate = "inline_query"
	UpdateChosenInlineResult AllowedUpdate = "chosen_inline_result"
	UpdateCallbackQuery      AllowedUpdate = "callback_query"
	UpdateShippingQuery      AllowedUpdate = "shipping_query"
	UpdatePreCheckoutQuery   AllowedUpdate = "pre_checkout_query"
	UpdatePoll               AllowedUpdate = "poll"
	UpdatePollAnswer         AllowedUpdate = "poll_answer"
	UpdateMyChatMember       AllowedUpdate = "my_chat_member"
	UpdateChatMember         AllowedUpdate = "chat_member"
	UpdateChatJoinRequest    AllowedUpdate = "chat_join_request"
)

var errMissingUpdateID = errors.New("update: missing update_id")

// Update is an incoming update. Exactly one payload is set, named by Kind.
// Payloads of kinds without a dedicated field are kept in Other.
type Update struct {
	ID                 int64
	Kind               AllowedUpdate
	Message            *Message
	EditedMessage      *Message
	ChannelPost        *Message
	EditedChannelPost  *Message
	InlineQuery        *InlineQuery
	ChosenInlineResult *ChosenInlineResult
	CallbackQuery      *CallbackQuery
	Other              json.RawMessage
}

func (u *Update) UnmarshalJSON(data []byte) error {
	probe := gjson.ParseBytes(data)
	id := probe.Get("update_id")
	if !id.Exists() {
		return errMissingUpdateID
	}
	*u = Update{ID: id.Int()}

	var payload gjson.Result
	probe.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "update_id" {
			return true
		}
		u.Kind, payload = AllowedUpdate(key.String()), value
		return false
	})
	if u.Kind == "" {
		return nil
	}

	raw := []byte(payload.Raw)
	var target any
	switch u.Kind {
	case UpdateMessage:
		u.Message = new(Message)
		target = u.Message
	case UpdateEditedMessage:
		u.EditedMessage = new(Message)
		target = u.EditedMessage
	case UpdateChannelPost:
		u.ChannelPost = new(Message)
		target = u.ChannelPost
	case UpdateEditedChannelPost:
		u.EditedChannelPost = new(Message)
		target = u.EditedChannelPost
	case UpdateInlineQuery:
		u.InlineQuery = new(InlineQuery)
		target = u.InlineQuery
	case UpdateChosenInlineResult:
		u.ChosenInlineResult = new(ChosenInlineResult)
		target = u.ChosenInlineResult
	case UpdateCallbackQuery:
		u.CallbackQuery = new(CallbackQuery)
		target = u.CallbackQuery
	default:
		u.Other = json.RawMessage(raw)
		return nil
	}
	return json.Unmarshal(raw, target)
}

func (u Update) MarshalJSON() ([]byte, error) {
	out := map[string]any{"update_id": u.ID}
	if u.Kind != "" {
		out[string(u.Kind)] = u.payload()
	}
	return json.Marshal(out)
}

func (u Update) payload() any {
	switch u.Kind {
	case UpdateMessage:
		return u.Message
	case UpdateEditedMessage:
		return u.EditedMessage
	case UpdateChannelPost:
		return u.ChannelPost
	case UpdateEditedChannelPost:
		return u.EditedChannelPost
	case UpdateInlineQuery:
		return u.InlineQuery
	case UpdateChosenInlineResult:
		return u.ChosenInlineResult
	case UpdateCallbackQuery:
		return u.CallbackQuery
	}
	return u.Other
}

// AnyMessage returns the message of message-like updates.
func (u Update) AnyMessage() *Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	case u.CallbackQuery != nil:
		return u.CallbackQuery.Message
	}
	return nil
}

// Sender returns the user that caused the update, if any.
func (u Update) Sender() *User {
	switch {
	case u.InlineQuery != nil:
		return &u.InlineQuery.From
	case u.ChosenInlineResult != nil:
		return &u.ChosenInlineResult.From
	case u.CallbackQuery != nil:
		return &u.CallbackQuery.From
	}
	if m := u.AnyMessage(); m != nil {
		return m.From
	}
	return nil
}

package methods

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// SendVoice sends an OGG/OPUS, MP3 or M4A audio file displayed as a playable
// voice message.
type SendVoice struct {
	Returns[types.Message]
	form request.Form
}

func NewSendVoice(chatID types.ChatID, voice types.InputFile) SendVoice {
	return SendVoice{form: request.Form{}.SetText("chat_id", chatID.String()).SetFile("voice", voice)}
}

func (m SendVoice) Caption(caption string) SendVoice {
	m.form = m.form.SetText("caption", caption)
	return m
}

// CaptionEntities sets caption entities and drops parse_mode.
func (m SendVoice) CaptionEntities(entities ...types.TextEntity) (SendVoice, error) {
	f, err := withEntities(m.form, "caption_entities", entities)
	if err != nil {
		return m, err
	}
	m.form = f
	return m, nil
}

// ParseMode sets the caption parse mode and drops caption_entities.
func (m SendVoice) ParseMode(mode types.ParseMode) SendVoice {
	m.form = withParseMode(m.form, "caption_entities", mode)
	return m
}

// Duration of the voice message in seconds.
func (m SendVoice) Duration(seconds int) SendVoice {
	m.form = m.form.SetInt("duration", int64(seconds))
	return m
}

func (m SendVoice) DisableNotification(v bool) SendVoice {
	m.form = m.form.SetBool("disable_notification", v)
	return m
}

func (m SendVoice) ReplyToMessageID(id int64) SendVoice {
	m.form = m.form.SetInt("reply_to_message_id", id)
	return m
}

func (m SendVoice) AllowSendingWithoutReply(v bool) SendVoice {
	m.form = m.form.SetBool("allow_sending_without_reply", v)
	return m
}

func (m SendVoice) ReplyMarkup(markup types.ReplyMarkup) (SendVoice, error) {
	f, err := withReplyMarkup(m.form, markup)
	if err != nil {
		return m, err
	}
	m.form = f
	return m, nil
}

func (m SendVoice) IntoRequest() request.Request { return request.NewForm("sendVoice", m.form) }

// SendDocument sends a general file.
type SendDocument struct {
	Returns[types.Message]
	form request.Form
}

func NewSendDocument(chatID types.ChatID, document types.InputFile) SendDocument {
	return SendDocument{form: request.Form{}.SetText("chat_id", chatID.String()).SetFile("document", document)}
}

// Thumbnail must be a JPEG under 200 kB, at most 320 pixels wide and high.
func (m SendDocument) Thumbnail(thumb types.InputFile) SendDocument {
	m.form = m.form.SetFile("thumbnail", thumb)
	return m
}

func (m SendDocument) Caption(caption string) SendDocument {
	m.form = m.form.SetText("caption", caption)
	return m
}

func (m SendDocument) CaptionEntities(entities ...types.TextEntity) (SendDocument, error) {
	f, err := withEntities(m.form, "caption_entities", entities)
	if err != nil {
		return m, err
	}
	m.form = f
	return m, nil
}

func (m SendDocument) ParseMode(mode types.ParseMode) SendDocument {
	m.form = withParseMode(m.form, "caption_entities", mode)
	return m
}

func (m SendDocument) DisableContentTypeDetection(v bool) SendDocument {
	m.form = m.form.SetBool("disable_content_type_detection", v)
	return m
}

func (m SendDocument) DisableNotification(v bool) SendDocument {
	m.form = m.form.SetBool("disable_notification", v)
	return m
}

func (m SendDocument) ReplyToMessageID(id int64) SendDocument {
	m.form = m.form.SetInt("reply_to_message_id", id)
	return m
}

func (m SendDocument) ReplyMarkup(markup types.ReplyMarkup) (SendDocument, error) {
	f, err := withReplyMarkup(m.form, markup)
	if err != nil {
		return m, err
	}
	m.form = f
	return m, nil
}

func (m SendDocument) IntoRequest() request.Request {
	return request.NewForm("sendDocument", m.form)
}

// SendPhoto sends a photo.
type SendPhoto struct {
	Returns[types.Message]
	form request.Form
}

func NewSendPhoto(chatID types.ChatID, photo types.InputFile) SendPhoto {
	return SendPhoto{form: request.Form{}.SetText("chat_id", chatID.String()).SetFile("photo", photo)}
}

func (m SendPhoto) Caption(caption string) SendPhoto {
	m.form = m.form.SetText("caption", caption)
	return m
}

func (m SendPhoto) CaptionEntities(entities ...types.TextEntity) (SendPhoto, error) {
	f, err := withEntities(m.form, "caption_entities", entities)
	if err != nil {
		return m, err
	}
	m.form = f
	return m, nil
}

func (m SendPhoto) ParseMode(mode types.ParseMode) SendPhoto {
	m.form = withParseMode(m.form, "caption_entities", mode)
	return m
}

// HasSpoiler covers the photo with a spoiler animation.
func (m SendPhoto) HasSpoiler(v bool) SendPhoto {
	m.form = m.form.SetBool("has_spoiler", v)
	return m
}

func (m SendPhoto) DisableNotification(v bool) SendPhoto {
	m.form = m.form.SetBool("disable_notification", v)
	return m
}

func (m SendPhoto) ReplyToMessageID(id int64) SendPhoto {
	m.form = m.form.SetInt("reply_to_message_id", id)
	return m
}

func (m SendPhoto) ReplyMarkup(markup types.ReplyMarkup) (SendPhoto, error) {
	f, err := withReplyMarkup(m.form, markup)
	if err != nil {
		return m, err
	}
	m.form = f
	return m, nil
}

func (m SendPhoto) IntoRequest() request.Request { return request.NewForm("sendPhoto", m.form) }

// ErrMediaGroupSize is returned for media groups outside 2 to 10 items.
var ErrMediaGroupSize = errors.New("media group must contain 2 to 10 items")

// attachMedia adds the files of item to f and encodes it with the resulting
// references.
func attachMedia(f request.Form, item types.InputMedia) (request.Form, json.RawMessage, error) {
	f, media := f.Attach(item.File())
	var thumbRef string
	if thumb, ok := item.Thumbnail(); ok {
		f, thumbRef = f.Attach(thumb)
	}
	data, err := item.MarshalWithMedia(media, thumbRef)
	if err != nil {
		return f, nil, fmt.Errorf("encode %s media: %w", item.MediaType(), err)
	}
	return f, data, nil
}

// SendMediaGroup sends photos, videos, documents or audios as an album.
type SendMediaGroup struct {
	Returns[[]types.Message]
	form request.Form
}

// NewSendMediaGroup attaches the items of the album. Documents and audios can
// only be grouped with items of the same type.
func NewSendMediaGroup(chatID types.ChatID, media ...types.InputMedia) (SendMediaGroup, error) {
	if len(media) < 2 || len(media) > 10 {
		return SendMediaGroup{}, ErrMediaGroupSize
	}
	f := request.Form{}.SetText("chat_id", chatID.String())
	items := make([]json.RawMessage, 0, len(media))
	for _, item := range media {
		var data json.RawMessage
		var err error
		if f, data, err = attachMedia(f, item); err != nil {
			return SendMediaGroup{}, err
		}
		items = append(items, data)
	}
	f, err := f.SetJSON("media", items)
	if err != nil {
		return SendMediaGroup{}, err
	}
	return SendMediaGroup{form: f}, nil
}

func (m SendMediaGroup) DisableNotification(v bool) SendMediaGroup {
	m.form = m.form.SetBool("disable_notification", v)
	return m
}

func (m SendMediaGroup) ReplyToMessageID(id int64) SendMediaGroup {
	m.form = m.form.SetInt("reply_to_message_id", id)
	return m
}

func (m SendMediaGroup) IntoRequest() request.Request {
	return request.NewForm("sendMediaGroup", m.form)
}

// EditMessageMedia replaces the media of a message.
type EditMessageMedia struct {
	Returns[types.EditMessageResult]
	form request.Form
}

func NewEditMessageMedia(chatID types.ChatID, messageID int64, media types.InputMedia) (EditMessageMedia, error) {
	return newEditMessageMedia(chatMessage(chatID, messageID), media)
}

// NewEditInlineMessageMedia edits a message sent via inline mode. Uploads are
// not possible for inline messages.
func NewEditInlineMessageMedia(inlineMessageID string, media types.InputMedia) (EditMessageMedia, error) {
	return newEditMessageMedia(messageTarget{InlineMessageID: inlineMessageID}, media)
}

func newEditMessageMedia(target messageTarget, media types.InputMedia) (EditMessageMedia, error) {
	f, data, err := attachMedia(target.setOn(request.Form{}), media)
	if err != nil {
		return EditMessageMedia{}, err
	}
	return EditMessageMedia{form: f.SetText("media", string(data))}, nil
}

func (m EditMessageMedia) ReplyMarkup(markup types.InlineKeyboardMarkup) (EditMessageMedia, error) {
	f, err := withReplyMarkup(m.form, markup)
	if err != nil {
		return m, err
	}
	m.form = f
	return m, nil
}

func (m EditMessageMedia) IntoRequest() request.Request {
	return request.NewForm("editMessageMedia", m.form)
}

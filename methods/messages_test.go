package methods

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nevindra/tgbot/types"
)

func TestSendMessage(t *testing.T) {
	assert.JSONEq(t, `{"chat_id":1,"text":"hi"}`, jsonBody(t, NewSendMessage(types.ChatIDInt(1), "hi").IntoRequest()))

	kb := types.NewInlineKeyboard().Row(types.InlineButtonURL("Go", "https://go.dev"))
	r := NewSendMessage(types.ChatIDUsername("@chan"), "hello").
		ParseMode(types.ParseModeMarkdownV2).
		DisableNotification(true).
		ReplyToMessageID(7).
		ReplyMarkup(kb).
		IntoRequest()
	assert.Equal(t, "sendMessage", r.Name())
	assert.JSONEq(t, `{
		"chat_id":"@chan","text":"hello","parse_mode":"MarkdownV2",
		"disable_notification":true,"reply_to_message_id":7,
		"reply_markup":{"inline_keyboard":[[{"text":"Go","url":"https://go.dev"}]]}
	}`, jsonBody(t, r))
}

func TestSendMessageEntities(t *testing.T) {
	m, err := NewSendMessage(types.ChatIDInt(1), "hello").
		ParseMode(types.ParseModeHTML).
		Entities(types.EntityBoldAt(0, 5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"chat_id":1,"text":"hello","entities":[{"type":"bold","offset":0,"length":5}]}`, jsonBody(t, m.IntoRequest()))

	_, err = NewSendMessage(types.ChatIDInt(1), "hi").Entities(types.EntityBoldAt(0, 5))
	var entErr *types.TextEntityError
	require.True(t, errors.As(err, &entErr))
	assert.ErrorIs(t, err, types.ErrEntityOutOfBounds)
}

func TestSendMessageMarkdown(t *testing.T) {
	r := NewSendMessage(types.ChatIDInt(1), "").Markdown("**hi** <you>").IntoRequest()
	assert.JSONEq(t, `{"chat_id":1,"text":"<b>hi</b> &lt;you&gt;","parse_mode":"HTML"}`, jsonBody(t, r))
}

func TestEditMessageText(t *testing.T) {
	r := NewEditMessageText(types.ChatIDInt(5), 10, "new").DisableWebPagePreview(true).IntoRequest()
	assert.Equal(t, "editMessageText", r.Name())
	assert.JSONEq(t, `{"chat_id":5,"message_id":10,"text":"new","disable_web_page_preview":true}`, jsonBody(t, r))

	m, err := NewEditInlineMessageText("abc", "new").Entities(types.EntityItalicAt(0, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"inline_message_id":"abc","text":"new","entities":[{"type":"italic","offset":0,"length":3}]}`, jsonBody(t, m.IntoRequest()))
	assert.JSONEq(t, `{"inline_message_id":"abc","text":"new","parse_mode":"HTML"}`, jsonBody(t, m.ParseMode(types.ParseModeHTML).IntoRequest()))
}

func TestSendChatActionAndGetFile(t *testing.T) {
	r := NewSendChatAction(types.ChatIDInt(1), types.ChatActionUploadVoice).IntoRequest()
	assert.Equal(t, "sendChatAction", r.Name())
	assert.JSONEq(t, `{"chat_id":1,"action":"upload_voice"}`, jsonBody(t, r))

	r = NewGetFile("file-id").IntoRequest()
	assert.Equal(t, "getFile", r.Name())
	assert.JSONEq(t, `{"file_id":"file-id"}`, jsonBody(t, r))
}

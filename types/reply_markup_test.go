package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForceReplyJSON(t *testing.T) {
	tests := []struct {
		name   string
		markup ForceReply
		want   string
	}{
		{name: "plain", markup: NewForceReply(), want: `{"force_reply":true}`},
		{name: "selective", markup: NewForceReply().Selective(true), want: `{"force_reply":true,"selective":true}`},
		{name: "placeholder", markup: NewForceReply().InputFieldPlaceholder("name?"), want: `{"force_reply":true,"input_field_placeholder":"name?"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SerializeReplyMarkup(tt.markup)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, s)

			var back ForceReply
			require.NoError(t, json.Unmarshal([]byte(s), &back))
			assert.Equal(t, tt.markup, back)
		})
	}
}

func TestReplyKeyboardJSON(t *testing.T) {
	kb := NewReplyKeyboard().
		Row(NewKeyboardButton("yes"), NewKeyboardButton("no")).
		Resize(true).
		OneTime(true)
	s, err := SerializeReplyMarkup(kb)
	require.NoError(t, err)
	assert.JSONEq(t, `{"keyboard":[[{"text":"yes"},{"text":"no"}]],"resize_keyboard":true,"one_time_keyboard":true}`, s)

	s, err = SerializeReplyMarkup(NewReplyKeyboardRemove())
	require.NoError(t, err)
	assert.JSONEq(t, `{"remove_keyboard":true}`, s)
}

func TestInlineKeyboardRowDoesNotAlias(t *testing.T) {
	base := NewInlineKeyboard().Row(InlineButtonURL("a", "https://a"))
	left := base.Row(InlineButtonURL("b", "https://b"))
	right := base.Row(InlineButtonURL("c", "https://c"))

	assert.Len(t, base.InlineKeyboard, 1)
	assert.Equal(t, "b", left.InlineKeyboard[1][0].Text)
	assert.Equal(t, "c", right.InlineKeyboard[1][0].Text)
}

func TestInlineKeyboardJSON(t *testing.T) {
	cb, err := InlineButtonCallback("ok", "confirm:1")
	require.NoError(t, err)
	kb := NewInlineKeyboard([]InlineKeyboardButton{cb, InlineButtonSwitchQuery("share", "")})

	s, err := SerializeReplyMarkup(kb)
	require.NoError(t, err)
	assert.JSONEq(t, `{"inline_keyboard":[[{"text":"ok","callback_data":"confirm:1"},{"text":"share","switch_inline_query":""}]]}`, s)

	s, err = SerializeReplyMarkup(NewInlineKeyboard())
	require.NoError(t, err)
	assert.JSONEq(t, `{"inline_keyboard":[]}`, s)
}

func TestInlineButtonCallbackLimits(t *testing.T) {
	_, err := InlineButtonCallback("x", strings.Repeat("d", 64))
	assert.NoError(t, err)

	_, err = InlineButtonCallback("x", strings.Repeat("d", 65))
	var cbErr *CallbackDataError
	require.True(t, errors.As(err, &cbErr))
	assert.Equal(t, 65, cbErr.Len)

	_, err = InlineButtonCallback("x", "")
	assert.Error(t, err)
}

func TestCallbackDataRoundTrip(t *testing.T) {
	type vote struct {
		Poll   int  `json:"p"`
		Upvote bool `json:"u"`
	}
	btn, err := InlineButtonCallbackJSON("up", vote{Poll: 3, Upvote: true})
	require.NoError(t, err)

	q := CallbackQuery{ID: "1", Data: btn.CallbackData}
	var got vote
	require.NoError(t, q.ParseData(&got))
	assert.Equal(t, vote{Poll: 3, Upvote: true}, got)

	assert.ErrorIs(t, CallbackQuery{}.ParseData(&got), ErrNoCallbackData)

	_, err = InlineButtonCallbackJSON("bad", make(chan int))
	assert.True(t, errors.As(err, new(*CallbackDataError)))
}

package methods

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// Declared response types.
var (
	_ Method[[]types.Update]          = GetUpdates{}
	_ Method[bool]                    = SetWebhook{}
	_ Method[bool]                    = DeleteWebhook{}
	_ Method[types.WebhookInfo]       = GetWebhookInfo{}
	_ Method[types.User]              = GetMe{}
	_ Method[bool]                    = LogOut{}
	_ Method[bool]                    = Close{}
	_ Method[bool]                    = SetMyCommands{}
	_ Method[[]types.BotCommand]      = GetMyCommands{}
	_ Method[bool]                    = DeleteMyCommands{}
	_ Method[types.Message]           = SendMessage{}
	_ Method[types.Message]           = SendVoice{}
	_ Method[types.Message]           = SendDocument{}
	_ Method[types.Message]           = SendPhoto{}
	_ Method[[]types.Message]         = SendMediaGroup{}
	_ Method[types.EditMessageResult] = EditMessageText{}
	_ Method[types.EditMessageResult] = EditMessageMedia{}
	_ Method[bool]                    = SendChatAction{}
	_ Method[types.File]              = GetFile{}
	_ Method[bool]                    = AnswerCallbackQuery{}
	_ Method[bool]                    = AnswerInlineQuery{}
	_ Method[types.Message]           = SendGame{}
	_ Method[types.EditMessageResult] = SetGameScore{}
	_ Method[[]types.GameHighScore]   = GetGameHighScores{}
)

func jsonBody(t *testing.T, r request.Request) string {
	t.Helper()
	body, ok := r.Body().(request.JSONBody)
	require.True(t, ok, "expected JSON body, got %T", r.Body())
	require.NoError(t, body.Err)
	return string(body.Data)
}

func formBody(t *testing.T, r request.Request) request.Form {
	t.Helper()
	body, ok := r.Body().(request.FormBody)
	require.True(t, ok, "expected form body, got %T", r.Body())
	return body.Form
}

func formText(t *testing.T, f request.Form, name string) string {
	t.Helper()
	v, ok := f.Get(name)
	require.True(t, ok, "missing field %q", name)
	s, ok := v.Text()
	require.True(t, ok, "field %q is not text", name)
	return s
}

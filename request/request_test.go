package request

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nevindra/tgbot/types"
)

func TestRequestVariants(t *testing.T) {
	empty := NewEmpty("getMe")
	assert.Equal(t, http.MethodGet, empty.Verb())
	assert.Equal(t, EmptyBody{}, empty.Body())

	js := NewJSON("sendMessage", map[string]any{"chat_id": 1, "text": "hi"})
	assert.Equal(t, http.MethodPost, js.Verb())
	body, ok := js.Body().(JSONBody)
	require.True(t, ok)
	require.NoError(t, body.Err)
	assert.JSONEq(t, `{"chat_id":1,"text":"hi"}`, string(body.Data))

	form := NewForm("sendVoice", Form{}.SetText("chat_id", "1"))
	assert.Equal(t, http.MethodPost, form.Verb())
	_, ok = form.Body().(FormBody)
	assert.True(t, ok)
}

func TestRequestJSONErrorIsCarried(t *testing.T) {
	r := NewJSON("broken", map[string]any{"c": make(chan int)})
	body := r.Body().(JSONBody)
	assert.Error(t, body.Err)
	assert.Nil(t, body.Data)
}

func TestRequestURL(t *testing.T) {
	r := NewEmpty("getMe")
	assert.Equal(t, "https://api.telegram.org/bot123:abc/getMe", r.URL("https://api.telegram.org", "123:abc"))
	assert.Equal(t, "http://localhost:8081/bot1:x/getMe", r.URL("http://localhost:8081/", "1:x"))
	assert.Equal(t, "https://api.telegram.org/file/bot1:x/voice/file_1.oga", FileURL("https://api.telegram.org", "1:x", "voice/file_1.oga"))
}

func TestZeroRequestBodyIsEmpty(t *testing.T) {
	assert.Equal(t, EmptyBody{}, Request{}.Body())
}

func TestReplayable(t *testing.T) {
	assert.True(t, NewEmpty("getMe").Replayable())
	assert.True(t, NewForm("sendVoice", Form{}.SetFile("voice", types.InputFileID("id"))).Replayable())
	assert.True(t, NewForm("sendVoice", Form{}.SetFile("voice", types.InputFileBytes("a.ogg", []byte("x")))).Replayable())
	assert.False(t, NewForm("sendVoice", Form{}.SetFile("voice", types.InputFileReader("a.ogg", strings.NewReader("x")))).Replayable())
}

func TestFormCopyOnWrite(t *testing.T) {
	base := Form{}.SetText("chat_id", "1")
	withVoice := base.SetFile("voice", types.InputFileID("file"))
	withCaption := base.SetText("caption", "hi")

	assert.Equal(t, []string{"chat_id"}, base.Names())
	assert.Equal(t, []string{"chat_id", "voice"}, withVoice.Names())
	assert.Equal(t, []string{"chat_id", "caption"}, withCaption.Names())

	removed := withVoice.Delete("chat_id")
	assert.Equal(t, []string{"voice"}, removed.Names())
	assert.True(t, withVoice.Has("chat_id"))
}

func TestFormLastInsertWins(t *testing.T) {
	f := Form{}.SetText("a", "1").SetText("b", "2").SetText("a", "3")
	assert.Equal(t, []string{"a", "b"}, f.Names())
	v, ok := f.Get("a")
	require.True(t, ok)
	s, ok := v.Text()
	require.True(t, ok)
	assert.Equal(t, "3", s)
	assert.Equal(t, 2, f.Len())
}

func TestFormTypedSetters(t *testing.T) {
	f := Form{}.SetInt("duration", 5).SetBool("disable_notification", true)
	f, err := f.SetJSON("reply_markup", types.NewForceReply())
	require.NoError(t, err)

	text := func(name string) string {
		v, _ := f.Get(name)
		s, _ := v.Text()
		return s
	}
	assert.Equal(t, "5", text("duration"))
	assert.Equal(t, "true", text("disable_notification"))
	assert.Equal(t, `{"force_reply":true}`, text("reply_markup"))
}

func TestFormAttach(t *testing.T) {
	f, ref := Form{}.Attach(types.InputFileID("AgAD"))
	assert.Equal(t, "AgAD", ref)
	assert.Zero(t, f.Len())

	f, ref = f.Attach(types.InputFileURL("https://example.com/a.jpg"))
	assert.Equal(t, "https://example.com/a.jpg", ref)
	assert.Zero(t, f.Len())

	f, ref = f.Attach(types.InputFileBytes("a.jpg", []byte("img")))
	require.True(t, strings.HasPrefix(ref, "attach://tgbot_"))
	name := strings.TrimPrefix(ref, "attach://")
	v, ok := f.Get(name)
	require.True(t, ok)
	file, ok := v.File()
	require.True(t, ok)
	assert.Equal(t, "a.jpg", file.Name())
	assert.True(t, f.HasUploads())
}

func TestNewAttachNameUnique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		n := NewAttachName()
		assert.False(t, seen[n])
		assert.NotContains(t, n, "-")
		seen[n] = true
	}
}

package methods

import (
	"slices"
	"time"

	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// AnswerCallbackQuery answers a callback query sent from an inline keyboard.
type AnswerCallbackQuery struct {
	Returns[bool]
	p answerCallbackQueryParams
}

type answerCallbackQueryParams struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	URL             string `json:"url,omitempty"`
	CacheTime       int64  `json:"cache_time,omitempty"`
}

func NewAnswerCallbackQuery(callbackQueryID string) AnswerCallbackQuery {
	return AnswerCallbackQuery{p: answerCallbackQueryParams{CallbackQueryID: callbackQueryID}}
}

// Text of the notification, 0 to 200 characters.
func (m AnswerCallbackQuery) Text(text string) AnswerCallbackQuery { m.p.Text = text; return m }

// ShowAlert shows an alert instead of a notification at the top of the chat.
func (m AnswerCallbackQuery) ShowAlert(v bool) AnswerCallbackQuery { m.p.ShowAlert = v; return m }

func (m AnswerCallbackQuery) URL(url string) AnswerCallbackQuery { m.p.URL = url; return m }

// CacheTime is how long the client may cache the answer, sent in seconds.
func (m AnswerCallbackQuery) CacheTime(d time.Duration) AnswerCallbackQuery {
	m.p.CacheTime = int64(d / time.Second)
	return m
}

func (m AnswerCallbackQuery) IntoRequest() request.Request {
	return request.NewJSON("answerCallbackQuery", m.p)
}

// AnswerInlineQuery sends up to 50 results for an inline query.
type AnswerInlineQuery struct {
	Returns[bool]
	p answerInlineQueryParams
}

type answerInlineQueryParams struct {
	InlineQueryID     string                    `json:"inline_query_id"`
	Results           []types.InlineQueryResult `json:"results"`
	CacheTime         *int64                    `json:"cache_time,omitempty"`
	IsPersonal        bool                      `json:"is_personal,omitempty"`
	NextOffset        string                    `json:"next_offset,omitempty"`
	SwitchPMText      string                    `json:"switch_pm_text,omitempty"`
	SwitchPMParameter string                    `json:"switch_pm_parameter,omitempty"`
}

func NewAnswerInlineQuery(inlineQueryID string, results ...types.InlineQueryResult) AnswerInlineQuery {
	res := slices.Clone(results)
	if res == nil {
		res = []types.InlineQueryResult{}
	}
	return AnswerInlineQuery{p: answerInlineQueryParams{InlineQueryID: inlineQueryID, Results: res}}
}

// CacheTime is how long the results may be cached on the server. Zero
// disables caching; the server default is 300 seconds.
func (m AnswerInlineQuery) CacheTime(d time.Duration) AnswerInlineQuery {
	secs := int64(d / time.Second)
	m.p.CacheTime = &secs
	return m
}

// IsPersonal caches results only for the user that sent the query.
func (m AnswerInlineQuery) IsPersonal(v bool) AnswerInlineQuery { m.p.IsPersonal = v; return m }

// NextOffset is passed back by the client to receive more results.
func (m AnswerInlineQuery) NextOffset(offset string) AnswerInlineQuery {
	m.p.NextOffset = offset
	return m
}

// SwitchPM shows a button that opens a private chat with the bot and sends
// it /start with parameter.
func (m AnswerInlineQuery) SwitchPM(text, parameter string) AnswerInlineQuery {
	m.p.SwitchPMText, m.p.SwitchPMParameter = text, parameter
	return m
}

func (m AnswerInlineQuery) IntoRequest() request.Request {
	return request.NewJSON("answerInlineQuery", m.p)
}

package types

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
)

// InlineQueryResult is one result of an answer to an inline query. Results are
// discriminated by the "type" field.
type InlineQueryResult interface {
	json.Marshaler
	ResultType() string
	ResultID() string
}

// resultBase holds the fields shared by every result type.
type resultBase struct {
	Type                string                `json:"type"`
	ID                  string                `json:"id"`
	ReplyMarkup         *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	InputMessageContent *messageContent       `json:"input_message_content,omitempty"`
}

// captioned holds the caption fields of media results.
type captioned struct {
	Caption         string       `json:"caption,omitempty"`
	ParseMode       ParseMode    `json:"parse_mode,omitempty"`
	CaptionEntities []TextEntity `json:"caption_entities,omitempty"`
}

func (c *captioned) setParseMode(mode ParseMode) {
	c.ParseMode = mode
	c.CaptionEntities = nil
}

func (c *captioned) setEntities(entities []TextEntity) {
	c.CaptionEntities = slices.Clone(entities)
	c.ParseMode = ""
}

// InlineQueryResultArticle links to an article or web page.
type InlineQueryResultArticle struct {
	p articleResult
}

type articleResult struct {
	resultBase
	Title        string `json:"title"`
	URL          string `json:"url,omitempty"`
	HideURL      bool   `json:"hide_url,omitempty"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func NewResultArticle(id, title string, content InputMessageContent) InlineQueryResultArticle {
	return InlineQueryResultArticle{p: articleResult{
		resultBase: resultBase{Type: "article", ID: id, InputMessageContent: wrapContent(content)},
		Title:      title,
	}}
}

func (r InlineQueryResultArticle) URL(url string) InlineQueryResultArticle { r.p.URL = url; return r }
func (r InlineQueryResultArticle) HideURL(v bool) InlineQueryResultArticle { r.p.HideURL = v; return r }
func (r InlineQueryResultArticle) Description(s string) InlineQueryResultArticle {
	r.p.Description = s
	return r
}
func (r InlineQueryResultArticle) ThumbnailURL(url string) InlineQueryResultArticle {
	r.p.ThumbnailURL = url
	return r
}
func (r InlineQueryResultArticle) ReplyMarkup(m InlineKeyboardMarkup) InlineQueryResultArticle {
	r.p.ReplyMarkup = &m
	return r
}

func (r InlineQueryResultArticle) Content() InputMessageContent {
	return unwrapContent(r.p.InputMessageContent)
}
func (r InlineQueryResultArticle) ResultType() string           { return r.p.Type }
func (r InlineQueryResultArticle) ResultID() string             { return r.p.ID }
func (r InlineQueryResultArticle) MarshalJSON() ([]byte, error) { return json.Marshal(r.p) }
func (r *InlineQueryResultArticle) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.p)
}

// InlineQueryResultPhoto links to a JPEG photo.
type InlineQueryResultPhoto struct {
	p photoResult
}

type photoResult struct {
	resultBase
	captioned
	PhotoURL     string `json:"photo_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	PhotoWidth   int    `json:"photo_width,omitempty"`
	PhotoHeight  int    `json:"photo_height,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
}

func NewResultPhoto(id, photoURL, thumbnailURL string) InlineQueryResultPhoto {
	return InlineQueryResultPhoto{p: photoResult{
		resultBase:   resultBase{Type: "photo", ID: id},
		PhotoURL:     photoURL,
		ThumbnailURL: thumbnailURL,
	}}
}

func (r InlineQueryResultPhoto) Size(width, height int) InlineQueryResultPhoto {
	r.p.PhotoWidth, r.p.PhotoHeight = width, height
	return r
}
func (r InlineQueryResultPhoto) Title(s string) InlineQueryResultPhoto { r.p.Title = s; return r }
func (r InlineQueryResultPhoto) Description(s string) InlineQueryResultPhoto {
	r.p.Description = s
	return r
}
func (r InlineQueryResultPhoto) Caption(s string) InlineQueryResultPhoto { r.p.Caption = s; return r }

// ParseMode sets the caption parse mode and drops caption entities.
func (r InlineQueryResultPhoto) ParseMode(mode ParseMode) InlineQueryResultPhoto {
	r.p.setParseMode(mode)
	return r
}

// CaptionEntities sets caption entities and drops the parse mode.
func (r InlineQueryResultPhoto) CaptionEntities(entities ...TextEntity) InlineQueryResultPhoto {
	r.p.setEntities(entities)
	return r
}

func (r InlineQueryResultPhoto) ReplyMarkup(m InlineKeyboardMarkup) InlineQueryResultPhoto {
	r.p.ReplyMarkup = &m
	return r
}

func (r InlineQueryResultPhoto) InputMessageContent(c InputMessageContent) InlineQueryResultPhoto {
	r.p.InputMessageContent = wrapContent(c)
	return r
}

func (r InlineQueryResultPhoto) ResultType() string           { return r.p.Type }
func (r InlineQueryResultPhoto) ResultID() string             { return r.p.ID }
func (r InlineQueryResultPhoto) MarshalJSON() ([]byte, error) { return json.Marshal(r.p) }
func (r *InlineQueryResultPhoto) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.p)
}

// InlineQueryResultDocument links to a PDF or ZIP file.
type InlineQueryResultDocument struct {
	p documentResult
}

type documentResult struct {
	resultBase
	captioned
	Title        string `json:"title"`
	DocumentURL  string `json:"document_url"`
	MimeType     string `json:"mime_type"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// NewResultDocument builds a document result; mimeType is "application/pdf"
// or "application/zip".
func NewResultDocument(id, title, documentURL, mimeType string) InlineQueryResultDocument {
	return InlineQueryResultDocument{p: documentResult{
		resultBase:  resultBase{Type: "document", ID: id},
		Title:       title,
		DocumentURL: documentURL,
		MimeType:    mimeType,
	}}
}

func (r InlineQueryResultDocument) Description(s string) InlineQueryResultDocument {
	r.p.Description = s
	return r
}
func (r InlineQueryResultDocument) ThumbnailURL(url string) InlineQueryResultDocument {
	r.p.ThumbnailURL = url
	return r
}
func (r InlineQueryResultDocument) Caption(s string) InlineQueryResultDocument {
	r.p.Caption = s
	return r
}
func (r InlineQueryResultDocument) ParseMode(mode ParseMode) InlineQueryResultDocument {
	r.p.setParseMode(mode)
	return r
}
func (r InlineQueryResultDocument) CaptionEntities(entities ...TextEntity) InlineQueryResultDocument {
	r.p.setEntities(entities)
	return r
}
func (r InlineQueryResultDocument) ReplyMarkup(m InlineKeyboardMarkup) InlineQueryResultDocument {
	r.p.ReplyMarkup = &m
	return r
}
func (r InlineQueryResultDocument) InputMessageContent(c InputMessageContent) InlineQueryResultDocument {
	r.p.InputMessageContent = wrapContent(c)
	return r
}

func (r InlineQueryResultDocument) ResultType() string           { return r.p.Type }
func (r InlineQueryResultDocument) ResultID() string             { return r.p.ID }
func (r InlineQueryResultDocument) MarshalJSON() ([]byte, error) { return json.Marshal(r.p) }
func (r *InlineQueryResultDocument) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.p)
}

// InlineQueryResultLocation is a location on a map.
type InlineQueryResultLocation struct {
	p locationResult
}

type locationResult struct {
	resultBase
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Title        string  `json:"title"`
	LivePeriod   int     `json:"live_period,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
}

func NewResultLocation(id string, latitude, longitude float64, title string) InlineQueryResultLocation {
	return InlineQueryResultLocation{p: locationResult{
		resultBase: resultBase{Type: "location", ID: id},
		Latitude:   latitude,
		Longitude:  longitude,
		Title:      title,
	}}
}

func (r InlineQueryResultLocation) LivePeriod(seconds int) InlineQueryResultLocation {
	r.p.LivePeriod = seconds
	return r
}
func (r InlineQueryResultLocation) ThumbnailURL(url string) InlineQueryResultLocation {
	r.p.ThumbnailURL = url
	return r
}
func (r InlineQueryResultLocation) ReplyMarkup(m InlineKeyboardMarkup) InlineQueryResultLocation {
	r.p.ReplyMarkup = &m
	return r
}
func (r InlineQueryResultLocation) InputMessageContent(c InputMessageContent) InlineQueryResultLocation {
	r.p.InputMessageContent = wrapContent(c)
	return r
}

func (r InlineQueryResultLocation) ResultType() string           { return r.p.Type }
func (r InlineQueryResultLocation) ResultID() string             { return r.p.ID }
func (r InlineQueryResultLocation) MarshalJSON() ([]byte, error) { return json.Marshal(r.p) }
func (r *InlineQueryResultLocation) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.p)
}

// InlineQueryResultContact is a contact with a phone number.
type InlineQueryResultContact struct {
	p contactResult
}

type contactResult struct {
	resultBase
	PhoneNumber  string `json:"phone_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	VCard        string `json:"vcard,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func NewResultContact(id, phoneNumber, firstName string) InlineQueryResultContact {
	return InlineQueryResultContact{p: contactResult{
		resultBase:  resultBase{Type: "contact", ID: id},
		PhoneNumber: phoneNumber,
		FirstName:   firstName,
	}}
}

func (r InlineQueryResultContact) LastName(s string) InlineQueryResultContact {
	r.p.LastName = s
	return r
}
func (r InlineQueryResultContact) VCard(s string) InlineQueryResultContact { r.p.VCard = s; return r }
func (r InlineQueryResultContact) ReplyMarkup(m InlineKeyboardMarkup) InlineQueryResultContact {
	r.p.ReplyMarkup = &m
	return r
}
func (r InlineQueryResultContact) InputMessageContent(c InputMessageContent) InlineQueryResultContact {
	r.p.InputMessageContent = wrapContent(c)
	return r
}

func (r InlineQueryResultContact) ResultType() string           { return r.p.Type }
func (r InlineQueryResultContact) ResultID() string             { return r.p.ID }
func (r InlineQueryResultContact) MarshalJSON() ([]byte, error) { return json.Marshal(r.p) }
func (r *InlineQueryResultContact) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.p)
}

// InlineQueryResultCachedSticker is a sticker stored on Telegram servers.
type InlineQueryResultCachedSticker struct {
	p cachedStickerResult
}

type cachedStickerResult struct {
	resultBase
	StickerFileID string `json:"sticker_file_id"`
}

func NewResultCachedSticker(id, stickerFileID string) InlineQueryResultCachedSticker {
	return InlineQueryResultCachedSticker{p: cachedStickerResult{
		resultBase:    resultBase{Type: "sticker", ID: id},
		StickerFileID: stickerFileID,
	}}
}

func (r InlineQueryResultCachedSticker) ReplyMarkup(m InlineKeyboardMarkup) InlineQueryResultCachedSticker {
	r.p.ReplyMarkup = &m
	return r
}
func (r InlineQueryResultCachedSticker) InputMessageContent(c InputMessageContent) InlineQueryResultCachedSticker {
	r.p.InputMessageContent = wrapContent(c)
	return r
}

func (r InlineQueryResultCachedSticker) ResultType() string { return r.p.Type }
func (r InlineQueryResultCachedSticker) ResultID() string   { return r.p.ID }
func (r InlineQueryResultCachedSticker) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.p)
}
func (r *InlineQueryResultCachedSticker) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.p)
}

// InlineQueryResultGame offers a game.
type InlineQueryResultGame struct {
	p gameResult
}

type gameResult struct {
	Type          string                `json:"type"`
	ID            string                `json:"id"`
	GameShortName string                `json:"game_short_name"`
	ReplyMarkup   *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func NewResultGame(id, gameShortName string) InlineQueryResultGame {
	return InlineQueryResultGame{p: gameResult{Type: "game", ID: id, GameShortName: gameShortName}}
}

func (r InlineQueryResultGame) ReplyMarkup(m InlineKeyboardMarkup) InlineQueryResultGame {
	r.p.ReplyMarkup = &m
	return r
}

func (r InlineQueryResultGame) ResultType() string           { return r.p.Type }
func (r InlineQueryResultGame) ResultID() string             { return r.p.ID }
func (r InlineQueryResultGame) MarshalJSON() ([]byte, error) { return json.Marshal(r.p) }
func (r *InlineQueryResultGame) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.p)
}

// DecodeInlineQueryResult decodes a result by its "type" field.
func DecodeInlineQueryResult(data []byte) (InlineQueryResult, error) {
	switch kind := gjson.GetBytes(data, "type").String(); kind {
	case "article":
		return decodeResult[InlineQueryResultArticle](data)
	case "photo":
		return decodeResult[InlineQueryResultPhoto](data)
	case "document":
		return decodeResult[InlineQueryResultDocument](data)
	case "location":
		return decodeResult[InlineQueryResultLocation](data)
	case "contact":
		return decodeResult[InlineQueryResultContact](data)
	case "sticker":
		return decodeResult[InlineQueryResultCachedSticker](data)
	case "game":
		return decodeResult[InlineQueryResultGame](data)
	default:
		return nil, fmt.Errorf("unknown inline query result type %q", kind)
	}
}

func decodeResult[T InlineQueryResult, P interface {
	*T
	json.Unmarshaler
}](data []byte) (InlineQueryResult, error) {
	var v T
	if err := P(&v).UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return v, nil
}

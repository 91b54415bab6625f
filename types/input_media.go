package types

import "encoding/json"

// InputMedia is a media item of sendMediaGroup or editMessageMedia. The file
// and thumbnail are referenced from the JSON by the request that attaches
// them, see MarshalWithMedia.
type InputMedia interface {
	json.Marshaler
	MediaType() string
	File() InputFile
	Thumbnail() (InputFile, bool)
	// MarshalWithMedia encodes the item with its "type", "media" and, when
	// non-empty, "thumbnail" fields filled in.
	MarshalWithMedia(media, thumbnail string) ([]byte, error)
}

// mediaRef holds the fields filled in at attachment time.
type mediaRef struct {
	Type      string `json:"type,omitempty"`
	Media     string `json:"media,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// InputMediaPhoto is a photo.
type InputMediaPhoto struct {
	file InputFile
	p    mediaPhoto
}

type mediaPhoto struct {
	mediaRef
	captioned
	HasSpoiler bool `json:"has_spoiler,omitempty"`
}

func NewInputMediaPhoto(file InputFile) InputMediaPhoto { return InputMediaPhoto{file: file} }

func (m InputMediaPhoto) Caption(s string) InputMediaPhoto { m.p.Caption = s; return m }

// ParseMode sets the caption parse mode and drops caption entities.
func (m InputMediaPhoto) ParseMode(mode ParseMode) InputMediaPhoto {
	m.p.setParseMode(mode)
	return m
}

// CaptionEntities sets caption entities and drops the parse mode.
func (m InputMediaPhoto) CaptionEntities(entities ...TextEntity) InputMediaPhoto {
	m.p.setEntities(entities)
	return m
}

func (m InputMediaPhoto) HasSpoiler(v bool) InputMediaPhoto { m.p.HasSpoiler = v; return m }

func (m InputMediaPhoto) MediaType() string             { return "photo" }
func (m InputMediaPhoto) File() InputFile               { return m.file }
func (m InputMediaPhoto) Thumbnail() (InputFile, bool)  { return InputFile{}, false }
func (m InputMediaPhoto) MarshalJSON() ([]byte, error)  { return json.Marshal(m.p) }
func (m *InputMediaPhoto) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &m.p) }

func (m InputMediaPhoto) MarshalWithMedia(media, thumbnail string) ([]byte, error) {
	m.p.mediaRef = mediaRef{Type: m.MediaType(), Media: media}
	return json.Marshal(m.p)
}

// InputMediaVideo is a video.
type InputMediaVideo struct {
	file  InputFile
	thumb InputFile
	p     mediaVideo
}

type mediaVideo struct {
	mediaRef
	captioned
	Width             int  `json:"width,omitempty"`
	Height            int  `json:"height,omitempty"`
	Duration          int  `json:"duration,omitempty"`
	SupportsStreaming bool `json:"supports_streaming,omitempty"`
	HasSpoiler        bool `json:"has_spoiler,omitempty"`
}

func NewInputMediaVideo(file InputFile) InputMediaVideo { return InputMediaVideo{file: file} }

func (m InputMediaVideo) Caption(s string) InputMediaVideo { m.p.Caption = s; return m }
func (m InputMediaVideo) ParseMode(mode ParseMode) InputMediaVideo {
	m.p.setParseMode(mode)
	return m
}
func (m InputMediaVideo) CaptionEntities(entities ...TextEntity) InputMediaVideo {
	m.p.setEntities(entities)
	return m
}
func (m InputMediaVideo) Size(width, height int) InputMediaVideo {
	m.p.Width, m.p.Height = width, height
	return m
}
func (m InputMediaVideo) Duration(seconds int) InputMediaVideo { m.p.Duration = seconds; return m }
func (m InputMediaVideo) SupportsStreaming(v bool) InputMediaVideo {
	m.p.SupportsStreaming = v
	return m
}
func (m InputMediaVideo) HasSpoiler(v bool) InputMediaVideo { m.p.HasSpoiler = v; return m }

// WithThumbnail sets a thumbnail uploaded with the request.
func (m InputMediaVideo) WithThumbnail(thumb InputFile) InputMediaVideo { m.thumb = thumb; return m }

func (m InputMediaVideo) MediaType() string { return "video" }
func (m InputMediaVideo) File() InputFile   { return m.file }
func (m InputMediaVideo) Thumbnail() (InputFile, bool) {
	return m.thumb, !m.thumb.IsZero()
}
func (m InputMediaVideo) MarshalJSON() ([]byte, error)  { return json.Marshal(m.p) }
func (m *InputMediaVideo) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &m.p) }

func (m InputMediaVideo) MarshalWithMedia(media, thumbnail string) ([]byte, error) {
	m.p.mediaRef = mediaRef{Type: m.MediaType(), Media: media, Thumbnail: thumbnail}
	return json.Marshal(m.p)
}

// InputMediaAudio is an audio file treated as music.
type InputMediaAudio struct {
	file  InputFile
	thumb InputFile
	p     mediaAudio
}

type mediaAudio struct {
	mediaRef
	captioned
	Duration  int    `json:"duration,omitempty"`
	Performer string `json:"performer,omitempty"`
	Title     string `json:"title,omitempty"`
}

func NewInputMediaAudio(file InputFile) InputMediaAudio { return InputMediaAudio{file: file} }

func (m InputMediaAudio) Caption(s string) InputMediaAudio { m.p.Caption = s; return m }
func (m InputMediaAudio) ParseMode(mode ParseMode) InputMediaAudio {
	m.p.setParseMode(mode)
	return m
}
func (m InputMediaAudio) CaptionEntities(entities ...TextEntity) InputMediaAudio {
	m.p.setEntities(entities)
	return m
}
func (m InputMediaAudio) Duration(seconds int) InputMediaAudio { m.p.Duration = seconds; return m }
func (m InputMediaAudio) Performer(s string) InputMediaAudio   { m.p.Performer = s; return m }
func (m InputMediaAudio) Title(s string) InputMediaAudio       { m.p.Title = s; return m }
func (m InputMediaAudio) WithThumbnail(thumb InputFile) InputMediaAudio {
	m.thumb = thumb
	return m
}

func (m InputMediaAudio) MediaType() string { return "audio" }
func (m InputMediaAudio) File() InputFile   { return m.file }
func (m InputMediaAudio) Thumbnail() (InputFile, bool) {
	return m.thumb, !m.thumb.IsZero()
}
func (m InputMediaAudio) MarshalJSON() ([]byte, error)  { return json.Marshal(m.p) }
func (m *InputMediaAudio) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &m.p) }

func (m InputMediaAudio) MarshalWithMedia(media, thumbnail string) ([]byte, error) {
	m.p.mediaRef = mediaRef{Type: m.MediaType(), Media: media, Thumbnail: thumbnail}
	return json.Marshal(m.p)
}

// InputMediaDocument is a general file.
type InputMediaDocument struct {
	file  InputFile
	thumb InputFile
	p     mediaDocument
}

type mediaDocument struct {
	mediaRef
	captioned
	DisableContentTypeDetection bool `json:"disable_content_type_detection,omitempty"`
}

func NewInputMediaDocument(file InputFile) InputMediaDocument { return InputMediaDocument{file: file} }

func (m InputMediaDocument) Caption(s string) InputMediaDocument { m.p.Caption = s; return m }
func (m InputMediaDocument) ParseMode(mode ParseMode) InputMediaDocument {
	m.p.setParseMode(mode)
	return m
}
func (m InputMediaDocument) CaptionEntities(entities ...TextEntity) InputMediaDocument {
	m.p.setEntities(entities)
	return m
}

// DisableContentTypeDetection turns off server-side detection for uploaded
// files. Always on for documents sent in an album.
func (m InputMediaDocument) DisableContentTypeDetection(v bool) InputMediaDocument {
	m.p.DisableContentTypeDetection = v
	return m
}
func (m InputMediaDocument) WithThumbnail(thumb InputFile) InputMediaDocument {
	m.thumb = thumb
	return m
}

func (m InputMediaDocument) MediaType() string { return "document" }
func (m InputMediaDocument) File() InputFile   { return m.file }
func (m InputMediaDocument) Thumbnail() (InputFile, bool) {
	return m.thumb, !m.thumb.IsZero()
}
func (m InputMediaDocument) MarshalJSON() ([]byte, error)  { return json.Marshal(m.p) }
func (m *InputMediaDocument) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &m.p) }

func (m InputMediaDocument) MarshalWithMedia(media, thumbnail string) ([]byte, error) {
	m.p.mediaRef = mediaRef{Type: m.MediaType(), Media: media, Thumbnail: thumbnail}
	return json.Marshal(m.p)
}

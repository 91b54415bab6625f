package types

import (
	"bytes"
	"io"
)

type inputFileKind uint8

const (
	inputFileID inputFileKind = iota + 1
	inputFileURL
	inputFileUpload
)

// InputFile references a file to send: a file id already stored on Telegram
// servers, an HTTP URL for Telegram to fetch, or content uploaded with the
// request.
type InputFile struct {
	kind     inputFileKind
	value    string
	reader   io.Reader
	data     []byte
	name     string
	mimeType string
}

// InputFileID references a file already on Telegram servers.
func InputFileID(id string) InputFile {
	return InputFile{kind: inputFileID, value: id}
}

// InputFileURL asks Telegram to download the file from url.
func InputFileURL(url string) InputFile {
	return InputFile{kind: inputFileURL, value: url}
}

// InputFileReader uploads the content of r under the given file name. The
// reader is consumed when the request is sent.
func InputFileReader(name string, r io.Reader) InputFile {
	return InputFile{kind: inputFileUpload, reader: r, name: name}
}

// InputFileBytes uploads data under the given file name. Each send reads
// data afresh, so requests carrying it can be retried.
func InputFileBytes(name string, data []byte) InputFile {
	if data == nil {
		data = []byte{}
	}
	return InputFile{kind: inputFileUpload, data: data, name: name}
}

// WithMimeType overrides the content type of an uploaded file.
func (f InputFile) WithMimeType(mimeType string) InputFile {
	f.mimeType = mimeType
	return f
}

// ID returns the file id when the file references one.
func (f InputFile) ID() (string, bool) { return f.value, f.kind == inputFileID }

// URL returns the URL when the file references one.
func (f InputFile) URL() (string, bool) { return f.value, f.kind == inputFileURL }

// Reader returns the content when the file is uploaded with the request.
// Files built from bytes return a new reader on every call.
func (f InputFile) Reader() (io.Reader, bool) {
	if f.kind != inputFileUpload {
		return nil, false
	}
	if f.data != nil {
		return bytes.NewReader(f.data), true
	}
	return f.reader, true
}

// Replayable reports whether the file can be sent more than once: anything
// except content read from an io.Reader.
func (f InputFile) Replayable() bool { return f.kind != inputFileUpload || f.data != nil }

// IsUpload reports whether the file carries content.
func (f InputFile) IsUpload() bool { return f.kind == inputFileUpload }

func (f InputFile) Name() string     { return f.name }
func (f InputFile) MimeType() string { return f.mimeType }

// IsZero reports whether f was never assigned.
func (f InputFile) IsZero() bool { return f.kind == 0 }

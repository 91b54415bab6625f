package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// sniffLen is how much of an upload is read to detect its content type.
const sniffLen = 3072

// multipartBody streams form as multipart/form-data. Text fields and file
// ids or URLs become plain parts; uploads become file parts.
func multipartBody(form request.Form) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeForm(mw, form))
	}()
	return pr, mw.FormDataContentType()
}

func writeForm(mw *multipart.Writer, form request.Form) error {
	for _, name := range form.Names() {
		v, _ := form.Get(name)
		if s, ok := v.Text(); ok {
			if err := mw.WriteField(name, s); err != nil {
				return errors.Wrapf(err, "write field %s", name)
			}
			continue
		}
		f, _ := v.File()
		if err := writeFile(mw, name, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeFile(mw *multipart.Writer, field string, f types.InputFile) error {
	if id, ok := f.ID(); ok {
		return mw.WriteField(field, id)
	}
	if url, ok := f.URL(); ok {
		return mw.WriteField(field, url)
	}
	r, ok := f.Reader()
	if !ok || r == nil {
		return fmt.Errorf("field %s: empty input file", field)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return errors.Wrapf(err, "read %s", field)
	}
	head = head[:n]
	contentType := f.MimeType()
	if contentType == "" {
		contentType = mimetype.Detect(head).String()
	}

	name := f.Name()
	if name == "" {
		name = field
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(name)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return errors.Wrapf(err, "create part %s", field)
	}
	if _, err := io.Copy(part, io.MultiReader(bytes.NewReader(head), r)); err != nil {
		return errors.Wrapf(err, "copy %s", field)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

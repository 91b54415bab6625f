package request

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nevindra/tgbot/types"
)

// FormValue is a form field: either text or a file.
type FormValue struct {
	text   string
	file   types.InputFile
	isFile bool
}

// Text returns a text field value.
func Text(s string) FormValue { return FormValue{text: s} }

// File returns a file field value.
func File(f types.InputFile) FormValue { return FormValue{file: f, isFile: true} }

// Text returns the text, reporting false for file values.
func (v FormValue) Text() (string, bool) { return v.text, !v.isFile }

// File returns the file, reporting false for text values.
func (v FormValue) File() (types.InputFile, bool) { return v.file, v.isFile }

// Form is a set of uniquely named fields. Forms are values: every method that
// changes a form returns a new one and leaves the receiver untouched.
type Form struct {
	fields map[string]FormValue
	order  []string
}

// Set returns a copy of f with name set to v. An existing field of the same
// name is replaced and keeps its position.
func (f Form) Set(name string, v FormValue) Form {
	out := Form{fields: maps.Clone(f.fields), order: slices.Clone(f.order)}
	if out.fields == nil {
		out.fields = make(map[string]FormValue)
	}
	if _, ok := out.fields[name]; !ok {
		out.order = append(out.order, name)
	}
	out.fields[name] = v
	return out
}

func (f Form) SetText(name, value string) Form { return f.Set(name, Text(value)) }

func (f Form) SetFile(name string, file types.InputFile) Form { return f.Set(name, File(file)) }

func (f Form) SetInt(name string, v int64) Form { return f.SetText(name, strconv.FormatInt(v, 10)) }

func (f Form) SetBool(name string, v bool) Form { return f.SetText(name, strconv.FormatBool(v)) }

// SetJSON encodes v and stores it as a text field.
func (f Form) SetJSON(name string, v any) (Form, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return f, err
	}
	return f.SetText(name, string(data)), nil
}

// Delete returns a copy of f without name.
func (f Form) Delete(name string) Form {
	if _, ok := f.fields[name]; !ok {
		return f
	}
	out := Form{fields: maps.Clone(f.fields), order: make([]string, 0, len(f.order)-1)}
	delete(out.fields, name)
	for _, n := range f.order {
		if n != name {
			out.order = append(out.order, n)
		}
	}
	return out
}

func (f Form) Get(name string) (FormValue, bool) {
	v, ok := f.fields[name]
	return v, ok
}

func (f Form) Has(name string) bool {
	_, ok := f.fields[name]
	return ok
}

// Names returns the field names in insertion order.
func (f Form) Names() []string { return slices.Clone(f.order) }

func (f Form) Len() int { return len(f.order) }

// HasUploads reports whether any field uploads content.
func (f Form) HasUploads() bool {
	for _, v := range f.fields {
		if v.isFile && v.file.IsUpload() {
			return true
		}
	}
	return false
}

// Replayable reports whether every file field can be sent again.
func (f Form) Replayable() bool {
	for _, v := range f.fields {
		if v.isFile && !v.file.Replayable() {
			return false
		}
	}
	return true
}

// Attach makes file referable from a JSON field of the form. File ids and
// URLs are returned as is; uploaded content is added as a new file field and
// referenced as "attach://<name>".
func (f Form) Attach(file types.InputFile) (Form, string) {
	if id, ok := file.ID(); ok {
		return f, id
	}
	if url, ok := file.URL(); ok {
		return f, url
	}
	name := NewAttachName()
	return f.SetFile(name, file), "attach://" + name
}

// NewAttachName returns a unique name for an attached file field.
func NewAttachName() string {
	return "tgbot_" + strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
}

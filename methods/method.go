// Package methods holds one builder per Bot API operation.
//
// Builders are values. Constructors take the mandatory parameters, setters
// return a modified copy, and IntoRequest turns the builder into a
// request.Request. Each builder declares its response type through Returns.
package methods

import (
	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// Method is a Bot API operation whose result decodes into R.
type Method[R any] interface {
	IntoRequest() request.Request
	// NewResult allocates the value the response result decodes into.
	NewResult() *R
}

// Returns declares the response type of a builder that embeds it.
type Returns[R any] struct{}

func (Returns[R]) NewResult() *R { return new(R) }

// withParseMode sets parse_mode and drops the alternative entity field.
func withParseMode(f request.Form, entitiesField string, mode types.ParseMode) request.Form {
	return f.SetText("parse_mode", string(mode)).Delete(entitiesField)
}

// withEntities sets an entity field and drops parse_mode.
func withEntities(f request.Form, field string, entities []types.TextEntity) (request.Form, error) {
	s, err := types.SerializeTextEntities(entities)
	if err != nil {
		return f, err
	}
	return f.SetText(field, s).Delete("parse_mode"), nil
}

func withReplyMarkup(f request.Form, markup types.ReplyMarkup) (request.Form, error) {
	s, err := types.SerializeReplyMarkup(markup)
	if err != nil {
		return f, err
	}
	return f.SetText("reply_markup", s), nil
}

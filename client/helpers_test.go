package client

import (
	"math"
	"testing"

	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

func methodsForm(t *testing.T, f types.InputFile) request.Form {
	t.Helper()
	return request.Form{}.SetText("chat_id", "1").SetFile("voice", f)
}

// badJSON returns a request whose payload cannot be encoded.
func badJSON(name string) request.Request {
	return request.NewJSON(name, map[string]float64{"x": math.NaN()})
}

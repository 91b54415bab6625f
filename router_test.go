package tgbot

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nevindra/tgbot/types"
)

func mustUpdate(t *testing.T, raw string) types.Update {
	t.Helper()
	var u types.Update
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	return u
}

const (
	startUpdate = `{"update_id":1,"message":{"message_id":10,"date":0,
		"from":{"id":7,"is_bot":false,"first_name":"Ann"},
		"chat":{"id":7,"type":"private"},
		"text":"/start@my_bot now","entities":[{"type":"bot_command","offset":0,"length":13}]}}`
	plainUpdate = `{"update_id":2,"message":{"message_id":11,"date":0,
		"from":{"id":8,"is_bot":false,"first_name":"Bob"},
		"chat":{"id":8,"type":"private"},"text":"hello"}}`
	callbackUpdate = `{"update_id":3,"callback_query":{"id":"q","chat_instance":"c",
		"from":{"id":7,"is_bot":false,"first_name":"Ann"},"data":"vote:up"}}`
	inlineUpdate = `{"update_id":4,"inline_query":{"id":"iq","query":"cats","offset":"",
		"from":{"id":9,"is_bot":false,"first_name":"Cy"}}}`
)

func recordInto(got *string, name string) Handler {
	return HandlerFunc(func(context.Context, types.Update) error {
		*got = name
		return nil
	})
}

func TestRouterDispatch(t *testing.T) {
	var got string
	r := NewRouter().
		Command("/start", recordInto(&got, "start")).
		Callback("vote:", recordInto(&got, "vote")).
		Callback("vote:up", recordInto(&got, "vote-up")).
		On(types.UpdateInlineQuery, recordInto(&got, "inline")).
		Fallback(recordInto(&got, "fallback"))

	tests := []struct {
		raw  string
		want string
	}{
		{startUpdate, "start"},
		{plainUpdate, "fallback"},
		{callbackUpdate, "vote-up"},
		{inlineUpdate, "inline"},
	}
	for _, tt := range tests {
		got = ""
		if err := r.HandleUpdate(context.Background(), mustUpdate(t, tt.raw)); err != nil {
			t.Fatalf("HandleUpdate: %v", err)
		}
		if got != tt.want {
			t.Errorf("routed to %q, want %q", got, tt.want)
		}
	}
}

func TestRouterIgnoresUnmatched(t *testing.T) {
	r := NewRouter().Command("help", HandlerFunc(func(context.Context, types.Update) error {
		t.Fatal("unexpected dispatch")
		return nil
	}))
	if err := r.HandleUpdate(context.Background(), mustUpdate(t, plainUpdate)); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
}

func TestOnlyUsers(t *testing.T) {
	var calls int
	r := NewRouter().
		Use(OnlyUsers(7)).
		Fallback(HandlerFunc(func(context.Context, types.Update) error {
			calls++
			return nil
		}))

	for _, raw := range []string{startUpdate, plainUpdate, callbackUpdate, inlineUpdate} {
		if err := r.HandleUpdate(context.Background(), mustUpdate(t, raw)); err != nil {
			t.Fatalf("HandleUpdate: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("got %d calls, want 2 (updates from user 7)", calls)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	var trail []string
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(ctx context.Context, u types.Update) error {
				trail = append(trail, name)
				return next.HandleUpdate(ctx, u)
			})
		}
	}
	r := NewRouter().Use(mark("outer"), mark("inner")).
		Fallback(HandlerFunc(func(context.Context, types.Update) error {
			trail = append(trail, "handler")
			return nil
		}))
	if err := r.HandleUpdate(context.Background(), mustUpdate(t, plainUpdate)); err != nil {
		t.Fatal(err)
	}
	want := []string{"outer", "inner", "handler"}
	if len(trail) != len(want) {
		t.Fatalf("trail = %v, want %v", trail, want)
	}
	for i := range want {
		if trail[i] != want[i] {
			t.Fatalf("trail = %v, want %v", trail, want)
		}
	}
}

package tgbot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nevindra/tgbot/methods"
	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

func TestWithRateLimit_PassesThrough(t *testing.T) {
	stub := &stubTransport{results: []stubResult{{raw: "true"}}}
	tr := WithRateLimit(stub, GlobalRate(100))

	ok, err := Execute(context.Background(), tr, methods.NewClose())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("got false, want true")
	}
}

func TestWithRateLimit_ChatRateBlocks(t *testing.T) {
	stub := &stubTransport{}
	tr := WithRateLimit(stub, ChatRate(time.Hour, 1))
	send := methods.NewSendMessage(types.ChatIDInt(42), "hi")

	if _, err := tr.Do(context.Background(), send.IntoRequest()); err != nil {
		t.Fatalf("first send: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := tr.Do(ctx, send.IntoRequest())
	if err == nil {
		t.Fatal("second send to the same chat should block")
	}
	if stub.count() != 1 {
		t.Errorf("got %d calls, want 1", stub.count())
	}
}

func TestWithRateLimit_ChatsAreIndependent(t *testing.T) {
	stub := &stubTransport{}
	tr := WithRateLimit(stub, ChatRate(time.Hour, 1))

	for _, id := range []int64{1, 2, 3} {
		req := methods.NewSendMessage(types.ChatIDInt(id), "hi").IntoRequest()
		if _, err := tr.Do(context.Background(), req); err != nil {
			t.Fatalf("chat %d: %v", id, err)
		}
	}
	if stub.count() != 3 {
		t.Errorf("got %d calls, want 3", stub.count())
	}
}

func TestWithRateLimit_GlobalRateCancelled(t *testing.T) {
	stub := &stubTransport{}
	tr := WithRateLimit(stub, GlobalRate(0.001))

	if _, err := tr.Do(context.Background(), request.NewEmpty("getMe")); err != nil {
		t.Fatalf("first call: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tr.Do(ctx, request.NewEmpty("getMe")); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestChatOf(t *testing.T) {
	tests := []struct {
		name string
		req  request.Request
		want string
	}{
		{"json int", methods.NewSendMessage(types.ChatIDInt(-100), "x").IntoRequest(), "-100"},
		{"json username", methods.NewSendMessage(types.ChatIDUsername("@chan"), "x").IntoRequest(), "@chan"},
		{"form", request.NewForm("sendVoice", request.Form{}.SetText("chat_id", "7")), "7"},
		{"empty", request.NewEmpty("getMe"), ""},
	}
	for _, tt := range tests {
		if got := chatOf(tt.req); got != tt.want {
			t.Errorf("%s: chatOf = %q, want %q", tt.name, got, tt.want)
		}
	}
}

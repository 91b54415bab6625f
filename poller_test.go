package tgbot

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// fakeUpdates serves getUpdates batches in order and cancels ctx once they
// run out.
type fakeUpdates struct {
	mu      sync.Mutex
	batches []string
	errs    []error
	offsets []int64
	cancel  context.CancelFunc
}

func (f *fakeUpdates) Do(ctx context.Context, req request.Request) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body := req.Body().(request.JSONBody)
	f.offsets = append(f.offsets, gjson.GetBytes(body.Data, "offset").Int())
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(f.batches) == 0 {
		f.cancel()
		<-ctx.Done()
		return nil, ctx.Err()
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return json.RawMessage(b), nil
}

func TestPollerRun_HandlesAndAdvancesOffset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake := &fakeUpdates{cancel: cancel, batches: []string{
		`[{"update_id":5,"message":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},"text":"a"}},
		  {"update_id":6,"message":{"message_id":2,"date":0,"chat":{"id":1,"type":"private"},"text":"b"}}]`,
		`[]`,
		`[{"update_id":7,"callback_query":{"id":"q","chat_instance":"c","from":{"id":1,"is_bot":false,"first_name":"A"}}}]`,
	}}
	store := NewMemoryOffsetStore()

	var seen []int64
	h := HandlerFunc(func(_ context.Context, u types.Update) error {
		seen = append(seen, u.ID)
		return nil
	})
	p := NewPoller(fake, h, PollOffsetStore(store, "test"), PollTimeout(time.Second))

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != 3 || seen[0] != 5 || seen[2] != 7 {
		t.Errorf("handled %v, want [5 6 7]", seen)
	}
	want := []int64{0, 7, 7, 8}
	if len(fake.offsets) != len(want) {
		t.Fatalf("offsets %v, want %v", fake.offsets, want)
	}
	for i := range want {
		if fake.offsets[i] != want[i] {
			t.Fatalf("offsets %v, want %v", fake.offsets, want)
		}
	}
	if got, _ := store.LoadOffset(context.Background(), "test"); got != 8 {
		t.Errorf("stored offset = %d, want 8", got)
	}
}

func TestPollerRun_ResumesFromStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake := &fakeUpdates{cancel: cancel}
	store := NewMemoryOffsetStore()
	_ = store.SaveOffset(context.Background(), "bot", 42)

	p := NewPoller(fake, HandlerFunc(func(context.Context, types.Update) error { return nil }),
		PollOffsetStore(store, "bot"))
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fake.offsets[0] != 42 {
		t.Errorf("first offset = %d, want 42", fake.offsets[0])
	}
}

func TestPollerRun_HandlerErrorDoesNotStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake := &fakeUpdates{cancel: cancel, batches: []string{
		`[{"update_id":1,"inline_query":{"id":"1","query":"","offset":"","from":{"id":1,"is_bot":false,"first_name":"A"}}},
		  {"update_id":2,"inline_query":{"id":"2","query":"","offset":"","from":{"id":1,"is_bot":false,"first_name":"A"}}}]`,
	}}
	var calls int
	h := HandlerFunc(func(context.Context, types.Update) error {
		calls++
		return errors.New("boom")
	})
	tracer := &recordingTracer{}
	if err := NewPoller(fake, h, PollTracer(tracer)).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 {
		t.Errorf("got %d calls, want 2", calls)
	}
	if len(tracer.spans) != 2 || tracer.spans[0].err == nil || !tracer.spans[1].ended {
		t.Errorf("spans not recorded as expected: %d", len(tracer.spans))
	}
}

func TestPollerRun_RetriesTransientErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake := &fakeUpdates{
		cancel:  cancel,
		errs:    []error{&ErrHTTP{Status: 502}},
		batches: []string{`[{"update_id":3,"poll":{"id":"p"}}]`},
	}
	var kinds []types.AllowedUpdate
	h := HandlerFunc(func(_ context.Context, u types.Update) error {
		kinds = append(kinds, u.Kind)
		return nil
	})
	if err := NewPoller(fake, h, PollErrorDelay(time.Millisecond)).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(kinds) != 1 || kinds[0] != types.UpdatePoll {
		t.Errorf("kinds = %v, want [poll]", kinds)
	}
}

func TestPollerRun_FatalErrors(t *testing.T) {
	for _, code := range []int{401, 409} {
		fake := &fakeUpdates{
			cancel: func() {},
			errs:   []error{&ErrAPI{Method: "getUpdates", Code: code}},
		}
		err := NewPoller(fake, HandlerFunc(func(context.Context, types.Update) error { return nil })).
			Run(context.Background())
		var apiErr *ErrAPI
		if !errors.As(err, &apiErr) || apiErr.Code != code {
			t.Errorf("code %d: got %v", code, err)
		}
	}
}

func TestPollerRequest(t *testing.T) {
	p := NewPoller(&stubTransport{}, nil,
		PollTimeout(25*time.Second), PollLimit(10),
		PollAllowedUpdates(types.UpdateMessage, types.UpdateCallbackQuery))
	body := p.request(9).IntoRequest().Body().(request.JSONBody)
	got := gjson.ParseBytes(body.Data)
	if got.Get("offset").Int() != 9 || got.Get("timeout").Int() != 25 || got.Get("limit").Int() != 10 {
		t.Errorf("body = %s", body.Data)
	}
	if got.Get("allowed_updates.#").Int() != 2 {
		t.Errorf("allowed_updates = %s", got.Get("allowed_updates").Raw)
	}
}

func TestPollerRun_NewEntityKindAdvancesOffset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake := &fakeUpdates{cancel: cancel, batches: []string{
		`[{"update_id":10,"message":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},
			"text":"long quote","entities":[{"type":"expandable_blockquote","offset":0,"length":10}]}},
		  {"update_id":11,"message":{"message_id":2,"date":0,"chat":{"id":1,"type":"private"},"text":"b"}}]`,
	}}
	var seen []int64
	h := HandlerFunc(func(_ context.Context, u types.Update) error {
		seen = append(seen, u.ID)
		return nil
	})
	if err := NewPoller(fake, h).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != 2 || seen[0] != 10 || seen[1] != 11 {
		t.Errorf("handled %v, want [10 11]", seen)
	}
	if len(fake.offsets) != 2 || fake.offsets[1] != 12 {
		t.Errorf("offsets %v, want [0 12]", fake.offsets)
	}
}

func TestPollerRun_SkipsUndecodableUpdate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake := &fakeUpdates{cancel: cancel, batches: []string{
		`[{"update_id":20,"message":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},
			"text":"hi","entities":[{"type":"bold","offset":0,"length":9}]}},
		  {"update_id":21,"message":{"message_id":2,"date":0,"chat":{"id":1,"type":"private"},"text":"b"}}]`,
	}}
	var seen []int64
	h := HandlerFunc(func(_ context.Context, u types.Update) error {
		seen = append(seen, u.ID)
		return nil
	})
	if err := NewPoller(fake, h).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != 1 || seen[0] != 21 {
		t.Errorf("handled %v, want [21]", seen)
	}
	if len(fake.offsets) != 2 || fake.offsets[1] != 22 {
		t.Errorf("offsets %v, want [0 22]", fake.offsets)
	}
}

func TestPollerRun_NonArrayResultIsRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake := &fakeUpdates{cancel: cancel, batches: []string{`{"oops":true}`, `[]`}}
	p := NewPoller(fake, HandlerFunc(func(context.Context, types.Update) error { return nil }),
		PollErrorDelay(time.Millisecond))
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fake.offsets) != 3 {
		t.Errorf("got %d getUpdates calls, want 3", len(fake.offsets))
	}
}

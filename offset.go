package tgbot

import (
	"context"
	"sync"
)

// OffsetStore persists the getUpdates offset of a bot so that a restarted
// poller does not receive already handled updates again. Implementations
// live in store/sqlite and store/postgres.
type OffsetStore interface {
	// LoadOffset returns the saved offset of bot, or 0 when none is saved.
	LoadOffset(ctx context.Context, bot string) (int64, error)
	SaveOffset(ctx context.Context, bot string, offset int64) error
}

// MemoryOffsetStore is an in-process OffsetStore. Safe for concurrent use.
type MemoryOffsetStore struct {
	mu      sync.Mutex
	offsets map[string]int64
}

func NewMemoryOffsetStore() *MemoryOffsetStore {
	return &MemoryOffsetStore{offsets: make(map[string]int64)}
}

func (s *MemoryOffsetStore) LoadOffset(_ context.Context, bot string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offsets[bot], nil
}

func (s *MemoryOffsetStore) SaveOffset(_ context.Context, bot string, offset int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets[bot] = offset
	return nil
}

var _ OffsetStore = (*MemoryOffsetStore)(nil)

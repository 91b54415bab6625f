package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestWithTable(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"offsets", "offsets"},
		{"bot_1_offsets", "bot_1_offsets"},
		{"x; DROP TABLE y", "tgbot_offsets"},
		{"1abc", "tgbot_offsets"},
	}
	for _, tt := range tests {
		if got := New(nil, WithTable(tt.name)).table; got != tt.want {
			t.Errorf("WithTable(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// TestStoreRoundTrip runs against a real database when TGBOT_TEST_POSTGRES
// holds a connection string.
func TestStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("TGBOT_TEST_POSTGRES")
	if dsn == "" {
		t.Skip("TGBOT_TEST_POSTGRES not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	s := New(pool, WithTable("tgbot_offsets_test"))
	if err := s.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _, _ = pool.Exec(ctx, "DROP TABLE tgbot_offsets_test") })

	if got, err := s.LoadOffset(ctx, "bot"); err != nil || got != 0 {
		t.Fatalf("LoadOffset empty = %d, %v", got, err)
	}
	if err := s.SaveOffset(ctx, "bot", 10); err != nil {
		t.Fatalf("SaveOffset: %v", err)
	}
	if err := s.SaveOffset(ctx, "bot", 11); err != nil {
		t.Fatalf("SaveOffset: %v", err)
	}
	if got, err := s.LoadOffset(ctx, "bot"); err != nil || got != 11 {
		t.Fatalf("LoadOffset = %d, %v; want 11", got, err)
	}
}

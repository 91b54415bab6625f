// Package sqlite implements tgbot.OffsetStore using pure-Go SQLite.
// Zero CGO required.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nevindra/tgbot"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// StoreOption configures a SQLite Store.
type StoreOption func(*Store)

// WithLogger sets a structured logger for the store. When set, the store
// emits debug logs for every operation.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// Store keeps polling offsets in a local SQLite file.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ tgbot.OffsetStore = (*Store)(nil)

// New creates a Store using a local SQLite file at dbPath. All goroutines
// share a single connection so concurrent writers never hit SQLITE_BUSY.
func New(dbPath string, opts ...StoreOption) *Store {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		// sql.Open only fails when the driver is not registered.
		panic(fmt.Sprintf("sqlite: open driver: %v", err))
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db, logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(s)
	}
	s.logger.Debug("sqlite: store opened", "path", dbPath)
	return s
}

// Init creates the offsets table. Safe to call more than once.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS bot_offsets (
		bot TEXT PRIMARY KEY,
		next_offset INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (s *Store) LoadOffset(ctx context.Context, bot string) (int64, error) {
	start := time.Now()
	var offset int64
	err := s.db.QueryRowContext(ctx,
		`SELECT next_offset FROM bot_offsets WHERE bot = ?`, bot).Scan(&offset)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load offset: %w", err)
	}
	s.logger.Debug("sqlite: offset loaded", "bot", bot, "offset", offset, "duration", time.Since(start))
	return offset, nil
}

func (s *Store) SaveOffset(ctx context.Context, bot string, offset int64) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bot_offsets (bot, next_offset, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(bot) DO UPDATE SET next_offset = excluded.next_offset, updated_at = excluded.updated_at`,
		bot, offset, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save offset: %w", err)
	}
	s.logger.Debug("sqlite: offset saved", "bot", bot, "offset", offset, "duration", time.Since(start))
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

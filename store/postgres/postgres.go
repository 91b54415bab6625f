// Package postgres implements tgbot.OffsetStore using PostgreSQL.
//
// Store accepts an externally-owned *pgxpool.Pool via constructor injection.
// The caller creates and closes the pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nevindra/tgbot"
)

// Store keeps polling offsets in a PostgreSQL table.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// Option configures a Store.
type Option func(*Store)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// WithTable overrides the table name (default "tgbot_offsets"). Names that
// are not plain identifiers are ignored.
func WithTable(name string) Option {
	return func(s *Store) {
		if identRe.MatchString(name) {
			s.table = name
		}
	}
}

var _ tgbot.OffsetStore = (*Store)(nil)

// New creates a Store using an existing pgxpool.Pool.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{pool: pool, table: "tgbot_offsets"}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init creates the offsets table. Safe to call multiple times.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		bot TEXT PRIMARY KEY,
		next_offset BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table))
	if err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	return nil
}

func (s *Store) LoadOffset(ctx context.Context, bot string) (int64, error) {
	var offset int64
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT next_offset FROM %s WHERE bot = $1`, s.table), bot).Scan(&offset)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("postgres: load offset: %w", err)
	}
	return offset, nil
}

func (s *Store) SaveOffset(ctx context.Context, bot string, offset int64) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(
		`INSERT INTO %s (bot, next_offset, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (bot) DO UPDATE SET next_offset = EXCLUDED.next_offset, updated_at = now()`,
		s.table), bot, offset)
	if err != nil {
		return fmt.Errorf("postgres: save offset: %w", err)
	}
	return nil
}

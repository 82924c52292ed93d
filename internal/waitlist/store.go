// Package waitlist backs the marketing site's signup form with a hosted
// Postgres table.
package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAlreadyJoined is returned when the email is already on the list. The
// handler maps it to a friendly conflict response instead of a generic
// failure.
var ErrAlreadyJoined = errors.New("email is already on the waitlist")

const uniqueViolationCode = "23505"

// Entry is one waitlist row.
type Entry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists waitlist signups.
type Store interface {
	Add(ctx context.Context, email, source string) (Entry, error)
}

// PGStore is the Postgres-backed store.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open waitlist db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping waitlist db: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

// EnsureSchema creates the waitlist table when it does not exist yet.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS getmybrief_waitlist (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL DEFAULT 'landing',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure waitlist schema: %w", err)
	}
	return nil
}

func (s *PGStore) Add(ctx context.Context, email, source string) (Entry, error) {
	entry := Entry{
		ID:     uuid.NewString(),
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Source: source,
	}
	if entry.Source == "" {
		entry.Source = "landing"
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO getmybrief_waitlist (id, email, source) VALUES ($1, $2, $3) RETURNING created_at`,
		entry.ID, entry.Email, entry.Source,
	).Scan(&entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Entry{}, ErrAlreadyJoined
		}
		return Entry{}, fmt.Errorf("insert waitlist entry: %w", err)
	}
	return entry, nil
}

func (s *PGStore) Close() {
	s.pool.Close()
}

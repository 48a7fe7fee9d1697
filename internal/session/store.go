// Package session implements the server-side session store. Sessions live in
// a Postgres table keyed by an opaque uuid token; the browser only ever sees
// the token.
package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ttttttwt/final-test/internal/models"
	"github.com/ttttttwt/final-test/internal/repo"
)

type Store struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewStore(db *sql.DB, ttl time.Duration) *Store {
	return &Store{DB: db, TTL: ttl}
}

// Create inserts a new session for the user and returns it with a fresh token.
func (s *Store) Create(ctx context.Context, userID int, username string) (*models.Session, error) {
	query := `
		INSERT INTO sessions (token, user_id, username, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING token, user_id, username, expires_at, created_at
	`

	sess := &models.Session{}

	err := s.DB.QueryRowContext(ctx, query,
		uuid.NewString(), userID, username, time.Now().Add(s.TTL)).
		Scan(&sess.Token, &sess.UserID, &sess.Username, &sess.ExpiresAt, &sess.CreatedAt)

	if err != nil {
		return nil, err
	}

	return sess, nil
}

// Get returns the live session for the token. Expired or unknown tokens
// yield repo.ErrNotFound.
func (s *Store) Get(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT token, user_id, username, expires_at, created_at
		FROM sessions
		WHERE token = $1 AND expires_at > NOW()
	`

	sess := &models.Session{}

	err := s.DB.QueryRowContext(ctx, query, token).
		Scan(&sess.Token, &sess.UserID, &sess.Username, &sess.ExpiresAt, &sess.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// Delete destroys the session. Deleting an absent token is not an error, so
// logout stays idempotent.
func (s *Store) Delete(ctx context.Context, token string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// PurgeExpired removes sessions past their expiry and returns how many went.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CountActive returns the number of unexpired sessions.
func (s *Store) CountActive(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE expires_at > NOW()`).Scan(&n)
	return n, err
}

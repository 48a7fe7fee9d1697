package repo

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when the requested post or comment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a mutation touched zero rows because the
	// requester is not the owner (or the row vanished between check and write).
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicateUser is returned when a username is already taken.
	ErrDuplicateUser = errors.New("username already exists")
)

// isUniqueViolation reports whether err is a Postgres unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

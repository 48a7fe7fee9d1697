// Package authz holds the single ownership check shared by post and comment
// mutations: fetch the owner of the entity, compare to the requester, fail
// closed on mismatch.
package authz

import (
	"context"
	"errors"

	"github.com/ttttttwt/final-test/internal/repo"
)

type Decision int

const (
	Allowed Decision = iota
	Forbidden
	NotFound
)

// OwnerLookup returns the owner of the entity with the given id.
// Implementations return repo.ErrNotFound when the entity does not exist,
// and a nil owner when the entity has no owner (legacy rows).
type OwnerLookup func(ctx context.Context, id int) (*int, error)

// Authorize decides whether requesterID may mutate the entity identified by
// entityID. An unowned entity is Forbidden for everyone.
func Authorize(ctx context.Context, lookup OwnerLookup, entityID, requesterID int) (Decision, error) {
	owner, err := lookup(ctx, entityID)
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return Forbidden, err
	}

	if owner == nil || *owner != requesterID {
		return Forbidden, nil
	}

	return Allowed, nil
}

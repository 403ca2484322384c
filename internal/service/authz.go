package service

import (
	"errors"

	"github.com/taskforge/taskforge-go/internal/model"
)

// ErrNotOwner signals that a resolved principal tried to act on a resource
// owned by someone else, for routes where the resource's existence is
// already disclosed by its URL.
var ErrNotOwner = errors.New("not enough permissions")

// AuthorizeOwner checks that the principal owns the resource identified by
// ownerID. Task ownership is not checked here: task queries filter by
// owner at the repository, so a foreign task reports not-found instead.
func AuthorizeOwner(principal *model.User, ownerID int64) error {
	if principal.ID != ownerID {
		return ErrNotOwner
	}
	return nil
}

// Package store is the persistence layer used by the services. It hides gorm
// behind a small interface so that the services can run against an in-memory
// implementation in tests.
package store

import (
	"context"
	"errors"

	"maqola/platform/internal/model"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// PublicationFilter narrows ListPublications. A nil AuthorID matches every
// publication.
type PublicationFilter struct {
	AuthorID *uint
}

// Store is implemented by Gorm and Memory. Implementations must enforce email
// uniqueness themselves, atomically with the insert.
type Store interface {
	// InsertUser sets u.ID and u.CreatedAt. Returns ErrDuplicateEmail when
	// u.Email is taken.
	InsertUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id uint) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// DeleteUser removes a user together with every publication they own
	DeleteUser(ctx context.Context, id uint) error

	// InsertPublication sets p.ID and p.CreatedAt. p.AuthorID must reference
	// an existing user.
	InsertPublication(ctx context.Context, p *model.Publication) error
	// GetPublication returns the publication with its Author loaded
	GetPublication(ctx context.Context, id uint) (*model.Publication, error)
	// ListPublications returns matching publications newest first, with
	// their Author loaded
	ListPublications(ctx context.Context, f PublicationFilter) ([]model.Publication, error)
}

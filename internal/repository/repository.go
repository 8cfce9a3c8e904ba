// Package repository declares the persistence contracts consumed by
// the service layer. Services depend on these interfaces, never on a
// concrete database package.
package repository

import (
	"context"

	"github.com/yaronsh/mediahub/internal/model"
)

// UserRepository is the credential store contract.
//
// Lookups return apperror.ErrNotFound (wrapped) when no row matches.
// Create and Update surface uniqueness violations as apperror
// conflicts naming the colliding field — the store's UNIQUE
// constraints are the final authority on email/username uniqueness;
// any pre-check in a flow is only a fast path and can race.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByEmailOrUsername is a single lookup covering both columns.
	// Registration passes the two distinct values; login passes the one
	// submitted identifier for both, since the form accepts either.
	// When separate rows match both values, the email match wins.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	// Update applies a sparse patch atomically. Fields absent from the
	// patch are left untouched.
	Update(ctx context.Context, id string, patch model.UserPatch) error
}

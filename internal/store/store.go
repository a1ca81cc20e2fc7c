// Package store persists user records. Every implementation enforces email
// uniqueness itself so concurrent registrations cannot both succeed.
package store

import (
	"context"
	"errors"

	"github.com/AnshRaj112/secure-profile-hub/internal/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks UserStore

// UserStore is the document-store contract used by the credential service.
type UserStore interface {
	// Create inserts user and assigns user.ID. Returns ErrDuplicateEmail
	// without writing anything when the email is taken.
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByID returns ErrNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*models.User, error)
}

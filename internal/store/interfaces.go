package store

import (
	"context"

	"github.com/studynexus/studynexus/models"
)

// UserRepository is the persistence contract for user accounts. The single
// multi-step sequence in the system — find by email, then conditionally
// create — races benignly between concurrent requests; implementations must
// rely on the storage uniqueness constraint and surface
// [ErrEmailAlreadyExists] from the insert, not from a prior lookup.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields (UserID, CreatedAt) populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves the account matching the given email,
	// case-insensitively. Returns ErrNoUserWasFound when absent.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves the account with the given id.
	// Returns ErrNoUserWasFound when absent.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// LinkProvider records a federated identity on an existing account:
	// provider subject and photo are written, the password hash and source
	// tag are left untouched. Returns the updated record.
	LinkProvider(ctx context.Context, userID int64, providerSubject, photoURL string) (models.User, error)
}

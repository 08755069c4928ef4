// Package userstore persists user accounts and their purchased-plan history.
//
// The purchased-plan list is stored as a JSON array owned by the user record.
// Appends go through a single atomic array-append statement, never through
// read-modify-write, so concurrent purchases by the same user cannot lose
// entries.
package userstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/insurehub/insurehub/internal/domain"
)

// Store is the persistence boundary for users and their purchase history.
type Store interface {
	// CreateUser inserts a new user. Returns domain.ErrUserAlreadyExists if
	// the email is taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail retrieves a user by email. Returns domain.ErrUserNotFound
	// if no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindPurchasedPlans returns the user's purchase history in insertion
	// order, most recent last. A user with no purchases yields an empty
	// slice; domain.ErrUserNotFound is returned only when the id resolves to
	// no user record.
	FindPurchasedPlans(ctx context.Context, userID uuid.UUID) ([]domain.PurchasedPlan, error)

	// AppendPurchasedPlan atomically appends a plan snapshot to the user's
	// history. Returns domain.ErrUserNotFound if the user does not exist.
	AppendPurchasedPlan(ctx context.Context, userID uuid.UUID, plan domain.PurchasedPlan) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

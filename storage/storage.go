package storage

import (
	"context"
	"errors"

	"backend/models"
)

var (
	// ErrNotFound is returned when no user record exists for an id or email.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned by CreateUser on a duplicate email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserExists is returned by CreateUser when the user id is
	// already taken.
	ErrUserExists = errors.New("user id already exists")

	// ErrVersionConflict signals that a conditional write lost the race:
	// the record's version moved between the caller's read and the write.
	ErrVersionConflict = errors.New("version conflict")
)

// UserStore is the persistence collaborator. Implementations must make
// ApplyDrink atomic: the metrics update and the history append either
// both happen or neither does, and the update is conditional on the
// version the caller read so concurrent accruals never lose an update.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, userID string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error

	// ApplyDrink overwrites the cumulative metrics and appends the drink
	// in one transaction, only if the record is still at expectedVersion.
	ApplyDrink(ctx context.Context, userID string, drink *models.Drink, neuronsKilled, lifeLost float64, expectedVersion int64) error

	DrinksByUser(ctx context.Context, userID string, limit int) ([]models.Drink, error)
	Leaderboard(ctx context.Context, limit int) ([]models.User, error)
}

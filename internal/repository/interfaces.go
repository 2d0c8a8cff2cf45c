package repository

import (
	"context"

	"CARTOPIA_BACK-END/internal/models"
)

// UserRepository persists user records. It is the single owner of user
// persistence; handlers never touch the collection directly.
type UserRepository interface {
	// FindByEmail returns the user with the exact (case-sensitive) email,
	// or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns the user with the given hex id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Insert stores a new user, assigning ID, CreatedAt, UpdatedAt and the
	// initial version. Returns ErrDuplicateEmail on a unique-index clash.
	Insert(ctx context.Context, user *models.User) error

	// Update saves the full record with a compare-and-swap on the version
	// the record was read at. Returns ErrVersionConflict when a concurrent
	// write won; callers should re-fetch and retry.
	Update(ctx context.Context, user *models.User) error
}

// ProductRepository persists catalog items.
type ProductRepository interface {
	Insert(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

// OrderRepository persists orders.
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

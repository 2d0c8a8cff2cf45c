package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CARTOPIA_BACK-END/internal/cart"
	"CARTOPIA_BACK-END/internal/models"
)

func TestMemoryUserRepositoryInsertAndFind(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &models.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, repo.Insert(ctx, user))

	assert.False(t, user.ID.IsZero())
	assert.Equal(t, int64(1), user.Version)
	assert.NotNil(t, user.CartData)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepositoryDuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.User{Email: "ada@example.com"}))
	err := repo.Insert(ctx, &models.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

// Updates compare-and-swap on Version; a stale read loses the race.
func TestMemoryUserRepositoryVersionConflict(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &models.User{Email: "ada@example.com", CartData: cart.Cart{}}
	require.NoError(t, repo.Insert(ctx, user))

	first, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	second, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	first.Name = "First Writer"
	require.NoError(t, repo.Update(ctx, first))

	second.Name = "Second Writer"
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, ErrVersionConflict)

	// A re-read picks up the new version and the retry succeeds.
	fresh, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "First Writer", fresh.Name)

	fresh.Name = "Second Writer"
	require.NoError(t, repo.Update(ctx, fresh))
}

// Reads hand out deep copies; mutating a returned cart must not leak
// into the stored record.
func TestMemoryUserRepositoryIsolation(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &models.User{Email: "ada@example.com", CartData: cart.Cart{"p1": {"M": 1}}}
	require.NoError(t, repo.Insert(ctx, user))

	read, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	read.CartData["p1"]["M"] = 99

	again, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, again.CartData["p1"]["M"])
}

func TestMemoryUserRepositoryUpdateToTakenEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.User{Email: "taken@example.com"}))
	user := &models.User{Email: "ada@example.com"}
	require.NoError(t, repo.Insert(ctx, user))

	user.Email = "taken@example.com"
	err := repo.Update(ctx, user)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryOrderRepositoryNewestFirst(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Insert(ctx, &models.Order{Status: models.OrderStatusPlaced}))
	}

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.False(t, orders[0].CreatedAt.Before(orders[2].CreatedAt))
}

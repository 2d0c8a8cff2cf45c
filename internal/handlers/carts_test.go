package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CARTOPIA_BACK-END/internal/cart"
	"CARTOPIA_BACK-END/internal/dto"
	"CARTOPIA_BACK-END/internal/repository"
)

func newCartHandler(t *testing.T) (*CartHandler, *repository.MemoryUserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	return NewCartHandler(users), users
}

func TestCartGet(t *testing.T) {
	h, users := newCartHandler(t)
	user := seedUser(t, users, "ada@example.com", "password1", cart.Cart{"p1": {"M": 2}})

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(t, http.MethodPost, "/api/cart/get", nil, user.ID.Hex()))

	var resp dto.CartResponse
	decodeInto(t, rec, &resp)
	require.True(t, resp.Success)
	assert.Equal(t, cart.Cart{"p1": {"M": 2}}, resp.CartData)
}

func TestCartAdd(t *testing.T) {
	h, users := newCartHandler(t)
	user := seedUser(t, users, "ada@example.com", "password1", nil)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.Add(rec, authedRequest(t, http.MethodPost, "/api/cart/add", dto.CartAddRequest{
			ItemID: "p1",
			Size:   "M",
		}, user.ID.Hex()))

		var resp dto.CartResponse
		decodeInto(t, rec, &resp)
		require.True(t, resp.Success)
		assert.Equal(t, "Added To Cart", resp.Message)
	}

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, cart.Cart{"p1": {"M": 2}}, stored.CartData)
}

func TestCartAddRequiresItemAndSize(t *testing.T) {
	h, users := newCartHandler(t)
	user := seedUser(t, users, "ada@example.com", "password1", nil)

	rec := httptest.NewRecorder()
	h.Add(rec, authedRequest(t, http.MethodPost, "/api/cart/add", dto.CartAddRequest{
		ItemID: "p1",
	}, user.ID.Hex()))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
}

func TestCartUpdateSetsQuantity(t *testing.T) {
	h, users := newCartHandler(t)
	user := seedUser(t, users, "ada@example.com", "password1", cart.Cart{"p1": {"M": 2}})

	rec := httptest.NewRecorder()
	h.Update(rec, authedRequest(t, http.MethodPost, "/api/cart/update", dto.CartUpdateRequest{
		ItemID:   "p1",
		Size:     "M",
		Quantity: 5,
	}, user.ID.Hex()))

	var resp dto.CartResponse
	decodeInto(t, rec, &resp)
	require.True(t, resp.Success)
	assert.Equal(t, "Cart Updated", resp.Message)

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, cart.Cart{"p1": {"M": 5}}, stored.CartData)
}

// Quantity zero removes the entry instead of leaving a zero behind.
func TestCartUpdateZeroRemovesEntry(t *testing.T) {
	h, users := newCartHandler(t)
	user := seedUser(t, users, "ada@example.com", "password1", cart.Cart{
		"p1": {"M": 2, "L": 1},
		"p2": {"S": 4},
	})

	rec := httptest.NewRecorder()
	h.Update(rec, authedRequest(t, http.MethodPost, "/api/cart/update", dto.CartUpdateRequest{
		ItemID:   "p2",
		Size:     "S",
		Quantity: 0,
	}, user.ID.Hex()))

	var resp dto.CartResponse
	decodeInto(t, rec, &resp)
	require.True(t, resp.Success)

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, cart.Cart{"p1": {"M": 2, "L": 1}}, stored.CartData)
}

func TestCartUpdateRejectsNegativeQuantity(t *testing.T) {
	h, users := newCartHandler(t)
	user := seedUser(t, users, "ada@example.com", "password1", nil)

	rec := httptest.NewRecorder()
	h.Update(rec, authedRequest(t, http.MethodPost, "/api/cart/update", dto.CartUpdateRequest{
		ItemID:   "p1",
		Size:     "M",
		Quantity: -1,
	}, user.ID.Hex()))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
}

func TestCartUnknownUser(t *testing.T) {
	h, _ := newCartHandler(t)

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(t, http.MethodPost, "/api/cart/get", nil, "64b000000000000000000000"))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "User not found", resp.Message)
}

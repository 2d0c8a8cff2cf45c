package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"CARTOPIA_BACK-END/internal/cart"
	"CARTOPIA_BACK-END/internal/config"
	"CARTOPIA_BACK-END/internal/dto"
	"CARTOPIA_BACK-END/internal/metrics"
	"CARTOPIA_BACK-END/internal/middleware"
	"CARTOPIA_BACK-END/internal/models"
	"CARTOPIA_BACK-END/internal/repository"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *repository.MemoryUserRepository) {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	admin := config.AdminConfig{Email: "admin@cartopia.dev", Password: "admin-secret"}
	h := NewAuthHandler(users, testJWTConfig(), admin, metrics.NewCollector())
	return h, users
}

func seedUser(t *testing.T, users *repository.MemoryUserRepository, email, password string, c cart.Cart) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		CartData:     c,
	}
	require.NoError(t, users.Insert(context.Background(), user))
	return user
}

func TestRegister(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(t, http.MethodPost, "/api/user/register", dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "longenough",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AuthResponse
	decodeInto(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.NotNil(t, resp.CartData)

	claims, err := middleware.ValidateToken(resp.Token, testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestRegisterKeepsClientCart(t *testing.T) {
	h, users := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(t, http.MethodPost, "/api/user/register", dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "longenough",
		CartData: cart.Cart{"p1": {"M": 2}},
	}))

	var resp dto.AuthResponse
	decodeInto(t, rec, &resp)
	require.True(t, resp.Success)
	assert.Equal(t, cart.Cart{"p1": {"M": 2}}, resp.CartData)

	stored, err := users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, cart.Cart{"p1": {"M": 2}}, stored.CartData)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, users := newAuthHandler(t)
	seedUser(t, users, "taken@example.com", "password1", nil)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(t, http.MethodPost, "/api/user/register", dto.RegisterRequest{
		Name:     "Ada",
		Email:    "taken@example.com",
		Password: "longenough",
	}))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "User already exists", resp.Message)
}

// The duplicate check runs before format validation, so an existing
// account with a malformed address still reports "already exists".
func TestRegisterDuplicateCheckedBeforeFormat(t *testing.T) {
	h, users := newAuthHandler(t)
	seedUser(t, users, "not-an-email", "password1", nil)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(t, http.MethodPost, "/api/user/register", dto.RegisterRequest{
		Name:     "Ada",
		Email:    "not-an-email",
		Password: "longenough",
	}))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "User already exists", resp.Message)
}

func TestRegisterInvalidEmail(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(t, http.MethodPost, "/api/user/register", dto.RegisterRequest{
		Name:     "Ada",
		Email:    "not-an-email",
		Password: "longenough",
	}))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Please enter a valid email", resp.Message)
}

func TestRegisterWeakPassword(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(t, http.MethodPost, "/api/user/register", dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "short",
	}))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Please enter a strong password", resp.Message)
}

func TestLoginUnknownUser(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/user/login", dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	}))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "User doesn't exists", resp.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	h, users := newAuthHandler(t)
	seedUser(t, users, "ada@example.com", "correct-password", nil)

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/user/login", dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	}))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid credentials", resp.Message)
}

func TestLoginMergesClientCart(t *testing.T) {
	h, users := newAuthHandler(t)
	seedUser(t, users, "ada@example.com", "correct-password", cart.Cart{
		"p1": {"M": 1},
		"p2": {"L": 3},
	})

	clientCart := cart.Cart{"p1": {"M": 2}}
	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/user/login", dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-password",
		CartData: &clientCart,
	}))

	var resp dto.AuthResponse
	decodeInto(t, rec, &resp)
	require.True(t, resp.Success)

	want := cart.Cart{
		"p1": {"M": 3},
		"p2": {"L": 3},
	}
	assert.Equal(t, want, resp.CartData)

	// The merged cart is persisted, not just returned.
	stored, err := users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, want, stored.CartData)
}

func TestLoginWithoutCartLeavesStoredCartUntouched(t *testing.T) {
	h, users := newAuthHandler(t)
	seedUser(t, users, "ada@example.com", "correct-password", cart.Cart{"p1": {"M": 1}})

	before, err := users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/user/login", dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-password",
	}))

	var resp dto.AuthResponse
	decodeInto(t, rec, &resp)
	require.True(t, resp.Success)
	assert.Equal(t, cart.Cart{"p1": {"M": 1}}, resp.CartData)

	after, err := users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.CartData, after.CartData)
}

func TestLoginWithEmptyCartStillPersists(t *testing.T) {
	h, users := newAuthHandler(t)
	seedUser(t, users, "ada@example.com", "correct-password", cart.Cart{"p1": {"M": 1}})

	before, err := users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)

	emptyCart := cart.Cart{}
	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/user/login", dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-password",
		CartData: &emptyCart,
	}))

	var resp dto.AuthResponse
	decodeInto(t, rec, &resp)
	require.True(t, resp.Success)
	assert.Equal(t, cart.Cart{"p1": {"M": 1}}, resp.CartData)

	// A present-but-empty cart is a no-op merge, but it is still written.
	after, err := users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.Version+1, after.Version)
}

func TestAdminLogin(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.AdminLogin(rec, jsonRequest(t, http.MethodPost, "/api/user/admin", dto.AdminLoginRequest{
		Email:    "admin@cartopia.dev",
		Password: "admin-secret",
	}))

	var resp dto.AdminLoginResponse
	decodeInto(t, rec, &resp)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)

	claims, err := middleware.ValidateAdminToken(resp.Token, testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, middleware.RoleAdmin, claims.Role)
	assert.Equal(t, "admin@cartopia.dev", claims.Subject)
}

func TestAdminLoginWrongCredentials(t *testing.T) {
	h, _ := newAuthHandler(t)

	for _, req := range []dto.AdminLoginRequest{
		{Email: "admin@cartopia.dev", Password: "wrong"},
		{Email: "other@cartopia.dev", Password: "admin-secret"},
	} {
		rec := httptest.NewRecorder()
		h.AdminLogin(rec, jsonRequest(t, http.MethodPost, "/api/user/admin", req))

		resp := decodeMessage(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Message)
	}
}

func TestAdminLoginDisabledWithoutCredentials(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	h := NewAuthHandler(users, testJWTConfig(), config.AdminConfig{}, metrics.NewCollector())

	rec := httptest.NewRecorder()
	h.AdminLogin(rec, jsonRequest(t, http.MethodPost, "/api/user/admin", dto.AdminLoginRequest{
		Email:    "",
		Password: "",
	}))

	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid credentials", resp.Message)
}

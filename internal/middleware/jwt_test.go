package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CARTOPIA_BACK-END/internal/config"
)

func testCfg() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testCfg()

	token, err := GenerateToken("user-123", "ada@example.com", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "ada@example.com", testCfg())
	require.NoError(t, err)

	_, err = ValidateToken(token, &config.JWTConfig{Secret: "other-secret", AccessTokenTTL: time.Hour})
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute}

	token, err := GenerateToken("user-123", "ada@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testCfg())
	assert.Error(t, err)
}

func TestAdminToken(t *testing.T) {
	cfg := testCfg()

	token, err := GenerateAdminToken("admin@cartopia.dev", cfg)
	require.NoError(t, err)

	claims, err := ValidateAdminToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@cartopia.dev", claims.Subject)
}

// A user token carries no admin role and must not open admin routes.
func TestAdminTokenRejectsUserToken(t *testing.T) {
	cfg := testCfg()

	token, err := GenerateToken("user-123", "ada@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateAdminToken(token, cfg)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testCfg()

	token, err := GenerateToken("user-123", "ada@example.com", cfg)
	require.NoError(t, err)

	var gotUserID string
	handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
	}, cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler(httptest.NewRecorder(), req)

	assert.Equal(t, "user-123", gotUserID)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	cfg := testCfg()

	cases := map[string]func(r *http.Request){
		"missing header": func(r *http.Request) {},
		"wrong scheme": func(r *http.Request) {
			r.Header.Set("Authorization", "Basic abc123")
		},
		"malformed token": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not.a.token")
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}, cfg)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			setup(req)

			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.False(t, called)
			assert.Contains(t, rec.Body.String(), "Not Authorized. Login Again.")
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	cfg := testCfg()

	adminToken, err := GenerateAdminToken("admin@cartopia.dev", cfg)
	require.NoError(t, err)
	userToken, err := GenerateToken("user-123", "ada@example.com", cfg)
	require.NoError(t, err)

	run := func(token string) bool {
		called := false
		handler := AdminMiddleware(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}, cfg)

		req := httptest.NewRequest(http.MethodPost, "/api/product/add", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler(httptest.NewRecorder(), req)
		return called
	}

	assert.True(t, run(adminToken))
	assert.False(t, run(userToken))
}

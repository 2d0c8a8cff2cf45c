package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"CARTOPIA_BACK-END/internal/config"
	"CARTOPIA_BACK-END/internal/utils"
)

type contextKey string

const (
	// ContextKeyUserID carries the authenticated user's hex id.
	ContextKeyUserID contextKey = "user_id"
	// ContextKeyEmail carries the authenticated user's email.
	ContextKeyEmail contextKey = "email"
)

// RoleAdmin is the role claim carried by admin tokens.
const RoleAdmin = "admin"

// UserClaims represents the claims in a user JWT token
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AdminClaims represents the claims in an admin JWT token. The subject is
// the operator email and the role marks it as an admin token.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given user
func GenerateToken(userID, email string, cfg *config.JWTConfig) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates a user JWT token and returns the claims
func ValidateToken(tokenString string, cfg *config.JWTConfig) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// GenerateAdminToken generates a JWT token for the admin console
func GenerateAdminToken(email string, cfg *config.JWTConfig) (string, error) {
	claims := AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateAdminToken validates an admin JWT token and returns the claims
func ValidateAdminToken(tokenString string, cfg *config.JWTConfig) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Role != RoleAdmin {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// AuthMiddleware validates user JWT tokens in the Authorization header
func AuthMiddleware(next http.HandlerFunc, cfg *config.JWTConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			utils.WriteMessage(w, false, "Not Authorized. Login Again.")
			return
		}

		claims, err := ValidateToken(tokenString, cfg)
		if err != nil {
			utils.WriteMessage(w, false, "Not Authorized. Login Again.")
			return
		}

		// Add user info to request context
		ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, ContextKeyEmail, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AdminMiddleware validates admin JWT tokens in the Authorization header
func AdminMiddleware(next http.HandlerFunc, cfg *config.JWTConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			utils.WriteMessage(w, false, "Not Authorized. Login Again.")
			return
		}

		if _, err := ValidateAdminToken(tokenString, cfg); err != nil {
			utils.WriteMessage(w, false, "Not Authorized. Login Again.")
			return
		}

		next.ServeHTTP(w, r)
	}
}

// UserIDFromContext returns the authenticated user id set by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	return userID, ok
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Extract token from "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}

	return tokenParts[1], true
}

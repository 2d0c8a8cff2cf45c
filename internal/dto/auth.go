package dto

import "CARTOPIA_BACK-END/internal/cart"

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	CartData cart.Cart `json:"cartData"`
}

// LoginRequest represents the request payload for user login. CartData is a
// pointer so a missing or null client cart can be told apart from an empty
// one: only a present cart triggers the merge-and-persist on login.
type LoginRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	CartData *cart.Cart `json:"cartData"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Success  bool      `json:"success"`
	Token    string    `json:"token"`
	CartData cart.Cart `json:"cartData"`
}

// AdminLoginRequest represents the request payload for admin login
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLoginResponse represents the response after successful admin login
type AdminLoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

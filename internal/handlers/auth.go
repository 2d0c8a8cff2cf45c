package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"CARTOPIA_BACK-END/internal/cart"
	"CARTOPIA_BACK-END/internal/config"
	"CARTOPIA_BACK-END/internal/dto"
	"CARTOPIA_BACK-END/internal/metrics"
	"CARTOPIA_BACK-END/internal/middleware"
	"CARTOPIA_BACK-END/internal/models"
	"CARTOPIA_BACK-END/internal/repository"
	"CARTOPIA_BACK-END/internal/utils"
)

// mergeRetries bounds the fetch-and-retry loop when a concurrent login
// wins the version compare-and-swap.
const mergeRetries = 3

const genericErrorMessage = "Something went wrong. Please try again."

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users   repository.UserRepository
	jwtCfg  *config.JWTConfig
	admin   config.AdminConfig
	metrics *metrics.Collector
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users repository.UserRepository, jwtCfg *config.JWTConfig, admin config.AdminConfig, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{
		users:   users,
		jwtCfg:  jwtCfg,
		admin:   admin,
		metrics: collector,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with name, email, password and an optional cart snapshot
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 200 {object} dto.AuthResponse "Account created"
// @Router /api/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	ctx := r.Context()

	// Duplicate check runs before format validation, matching the
	// storefront's observable ordering.
	if _, err := h.users.FindByEmail(ctx, req.Email); err == nil {
		utils.WriteMessage(w, false, "User already exists")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		slog.Error("register: email lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	if !utils.IsValidEmail(req.Email) {
		utils.WriteMessage(w, false, "Please enter a valid email")
		return
	}
	if len(req.Password) < 8 {
		utils.WriteMessage(w, false, "Please enter a strong password")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("register: password hash failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	clientCart := req.CartData
	if clientCart == nil {
		clientCart = cart.Cart{}
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CartData:     clientCart,
	}

	if err := h.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.WriteMessage(w, false, "User already exists")
			return
		}
		slog.Error("register: insert failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	token, err := middleware.GenerateToken(user.ID.Hex(), user.Email, h.jwtCfg)
	if err != nil {
		slog.Error("register: token generation failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	h.metrics.RecordRegistration()

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Success:  true,
		Token:    token,
		CartData: user.CartData,
	})
}

// Login handles user login with merge-on-login cart semantics
// @Summary Login user
// @Description Authenticate with email and password; a supplied client cart is merged into the stored cart
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials and optional client cart"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Router /api/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	ctx := r.Context()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, false, "User doesn't exists")
		return
	}
	if err != nil {
		slog.Error("login: email lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteMessage(w, false, "Invalid credentials")
		return
	}

	// Merge and persist only when the client actually sent a cart. An
	// absent cart leaves the stored record untouched.
	mergedCart := user.CartData
	if req.CartData != nil {
		for attempt := 0; ; attempt++ {
			mergedCart = cart.Merge(user.CartData, *req.CartData)
			user.CartData = mergedCart

			err := h.users.Update(ctx, user)
			if err == nil {
				break
			}
			if errors.Is(err, repository.ErrVersionConflict) && attempt < mergeRetries {
				h.metrics.RecordMergeConflict()
				user, err = h.users.FindByEmail(ctx, req.Email)
				if err == nil {
					continue
				}
			}
			slog.Error("login: cart merge persist failed", slog.String("error", err.Error()))
			utils.WriteMessage(w, false, genericErrorMessage)
			return
		}
	}

	token, err := middleware.GenerateToken(user.ID.Hex(), user.Email, h.jwtCfg)
	if err != nil {
		slog.Error("login: token generation failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	h.metrics.RecordLogin()

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Success:  true,
		Token:    token,
		CartData: mergedCart,
	})
}

// AdminLogin handles admin console login against the operator credentials
// @Summary Admin login
// @Description Authenticate the admin console against the configured operator credentials
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.AdminLoginResponse "Login successful"
// @Router /api/user/admin [post]
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	if h.admin.Email == "" || h.admin.Password == "" || !credentialsMatch(req.Email, h.admin.Email) || !credentialsMatch(req.Password, h.admin.Password) {
		utils.WriteMessage(w, false, "Invalid credentials")
		return
	}

	token, err := middleware.GenerateAdminToken(req.Email, h.jwtCfg)
	if err != nil {
		slog.Error("admin login: token generation failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AdminLoginResponse{
		Success: true,
		Token:   token,
	})
}

func credentialsMatch(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

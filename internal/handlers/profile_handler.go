package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"CARTOPIA_BACK-END/internal/dto"
	"CARTOPIA_BACK-END/internal/middleware"
	"CARTOPIA_BACK-END/internal/models"
	"CARTOPIA_BACK-END/internal/repository"
	"CARTOPIA_BACK-END/internal/utils"
)

// ProfileHandler handles profile read/update requests
type ProfileHandler struct {
	users repository.UserRepository
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(users repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Profile dispatches on method: GET reads, PUT updates.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodPut:
		h.Update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Get returns the authenticated user's profile projection
// @Summary Get user profile
// @Description Project the non-sensitive fields of the authenticated user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "Profile"
// @Router /api/user/profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, false, "Not Authorized. Login Again.")
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, false, "User not found")
		return
	}
	if err != nil {
		slog.Error("profile get: lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{
		Success: true,
		User:    projectUser(user),
	})
}

// Update changes the authenticated user's name and/or email
// @Summary Update user profile
// @Description Update name and/or email. An email held by another account is rejected.
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileUpdateRequest true "Fields to update"
// @Success 200 {object} dto.ProfileResponse "Updated profile"
// @Router /api/user/profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, false, "Not Authorized. Login Again.")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	ctx := r.Context()

	user, err := h.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, false, "User not found")
		return
	}
	if err != nil {
		slog.Error("profile update: lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	// Uniqueness only matters when the email actually changes.
	if req.Email != "" && req.Email != user.Email {
		_, err := h.users.FindByEmail(ctx, req.Email)
		if err == nil {
			utils.WriteMessage(w, false, "Email is already in use by another account")
			return
		}
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("profile update: email lookup failed", slog.String("error", err.Error()))
			utils.WriteMessage(w, false, genericErrorMessage)
			return
		}
		user.Email = req.Email
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if err := h.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.WriteMessage(w, false, "Email is already in use by another account")
			return
		}
		slog.Error("profile update: persist failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    projectUser(user),
	})
}

func projectUser(user *models.User) dto.ProfileUser {
	return dto.ProfileUser{
		UserID:    user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

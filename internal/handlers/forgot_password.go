package handlers

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"CARTOPIA_BACK-END/internal/config"
	"CARTOPIA_BACK-END/internal/dto"
	"CARTOPIA_BACK-END/internal/metrics"
	"CARTOPIA_BACK-END/internal/middleware"
	"CARTOPIA_BACK-END/internal/models"
	"CARTOPIA_BACK-END/internal/repository"
	"CARTOPIA_BACK-END/internal/utils"
)

// Mailer dispatches password-reset OTP emails.
type Mailer interface {
	SendOTPEmail(to, otp string) error
}

// ForgotPasswordHandler handles the password-reset OTP flow
type ForgotPasswordHandler struct {
	users    repository.UserRepository
	mailer   Mailer
	resetCfg *config.ResetConfig
	limiter  *middleware.ResetRateLimiter
	metrics  *metrics.Collector
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler instance
func NewForgotPasswordHandler(users repository.UserRepository, mailer Mailer, resetCfg *config.ResetConfig, limiter *middleware.ResetRateLimiter, collector *metrics.Collector) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{
		users:    users,
		mailer:   mailer,
		resetCfg: resetCfg,
		limiter:  limiter,
		metrics:  collector,
	}
}

// ForgotPassword stores a fresh OTP for the account and emails it
// @Summary Request password reset
// @Description Send a 6-digit OTP to the account's email. Unrecognized emails get a generic success so account existence is not leaked.
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} utils.MessageResponse "OTP dispatched (or generic response)"
// @Router /api/user/forgot-password [post]
func (h *ForgotPasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	if req.Email == "" || !utils.IsValidEmail(req.Email) {
		utils.WriteMessage(w, false, "Enter a valid email")
		return
	}

	if !h.limiter.Allow(req.Email) {
		utils.WriteMessage(w, false, "Too many reset requests. Please try again later.")
		return
	}

	ctx := r.Context()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		// Do not leak account existence for well-formed but unknown emails.
		utils.WriteMessage(w, true, "User not recognized. If an account exists, an OTP has been sent.")
		return
	}
	if err != nil {
		slog.Error("forgot password: email lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, "Could not send OTP. Please try again later.")
		return
	}

	otp, err := generateOTP()
	if err != nil {
		slog.Error("forgot password: otp generation failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, "Could not send OTP. Please try again later.")
		return
	}

	user.ResetOTP = otp
	user.ResetOTPExpiresAt = time.Now().Add(h.resetCfg.OTPTTL)

	if err := h.users.Update(ctx, user); err != nil {
		slog.Error("forgot password: persist failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, "Could not send OTP. Please try again later.")
		return
	}

	// Delivery detail stays in the server logs; callers only see the
	// generic failure.
	if err := h.mailer.SendOTPEmail(req.Email, otp); err != nil {
		h.metrics.RecordOTPSendFail()
		slog.Error("forgot password: email dispatch failed",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		utils.WriteMessage(w, false, "Could not send OTP. Please try again later.")
		return
	}

	h.metrics.RecordOTPSent()

	utils.WriteMessage(w, true, "OTP sent to your email. It is valid for 10 minutes.")
}

// VerifyOTP checks a pending OTP without consuming it
// @Summary Verify OTP
// @Description Check the 6-digit code against the pending reset. Verification does not consume the code.
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and OTP"
// @Success 200 {object} utils.MessageResponse "OTP verified"
// @Router /api/user/verify-otp [post]
func (h *ForgotPasswordHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil || !otpValid(user, req.OTP) {
		utils.WriteMessage(w, false, "Invalid or expired OTP")
		return
	}

	utils.WriteMessage(w, true, "OTP verified. You can now reset your password.")
}

// ResetPassword replaces the password after re-validating the OTP
// @Summary Reset password
// @Description Set a new password using a matching, unexpired OTP. The OTP is cleared on success.
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Email, OTP and new password"
// @Success 200 {object} utils.MessageResponse "Password reset"
// @Router /api/user/reset-password [post]
func (h *ForgotPasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	if len(req.NewPassword) < 8 {
		utils.WriteMessage(w, false, "Password must be at least 8 characters long")
		return
	}

	ctx := r.Context()

	for attempt := 0; ; attempt++ {
		user, err := h.users.FindByEmail(ctx, req.Email)
		if err != nil || !otpValid(user, req.OTP) {
			utils.WriteMessage(w, false, "Invalid or expired OTP")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("reset password: hash failed", slog.String("error", err.Error()))
			utils.WriteMessage(w, false, genericErrorMessage)
			return
		}

		user.PasswordHash = string(hashedPassword)
		user.ClearResetOTP()

		err = h.users.Update(ctx, user)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrVersionConflict) && attempt < mergeRetries {
			continue
		}
		slog.Error("reset password: persist failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteMessage(w, true, "Password has been reset successfully. Please login.")
}

// otpValid requires a pending OTP, an exact match, and a wall clock
// strictly before the stored expiry.
func otpValid(user *models.User, otp string) bool {
	return user != nil &&
		user.HasPendingReset() &&
		user.ResetOTP == otp &&
		time.Now().Before(user.ResetOTPExpiresAt)
}

// generateOTP returns a uniformly random 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

package dto

// ForgotPasswordRequest represents a password-reset OTP request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents an OTP verification request
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest represents a password reset request
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

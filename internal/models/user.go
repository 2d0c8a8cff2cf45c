package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"CARTOPIA_BACK-END/internal/cart"
)

// User represents a user in the system
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"` // Hidden from JSON responses
	CartData     cart.Cart     `bson:"cart_data" json:"cart_data"`

	// Password-reset state. Both fields are set together on a reset request
	// and cleared together when the reset completes. A pending reset is
	// signalled by a non-empty ResetOTP.
	ResetOTP          string    `bson:"reset_otp,omitempty" json:"-"`
	ResetOTPExpiresAt time.Time `bson:"reset_otp_expires_at,omitempty" json:"-"`

	// Version is bumped on every save; updates compare-and-swap on it so a
	// concurrent login cannot silently drop a cart merge.
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasPendingReset reports whether a reset OTP is currently stored.
func (u *User) HasPendingReset() bool {
	return u.ResetOTP != ""
}

// ClearResetOTP removes the stored OTP state.
func (u *User) ClearResetOTP() {
	u.ResetOTP = ""
	u.ResetOTPExpiresAt = time.Time{}
}

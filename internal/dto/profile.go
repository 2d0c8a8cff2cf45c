package dto

// ProfileUser is the projection of a user returned by the profile endpoints.
type ProfileUser struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"` // RFC3339
	UpdatedAt string `json:"updated_at"` // RFC3339
}

// ProfileResponse wraps the profile projection in the uniform envelope.
type ProfileResponse struct {
	Success bool        `json:"success"`
	User    ProfileUser `json:"user"`
	Message string      `json:"message,omitempty"`
}

// ProfileUpdateRequest carries the updatable profile fields. Empty fields
// are left unchanged.
type ProfileUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

package dto

import "github.com/portalbase/portal-be/internal/models"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string         `json:"message"`
	User    models.Summary `json:"user"`
}

// UpdateProfileRequest carries the optional fields of a profile update.
// Password is a pointer so "absent" and "empty" stay distinguishable.
type UpdateProfileRequest struct {
	Name     string  `json:"name"`
	Password *string `json:"password,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

package dto

import "time"

// SignupRequest payload for POST /auth/signup-request.
type SignupRequest struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// SignupVerifyRequest payload for POST /auth/signup-verify.
type SignupVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// UserResponse is the public view of a profile.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse carries the issued token pair.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

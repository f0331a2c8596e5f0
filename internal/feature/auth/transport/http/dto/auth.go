// Package dto defines data transfer objects for the auth HTTP API.
package dto

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the signed access token after a login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the body of GET /me.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

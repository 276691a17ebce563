package dto

import (
	"time"

	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/infrastructure/auth"
)

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResponse combines the authenticated user with their tokens
type LoginResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

// NewTokenResponse converts a token pair to its response form
func NewTokenResponse(tokens *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           tokens.AccessToken,
		RefreshToken:          tokens.RefreshToken,
		AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
		TokenType:             tokens.TokenType,
	}
}

// UserResponse is the public view of a user. The password hash and the
// raw Telegram chat ID never leave the server through this shape.
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	RoleLabel   string     `json:"role_label"`
	HasTelegram bool       `json:"has_telegram"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUserResponse converts a user to its response form
func NewUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role.String(),
		RoleLabel:   user.Role.Label(),
		HasTelegram: user.TelegramChatID != "",
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// NewUserResponseList converts a slice of users
func NewUserResponseList(users []*identity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

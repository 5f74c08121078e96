package response_models

import (
	"time"

	"mindcare/internal/models/db_models"
)

type AccountResponse struct {
	ID          string                `json:"id"`
	Username    string                `json:"username"`
	Email       string                `json:"email"`
	Role        string                `json:"role"`
	Preferences db_models.Preferences `json:"preferences"`
	CreatedAt   int64                 `json:"created_at"`
}

func NewAccountResponse(a *db_models.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID.String(),
		Username:    a.Username,
		Email:       a.Email,
		Role:        string(a.Role),
		Preferences: a.Preferences.Data(),
		CreatedAt:   a.CreatedAt,
	}
}

type TokenPair struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	RefreshToken    string    `json:"refresh_token"`
}

type AuthResponse struct {
	TokenPair
	User AccountResponse `json:"user"`
}

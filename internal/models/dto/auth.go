package dto

import "choreboard/internal/models"

// TokenResponse is returned by the token endpoint for non-browser clients.
type TokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

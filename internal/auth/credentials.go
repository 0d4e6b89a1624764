// Package auth implements credential verification and token issuing.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"choreboard/internal/models"
	"choreboard/internal/storage"
)

// ErrInvalidCredentials is returned for both an unknown username and a
// wrong password, so a caller cannot tell which check failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials handles registration and password verification against a
// user store.
type Credentials struct {
	store storage.UserStore
}

// NewCredentials constructs a credential service backed by the given store.
func NewCredentials(store storage.UserStore) *Credentials {
	return &Credentials{store: store}
}

// Register hashes the password and persists the new user. The plaintext
// password is never stored. Duplicate usernames surface as
// storage.ErrAlreadyExists.
func (c *Credentials) Register(ctx context.Context, username, password, role string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	return c.store.CreateUser(ctx, user)
}

// Verify looks up the user and compares the password against the stored
// hash. Both failure modes return ErrInvalidCredentials.
func (c *Credentials) Verify(ctx context.Context, username, password string) (models.User, error) {
	user, err := c.store.FindUser(ctx, username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Generate(models.User{Username: "bob", Role: models.RoleOrganizer})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, models.RoleOrganizer, claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate(models.User{Username: "bob"})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Generate(models.User{Username: "bob"})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

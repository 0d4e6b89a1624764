package storage

import (
	"context"
	"errors"

	"choreboard/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrNotCompleted indicates a chore cannot be deleted because it is still pending.
var ErrNotCompleted = errors.New("chore is not completed")

// UserStore captures user persistence operations needed by the credential layer.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUser(ctx context.Context, username string) (models.User, error)
}

// ChoreStore captures chore persistence operations needed by handlers.
// Implementations assign ids from a monotonic counter so that ids are
// never reused after a delete.
type ChoreStore interface {
	CreateChore(ctx context.Context, chore models.Chore) (models.Chore, error)
	ListChores(ctx context.Context) ([]models.Chore, error)
	CompleteChore(ctx context.Context, id int64) (models.Chore, error)
	DeleteChore(ctx context.Context, id int64) error
}

// Store bundles both record types behind one swappable backend.
type Store interface {
	UserStore
	ChoreStore
	Close() error
}

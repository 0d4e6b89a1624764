// Package memory provides the default process-resident implementation of
// storage.Store. All state is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"choreboard/internal/models"
	"choreboard/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store keeps users and chores in memory. A single mutex guards both
// collections, so the duplicate-username check and the insert happen
// atomically even under concurrent registrations.
type Store struct {
	mu     sync.RWMutex
	users  map[string]models.User
	chores []models.Chore
	nextID int64
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		users:  make(map[string]models.User),
		nextID: 1,
	}
}

// Close is a no-op for the in-memory backend.
func (s *Store) Close() error { return nil }

// CreateUser inserts a new user, failing on duplicate usernames.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.Username] = user
	return user, nil
}

// FindUser fetches a user by username.
func (s *Store) FindUser(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// CreateChore assigns the next id from the counter and appends the chore.
// The counter only moves forward, so ids stay unique after deletions.
func (s *Store) CreateChore(_ context.Context, chore models.Chore) (models.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chore.ID = s.nextID
	s.nextID++
	chore.Completed = false
	s.chores = append(s.chores, chore)
	return chore, nil
}

// ListChores returns all chores in insertion order.
func (s *Store) ListChores(_ context.Context) ([]models.Chore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Chore, len(s.chores))
	copy(out, s.chores)
	return out, nil
}

// CompleteChore marks the chore completed. Completion is one-way; calling
// it on an already completed chore leaves it completed.
func (s *Store) CompleteChore(_ context.Context, id int64) (models.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.chores {
		if s.chores[i].ID == id {
			s.chores[i].Completed = true
			return s.chores[i], nil
		}
	}
	return models.Chore{}, storage.ErrNotFound
}

// DeleteChore removes a chore, but only once it has been completed.
func (s *Store) DeleteChore(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.chores {
		if s.chores[i].ID != id {
			continue
		}
		if !s.chores[i].Completed {
			return storage.ErrNotCompleted
		}
		s.chores = append(s.chores[:i], s.chores[i+1:]...)
		return nil
	}
	return storage.ErrNotFound
}

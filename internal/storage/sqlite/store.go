// Package sqlite provides a SQLite-backed implementation of the storage.Store
// interface using the pure Go driver (no CGO).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"choreboard/internal/models"
	"choreboard/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user, failing on duplicate usernames.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", user.Username,
	).Scan(&exists)
	if err != nil {
		return models.User{}, fmt.Errorf("check user: %w", err)
	}
	if exists > 0 {
		return models.User{}, storage.ErrAlreadyExists
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)",
		user.Username, user.PasswordHash, user.Role, user.CreatedAt.Unix(),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// FindUser fetches a user by username.
func (s *Store) FindUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT username, password_hash, role, created_at FROM users WHERE username = ?",
		username,
	).Scan(&user.Username, &user.PasswordHash, &user.Role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0)
	return user, nil
}

// CreateChore inserts a chore. AUTOINCREMENT keeps ids monotonic, so ids
// are never reused after deletions.
func (s *Store) CreateChore(ctx context.Context, chore models.Chore) (models.Chore, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO chores (title, assigned_to, completed, created_by) VALUES (?, ?, 0, ?)",
		chore.Title, chore.AssignedTo, chore.CreatedBy,
	)
	if err != nil {
		return models.Chore{}, fmt.Errorf("create chore: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Chore{}, fmt.Errorf("chore id: %w", err)
	}
	chore.ID = id
	chore.Completed = false
	return chore, nil
}

// ListChores returns all chores in insertion order.
func (s *Store) ListChores(ctx context.Context) ([]models.Chore, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, assigned_to, completed, created_by FROM chores ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	chores := make([]models.Chore, 0)
	for rows.Next() {
		var chore models.Chore
		if err := rows.Scan(&chore.ID, &chore.Title, &chore.AssignedTo, &chore.Completed, &chore.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, chore)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chores: %w", err)
	}
	return chores, nil
}

// CompleteChore marks a chore completed and returns the updated row.
func (s *Store) CompleteChore(ctx context.Context, id int64) (models.Chore, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE chores SET completed = 1 WHERE id = ?", id)
	if err != nil {
		return models.Chore{}, fmt.Errorf("complete chore: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Chore{}, fmt.Errorf("complete chore: %w", err)
	}
	if affected == 0 {
		return models.Chore{}, storage.ErrNotFound
	}
	return s.getChore(ctx, id)
}

// DeleteChore removes a chore, but only once it has been completed.
func (s *Store) DeleteChore(ctx context.Context, id int64) error {
	chore, err := s.getChore(ctx, id)
	if err != nil {
		return err
	}
	if !chore.Completed {
		return storage.ErrNotCompleted
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chores WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}
	return nil
}

func (s *Store) getChore(ctx context.Context, id int64) (models.Chore, error) {
	var chore models.Chore
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, assigned_to, completed, created_by FROM chores WHERE id = ?", id,
	).Scan(&chore.ID, &chore.Title, &chore.AssignedTo, &chore.Completed, &chore.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chore{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Chore{}, fmt.Errorf("get chore: %w", err)
	}
	return chore, nil
}

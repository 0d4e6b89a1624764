// Package postgres provides a Postgres-backed implementation of storage.Store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"choreboard/internal/models"
	"choreboard/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for users and chores.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'member',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS chores (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			assigned_to TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_by TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING username, password_hash, role, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.Username, user.PasswordHash, user.Role)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindUser fetches a user by username.
func (s *Store) FindUser(ctx context.Context, username string) (models.User, error) {
	const query = `
		SELECT username, password_hash, role, created_at
		FROM users
		WHERE username = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// CreateChore inserts a chore; the id comes from a BIGSERIAL sequence, so
// ids stay unique even after rows are deleted.
func (s *Store) CreateChore(ctx context.Context, chore models.Chore) (models.Chore, error) {
	const query = `
		INSERT INTO chores (title, assigned_to, completed, created_by)
		VALUES ($1, $2, FALSE, $3)
		RETURNING id, title, assigned_to, completed, created_by;
	`
	row := s.pool.QueryRow(ctx, query, chore.Title, chore.AssignedTo, chore.CreatedBy)
	return scanChore(row)
}

// ListChores returns all chores in insertion order.
func (s *Store) ListChores(ctx context.Context) ([]models.Chore, error) {
	const query = `
		SELECT id, title, assigned_to, completed, created_by
		FROM chores
		ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query)
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
	const query = `
		UPDATE chores SET completed = TRUE
		WHERE id = $1
		RETURNING id, title, assigned_to, completed, created_by;
	`
	return scanChore(s.pool.QueryRow(ctx, query, id))
}

// DeleteChore removes a chore, but only once it has been completed.
func (s *Store) DeleteChore(ctx context.Context, id int64) error {
	var completed bool
	err := s.pool.QueryRow(ctx, `SELECT completed FROM chores WHERE id = $1;`, id).Scan(&completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check chore: %w", err)
	}
	if !completed {
		return storage.ErrNotCompleted
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM chores WHERE id = $1 AND completed;`, id)
	if err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanChore(row pgx.Row) (models.Chore, error) {
	var chore models.Chore
	if err := row.Scan(&chore.ID, &chore.Title, &chore.AssignedTo, &chore.Completed, &chore.CreatedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Chore{}, storage.ErrNotFound
		}
		return models.Chore{}, err
	}
	return chore, nil
}

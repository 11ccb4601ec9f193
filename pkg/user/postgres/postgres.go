package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cartflow/pkg/user"
)

// Repository persists users in PostgreSQL.
type Repository struct {
	db *sqlx.DB
}

// New creates a PostgreSQL repository. The caller must ensure the users
// table exists:
// CREATE TABLE IF NOT EXISTS users (id TEXT PRIMARY KEY, username TEXT UNIQUE,
// password_hash TEXT, is_admin BOOLEAN);
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id,username,password_hash,is_admin) VALUES ($1,$2,$3,$4)",
		u.ID, u.Username, u.PasswordHash, u.IsAdmin)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return user.ErrDuplicate
	}
	return err
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User
	err := r.db.GetContext(ctx, &u,
		"SELECT id,username,password_hash,is_admin FROM users WHERE username=$1", username)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	return u, err
}

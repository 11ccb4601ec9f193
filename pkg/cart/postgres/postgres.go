package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cartflow/pkg/cart"
)

// Repository persists carts in PostgreSQL.
type Repository struct {
	db *sqlx.DB
}

// New creates a PostgreSQL repository. The caller must ensure the carts
// table exists:
// CREATE TABLE IF NOT EXISTS carts (id TEXT PRIMARY KEY, user_id TEXT UNIQUE);
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new cart.
func (r *Repository) Create(ctx context.Context, c cart.Cart) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO carts (id,user_id) VALUES ($1,$2)", c.ID, c.UserID)
	if isUniqueViolation(err) {
		return cart.ErrDuplicate
	}
	return err
}

// Get retrieves a cart by ID.
func (r *Repository) Get(ctx context.Context, id string) (cart.Cart, error) {
	var c cart.Cart
	err := r.db.GetContext(ctx, &c, "SELECT id,user_id FROM carts WHERE id=$1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return cart.Cart{}, cart.ErrNotFound
	}
	return c, err
}

// GetByUser retrieves the cart owned by the user.
func (r *Repository) GetByUser(ctx context.Context, userID string) (cart.Cart, error) {
	var c cart.Cart
	err := r.db.GetContext(ctx, &c, "SELECT id,user_id FROM carts WHERE user_id=$1", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return cart.Cart{}, cart.ErrNotFound
	}
	return c, err
}

// Update replaces an existing cart.
func (r *Repository) Update(ctx context.Context, c cart.Cart) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE carts SET user_id=$2 WHERE id=$1", c.ID, c.UserID)
	if isUniqueViolation(err) {
		return cart.ErrDuplicate
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cart.ErrNotFound
	}
	return nil
}

// Delete removes a cart by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM carts WHERE id=$1", id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

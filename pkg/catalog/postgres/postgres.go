package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cartflow/pkg/catalog"
)

// Repository persists catalog items in PostgreSQL.
type Repository struct {
	db *sqlx.DB
}

// New creates a PostgreSQL repository. The caller must ensure the items
// table exists:
// CREATE TABLE IF NOT EXISTS items (id TEXT PRIMARY KEY, product_id TEXT UNIQUE,
// product_title TEXT, quantity INT, description TEXT, price NUMERIC);
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new item.
func (r *Repository) Create(ctx context.Context, it catalog.Item) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO items (id,product_id,product_title,quantity,description,price) VALUES ($1,$2,$3,$4,$5,$6)",
		it.ID, it.ProductID, it.ProductTitle, it.Quantity, it.Description, it.Price)
	if isUniqueViolation(err) {
		return catalog.ErrDuplicate
	}
	return err
}

// Get retrieves an item by ID.
func (r *Repository) Get(ctx context.Context, id string) (catalog.Item, error) {
	var it catalog.Item
	err := r.db.GetContext(ctx, &it,
		"SELECT id,product_id,product_title,quantity,description,price FROM items WHERE id=$1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Item{}, catalog.ErrNotFound
	}
	return it, err
}

// GetByProductID retrieves an item by its product code.
func (r *Repository) GetByProductID(ctx context.Context, productID string) (catalog.Item, error) {
	var it catalog.Item
	err := r.db.GetContext(ctx, &it,
		"SELECT id,product_id,product_title,quantity,description,price FROM items WHERE product_id=$1", productID)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Item{}, catalog.ErrNotFound
	}
	return it, err
}

// List fetches all items.
func (r *Repository) List(ctx context.Context) ([]catalog.Item, error) {
	var items []catalog.Item
	err := r.db.SelectContext(ctx, &items,
		"SELECT id,product_id,product_title,quantity,description,price FROM items")
	return items, err
}

// Update replaces an existing item.
func (r *Repository) Update(ctx context.Context, it catalog.Item) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE items SET product_id=$2, product_title=$3, quantity=$4, description=$5, price=$6 WHERE id=$1",
		it.ID, it.ProductID, it.ProductTitle, it.Quantity, it.Description, it.Price)
	if isUniqueViolation(err) {
		return catalog.ErrDuplicate
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Adjust applies delta to the item's quantity in a single guarded UPDATE, so
// concurrent adjustments cannot drive stock negative.
func (r *Repository) Adjust(ctx context.Context, productID string, delta int) (catalog.Item, error) {
	var it catalog.Item
	err := r.db.GetContext(ctx, &it,
		`UPDATE items SET quantity = quantity + $2
		 WHERE product_id=$1 AND quantity + $2 >= 0
		 RETURNING id,product_id,product_title,quantity,description,price`,
		productID, delta)
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish a missing item from a guard rejection.
		if _, gerr := r.GetByProductID(ctx, productID); gerr != nil {
			return catalog.Item{}, gerr
		}
		return catalog.Item{}, catalog.ErrInsufficientStock
	}
	if err != nil {
		return catalog.Item{}, fmt.Errorf("adjust %s: %w", productID, err)
	}
	return it, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

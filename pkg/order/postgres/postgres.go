package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cartflow/pkg/order"
)

// Repository persists orders in PostgreSQL. Line items are stored as a JSONB
// column so each order stays a single document and every update is atomic.
type Repository struct {
	db *sqlx.DB
}

// New creates a PostgreSQL repository. The caller must ensure the orders
// table exists:
// CREATE TABLE IF NOT EXISTS orders (id TEXT PRIMARY KEY, cart_id TEXT, items JSONB);
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type row struct {
	ID     string `db:"id"`
	CartID string `db:"cart_id"`
	Items  []byte `db:"items"`
}

func (rw row) toOrder() (order.Order, error) {
	o := order.Order{ID: rw.ID, CartID: rw.CartID, Items: order.Lines{}}
	if len(rw.Items) > 0 {
		if err := json.Unmarshal(rw.Items, &o.Items); err != nil {
			return order.Order{}, fmt.Errorf("decode items for order %s: %w", rw.ID, err)
		}
	}
	return o, nil
}

// Create inserts a new order.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO orders (id,cart_id,items) VALUES ($1,$2,$3)", o.ID, o.CartID, items)
	return err
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	var rw row
	err := r.db.GetContext(ctx, &rw, "SELECT id,cart_id,items FROM orders WHERE id=$1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, err
	}
	return rw.toOrder()
}

// ListByCart fetches all orders belonging to the cart.
func (r *Repository) ListByCart(ctx context.Context, cartID string) ([]order.Order, error) {
	var rows []row
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT id,cart_id,items FROM orders WHERE cart_id=$1", cartID); err != nil {
		return nil, err
	}
	orders := make([]order.Order, 0, len(rows))
	for _, rw := range rows {
		o, err := rw.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// SetItems replaces the order's line items in a single UPDATE and returns the
// updated order.
func (r *Repository) SetItems(ctx context.Context, id string, items order.Lines) (order.Order, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return order.Order{}, err
	}
	var rw row
	err = r.db.GetContext(ctx, &rw,
		"UPDATE orders SET items=$2 WHERE id=$1 RETURNING id,cart_id,items", id, encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, err
	}
	return rw.toOrder()
}

// Delete removes an order and returns the deleted document.
func (r *Repository) Delete(ctx context.Context, id string) (order.Order, error) {
	var rw row
	err := r.db.GetContext(ctx, &rw,
		"DELETE FROM orders WHERE id=$1 RETURNING id,cart_id,items", id)
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, err
	}
	return rw.toOrder()
}

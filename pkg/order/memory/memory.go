// Package memory implements an in-memory order repository.
package memory

import (
	"context"
	"sync"

	"cartflow/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]order.Order
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{orders: make(map[string]order.Order)}
}

// Create stores the order.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = clone(o)
	return nil
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return clone(o), nil
}

// ListByCart returns all orders belonging to the cart.
func (r *Repository) ListByCart(ctx context.Context, cartID string) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []order.Order
	for _, o := range r.orders {
		if o.CartID == cartID {
			out = append(out, clone(o))
		}
	}
	return out, nil
}

// SetItems replaces the order's line items and returns the updated order.
func (r *Repository) SetItems(ctx context.Context, id string, items order.Lines) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	o.Items = items
	r.orders[id] = clone(o)
	return clone(o), nil
}

// Delete removes an order and returns the deleted document.
func (r *Repository) Delete(ctx context.Context, id string) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	delete(r.orders, id)
	return o, nil
}

// clone copies the order so callers cannot alias the stored line items.
func clone(o order.Order) order.Order {
	items := make(order.Lines, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

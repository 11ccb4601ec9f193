// Package memory implements an in-memory cart repository.
package memory

import (
	"context"
	"sync"

	"cartflow/pkg/cart"
)

// Repository provides an in-memory implementation of cart.Repository.
type Repository struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
	users map[string]string // user id -> cart id
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{
		carts: make(map[string]cart.Cart),
		users: make(map[string]string),
	}
}

// Create stores the cart. A user may own at most one cart.
func (r *Repository) Create(ctx context.Context, c cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[c.UserID]; ok {
		return cart.ErrDuplicate
	}
	r.carts[c.ID] = c
	r.users[c.UserID] = c.ID
	return nil
}

// Get retrieves a cart by ID.
func (r *Repository) Get(ctx context.Context, id string) (cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[id]
	if !ok {
		return cart.Cart{}, cart.ErrNotFound
	}
	return c, nil
}

// GetByUser retrieves the cart owned by the user.
func (r *Repository) GetByUser(ctx context.Context, userID string) (cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.users[userID]
	if !ok {
		return cart.Cart{}, cart.ErrNotFound
	}
	return r.carts[id], nil
}

// Update replaces an existing cart.
func (r *Repository) Update(ctx context.Context, c cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.carts[c.ID]
	if !ok {
		return cart.ErrNotFound
	}
	if old.UserID != c.UserID {
		if _, taken := r.users[c.UserID]; taken {
			return cart.ErrDuplicate
		}
		delete(r.users, old.UserID)
		r.users[c.UserID] = c.ID
	}
	r.carts[c.ID] = c
	return nil
}

// Delete removes a cart by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return cart.ErrNotFound
	}
	delete(r.carts, id)
	delete(r.users, c.UserID)
	return nil
}

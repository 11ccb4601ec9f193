// Package memory implements an in-memory catalog repository.
package memory

import (
	"context"
	"sync"

	"cartflow/pkg/catalog"
)

// Repository provides an in-memory implementation of catalog.Repository.
type Repository struct {
	mu    sync.RWMutex
	items map[string]catalog.Item
	codes map[string]string // product code -> item id
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{
		items: make(map[string]catalog.Item),
		codes: make(map[string]string),
	}
}

// Create stores the item. The product code must be unused.
func (r *Repository) Create(ctx context.Context, it catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.codes[it.ProductID]; ok {
		return catalog.ErrDuplicate
	}
	r.items[it.ID] = it
	r.codes[it.ProductID] = it.ID
	return nil
}

// Get retrieves an item by ID.
func (r *Repository) Get(ctx context.Context, id string) (catalog.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return catalog.Item{}, catalog.ErrNotFound
	}
	return it, nil
}

// GetByProductID retrieves an item by its product code.
func (r *Repository) GetByProductID(ctx context.Context, productID string) (catalog.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.codes[productID]
	if !ok {
		return catalog.Item{}, catalog.ErrNotFound
	}
	return r.items[id], nil
}

// List returns all items.
func (r *Repository) List(ctx context.Context) ([]catalog.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

// Update replaces an existing item.
func (r *Repository) Update(ctx context.Context, it catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.items[it.ID]
	if !ok {
		return catalog.ErrNotFound
	}
	if old.ProductID != it.ProductID {
		if _, taken := r.codes[it.ProductID]; taken {
			return catalog.ErrDuplicate
		}
		delete(r.codes, old.ProductID)
		r.codes[it.ProductID] = it.ID
	}
	r.items[it.ID] = it
	return nil
}

// Adjust applies delta to the item's quantity in one step.
func (r *Repository) Adjust(ctx context.Context, productID string, delta int) (catalog.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.codes[productID]
	if !ok {
		return catalog.Item{}, catalog.ErrNotFound
	}
	it := r.items[id]
	if it.Quantity+delta < 0 {
		return catalog.Item{}, catalog.ErrInsufficientStock
	}
	it.Quantity += delta
	r.items[id] = it
	return it, nil
}

// Package memory implements an in-memory user repository.
package memory

import (
	"context"
	"sync"

	"cartflow/pkg/user"
)

// Repository provides an in-memory implementation of user.Repository.
type Repository struct {
	mu    sync.RWMutex
	users map[string]user.User // keyed by username
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{users: make(map[string]user.User)}
}

// Create stores the user. Usernames are unique.
func (r *Repository) Create(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return user.ErrDuplicate
	}
	r.users[u.Username] = u
	return nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

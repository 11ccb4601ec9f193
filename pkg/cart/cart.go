// Package cart groups a user's orders. Each user owns at most one cart;
// orders reference their cart by identifier only.
package cart

import (
	"context"
	"errors"
)

// Cart represents a user's order grouping.
type Cart struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"userID" db:"user_id"`
}

// Repository defines behavior for persisting carts.
type Repository interface {
	Create(ctx context.Context, c Cart) error
	Get(ctx context.Context, id string) (Cart, error)
	GetByUser(ctx context.Context, userID string) (Cart, error)
	Update(ctx context.Context, c Cart) error
	Delete(ctx context.Context, id string) error
}

// ErrNotFound indicates the requested cart does not exist.
var ErrNotFound = errors.New("cart not found")

// ErrDuplicate indicates the user already owns a cart. Callers treat this as
// success-with-existing-resource and fetch the existing cart.
var ErrDuplicate = errors.New("cart already exists for user")

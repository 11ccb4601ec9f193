// Package catalog defines the shared product catalog. An item's quantity is
// the stock not yet reserved by any order.
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Item represents a product in the catalog.
type Item struct {
	ID           string          `json:"id" db:"id"`
	ProductID    string          `json:"productID" db:"product_id"`
	ProductTitle string          `json:"productTitle" db:"product_title"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
}

// Repository defines behavior for persisting catalog items.
type Repository interface {
	Create(ctx context.Context, it Item) error
	Get(ctx context.Context, id string) (Item, error)
	GetByProductID(ctx context.Context, productID string) (Item, error)
	List(ctx context.Context) ([]Item, error)
	Update(ctx context.Context, it Item) error

	// Adjust atomically applies delta to the item's available quantity.
	// A delta that would drive the quantity below zero fails with
	// ErrInsufficientStock and leaves the item unchanged.
	Adjust(ctx context.Context, productID string, delta int) (Item, error)
}

// ErrNotFound indicates the requested item does not exist.
var ErrNotFound = errors.New("item not found")

// ErrDuplicate indicates the product code is already taken.
var ErrDuplicate = errors.New("duplicate product code")

// ErrInsufficientStock indicates an adjustment would leave negative stock.
var ErrInsufficientStock = errors.New("insufficient stock")

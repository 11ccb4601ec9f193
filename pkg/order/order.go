// Package order defines the order aggregate. An order owns its line items by
// value; each line item is a snapshot of a catalog item taken when the
// product first entered the order, with Quantity reinterpreted as the units
// this order reserves.
package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"cartflow/pkg/catalog"
)

// LineItem is one product entry inside an order.
type LineItem struct {
	ProductID    string          `json:"productID"`
	ProductTitle string          `json:"productTitle"`
	Quantity     int             `json:"quantity"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
}

// Lines is an order's line-item sequence, newest first.
type Lines []LineItem

// Locate returns the index of the line for productID, or -1. If historical
// data holds duplicate lines for a product, the last one is authoritative.
func (l Lines) Locate(productID string) int {
	idx := -1
	for i := range l {
		if l[i].ProductID == productID {
			idx = i
		}
	}
	return idx
}

// Add merges qty into the product's existing line, keeping its position, or
// prepends a snapshot of src with Quantity set to qty. The receiver is left
// unmodified.
func (l Lines) Add(productID string, qty int, src catalog.Item) Lines {
	out := make(Lines, len(l))
	copy(out, l)
	if i := out.Locate(productID); i >= 0 {
		out[i].Quantity += qty
		return out
	}
	li := LineItem{
		ProductID:    src.ProductID,
		ProductTitle: src.ProductTitle,
		Quantity:     qty,
		Description:  src.Description,
		Price:        src.Price,
	}
	return append(Lines{li}, out...)
}

// Remove subtracts up to qty units from the product's line, dropping the line
// when it reaches zero, and reports how many units were actually removed.
// The receiver is left unmodified.
func (l Lines) Remove(productID string, qty int) (Lines, int) {
	i := l.Locate(productID)
	if i < 0 {
		return l, 0
	}
	out := make(Lines, len(l))
	copy(out, l)
	removed := qty
	if removed > out[i].Quantity {
		removed = out[i].Quantity
	}
	out[i].Quantity -= removed
	if out[i].Quantity == 0 {
		out = append(out[:i], out[i+1:]...)
	}
	return out, removed
}

// Order represents a customer order. CartID is a weak reference to the
// owning cart.
type Order struct {
	ID     string `json:"id"`
	CartID string `json:"cartID"`
	Items  Lines  `json:"items"`
}

// Repository defines behavior for persisting orders. Each operation is
// atomic for the single order document it touches.
type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	ListByCart(ctx context.Context, cartID string) ([]Order, error)
	// SetItems replaces the order's line-item sequence and returns the
	// updated order.
	SetItems(ctx context.Context, id string, items Lines) (Order, error)
	// Delete removes the order and returns the deleted document.
	Delete(ctx context.Context, id string) (Order, error)
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")

// ErrLineNotFound indicates the order holds no line for the product.
var ErrLineNotFound = errors.New("line item not found")

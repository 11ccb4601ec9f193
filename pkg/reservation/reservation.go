// Package reservation coordinates stock movement between the catalog and
// orders. Adding a product to an order is a two-phase update: the order's
// line items change first, then the catalog quantity is adjusted by the same
// amount. The two writes are not covered by a transaction, so the coordinator
// serializes mutations per order and names the stage that failed.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"cartflow/pkg/catalog"
	"cartflow/pkg/logger"
	"cartflow/pkg/order"
)

// ErrValidation indicates the requested quantity is not a positive integer.
var ErrValidation = errors.New("quantity must be a positive integer")

// ErrOrderUpdate indicates the order write failed; the catalog was not
// touched.
var ErrOrderUpdate = errors.New("order update failed")

// ErrItemUpdate indicates the catalog write failed after the order was
// already mutated. Reserved quantity now exceeds what was deducted from
// stock until an operator reconciles.
var ErrItemUpdate = errors.New("item update failed")

// Transient reads are retried this many times before giving up.
const readAttempts = 2

// Coordinator orchestrates reservations and restocks across the order and
// catalog stores.
type Coordinator struct {
	orders  order.Repository
	catalog catalog.Repository
	log     *logger.Logger

	mu    sync.Mutex
	locks map[string]*orderLock
}

// orderLock serializes one order's mutations. refs counts holders and
// waiters so the table entry can be reclaimed once nobody needs it.
type orderLock struct {
	mu   sync.Mutex
	refs int
}

// New constructs a coordinator over the given stores.
func New(orders order.Repository, cat catalog.Repository, log *logger.Logger) *Coordinator {
	return &Coordinator{
		orders:  orders,
		catalog: cat,
		log:     log,
		locks:   make(map[string]*orderLock),
	}
}

// CreateOrder creates an empty order owned by the cart.
func (c *Coordinator) CreateOrder(ctx context.Context, cartID string) (order.Order, error) {
	o := order.Order{ID: uuid.NewString(), CartID: cartID, Items: order.Lines{}}
	if err := c.orders.Create(ctx, o); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

// AddToOrder reserves qty units of the product for the order: the line items
// are merged first, then the catalog quantity is decremented by the same
// amount. The updated order is returned.
//
// Availability is checked before any write, so a request the catalog cannot
// cover is rejected without mutating state. The catalog decrement itself is a
// guarded atomic delta; if a concurrent reservation drains the stock between
// the check and the decrement, the failure surfaces as ErrItemUpdate with the
// order already holding the line.
func (c *Coordinator) AddToOrder(ctx context.Context, orderID, productID string, qty int) (order.Order, error) {
	if qty <= 0 {
		return order.Order{}, ErrValidation
	}
	defer c.lock(orderID)()

	o, err := c.getOrder(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}
	it, err := c.getItem(ctx, productID)
	if err != nil {
		return order.Order{}, err
	}
	if it.Quantity < qty {
		return order.Order{}, catalog.ErrInsufficientStock
	}

	updated, err := c.orders.SetItems(ctx, o.ID, o.Items.Add(productID, qty, it))
	if err != nil {
		return order.Order{}, fmt.Errorf("%w: %w", ErrOrderUpdate, err)
	}
	if _, err := c.catalog.Adjust(ctx, productID, -qty); err != nil {
		c.log.Error(ctx, "catalog decrement failed after order write",
			"order_id", orderID, "product_id", productID, "quantity", qty, "error", err)
		return updated, fmt.Errorf("%w: %w", ErrItemUpdate, err)
	}
	return updated, nil
}

// RemoveFromOrder releases up to qty units of the product from the order
// back to the catalog. The line is dropped when it reaches zero.
func (c *Coordinator) RemoveFromOrder(ctx context.Context, orderID, productID string, qty int) (order.Order, error) {
	if qty <= 0 {
		return order.Order{}, ErrValidation
	}
	defer c.lock(orderID)()

	o, err := c.getOrder(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}
	lines, removed := o.Items.Remove(productID, qty)
	if removed == 0 {
		return order.Order{}, order.ErrLineNotFound
	}

	updated, err := c.orders.SetItems(ctx, o.ID, lines)
	if err != nil {
		return order.Order{}, fmt.Errorf("%w: %w", ErrOrderUpdate, err)
	}
	if _, err := c.catalog.Adjust(ctx, productID, removed); err != nil {
		c.log.Error(ctx, "restock failed after order write",
			"order_id", orderID, "product_id", productID, "quantity", removed, "error", err)
		return updated, fmt.Errorf("%w: %w", ErrItemUpdate, err)
	}
	return updated, nil
}

// DeleteOrder removes the order and returns every reserved line's quantity
// to the catalog. The restock is a fan-out of independent per-product
// updates; a failure partway through is reported but the completed restocks
// are not rolled back.
func (c *Coordinator) DeleteOrder(ctx context.Context, orderID string) (order.Order, error) {
	defer c.lock(orderID)()

	o, err := c.orders.Delete(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}

	var restockErr error
	for _, li := range o.Items {
		if _, err := c.catalog.Adjust(ctx, li.ProductID, li.Quantity); err != nil {
			c.log.Error(ctx, "restock failed for deleted order",
				"order_id", orderID, "product_id", li.ProductID, "quantity", li.Quantity, "error", err)
			if restockErr == nil {
				restockErr = fmt.Errorf("%w: restock %s: %w", ErrItemUpdate, li.ProductID, err)
			}
		}
	}
	return o, restockErr
}

// Checkout removes the order without restocking: the reservation becomes a
// finalized sale.
func (c *Coordinator) Checkout(ctx context.Context, orderID string) (order.Order, error) {
	defer c.lock(orderID)()
	return c.orders.Delete(ctx, orderID)
}

// lock serializes mutating operations on a single order and returns the
// unlock function. The table entry is dropped once the last holder releases
// it, so the map stays bounded by in-flight operations.
func (c *Coordinator) lock(orderID string) func() {
	c.mu.Lock()
	l, ok := c.locks[orderID]
	if !ok {
		l = &orderLock{}
		c.locks[orderID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, orderID)
		}
		c.mu.Unlock()
	}
}

// getOrder loads the order, retrying transient store failures. Absence is a
// result, not a retryable failure.
func (c *Coordinator) getOrder(ctx context.Context, id string) (order.Order, error) {
	var o order.Order
	var err error
	for attempt := 0; attempt < readAttempts; attempt++ {
		o, err = c.orders.Get(ctx, id)
		if err == nil || errors.Is(err, order.ErrNotFound) || ctx.Err() != nil {
			break
		}
	}
	return o, err
}

func (c *Coordinator) getItem(ctx context.Context, productID string) (catalog.Item, error) {
	var it catalog.Item
	var err error
	for attempt := 0; attempt < readAttempts; attempt++ {
		it, err = c.catalog.GetByProductID(ctx, productID)
		if err == nil || errors.Is(err, catalog.ErrNotFound) || ctx.Err() != nil {
			break
		}
	}
	return it, err
}

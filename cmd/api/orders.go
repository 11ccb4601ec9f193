package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"cartflow/pkg/cart"
	"cartflow/pkg/catalog"
	"cartflow/pkg/order"
	"cartflow/pkg/otel"
	"cartflow/pkg/reservation"
)

// addRequest names a product and the quantity to reserve.
type addRequest struct {
	ProductID string `json:"productID"`
	Quantity  *int   `json:"quantity"`
}

// createOrderHandler creates an empty order in the session user's cart,
// creating the cart first if the user has none.
// @Summary Create order
// @Produce json
// @Success 201 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders [post]
func createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	userID := sessionUser(ctx)
	c, err := carts.GetByUser(ctx, userID)
	if err == cart.ErrNotFound {
		c = cart.Cart{ID: uuid.NewString(), UserID: userID}
		if cerr := carts.Create(ctx, c); cerr != nil && cerr != cart.ErrDuplicate {
			log.Error(ctx, "create cart", "error", cerr)
			respondError(w, http.StatusInternalServerError, "create order failed", "")
			return
		}
	} else if err != nil {
		log.Error(ctx, "get cart", "error", err)
		respondError(w, http.StatusInternalServerError, "create order failed", "")
		return
	}

	o, err := coordinator.CreateOrder(ctx, c.ID)
	if err != nil {
		log.Error(ctx, "create order", "error", err)
		respondError(w, http.StatusInternalServerError, "create order failed", "")
		return
	}
	respond(w, http.StatusCreated, o)
}

// listOrdersHandler lists the session user's orders.
// @Summary List orders
// @Produce json
// @Success 200 {array} order.Order
// @Security ApiKeyAuth
// @Router /orders [get]
func listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	c, err := carts.GetByUser(ctx, sessionUser(ctx))
	if err == cart.ErrNotFound {
		respond(w, http.StatusOK, []order.Order{})
		return
	}
	if err != nil {
		log.Error(ctx, "get cart", "error", err)
		respondError(w, http.StatusInternalServerError, "list orders failed", "")
		return
	}
	list, err := orders.ListByCart(ctx, c.ID)
	if err != nil {
		log.Error(ctx, "list orders", "error", err)
		respondError(w, http.StatusInternalServerError, "list orders failed", "")
		return
	}
	if list == nil {
		list = []order.Order{}
	}
	respond(w, http.StatusOK, list)
}

// getOrderHandler retrieves an order by ID.
// @Summary Get order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders/{id} [get]
func getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	o, err := orders.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondReservationError(ctx, w, "get order", err)
		return
	}
	respond(w, http.StatusOK, o)
}

// addToOrderHandler reserves catalog stock into the order.
// @Summary Add product to order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param line body addRequest true "Product and quantity"
// @Success 200 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders/{id} [put]
func addToOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addToOrderHandler")
	defer span.End()

	var req addRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	if req.ProductID == "" || req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "validation failed", "productID and quantity are required")
		return
	}
	o, err := coordinator.AddToOrder(ctx, mux.Vars(r)["id"], req.ProductID, *req.Quantity)
	if err != nil {
		respondReservationError(ctx, w, "add to order", err)
		return
	}
	respond(w, http.StatusOK, o)
}

// removeLineHandler releases reserved units of a product back to the
// catalog.
// @Summary Remove product from order
// @Produce json
// @Param id path string true "Order ID"
// @Param productID path string true "Product code"
// @Param quantity query int true "Units to release"
// @Success 200 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders/{id}/items/{productID} [delete]
func removeLineHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeLineHandler")
	defer span.End()

	vars := mux.Vars(r)
	qty, err := queryInt(r, "quantity")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation failed", "quantity must be an integer")
		return
	}
	o, err := coordinator.RemoveFromOrder(ctx, vars["id"], vars["productID"], qty)
	if err != nil {
		respondReservationError(ctx, w, "remove from order", err)
		return
	}
	respond(w, http.StatusOK, o)
}

// deleteOrderHandler cancels the order and returns its reservations to the
// catalog.
// @Summary Delete order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders/{id} [delete]
func deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteOrderHandler")
	defer span.End()

	o, err := coordinator.DeleteOrder(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondReservationError(ctx, w, "delete order", err)
		return
	}
	respond(w, http.StatusOK, o)
}

// respondReservationError maps coordinator errors onto HTTP statuses. The
// update-stage failures keep their stage name in the body so an operator can
// reconcile the stores.
func respondReservationError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch {
	// The stage sentinels wrap their cause, so they must be checked before
	// the catalog sentinels: a failed catalog write stays an item-update
	// failure even when the cause was insufficient stock.
	case errors.Is(err, reservation.ErrOrderUpdate):
		log.Error(ctx, op, "error", err)
		respondError(w, http.StatusInternalServerError, "order update failed", "")
	case errors.Is(err, reservation.ErrItemUpdate):
		log.Error(ctx, op, "error", err)
		respondError(w, http.StatusInternalServerError, "item update failed", "")
	case errors.Is(err, order.ErrNotFound):
		respondError(w, http.StatusNotFound, "order not found", "")
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "item not found", "")
	case errors.Is(err, order.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "line item not found", "")
	case errors.Is(err, reservation.ErrValidation):
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, catalog.ErrInsufficientStock):
		respondError(w, http.StatusUnprocessableEntity, "insufficient stock", "")
	default:
		log.Error(ctx, op, "error", err)
		respondError(w, http.StatusInternalServerError, op+" failed", "")
	}
}

func queryInt(r *http.Request, key string) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(key))
}

// checkoutHandler finalizes the order without restocking.
// @Summary Checkout order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders/{id}/checkout [delete]
func checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "checkoutHandler")
	defer span.End()

	o, err := coordinator.Checkout(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondReservationError(ctx, w, "checkout", err)
		return
	}
	respond(w, http.StatusOK, o)
}

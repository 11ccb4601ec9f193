package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"cartflow/pkg/cart"
	"cartflow/pkg/otel"
)

// createCartHandler creates the session user's cart. If the user already
// owns a cart, the existing one is returned instead of an error.
// @Summary Create cart
// @Produce json
// @Success 201 {object} cart.Cart
// @Success 200 {object} cart.Cart "cart already exists"
// @Security ApiKeyAuth
// @Router /carts [post]
func createCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createCartHandler")
	defer span.End()

	c := cart.Cart{ID: uuid.NewString(), UserID: sessionUser(ctx)}
	err := carts.Create(ctx, c)
	if err == cart.ErrDuplicate {
		existing, gerr := carts.GetByUser(ctx, c.UserID)
		if gerr != nil {
			log.Error(ctx, "fetch existing cart", "error", gerr)
			respondError(w, http.StatusInternalServerError, "create cart failed", "")
			return
		}
		respond(w, http.StatusOK, existing)
		return
	}
	if err != nil {
		log.Error(ctx, "create cart", "error", err)
		respondError(w, http.StatusInternalServerError, "create cart failed", "")
		return
	}
	respond(w, http.StatusCreated, c)
}

// getCartHandler retrieves a cart by ID.
// @Summary Get cart
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} cart.Cart
// @Security ApiKeyAuth
// @Router /carts/{id} [get]
func getCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCartHandler")
	defer span.End()

	c, err := carts.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		if err == cart.ErrNotFound {
			respondError(w, http.StatusNotFound, "cart not found", "")
			return
		}
		log.Error(ctx, "get cart", "error", err)
		respondError(w, http.StatusInternalServerError, "get cart failed", "")
		return
	}
	respond(w, http.StatusOK, c)
}

// updateCartHandler reassigns a cart's owner.
// @Summary Update cart
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param cart body cart.Cart true "Cart"
// @Success 200 {object} cart.Cart
// @Security ApiKeyAuth
// @Router /carts/{id} [put]
func updateCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateCartHandler")
	defer span.End()

	var c cart.Cart
	if err := decodeJSON(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	c.ID = mux.Vars(r)["id"]
	if err := carts.Update(ctx, c); err != nil {
		switch err {
		case cart.ErrNotFound:
			respondError(w, http.StatusNotFound, "cart not found", "")
		case cart.ErrDuplicate:
			respondError(w, http.StatusConflict, "cart already exists for user", "")
		default:
			log.Error(ctx, "update cart", "error", err)
			respondError(w, http.StatusInternalServerError, "update cart failed", "")
		}
		return
	}
	respond(w, http.StatusOK, c)
}

// deleteCartHandler removes a cart.
// @Summary Delete cart
// @Param id path string true "Cart ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /carts/{id} [delete]
func deleteCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteCartHandler")
	defer span.End()

	if err := carts.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		if err == cart.ErrNotFound {
			respondError(w, http.StatusNotFound, "cart not found", "")
			return
		}
		log.Error(ctx, "delete cart", "error", err)
		respondError(w, http.StatusInternalServerError, "delete cart failed", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"cartflow/pkg/catalog"
	"cartflow/pkg/otel"
)

// itemRequest carries catalog item fields for create and update.
type itemRequest struct {
	ProductID    string           `json:"productID"`
	ProductTitle string           `json:"productTitle"`
	Quantity     *int             `json:"quantity"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price"`
}

// createItemHandler adds an item to the catalog.
// @Summary Create item
// @Accept json
// @Produce json
// @Param item body itemRequest true "Item"
// @Success 201 {object} catalog.Item
// @Security ApiKeyAuth
// @Router /items [post]
func createItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createItemHandler")
	defer span.End()

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	if req.ProductID == "" || req.Quantity == nil || *req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "validation failed", "productID and a non-negative quantity are required")
		return
	}
	it := catalog.Item{
		ID:           uuid.NewString(),
		ProductID:    req.ProductID,
		ProductTitle: req.ProductTitle,
		Quantity:     *req.Quantity,
		Description:  req.Description,
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			respondError(w, http.StatusBadRequest, "validation failed", "price must be >= 0")
			return
		}
		it.Price = *req.Price
	}
	if err := items.Create(ctx, it); err != nil {
		if err == catalog.ErrDuplicate {
			respondError(w, http.StatusConflict, "duplicate product code", "")
			return
		}
		log.Error(ctx, "create item", "error", err)
		respondError(w, http.StatusInternalServerError, "create item failed", "")
		return
	}
	respond(w, http.StatusCreated, it)
}

// listItemsHandler lists catalog items.
// @Summary List items
// @Produce json
// @Success 200 {array} catalog.Item
// @Security ApiKeyAuth
// @Router /items [get]
func listItemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listItemsHandler")
	defer span.End()

	list, err := items.List(ctx)
	if err != nil {
		log.Error(ctx, "list items", "error", err)
		respondError(w, http.StatusInternalServerError, "list items failed", "")
		return
	}
	respond(w, http.StatusOK, list)
}

// getItemHandler retrieves an item by ID.
// @Summary Get item
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} catalog.Item
// @Security ApiKeyAuth
// @Router /items/{id} [get]
func getItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getItemHandler")
	defer span.End()

	it, err := items.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		if err == catalog.ErrNotFound {
			respondError(w, http.StatusNotFound, "item not found", "")
			return
		}
		log.Error(ctx, "get item", "error", err)
		respondError(w, http.StatusInternalServerError, "get item failed", "")
		return
	}
	respond(w, http.StatusOK, it)
}

// updateItemHandler patches an item's fields.
// @Summary Update item
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body itemRequest true "Fields to update"
// @Success 200 {object} catalog.Item
// @Security ApiKeyAuth
// @Router /items/{id} [put]
func updateItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateItemHandler")
	defer span.End()

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	it, err := items.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		if err == catalog.ErrNotFound {
			respondError(w, http.StatusNotFound, "item not found", "")
			return
		}
		log.Error(ctx, "get item", "error", err)
		respondError(w, http.StatusInternalServerError, "update item failed", "")
		return
	}

	if req.ProductID != "" {
		it.ProductID = req.ProductID
	}
	if req.ProductTitle != "" {
		it.ProductTitle = req.ProductTitle
	}
	if req.Description != "" {
		it.Description = req.Description
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			respondError(w, http.StatusBadRequest, "validation failed", "quantity must be >= 0")
			return
		}
		it.Quantity = *req.Quantity
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			respondError(w, http.StatusBadRequest, "validation failed", "price must be >= 0")
			return
		}
		it.Price = *req.Price
	}

	if err := items.Update(ctx, it); err != nil {
		if err == catalog.ErrDuplicate {
			respondError(w, http.StatusConflict, "duplicate product code", "")
			return
		}
		log.Error(ctx, "update item", "error", err)
		respondError(w, http.StatusInternalServerError, "update item failed", "")
		return
	}
	respond(w, http.StatusOK, it)
}

package memory

import (
	"context"
	"errors"
	"testing"

	"cartflow/pkg/order"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	o := order.Order{ID: "1", CartID: "cart-1"}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CartID != "cart-1" || len(got.Items) != 0 {
		t.Fatalf("unexpected order: %+v", got)
	}

	lines := order.Lines{{ProductID: "AA-FIR-ST1", Quantity: 20}}
	updated, err := repo.SetItems(ctx, "1", lines)
	if err != nil {
		t.Fatalf("set items: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].Quantity != 20 {
		t.Fatalf("unexpected items after update: %+v", updated.Items)
	}

	list, err := repo.ListByCart(ctx, "cart-1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}

	deleted, err := repo.Delete(ctx, "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(deleted.Items) != 1 || deleted.Items[0].ProductID != "AA-FIR-ST1" {
		t.Fatalf("delete must return the removed document, got %+v", deleted)
	}
	if _, err := repo.Get(ctx, "1"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if _, err := repo.SetItems(ctx, "nope", nil); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("set items: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Delete(ctx, "nope"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

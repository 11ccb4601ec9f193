package memory

import (
	"context"
	"errors"
	"testing"

	"cartflow/pkg/cart"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	c := cart.Cart{ID: "1", UserID: "user-1"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, "1")
	if err != nil || got.UserID != "user-1" {
		t.Fatalf("get: %v %+v", err, got)
	}
	got, err = repo.GetByUser(ctx, "user-1")
	if err != nil || got.ID != "1" {
		t.Fatalf("get by user: %v %+v", err, got)
	}
	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByUser(ctx, "user-1"); !errors.Is(err, cart.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestOneCartPerUser(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, cart.Cart{ID: "1", UserID: "user-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, cart.Cart{ID: "2", UserID: "user-1"})
	if !errors.Is(err, cart.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cartflow/pkg/catalog"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	it := catalog.Item{
		ID:           "1",
		ProductID:    "AA-FIR-ST1",
		ProductTitle: "Test Item One",
		Quantity:     100,
		Description:  "This is the first test item created",
		Price:        decimal.RequireFromString("150.00"),
	}
	if err := repo.Create(ctx, it); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, "1")
	if err != nil || got.ProductID != "AA-FIR-ST1" {
		t.Fatalf("get: %v %+v", err, got)
	}
	got, err = repo.GetByProductID(ctx, "AA-FIR-ST1")
	if err != nil || got.ID != "1" {
		t.Fatalf("get by product: %v %+v", err, got)
	}

	it.Quantity = 500
	if err := repo.Update(ctx, it); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.Get(ctx, "1")
	if got.Quantity != 500 {
		t.Fatalf("expected quantity 500, got %d", got.Quantity)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
}

func TestCreateDuplicateProductCode(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, catalog.Item{ID: "1", ProductID: "AA-FIR-ST1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, catalog.Item{ID: "2", ProductID: "AA-FIR-ST1"})
	if !errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, catalog.Item{ID: "1", ProductID: "AA-FIR-ST1", Quantity: 10}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Adjust(ctx, "AA-FIR-ST1", -4)
	if err != nil || got.Quantity != 6 {
		t.Fatalf("adjust -4: %v quantity=%d", err, got.Quantity)
	}

	if _, err := repo.Adjust(ctx, "AA-FIR-ST1", -7); !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	got, _ = repo.GetByProductID(ctx, "AA-FIR-ST1")
	if got.Quantity != 6 {
		t.Fatalf("failed adjust must not change quantity, got %d", got.Quantity)
	}

	got, err = repo.Adjust(ctx, "AA-FIR-ST1", 4)
	if err != nil || got.Quantity != 10 {
		t.Fatalf("adjust +4: %v quantity=%d", err, got.Quantity)
	}

	if _, err := repo.Adjust(ctx, "DO-ESN-OTE", 1); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package order

import (
	"testing"

	"github.com/shopspring/decimal"

	"cartflow/pkg/catalog"
)

func item(code string) catalog.Item {
	return catalog.Item{
		ID:           "id-" + code,
		ProductID:    code,
		ProductTitle: "Item " + code,
		Quantity:     100,
		Description:  "catalog item " + code,
		Price:        decimal.NewFromInt(250),
	}
}

func TestLinesAddPrepends(t *testing.T) {
	var l Lines
	l = l.Add("AA-FIR-ST1", 20, item("AA-FIR-ST1"))
	l = l.Add("BB-SEC-OND", 5, item("BB-SEC-OND"))

	if len(l) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(l))
	}
	if l[0].ProductID != "BB-SEC-OND" {
		t.Fatalf("newest line must be first, got %s", l[0].ProductID)
	}
	if l[0].Quantity != 5 || l[1].Quantity != 20 {
		t.Fatalf("unexpected quantities: %d, %d", l[0].Quantity, l[1].Quantity)
	}
}

func TestLinesAddMergesInPlace(t *testing.T) {
	var l Lines
	l = l.Add("AA-FIR-ST1", 20, item("AA-FIR-ST1"))
	l = l.Add("BB-SEC-OND", 5, item("BB-SEC-OND"))
	l = l.Add("AA-FIR-ST1", 1, item("AA-FIR-ST1"))

	if len(l) != 2 {
		t.Fatalf("merge must not add a line, got %d lines", len(l))
	}
	if l[1].ProductID != "AA-FIR-ST1" || l[1].Quantity != 21 {
		t.Fatalf("expected AA-FIR-ST1 merged to 21 at index 1, got %s=%d", l[1].ProductID, l[1].Quantity)
	}
}

func TestLinesAddCopiesSnapshot(t *testing.T) {
	src := item("AA-FIR-ST1")
	l := Lines{}.Add("AA-FIR-ST1", 3, src)

	if l[0].Quantity != 3 {
		t.Fatalf("snapshot quantity must be the requested amount, got %d", l[0].Quantity)
	}
	if l[0].ProductTitle != src.ProductTitle || l[0].Description != src.Description || !l[0].Price.Equal(src.Price) {
		t.Fatal("snapshot must copy the catalog fields")
	}
}

func TestLinesAddDoesNotMutateReceiver(t *testing.T) {
	l := Lines{}.Add("AA-FIR-ST1", 20, item("AA-FIR-ST1"))
	_ = l.Add("AA-FIR-ST1", 1, item("AA-FIR-ST1"))
	if l[0].Quantity != 20 {
		t.Fatalf("receiver mutated: quantity became %d", l[0].Quantity)
	}
}

func TestLinesLocateLastMatchWins(t *testing.T) {
	// Historical data may carry duplicates; the last one is the merge target.
	l := Lines{
		{ProductID: "AA-FIR-ST1", Quantity: 1},
		{ProductID: "BB-SEC-OND", Quantity: 2},
		{ProductID: "AA-FIR-ST1", Quantity: 3},
	}
	if i := l.Locate("AA-FIR-ST1"); i != 2 {
		t.Fatalf("expected index 2, got %d", i)
	}
	if i := l.Locate("DO-ESN-OTE"); i != -1 {
		t.Fatalf("expected -1 for absent product, got %d", i)
	}
}

func TestLinesRemove(t *testing.T) {
	l := Lines{}.Add("AA-FIR-ST1", 20, item("AA-FIR-ST1"))

	got, removed := l.Remove("AA-FIR-ST1", 5)
	if removed != 5 || got[0].Quantity != 15 {
		t.Fatalf("expected 5 removed leaving 15, got %d leaving %d", removed, got[0].Quantity)
	}

	got, removed = got.Remove("AA-FIR-ST1", 50)
	if removed != 15 {
		t.Fatalf("removal is capped at the line quantity, got %d", removed)
	}
	if len(got) != 0 {
		t.Fatalf("line must be dropped at zero, got %d lines", len(got))
	}

	_, removed = l.Remove("DO-ESN-OTE", 1)
	if removed != 0 {
		t.Fatalf("absent product removes nothing, got %d", removed)
	}
}

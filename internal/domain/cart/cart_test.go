package cart

import "testing"

func TestEffectiveQuantity(t *testing.T) {
	cases := []struct {
		requested, moq, want int
	}{
		{5, 10, 10}, // raised to MOQ
		{10, 10, 10},
		{15, 10, 15},
		{1, 0, 1}, // unset MOQ treated as 1
		{3, -2, 3},
	}
	for _, tc := range cases {
		if got := EffectiveQuantity(tc.requested, tc.moq); got != tc.want {
			t.Errorf("EffectiveQuantity(%d, %d) = %d, want %d", tc.requested, tc.moq, got, tc.want)
		}
	}
}

func TestSubtotal(t *testing.T) {
	c := Cart{Items: []Item{
		{Quantity: 3, UnitPrice: 100},
		{Quantity: 2, UnitPrice: 250},
	}}
	if got := c.Subtotal(); got != 800 {
		t.Fatalf("expected subtotal 800, got %d", got)
	}

	empty := Cart{}
	if got := empty.Subtotal(); got != 0 {
		t.Fatalf("expected 0 for empty cart, got %d", got)
	}
}

func TestAddItemRequestValidate(t *testing.T) {
	ok := AddItemRequest{ProductID: "p1", Quantity: 1}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := AddItemRequest{Quantity: 1}
	if err := missing.Validate(); err == nil {
		t.Fatal("expected error for missing product_id")
	}

	zero := AddItemRequest{ProductID: "p1"}
	if err := zero.Validate(); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEffectiveDeliveryFee(t *testing.T) {
	threshold := decimal.NewFromInt(30)
	p := StorePolicy{
		StoreId:               "S1",
		DeliveryFee:           decimal.NewFromInt(5),
		FreeDeliveryThreshold: &threshold,
	}

	if got := p.EffectiveDeliveryFee(decimal.NewFromInt(10)); !got.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("fee below threshold = %s, want 5", got)
	}
	if got := p.EffectiveDeliveryFee(decimal.NewFromInt(30)); !got.IsZero() {
		t.Fatalf("fee at threshold = %s, want 0", got)
	}

	noWaiver := StorePolicy{StoreId: "S2", DeliveryFee: decimal.NewFromInt(3)}
	if got := noWaiver.EffectiveDeliveryFee(decimal.NewFromInt(1000)); !got.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("fee without threshold = %s, want 3", got)
	}
}

func TestMeetsMinimum(t *testing.T) {
	p := StorePolicy{StoreId: "S1", MinimumOrderAmount: decimal.NewFromInt(15)}
	if p.MeetsMinimum(decimal.NewFromInt(14)) {
		t.Fatalf("14 must not meet a 15 minimum")
	}
	if !p.MeetsMinimum(decimal.NewFromInt(15)) {
		t.Fatalf("15 must meet a 15 minimum")
	}

	if !DefaultStorePolicy("S9", "Store 9").MeetsMinimum(decimal.Zero) {
		t.Fatalf("default policy has no minimum")
	}
}

// Both policy methods must be callable straight off a function return value,
// the way the candidate builder uses DefaultStorePolicy inline.
func TestStorePolicyMethodsOnReturnValue(t *testing.T) {
	if !DefaultStorePolicy("S9", "Store 9").EffectiveDeliveryFee(decimal.Zero).IsZero() {
		t.Fatalf("default policy charges no fee")
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is one (product, store) row of the external catalog feed. Multiple
// offers may exist per product; the candidate builder filters and joins them
// with store policies.
type Offer struct {
	ID                          int             `gorm:"primary_key" json:"id"`
	ProductId                   string          `gorm:"size:64;not null;index:idx_offers_product" json:"productId"`
	StoreId                     string          `gorm:"size:64;not null;index:idx_offers_store" json:"storeId"`
	StoreName                   string          `gorm:"size:100;not null" json:"storeName"`
	UnitPrice                   decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"unitPrice"`
	StockStatus                 StockStatus     `gorm:"size:20;not null" json:"stockStatus"`
	EstimatedFulfillmentMinutes int             `gorm:"not null;default:0" json:"estimatedFulfillmentMinutes"`
	CreatedAt                   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// StorePolicy holds a store's fixed attributes for one optimization call:
// the delivery fee, the subtotal at which the fee is waived, the minimum
// order amount, and the average fulfillment time. Version increments whenever
// catalog ops change a policy; it keys the candidate cache.
type StorePolicy struct {
	StoreId               string           `gorm:"primary_key;size:64" json:"storeId"`
	StoreName             string           `gorm:"size:100;not null" json:"storeName"`
	DeliveryFee           decimal.Decimal  `gorm:"type:decimal(12,4);not null;default:0" json:"deliveryFee"`
	FreeDeliveryThreshold *decimal.Decimal `gorm:"type:decimal(12,4)" json:"freeDeliveryThreshold,omitempty"`
	MinimumOrderAmount    decimal.Decimal  `gorm:"type:decimal(12,4);not null;default:0" json:"minimumOrderAmount"`
	AvgFulfillmentMinutes int              `gorm:"not null;default:0" json:"avgFulfillmentMinutes"`
	Version               int              `gorm:"not null;default:1" json:"version"`
	UpdatedAt             time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// DefaultStorePolicy is what a store without a catalog policy row gets:
// no fee, no threshold, no minimum. A missing policy is "no override",
// never an error.
func DefaultStorePolicy(storeId string, storeName string) StorePolicy {
	return StorePolicy{
		StoreId:   storeId,
		StoreName: storeName,
		Version:   1,
	}
}

// EffectiveDeliveryFee applies the fee waiver: zero once the store's
// subtotal reaches FreeDeliveryThreshold.
func (p StorePolicy) EffectiveDeliveryFee(storeSubtotal decimal.Decimal) decimal.Decimal {
	if p.FreeDeliveryThreshold != nil && storeSubtotal.GreaterThanOrEqual(*p.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return p.DeliveryFee
}

// MeetsMinimum reports whether a store subtotal satisfies the policy's
// minimum order amount.
func (p StorePolicy) MeetsMinimum(storeSubtotal decimal.Decimal) bool {
	return storeSubtotal.GreaterThanOrEqual(p.MinimumOrderAmount)
}

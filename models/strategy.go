package models

import (
	"github.com/shopspring/decimal"
)

// Candidate is an in-stock offer joined with its store policy: the unit of
// choice during allocation.
type Candidate struct {
	ProductId          string          `json:"productId"`
	StoreId            string          `json:"storeId"`
	StoreName          string          `json:"storeName"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	StockStatus        StockStatus     `json:"stockStatus"`
	FulfillmentMinutes int             `json:"fulfillmentMinutes"`
	Policy             StorePolicy     `json:"policy"`
}

// CandidateMap is the solver input for one request: per-product candidate
// lists (sorted by unit price, then store id), the items that survived, and
// the ones nothing can fulfill. Immutable once built; safe for concurrent
// reads by all three mode solvers.
type CandidateMap struct {
	Items         []ShoppingListItem     `json:"items"`
	Candidates    map[string][]Candidate `json:"candidates"`
	Unresolved    []string               `json:"unresolved"`
	PolicyVersion int                    `json:"policyVersion"`
	Hash          string                 `json:"hash"`
}

// Quantity returns the requested quantity for a product, zero when the
// product is not on the list.
func (cm *CandidateMap) Quantity(productId string) int {
	for _, item := range cm.Items {
		if item.ProductId == productId {
			return item.Quantity
		}
	}
	return 0
}

// ResolvedIds returns, in request order, the products that have at least one
// candidate.
func (cm *CandidateMap) ResolvedIds() []string {
	ids := make([]string, 0, len(cm.Items))
	for _, item := range cm.Items {
		if len(cm.Candidates[item.ProductId]) > 0 {
			ids = append(ids, item.ProductId)
		}
	}
	return ids
}

// Assignment pins one shopping-list item to exactly one store. Quantities
// are never split across stores within a strategy.
type Assignment struct {
	ProductId string          `json:"productId"`
	StoreId   string          `json:"storeId"`
	StoreName string          `json:"storeName"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

func (a *Assignment) LineTotal() decimal.Decimal {
	return a.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity)))
}

// Strategy is one complete purchase plan for a mode.
type Strategy struct {
	Mode                     OptimizationMode `json:"mode"`
	Assignments              []Assignment     `json:"assignments"`
	ItemSubtotal             decimal.Decimal  `json:"itemSubtotal"`
	DeliveryFeesTotal        decimal.Decimal  `json:"deliveryFeesTotal"`
	EstimatedDeliveryMinutes int              `json:"estimatedDeliveryMinutes"`
	DistinctStoreCount       int              `json:"distinctStoreCount"`

	// EstimatedSavings is the display value, clamped at zero. RawSavings
	// keeps the sign for audit and tests.
	EstimatedSavings decimal.Decimal `json:"estimatedSavings"`
	RawSavings       decimal.Decimal `json:"rawSavings"`

	UnresolvedItems []string `json:"unresolvedItems"`
}

// TotalCost is the comparable cost of a strategy: items plus delivery fees.
func (s *Strategy) TotalCost() decimal.Decimal {
	return s.ItemSubtotal.Add(s.DeliveryFeesTotal)
}

// BaselineTotals are the reference totals savings are measured against: the
// shopper's default store serving what it can, or the price-mode plan when
// no default store exists.
type BaselineTotals struct {
	ItemSubtotal      decimal.Decimal `json:"itemSubtotal"`
	DeliveryFeesTotal decimal.Decimal `json:"deliveryFeesTotal"`
	StoreId           string          `json:"storeId,omitempty"`
}

func (b *BaselineTotals) TotalCost() decimal.Decimal {
	return b.ItemSubtotal.Add(b.DeliveryFeesTotal)
}

// OptimizationResult is the engine's output contract: one strategy per
// requested mode, keyed by mode (the cart UI lets the shopper pick), plus
// the baseline used for savings.
type OptimizationResult struct {
	Strategies    map[OptimizationMode]*Strategy `json:"strategies"`
	Baseline      BaselineTotals                 `json:"baseline"`
	CorrelationId string                         `json:"correlationId"`
}

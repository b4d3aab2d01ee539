package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ShoppingListItem is one line of the shopper's list. Immutable input.
type ShoppingListItem struct {
	ProductId string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// OptimizationRequest is the input contract consumed from the cart/checkout
// collaborator: the shopping list plus either one requested mode or nil for
// "all modes" (the comparison view).
type OptimizationRequest struct {
	Items []ShoppingListItem `json:"items" validate:"required,min=1,dive"`

	// Mode selects a single strategy; nil solves all three.
	Mode *OptimizationMode `json:"mode,omitempty"`

	// DefaultStoreId is the store the shopper most recently used; it anchors
	// the savings baseline. Optional.
	DefaultStoreId string `json:"defaultStoreId,omitempty"`

	// ExcludedStoreIds are stores the caller ruled out entirely (delivery
	// zone etc.). Their offers never become candidates.
	ExcludedStoreIds []string `json:"excludedStoreIds,omitempty"`
}

func (r *OptimizationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Mode != nil && !r.Mode.Valid() {
		return fmt.Errorf("invalid optimization mode %q", string(*r.Mode))
	}
	seen := make(map[string]bool, len(r.Items))
	for _, item := range r.Items {
		if seen[item.ProductId] {
			return fmt.Errorf("duplicate productId %q in shopping list", item.ProductId)
		}
		seen[item.ProductId] = true
	}
	return nil
}

// Modes returns the modes this request asks to solve.
func (r *OptimizationRequest) Modes() []OptimizationMode {
	if r.Mode != nil {
		return []OptimizationMode{*r.Mode}
	}
	return AllOptimizationModes
}

// ProductIds returns the list's product ids in request order.
func (r *OptimizationRequest) ProductIds() []string {
	ids := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		ids = append(ids, item.ProductId)
	}
	return ids
}

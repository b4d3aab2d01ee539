package optimizer

import (
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/utils"
	"github.com/shopspring/decimal"
)

// ComputeBaseline fixes the totals savings are measured against: the
// shopper's default store serving every item it can (items it cannot serve
// fall out of the baseline), or the price-mode strategy itself when no
// default store applies. In the latter case price-mode savings are zero by
// construction.
func ComputeBaseline(cm *models.CandidateMap, defaultStoreId string, priceStrategy *models.Strategy) models.BaselineTotals {
	if defaultStoreId != "" {
		subtotal := decimal.Zero
		served := false
		var policy models.StorePolicy
		for _, item := range cm.Items {
			for _, cand := range cm.Candidates[item.ProductId] {
				if cand.StoreId == defaultStoreId {
					subtotal = subtotal.Add(cand.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
					policy = cand.Policy
					served = true
					break
				}
			}
		}
		if served {
			return models.BaselineTotals{
				ItemSubtotal:      subtotal,
				DeliveryFeesTotal: policy.EffectiveDeliveryFee(subtotal),
				StoreId:           defaultStoreId,
			}
		}
	}
	return models.BaselineTotals{
		ItemSubtotal:      priceStrategy.ItemSubtotal,
		DeliveryFeesTotal: priceStrategy.DeliveryFeesTotal,
	}
}

// ApplySavings stamps every strategy with its savings against the baseline.
// RawSavings keeps the sign for audit; EstimatedSavings is the display
// value, clamped at zero. Strategies stay keyed by mode - the shopper picks,
// the engine never ranks modes against each other.
func ApplySavings(strategies map[models.OptimizationMode]*models.Strategy, baseline models.BaselineTotals) {
	baselineCost := baseline.TotalCost()
	for _, mode := range models.AllOptimizationModes {
		strategy, ok := strategies[mode]
		if !ok {
			continue
		}
		raw := baselineCost.Sub(strategy.TotalCost())
		strategy.RawSavings = raw
		strategy.EstimatedSavings = utils.ClampNonNegative(raw)
	}
}

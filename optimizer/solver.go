package optimizer

import (
	"strings"

	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/utils"
	"github.com/shopspring/decimal"
)

// assignmentMap is a solver's working state: productId -> chosen candidate.
// Exactly one candidate per resolved product, never a split.
type assignmentMap map[string]models.Candidate

func (am assignmentMap) clone() assignmentMap {
	out := make(assignmentMap, len(am))
	for k, v := range am {
		out[k] = v
	}
	return out
}

// storeSubtotals sums line totals per store.
func storeSubtotals(cm *models.CandidateMap, chosen assignmentMap) map[string]decimal.Decimal {
	subtotals := map[string]decimal.Decimal{}
	for productId, cand := range chosen {
		qty := decimal.NewFromInt(int64(cm.Quantity(productId)))
		subtotals[cand.StoreId] = subtotals[cand.StoreId].Add(cand.UnitPrice.Mul(qty))
	}
	return subtotals
}

// planScore orders candidate plans for the price-mode local search. Lower is
// better, compared lexicographically: minimum-order violations first, then
// total cost (items + effective fees), then distinct store count, then the
// sorted store-id key for a deterministic final tie-break.
type planScore struct {
	violations int
	cost       decimal.Decimal
	stores     int
	storeKey   string
}

func (a planScore) betterThan(b planScore) bool {
	if a.violations != b.violations {
		return a.violations < b.violations
	}
	if cmp := a.cost.Cmp(b.cost); cmp != 0 {
		return cmp < 0
	}
	if a.stores != b.stores {
		return a.stores < b.stores
	}
	return a.storeKey < b.storeKey
}

func scorePlan(cm *models.CandidateMap, chosen assignmentMap) planScore {
	subtotals := storeSubtotals(cm, chosen)
	policies := map[string]models.StorePolicy{}
	for _, cand := range chosen {
		policies[cand.StoreId] = cand.Policy
	}

	itemTotal := decimal.Zero
	for productId, cand := range chosen {
		qty := decimal.NewFromInt(int64(cm.Quantity(productId)))
		itemTotal = itemTotal.Add(cand.UnitPrice.Mul(qty))
	}

	feeTotal := decimal.Zero
	violations := 0
	storeIds := utils.SortedKeys(subtotals)
	for _, storeId := range storeIds {
		policy := policies[storeId]
		feeTotal = feeTotal.Add(policy.EffectiveDeliveryFee(subtotals[storeId]))
		if !policy.MeetsMinimum(subtotals[storeId]) {
			violations++
		}
	}

	return planScore{
		violations: violations,
		cost:       itemTotal.Add(feeTotal),
		stores:     len(storeIds),
		storeKey:   strings.Join(storeIds, ","),
	}
}

// finalizeStrategy turns a finished assignment map into the Strategy shape:
// assignments in request order, per-store fee totals with waivers applied,
// delivery estimate as the max over used stores (deliveries run in
// parallel), and the unresolved set carried through.
func finalizeStrategy(mode models.OptimizationMode, cm *models.CandidateMap, chosen assignmentMap) *models.Strategy {
	strategy := &models.Strategy{
		Mode:              mode,
		Assignments:       []models.Assignment{},
		ItemSubtotal:      decimal.Zero,
		DeliveryFeesTotal: decimal.Zero,
		EstimatedSavings:  decimal.Zero,
		RawSavings:        decimal.Zero,
		UnresolvedItems:   append([]string{}, cm.Unresolved...),
	}

	policies := map[string]models.StorePolicy{}
	storeMinutes := map[string]int{}
	for _, item := range cm.Items {
		cand, ok := chosen[item.ProductId]
		if !ok {
			continue
		}
		assignment := models.Assignment{
			ProductId: cand.ProductId,
			StoreId:   cand.StoreId,
			StoreName: cand.StoreName,
			UnitPrice: cand.UnitPrice,
			Quantity:  item.Quantity,
		}
		strategy.Assignments = append(strategy.Assignments, assignment)
		strategy.ItemSubtotal = strategy.ItemSubtotal.Add(assignment.LineTotal())
		policies[cand.StoreId] = cand.Policy
		// a store's delivery leaves when its slowest item is ready
		if cand.FulfillmentMinutes > storeMinutes[cand.StoreId] {
			storeMinutes[cand.StoreId] = cand.FulfillmentMinutes
		}
	}

	subtotals := storeSubtotals(cm, chosen)
	for _, storeId := range utils.SortedKeys(subtotals) {
		policy := policies[storeId]
		strategy.DeliveryFeesTotal = strategy.DeliveryFeesTotal.Add(policy.EffectiveDeliveryFee(subtotals[storeId]))
	}

	strategy.DistinctStoreCount = len(subtotals)
	for _, minutes := range storeMinutes {
		if minutes > strategy.EstimatedDeliveryMinutes {
			strategy.EstimatedDeliveryMinutes = minutes
		}
	}
	return strategy
}

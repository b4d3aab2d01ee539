package optimizer

import (
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/utils"
	"github.com/shopspring/decimal"
)

// solveConvenience minimizes the number of distinct stores. Preferred
// outcome is the whole resolvable list from one store (cheapest such store
// wins); otherwise a greedy set cover: repeatedly take the store covering
// the most still-unassigned items, ties broken by lower price over the items
// it would cover, then by store id.
func solveConvenience(cm *models.CandidateMap) *models.Strategy {
	resolved := cm.ResolvedIds()
	chosen := assignmentMap{}
	if len(resolved) == 0 {
		return finalizeStrategy(models.OptimizationModeConvenience, cm, chosen)
	}

	// storeId -> productId -> that store's candidate
	coverage := map[string]map[string]models.Candidate{}
	for _, productId := range resolved {
		for _, cand := range cm.Candidates[productId] {
			if coverage[cand.StoreId] == nil {
				coverage[cand.StoreId] = map[string]models.Candidate{}
			}
			// candidate lists are price-sorted, keep the first (cheapest)
			if _, ok := coverage[cand.StoreId][productId]; !ok {
				coverage[cand.StoreId][productId] = cand
			}
		}
	}

	if storeId, ok := bestFullCoverStore(cm, coverage, resolved); ok {
		for _, productId := range resolved {
			chosen[productId] = coverage[storeId][productId]
		}
		return finalizeStrategy(models.OptimizationModeConvenience, cm, chosen)
	}

	remaining := map[string]bool{}
	for _, productId := range resolved {
		remaining[productId] = true
	}
	for len(remaining) > 0 {
		storeId := bestCoverStore(cm, coverage, remaining)
		for productId, cand := range coverage[storeId] {
			if remaining[productId] {
				chosen[productId] = cand
				delete(remaining, productId)
			}
		}
	}

	return finalizeStrategy(models.OptimizationModeConvenience, cm, chosen)
}

// bestFullCoverStore picks, among stores that can supply every resolvable
// item, the one with the lowest item subtotal (ties: lower store id).
func bestFullCoverStore(cm *models.CandidateMap, coverage map[string]map[string]models.Candidate, resolved []string) (string, bool) {
	bestStore := ""
	bestSubtotal := decimal.Zero

	for _, storeId := range utils.SortedKeys(coverage) {
		if len(coverage[storeId]) < len(resolved) {
			continue
		}
		subtotal := subtotalOver(cm, coverage[storeId], resolved)
		if bestStore == "" || subtotal.LessThan(bestSubtotal) {
			bestStore = storeId
			bestSubtotal = subtotal
		}
	}
	return bestStore, bestStore != ""
}

// bestCoverStore is one greedy cover round: most still-unassigned items
// covered, ties by lower subtotal over those items, then store id.
func bestCoverStore(cm *models.CandidateMap, coverage map[string]map[string]models.Candidate, remaining map[string]bool) string {
	bestStore := ""
	bestCount := 0
	bestSubtotal := decimal.Zero

	for _, storeId := range utils.SortedKeys(coverage) {
		covered := make([]string, 0, len(remaining))
		for productId := range remaining {
			if _, ok := coverage[storeId][productId]; ok {
				covered = append(covered, productId)
			}
		}
		if len(covered) == 0 || len(covered) < bestCount {
			continue
		}
		subtotal := subtotalOver(cm, coverage[storeId], covered)
		if len(covered) > bestCount || subtotal.LessThan(bestSubtotal) {
			bestStore = storeId
			bestCount = len(covered)
			bestSubtotal = subtotal
		}
	}
	return bestStore
}

func subtotalOver(cm *models.CandidateMap, cands map[string]models.Candidate, productIds []string) decimal.Decimal {
	subtotal := decimal.Zero
	for _, productId := range productIds {
		qty := decimal.NewFromInt(int64(cm.Quantity(productId)))
		subtotal = subtotal.Add(cands[productId].UnitPrice.Mul(qty))
	}
	return subtotal
}

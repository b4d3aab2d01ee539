package optimizer

import (
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/utils"
)

// solvePrice minimizes total cost (item subtotal + effective delivery fees).
// Per-item cheapest is only the seed: per-store fixed costs (delivery fees,
// minimum-order amounts) make greedy splitting wrong, so a bounded local
// search then repairs minimum-order violations and evacuates stores whose
// fee outweighs the price advantage of buying there. Every accepted move
// strictly improves the plan score, so each pass terminates; passes and the
// evacuation size are capped by config.
func solvePrice(cm *models.CandidateMap, passes int, evacuationLimit int) *models.Strategy {
	chosen := assignmentMap{}
	for _, productId := range cm.ResolvedIds() {
		chosen[productId] = cm.Candidates[productId][0]
	}

	if passes < 1 {
		passes = 1
	}
	for pass := 0; pass < passes; pass++ {
		improved := false
		if repairMinimumOrders(cm, chosen) {
			improved = true
		}
		if evacuateFeeStores(cm, chosen, evacuationLimit) {
			improved = true
		}
		if !improved {
			break
		}
	}

	// Local search cannot leave the seed's store set when no pairwise move
	// helps, so two reference plans are scored alongside it: the cheapest
	// single store covering everything, and the plain first-available plan.
	// Whichever scores best wins; this also pins the guarantee that price
	// mode never loses to the naive baseline.
	best := chosen
	bestScore := scorePlan(cm, chosen)
	for _, alt := range []assignmentMap{bestSingleStorePlan(cm), firstAvailablePlan(cm)} {
		if alt == nil {
			continue
		}
		if score := scorePlan(cm, alt); score.betterThan(bestScore) {
			best = alt
			bestScore = score
		}
	}

	return finalizeStrategy(models.OptimizationModePrice, cm, best)
}

// bestSingleStorePlan returns the cheapest plan sourcing every resolvable
// item from one store, or nil when no store covers them all.
func bestSingleStorePlan(cm *models.CandidateMap) assignmentMap {
	resolved := cm.ResolvedIds()
	if len(resolved) == 0 {
		return nil
	}

	coverage := map[string]map[string]models.Candidate{}
	for _, productId := range resolved {
		for _, cand := range cm.Candidates[productId] {
			if coverage[cand.StoreId] == nil {
				coverage[cand.StoreId] = map[string]models.Candidate{}
			}
			if _, ok := coverage[cand.StoreId][productId]; !ok {
				coverage[cand.StoreId][productId] = cand
			}
		}
	}

	var best assignmentMap
	var bestScore planScore
	for _, storeId := range utils.SortedKeys(coverage) {
		if len(coverage[storeId]) < len(resolved) {
			continue
		}
		plan := assignmentMap{}
		for _, productId := range resolved {
			plan[productId] = coverage[storeId][productId]
		}
		if score := scorePlan(cm, plan); best == nil || score.betterThan(bestScore) {
			best = plan
			bestScore = score
		}
	}
	return best
}

// firstAvailablePlan models the shopper who takes each item from the first
// store listing it (lowest store id), fees be damned.
func firstAvailablePlan(cm *models.CandidateMap) assignmentMap {
	plan := assignmentMap{}
	for _, productId := range cm.ResolvedIds() {
		first := cm.Candidates[productId][0]
		for _, cand := range cm.Candidates[productId][1:] {
			if cand.StoreId < first.StoreId {
				first = cand
			}
		}
		plan[productId] = first
	}
	return plan
}

// repairMinimumOrders walks items sitting at stores that fail their minimum
// order amount and tries each item's alternative candidates, keeping any
// reassignment that improves the plan score. Items with no alternative stay
// put: a partially feasible plan beats dropping the item.
func repairMinimumOrders(cm *models.CandidateMap, chosen assignmentMap) bool {
	improvedAny := false
	current := scorePlan(cm, chosen)

	subtotals := storeSubtotals(cm, chosen)
	failing := map[string]bool{}
	for _, storeId := range utils.SortedKeys(subtotals) {
		policy := policyOf(chosen, storeId)
		if !policy.MeetsMinimum(subtotals[storeId]) {
			failing[storeId] = true
		}
	}
	if len(failing) == 0 {
		return false
	}

	for _, item := range cm.Items {
		cand, ok := chosen[item.ProductId]
		if !ok || !failing[cand.StoreId] {
			continue
		}
		if best, score, found := bestReassignment(cm, chosen, item.ProductId, current); found {
			chosen[item.ProductId] = best
			current = score
			improvedAny = true
		}
	}
	return improvedAny
}

// evacuateFeeStores tries to close stores entirely: for each used store with
// at most evacuationLimit items and a nonzero effective fee, move all its
// items to their cheapest candidates at other already-used stores and keep
// the move when the score improves. This is the move that turns the naive
// cheapest-per-item split back into a single cheap basket.
func evacuateFeeStores(cm *models.CandidateMap, chosen assignmentMap, evacuationLimit int) bool {
	if evacuationLimit < 1 {
		evacuationLimit = 1
	}
	improvedAny := false

	for {
		current := scorePlan(cm, chosen)
		subtotals := storeSubtotals(cm, chosen)

		itemsByStore := map[string][]string{}
		for _, item := range cm.Items {
			if cand, ok := chosen[item.ProductId]; ok {
				itemsByStore[cand.StoreId] = append(itemsByStore[cand.StoreId], item.ProductId)
			}
		}

		moved := false
		for _, storeId := range utils.SortedKeys(itemsByStore) {
			items := itemsByStore[storeId]
			if len(items) > evacuationLimit || len(itemsByStore) < 2 {
				continue
			}
			policy := policyOf(chosen, storeId)
			if policy.EffectiveDeliveryFee(subtotals[storeId]).IsZero() && policy.MeetsMinimum(subtotals[storeId]) {
				continue
			}

			trial, feasible := evacuationTrial(cm, chosen, storeId, items)
			if !feasible {
				continue
			}
			if score := scorePlan(cm, trial); score.betterThan(current) {
				for productId, cand := range trial {
					chosen[productId] = cand
				}
				moved = true
				improvedAny = true
				break
			}
		}
		if !moved {
			return improvedAny
		}
	}
}

// evacuationTrial relocates every given item away from storeId to its
// cheapest candidate at any other store already used in the plan.
func evacuationTrial(cm *models.CandidateMap, chosen assignmentMap, storeId string, productIds []string) (assignmentMap, bool) {
	used := map[string]bool{}
	for _, cand := range chosen {
		if cand.StoreId != storeId {
			used[cand.StoreId] = true
		}
	}

	trial := chosen.clone()
	for _, productId := range productIds {
		relocated := false
		for _, cand := range cm.Candidates[productId] {
			if cand.StoreId != storeId && used[cand.StoreId] {
				trial[productId] = cand
				relocated = true
				break
			}
		}
		if !relocated {
			return nil, false
		}
	}
	return trial, true
}

// bestReassignment tries every alternative candidate for one item and
// returns the one with the best resulting score, if it beats the current
// plan.
func bestReassignment(cm *models.CandidateMap, chosen assignmentMap, productId string, current planScore) (models.Candidate, planScore, bool) {
	var best models.Candidate
	bestScore := current
	found := false

	currentStore := chosen[productId].StoreId
	for _, cand := range cm.Candidates[productId] {
		if cand.StoreId == currentStore {
			continue
		}
		trial := chosen.clone()
		trial[productId] = cand
		if score := scorePlan(cm, trial); score.betterThan(bestScore) {
			best = cand
			bestScore = score
			found = true
		}
	}
	return best, bestScore, found
}

func policyOf(chosen assignmentMap, storeId string) models.StorePolicy {
	for _, cand := range chosen {
		if cand.StoreId == storeId {
			return cand.Policy
		}
	}
	return models.StorePolicy{}
}

package optimizer

import (
	"sort"

	"github.com/TheBeardNerd/SmartCart-sub002/models"
)

// solveTime assigns each item to its fastest store. The objective is the
// maximum fulfillment time across used stores, not the sum: deliveries run
// in parallel, so adding an item to an already-slow store is free. Among
// candidates tied on fulfillment time the solver prefers a store already
// used in this plan (one fewer delivery at no time cost), then cheaper,
// then lower store id.
func solveTime(cm *models.CandidateMap) *models.Strategy {
	chosen := assignmentMap{}
	used := map[string]bool{}

	for _, productId := range cm.ResolvedIds() {
		candidates := cm.Candidates[productId]

		fastest := candidates[0].FulfillmentMinutes
		for _, cand := range candidates[1:] {
			if cand.FulfillmentMinutes < fastest {
				fastest = cand.FulfillmentMinutes
			}
		}

		tied := make([]models.Candidate, 0, len(candidates))
		for _, cand := range candidates {
			if cand.FulfillmentMinutes == fastest {
				tied = append(tied, cand)
			}
		}
		sort.SliceStable(tied, func(i, j int) bool {
			if used[tied[i].StoreId] != used[tied[j].StoreId] {
				return used[tied[i].StoreId]
			}
			if cmp := tied[i].UnitPrice.Cmp(tied[j].UnitPrice); cmp != 0 {
				return cmp < 0
			}
			return tied[i].StoreId < tied[j].StoreId
		})

		chosen[productId] = tied[0]
		used[tied[0].StoreId] = true
	}

	return finalizeStrategy(models.OptimizationModeTime, cm, chosen)
}

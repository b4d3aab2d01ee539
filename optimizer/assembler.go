package optimizer

import (
	"fmt"

	"github.com/TheBeardNerd/SmartCart-sub002/models"
)

// AssembleResult combines the solved strategies and baseline into the final
// OptimizationResult, after checking the invariants correct solver output
// can never break. A failed check is an InvariantViolationError carrying the
// full snapshot - an internal defect signal, never partial output.
func AssembleResult(req *models.OptimizationRequest, cm *models.CandidateMap, strategies map[models.OptimizationMode]*models.Strategy, baseline models.BaselineTotals, correlationId string) (*models.OptimizationResult, error) {
	for _, mode := range models.AllOptimizationModes {
		strategy, ok := strategies[mode]
		if !ok {
			continue
		}
		if err := validateStrategy(req, cm, strategy); err != nil {
			return nil, err
		}
	}
	return &models.OptimizationResult{
		Strategies:    strategies,
		Baseline:      baseline,
		CorrelationId: correlationId,
	}, nil
}

func validateStrategy(req *models.OptimizationRequest, cm *models.CandidateMap, strategy *models.Strategy) error {
	violation := func(format string, args ...any) error {
		return &models.InvariantViolationError{
			Reason:   fmt.Sprintf(format, args...),
			Mode:     strategy.Mode,
			Request:  req,
			Strategy: strategy,
		}
	}

	quantities := make(map[string]int, len(req.Items))
	for _, item := range req.Items {
		quantities[item.ProductId] = item.Quantity
	}

	assigned := map[string]bool{}
	stores := map[string]bool{}
	for _, a := range strategy.Assignments {
		if assigned[a.ProductId] {
			return violation("product %s assigned more than once", a.ProductId)
		}
		assigned[a.ProductId] = true
		stores[a.StoreId] = true

		wanted, onList := quantities[a.ProductId]
		if !onList {
			return violation("assignment for product %s not on the shopping list", a.ProductId)
		}
		if a.Quantity != wanted {
			return violation("product %s quantity %d differs from requested %d", a.ProductId, a.Quantity, wanted)
		}

		if !assignmentTracesToCandidate(cm, a) {
			return violation("assignment (%s, %s) has no matching candidate", a.ProductId, a.StoreId)
		}
	}

	if strategy.DistinctStoreCount != len(stores) {
		return violation("distinctStoreCount %d, assignments use %d stores", strategy.DistinctStoreCount, len(stores))
	}

	unresolved := map[string]bool{}
	for _, productId := range strategy.UnresolvedItems {
		unresolved[productId] = true
	}
	for _, item := range req.Items {
		if !assigned[item.ProductId] && !unresolved[item.ProductId] {
			return violation("product %s neither assigned nor unresolved", item.ProductId)
		}
		if assigned[item.ProductId] && unresolved[item.ProductId] {
			return violation("product %s both assigned and unresolved", item.ProductId)
		}
	}
	return nil
}

func assignmentTracesToCandidate(cm *models.CandidateMap, a models.Assignment) bool {
	for _, cand := range cm.Candidates[a.ProductId] {
		if cand.StoreId == a.StoreId && cand.UnitPrice.Equal(a.UnitPrice) {
			return true
		}
	}
	return false
}

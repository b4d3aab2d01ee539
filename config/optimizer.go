package config

import "time"

// OptimizerConfig carries every tunable of the optimization engine. It is
// loaded from env once at startup and then passed explicitly into the engine
// so solver runs stay deterministic and side-effect free (tests construct
// their own values instead of mutating process env).
type OptimizerConfig struct {
	// TotalDeadline bounds one whole optimization request. Exceeding it
	// fails the call with OptimizationTimeout.
	TotalDeadline time.Duration

	// PerStoreTimeout bounds each store's catalog fetch during candidate
	// building. A store that misses it contributes zero candidates.
	PerStoreTimeout time.Duration

	// RefinementPasses bounds the price-mode local search.
	RefinementPasses int

	// EvacuationLimit is the largest number of items the price-mode fee
	// elimination move will relocate away from one store in a single move.
	EvacuationLimit int

	// CandidateCacheTTL is the staleness bound for cached candidate maps.
	CandidateCacheTTL time.Duration
}

func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		TotalDeadline:     5 * time.Second,
		PerStoreTimeout:   800 * time.Millisecond,
		RefinementPasses:  3,
		EvacuationLimit:   2,
		CandidateCacheTTL: 5 * time.Minute,
	}
}

// LoadOptimizerConfig reads env overrides on top of the defaults:
// - OPTIMIZER_TOTAL_DEADLINE_MS
// - OPTIMIZER_PER_STORE_TIMEOUT_MS
// - OPTIMIZER_REFINEMENT_PASSES
// - OPTIMIZER_EVACUATION_LIMIT
// - OPTIMIZER_CANDIDATE_CACHE_TTL_SECONDS
func LoadOptimizerConfig() OptimizerConfig {
	cfg := DefaultOptimizerConfig()
	cfg.TotalDeadline = time.Duration(intFromEnv("OPTIMIZER_TOTAL_DEADLINE_MS", 5000)) * time.Millisecond
	cfg.PerStoreTimeout = time.Duration(intFromEnv("OPTIMIZER_PER_STORE_TIMEOUT_MS", 800)) * time.Millisecond
	cfg.RefinementPasses = intFromEnv("OPTIMIZER_REFINEMENT_PASSES", 3)
	cfg.EvacuationLimit = intFromEnv("OPTIMIZER_EVACUATION_LIMIT", 2)
	cfg.CandidateCacheTTL = time.Duration(intFromEnv("OPTIMIZER_CANDIDATE_CACHE_TTL_SECONDS", 300)) * time.Second
	return cfg
}

// Package optimizer is the multi-store cart optimization engine: given a
// shopping list whose items may be purchasable from several competing
// stores, it decides which store fulfills each item under three objectives
// (price, time, convenience) and returns comparable purchase plans.
package optimizer

import (
	"context"
	"errors"
	"sync"

	"github.com/TheBeardNerd/SmartCart-sub002/catalog"
	"github.com/TheBeardNerd/SmartCart-sub002/config"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("smartcart-optimizer")

// Engine is invoked synchronously per optimization request and holds no
// state across invocations except the candidate cache. All tunables come in
// through the explicit config value, never ambient process state.
type Engine struct {
	cfg     config.OptimizerConfig
	logger  *logrus.Logger
	fetcher *catalog.Fetcher
	cache   *CandidateCache // nil disables caching
}

func NewEngine(cfg config.OptimizerConfig, logger *logrus.Logger, fetcher *catalog.Fetcher, cache *CandidateCache) *Engine {
	return &Engine{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		cache:   cache,
	}
}

// Optimize runs one request end to end: validate, resolve candidates
// (cached or fetched), solve the requested modes concurrently, compute
// savings against the baseline, assemble. The whole call is bounded by the
// configured deadline; exceeding it returns ErrOptimizationTimeout and no
// partial result.
func (e *Engine) Optimize(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "optimizer.Optimize", trace.WithAttributes(
		attribute.Int("cart.items", len(req.Items)),
		attribute.Bool("cart.all_modes", req.Mode == nil),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.TotalDeadline)
	defer cancel()

	correlationId, ok := utils.GetCorrelationIdFromContext(ctx)
	if !ok || correlationId == "" {
		correlationId = uuid.NewString()
	}

	cm, err := e.loadCandidates(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, models.ErrOptimizationTimeout
		}
		config.LogError(e.logger, "engine.go", "Optimize", "loadCandidates", correlationId, err)
		return nil, err
	}

	strategies, err := e.solveModes(ctx, cm, req.Modes())
	if err != nil {
		return nil, err
	}

	// The baseline always needs the price-mode plan, whatever was requested.
	priceStrategy := strategies[models.OptimizationModePrice]
	baseline := ComputeBaseline(cm, e.defaultStoreId(ctx, req), priceStrategy)

	requested := map[models.OptimizationMode]*models.Strategy{}
	for _, mode := range req.Modes() {
		requested[mode] = strategies[mode]
	}
	ApplySavings(requested, baseline)

	result, err := AssembleResult(req, cm, requested, baseline, correlationId)
	if err != nil {
		var violation *models.InvariantViolationError
		if errors.As(err, &violation) {
			config.LogError(e.logger, "engine.go", "Optimize", "invariant violation snapshot", violation, err)
		}
		return nil, err
	}
	return result, nil
}

// solveModes runs the mode solvers concurrently. They share only the
// read-only candidate map, so no synchronization beyond the join is needed.
// If the deadline expires before all solvers finish, the request fails as a
// whole - a partial strategy set is never returned.
func (e *Engine) solveModes(ctx context.Context, cm *models.CandidateMap, requested []models.OptimizationMode) (map[models.OptimizationMode]*models.Strategy, error) {
	modes := requested
	hasPrice := false
	for _, mode := range modes {
		if mode == models.OptimizationModePrice {
			hasPrice = true
		}
	}
	if !hasPrice {
		modes = append([]models.OptimizationMode{models.OptimizationModePrice}, modes...)
	}

	results := make([]*models.Strategy, len(modes))
	var wg sync.WaitGroup
	for i, mode := range modes {
		wg.Add(1)
		go func(i int, mode models.OptimizationMode) {
			defer wg.Done()
			results[i] = e.solveOne(ctx, cm, mode)
		}(i, mode)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, models.ErrOptimizationTimeout
	}

	strategies := make(map[models.OptimizationMode]*models.Strategy, len(modes))
	for i, mode := range modes {
		strategies[mode] = results[i]
	}
	return strategies, nil
}

func (e *Engine) solveOne(ctx context.Context, cm *models.CandidateMap, mode models.OptimizationMode) *models.Strategy {
	_, span := tracer.Start(ctx, "optimizer.solve."+string(mode))
	defer span.End()

	switch mode {
	case models.OptimizationModeTime:
		return solveTime(cm)
	case models.OptimizationModeConvenience:
		return solveConvenience(cm)
	default:
		return solvePrice(cm, e.cfg.RefinementPasses, e.cfg.EvacuationLimit)
	}
}

func (e *Engine) defaultStoreId(ctx context.Context, req *models.OptimizationRequest) string {
	if req.DefaultStoreId != "" {
		return req.DefaultStoreId
	}
	if storeId, ok := utils.GetDefaultStoreIdFromContext(ctx); ok {
		return storeId
	}
	return ""
}

// loadCandidates is the read-through path: cache hit avoids the catalog
// fan-out entirely; a miss takes a short single-flight lock, fetches, builds
// and backfills the cache.
func (e *Engine) loadCandidates(ctx context.Context, req *models.OptimizationRequest) (*models.CandidateMap, error) {
	hash := CandidateSetHash(req.ProductIds(), req.ExcludedStoreIds)

	if e.cache != nil {
		if cm, ok := e.cacheLookup(req, hash); ok {
			return cm, nil
		}
		if release := e.cache.tryLock(ctx, hash); release != nil {
			defer release()
			// another request may have built it while we waited
			if cm, ok := e.cacheLookup(req, hash); ok {
				return cm, nil
			}
		}
	}

	feed, err := e.fetcher.Fetch(ctx, req.ProductIds())
	if err != nil {
		return nil, err
	}
	cm := BuildCandidates(req, feed, hash)
	if e.cache != nil {
		e.cache.Put(hash, cm.PolicyVersion, cm.Candidates)
	}
	return cm, nil
}

func (e *Engine) cacheLookup(req *models.OptimizationRequest, hash string) (*models.CandidateMap, bool) {
	version, ok := e.cache.CurrentPolicyVersion()
	if !ok {
		return nil, false
	}
	candidates, hit := e.cache.Get(hash, version)
	if !hit {
		return nil, false
	}
	return assembleCandidateMap(req.Items, candidates, version, hash), true
}

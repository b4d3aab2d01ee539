package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/TheBeardNerd/SmartCart-sub002/catalog"
	"github.com/TheBeardNerd/SmartCart-sub002/config"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/optimizer"
	"github.com/TheBeardNerd/SmartCart-sub002/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// optimize-harness runs the engine against the catalog database (or a
// built-in demo catalog) and prints every strategy. Repeated runs on the
// same input double as a determinism check.
//
// Example:
//   go run ./cmd/optimize-harness \
//     --items=apples:2,milk:1 --default_store=StoreA --runs=5 --demo
func main() {
	var (
		itemsSpec    = flag.String("items", "", "shopping list as productId:qty,... (required)")
		modeStr      = flag.String("mode", "", "price|time|convenience (empty = all modes)")
		defaultStore = flag.String("default_store", "", "baseline store id")
		excluded     = flag.String("excluded_stores", "", "comma-separated store ids to exclude")
		runs         = flag.Int("runs", 1, "repeat count (determinism check)")
		useDemo      = flag.Bool("demo", false, "use the built-in demo catalog instead of the DB")
	)
	flag.Parse()

	items, err := parseItems(*itemsSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --items: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	logger := logrus.New()

	var source catalog.Source
	if *useDemo {
		source = demoCatalog()
	} else {
		config.ConnectDatabaseWithRetry()
		source = catalog.NewStoreCatalog(config.GetDB())
	}

	cfg := config.LoadOptimizerConfig()
	fetcher := catalog.NewFetcher([]catalog.Source{source}, cfg.PerStoreTimeout, logger)
	engine := optimizer.NewEngine(cfg, logger, fetcher, nil)

	req := &models.OptimizationRequest{
		Items:          items,
		DefaultStoreId: *defaultStore,
	}
	if *modeStr != "" {
		mode, err := models.ParseOptimizationMode(*modeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --mode: %v\n", err)
			os.Exit(2)
		}
		req.Mode = &mode
	}
	if *excluded != "" {
		req.ExcludedStoreIds = strings.Split(*excluded, ",")
	}

	var reference *models.OptimizationResult
	for i := 1; i <= *runs; i++ {
		ctx := utils.SetCorrelationIdInContext(context.Background(),
			fmt.Sprintf("harness-%02d-%d", i, time.Now().UnixNano()))

		result, err := engine.Optimize(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "run %d failed: %v\n", i, err)
			os.Exit(1)
		}
		if reference == nil {
			reference = result
			printResult(result)
			continue
		}
		if drift := compareRuns(reference, result); drift != "" {
			fmt.Fprintf(os.Stderr, "run %d NOT deterministic: %s\n", i, drift)
			os.Exit(1)
		}
	}
	if *runs > 1 {
		fmt.Printf("\n%d runs, identical assignments\n", *runs)
	}
}

func parseItems(spec string) ([]models.ShoppingListItem, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty")
	}
	var items []models.ShoppingListItem
	for _, part := range strings.Split(spec, ",") {
		productId, qtyStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("%q is not productId:qty", part)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			return nil, fmt.Errorf("bad quantity in %q", part)
		}
		items = append(items, models.ShoppingListItem{ProductId: productId, Quantity: qty})
	}
	return items, nil
}

func printResult(result *models.OptimizationResult) {
	fmt.Printf("correlation %s | baseline %s (store=%q)\n",
		result.CorrelationId, result.Baseline.TotalCost(), result.Baseline.StoreId)
	for _, mode := range models.AllOptimizationModes {
		s, ok := result.Strategies[mode]
		if !ok {
			continue
		}
		fmt.Printf("\n[%s] items=%s fees=%s total=%s stores=%d eta=%dmin savings=%s\n",
			mode, s.ItemSubtotal, s.DeliveryFeesTotal, s.TotalCost(),
			s.DistinctStoreCount, s.EstimatedDeliveryMinutes, s.EstimatedSavings)
		for _, a := range s.Assignments {
			fmt.Printf("  %-12s x%-2d %-10s @ %s\n", a.ProductId, a.Quantity, a.StoreName, a.UnitPrice)
		}
		if len(s.UnresolvedItems) > 0 {
			fmt.Printf("  unresolved: %s\n", strings.Join(s.UnresolvedItems, ", "))
		}
	}
}

func compareRuns(a, b *models.OptimizationResult) string {
	for _, mode := range models.AllOptimizationModes {
		sa, sb := a.Strategies[mode], b.Strategies[mode]
		if (sa == nil) != (sb == nil) {
			return fmt.Sprintf("%s: strategy presence differs", mode)
		}
		if sa == nil {
			continue
		}
		if len(sa.Assignments) != len(sb.Assignments) {
			return fmt.Sprintf("%s: assignment count %d vs %d", mode, len(sa.Assignments), len(sb.Assignments))
		}
		for i := range sa.Assignments {
			if sa.Assignments[i] != sb.Assignments[i] {
				return fmt.Sprintf("%s: assignment %d differs", mode, i)
			}
		}
	}
	return ""
}

func demoCatalog() *catalog.StaticSource {
	dec := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}
	freeAt := dec("10.00")
	return &catalog.StaticSource{
		SourceName: "demo",
		Offers: []models.Offer{
			{ProductId: "apples", StoreId: "StoreA", StoreName: "GreenMart", UnitPrice: dec("3.00"), StockStatus: models.StockStatusInStock, EstimatedFulfillmentMinutes: 30},
			{ProductId: "apples", StoreId: "StoreB", StoreName: "BudgetFoods", UnitPrice: dec("2.50"), StockStatus: models.StockStatusInStock, EstimatedFulfillmentMinutes: 45},
			{ProductId: "milk", StoreId: "StoreA", StoreName: "GreenMart", UnitPrice: dec("4.00"), StockStatus: models.StockStatusInStock, EstimatedFulfillmentMinutes: 30},
			{ProductId: "milk", StoreId: "StoreB", StoreName: "BudgetFoods", UnitPrice: dec("4.50"), StockStatus: models.StockStatusLimited, EstimatedFulfillmentMinutes: 45},
			{ProductId: "bread", StoreId: "StoreB", StoreName: "BudgetFoods", UnitPrice: dec("2.20"), StockStatus: models.StockStatusInStock, EstimatedFulfillmentMinutes: 45},
		},
		PolicyRows: map[string]models.StorePolicy{
			"StoreA": {StoreId: "StoreA", StoreName: "GreenMart", Version: 1},
			"StoreB": {StoreId: "StoreB", StoreName: "BudgetFoods", DeliveryFee: dec("5.00"), FreeDeliveryThreshold: &freeAt, Version: 1},
		},
	}
}

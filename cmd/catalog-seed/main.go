package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/TheBeardNerd/SmartCart-sub002/catalog"
	"github.com/TheBeardNerd/SmartCart-sub002/config"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/optimizer"
	"github.com/shopspring/decimal"
)

// catalog-seed migrates the catalog tables and loads a small demo catalog:
// three stores with different fee/minimum shapes and a handful of grocery
// products. It also bumps the cached policy version so in-flight candidate
// caches invalidate.
//
// Usage:
//   go run ./cmd/catalog-seed [--wipe]
func main() {
	wipe := flag.Bool("wipe", false, "delete existing offers/policies first")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	db := config.GetDB()

	if err := catalog.MigrateCatalogTables(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if *wipe {
		if err := db.Exec("DELETE FROM offers").Error; err != nil {
			log.Fatalf("wipe offers: %v", err)
		}
		if err := db.Exec("DELETE FROM store_policies").Error; err != nil {
			log.Fatalf("wipe store_policies: %v", err)
		}
	}

	policies := seedPolicies()
	for i := range policies {
		if err := db.Save(&policies[i]).Error; err != nil {
			log.Fatalf("save policy %s: %v", policies[i].StoreId, err)
		}
	}

	offers := seedOffers()
	for i := range offers {
		if err := db.Create(&offers[i]).Error; err != nil {
			log.Fatalf("save offer %s@%s: %v", offers[i].ProductId, offers[i].StoreId, err)
		}
	}

	version := 1
	for _, p := range policies {
		if p.Version > version {
			version = p.Version
		}
	}
	if err := optimizer.SetCurrentPolicyVersion(version); err != nil {
		fmt.Fprintf(os.Stderr, "warning: policy version not cached: %v\n", err)
	}

	fmt.Printf("seeded %d policies, %d offers (policy version %d)\n", len(policies), len(offers), version)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func seedPolicies() []models.StorePolicy {
	return []models.StorePolicy{
		{
			StoreId:               "greenmart",
			StoreName:             "GreenMart",
			DeliveryFee:           dec("0"),
			MinimumOrderAmount:    dec("0"),
			AvgFulfillmentMinutes: 35,
			Version:               1,
		},
		{
			StoreId:               "budgetfoods",
			StoreName:             "BudgetFoods",
			DeliveryFee:           dec("4.99"),
			FreeDeliveryThreshold: decPtr("25.00"),
			MinimumOrderAmount:    dec("10.00"),
			AvgFulfillmentMinutes: 55,
			Version:               1,
		},
		{
			StoreId:               "quickdash",
			StoreName:             "QuickDash",
			DeliveryFee:           dec("7.50"),
			MinimumOrderAmount:    dec("0"),
			AvgFulfillmentMinutes: 15,
			Version:               1,
		},
	}
}

func seedOffers() []models.Offer {
	type row struct {
		product string
		store   string
		price   string
		status  models.StockStatus
		minutes int
	}
	rows := []row{
		{"apples", "greenmart", "3.00", models.StockStatusInStock, 35},
		{"apples", "budgetfoods", "2.50", models.StockStatusInStock, 55},
		{"apples", "quickdash", "3.75", models.StockStatusLimited, 15},
		{"milk", "greenmart", "4.00", models.StockStatusInStock, 35},
		{"milk", "budgetfoods", "4.50", models.StockStatusInStock, 55},
		{"milk", "quickdash", "4.25", models.StockStatusInStock, 15},
		{"bread", "greenmart", "2.80", models.StockStatusInStock, 35},
		{"bread", "budgetfoods", "2.20", models.StockStatusLimited, 55},
		{"eggs", "budgetfoods", "5.10", models.StockStatusInStock, 55},
		{"eggs", "quickdash", "6.00", models.StockStatusInStock, 15},
		{"coffee", "greenmart", "11.50", models.StockStatusInStock, 35},
		{"coffee", "budgetfoods", "9.90", models.StockStatusOutOfStock, 55},
	}

	storeNames := map[string]string{
		"greenmart":   "GreenMart",
		"budgetfoods": "BudgetFoods",
		"quickdash":   "QuickDash",
	}

	offers := make([]models.Offer, 0, len(rows))
	for _, r := range rows {
		offers = append(offers, models.Offer{
			ProductId:                   r.product,
			StoreId:                     r.store,
			StoreName:                   storeNames[r.store],
			UnitPrice:                   dec(r.price),
			StockStatus:                 r.status,
			EstimatedFulfillmentMinutes: r.minutes,
		})
	}
	return offers
}

package optimizer

import (
	"github.com/TheBeardNerd/SmartCart-sub002/catalog"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func listItem(productId string, qty int) models.ShoppingListItem {
	return models.ShoppingListItem{ProductId: productId, Quantity: qty}
}

func offer(productId, storeId, price string, minutes int) models.Offer {
	return models.Offer{
		ProductId:                   productId,
		StoreId:                     storeId,
		StoreName:                   "Store " + storeId,
		UnitPrice:                   dec(price),
		StockStatus:                 models.StockStatusInStock,
		EstimatedFulfillmentMinutes: minutes,
	}
}

func policy(storeId string, fee string, freeThreshold string, minOrder string) models.StorePolicy {
	p := models.StorePolicy{
		StoreId:            storeId,
		StoreName:          "Store " + storeId,
		DeliveryFee:        dec(fee),
		MinimumOrderAmount: dec(minOrder),
		Version:            1,
	}
	if freeThreshold != "" {
		p.FreeDeliveryThreshold = decPtr(freeThreshold)
	}
	return p
}

func buildMap(items []models.ShoppingListItem, offers []models.Offer, policies ...models.StorePolicy) *models.CandidateMap {
	req := &models.OptimizationRequest{Items: items}
	feed := &catalog.Feed{
		Offers:   offers,
		Policies: map[string]models.StorePolicy{},
	}
	for _, p := range policies {
		feed.Policies[p.StoreId] = p
	}
	return BuildCandidates(req, feed, CandidateSetHash(req.ProductIds(), nil))
}

func assignmentsByProduct(s *models.Strategy) map[string]models.Assignment {
	out := map[string]models.Assignment{}
	for _, a := range s.Assignments {
		out[a.ProductId] = a
	}
	return out
}

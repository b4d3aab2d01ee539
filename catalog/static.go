package catalog

import (
	"context"

	"github.com/TheBeardNerd/SmartCart-sub002/models"
)

// StaticSource serves a fixed in-memory feed. Used by the harness and by
// local development setups without a catalog database.
type StaticSource struct {
	SourceName string
	Offers     []models.Offer
	PolicyRows map[string]models.StorePolicy
}

func (s *StaticSource) Name() string {
	if s.SourceName == "" {
		return "static"
	}
	return s.SourceName
}

func (s *StaticSource) BulkOffers(ctx context.Context, productIds []string) ([]models.Offer, error) {
	wanted := make(map[string]bool, len(productIds))
	for _, id := range productIds {
		wanted[id] = true
	}
	var out []models.Offer
	for _, offer := range s.Offers {
		if wanted[offer.ProductId] {
			out = append(out, offer)
		}
	}
	return out, nil
}

func (s *StaticSource) Policies(ctx context.Context, storeIds []string) (map[string]models.StorePolicy, error) {
	out := map[string]models.StorePolicy{}
	for _, id := range storeIds {
		if p, ok := s.PolicyRows[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

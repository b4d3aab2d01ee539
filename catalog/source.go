// Package catalog is the availability-resolver boundary: it turns external
// offer/policy feeds into the read-only inputs the optimizer consumes.
package catalog

import (
	"context"

	"github.com/TheBeardNerd/SmartCart-sub002/models"
)

// Source is one catalog backend (typically one store's feed, sometimes an
// aggregator covering several stores). Both lookups are bulk and may return
// partial data: a missing product simply has no offer, a missing store no
// policy override.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// BulkOffers returns every offer this source has for the given products.
	BulkOffers(ctx context.Context, productIds []string) ([]models.Offer, error)

	// Policies returns policy rows for the given stores, keyed by store id.
	// Stores unknown to this source are absent from the map.
	Policies(ctx context.Context, storeIds []string) (map[string]models.StorePolicy, error)
}

// Feed is what one fan-out produced: the merged offers, the merged policy
// table, and how many sources actually answered.
type Feed struct {
	Offers        []models.Offer
	Policies      map[string]models.StorePolicy
	SourcesOK     int
	SourcesFailed int
}

// PolicyVersion is the version the whole policy table is at: the max row
// version. It keys the candidate cache.
func (f *Feed) PolicyVersion() int {
	version := 1
	for _, p := range f.Policies {
		if p.Version > version {
			version = p.Version
		}
	}
	return version
}

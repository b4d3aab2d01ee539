package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/TheBeardNerd/SmartCart-sub002/config"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/sirupsen/logrus"
)

// Fetcher fans out one catalog read to every registered source. Each fetch
// is bounded by a per-source timeout; a source that times out or errors is
// treated as having nothing for this request. Only when every source fails
// does the fetch fail, with CatalogUnavailable.
type Fetcher struct {
	sources []Source
	timeout time.Duration
	logger  *logrus.Logger
}

func NewFetcher(sources []Source, perSourceTimeout time.Duration, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		sources: sources,
		timeout: perSourceTimeout,
		logger:  logger,
	}
}

type sourceResult struct {
	offers   []models.Offer
	policies map[string]models.StorePolicy
	err      error
}

// Fetch retrieves offers for the products and policies for whatever stores
// those offers name. Failed sources degrade to empty; the caller never sees
// a per-source error.
func (f *Fetcher) Fetch(ctx context.Context, productIds []string) (*Feed, error) {
	if len(f.sources) == 0 {
		return nil, models.ErrCatalogUnavailable
	}

	results := make([]sourceResult, len(f.sources))
	var wg sync.WaitGroup
	for i, src := range f.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i] = f.fetchOne(ctx, src, productIds)
		}(i, src)
	}
	wg.Wait()

	feed := &Feed{Policies: map[string]models.StorePolicy{}}
	for i, res := range results {
		if res.err != nil {
			feed.SourcesFailed++
			config.LogWarn(f.logger, "fetcher.go", "Fetch", "catalog source degraded to empty", f.sources[i].Name(), res.err)
			continue
		}
		feed.SourcesOK++
		feed.Offers = append(feed.Offers, res.offers...)
		for storeId, policy := range res.policies {
			feed.Policies[storeId] = policy
		}
	}

	if feed.SourcesOK == 0 {
		return nil, models.ErrCatalogUnavailable
	}
	return feed, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, src Source, productIds []string) sourceResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	offers, err := src.BulkOffers(ctx, productIds)
	if err != nil {
		return sourceResult{err: err}
	}

	storeIds := make([]string, 0, 4)
	seen := map[string]bool{}
	for _, offer := range offers {
		if !seen[offer.StoreId] {
			seen[offer.StoreId] = true
			storeIds = append(storeIds, offer.StoreId)
		}
	}

	policies, err := src.Policies(ctx, storeIds)
	if err != nil {
		return sourceResult{err: err}
	}
	return sourceResult{offers: offers, policies: policies}
}

package optimizer

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/TheBeardNerd/SmartCart-sub002/catalog"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/utils"
)

// CandidateSetHash identifies a candidate build: same product set and same
// exclusions hash identically regardless of list order. Quantities are
// deliberately left out (they do not change which candidates exist), so a
// quantity-only cart edit still hits the cache.
func CandidateSetHash(productIds []string, excludedStoreIds []string) string {
	products := utils.UniqueSlice(productIds)
	sort.Strings(products)
	excluded := utils.UniqueSlice(excludedStoreIds)
	sort.Strings(excluded)

	h := sha256.New()
	h.Write([]byte(strings.Join(products, "\n")))
	h.Write([]byte("\n|x|\n"))
	h.Write([]byte(strings.Join(excluded, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}

// BuildCandidates turns a catalog feed into the solver input: per-product
// candidate lists, sorted by unit price then store id. Out-of-stock offers
// and excluded stores are dropped here; a store with no policy row gets the
// zero-fee default. Items left with no candidate go to Unresolved and never
// block the rest of the plan.
func BuildCandidates(req *models.OptimizationRequest, feed *catalog.Feed, hash string) *models.CandidateMap {
	excluded := make(map[string]bool, len(req.ExcludedStoreIds))
	for _, storeId := range req.ExcludedStoreIds {
		excluded[storeId] = true
	}
	wanted := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		wanted[item.ProductId] = true
	}

	candidates := make(map[string][]models.Candidate, len(req.Items))
	for _, offer := range feed.Offers {
		if !wanted[offer.ProductId] {
			continue
		}
		if excluded[offer.StoreId] {
			continue
		}
		if !offer.StockStatus.Purchasable() {
			continue
		}
		policy, ok := feed.Policies[offer.StoreId]
		if !ok {
			policy = models.DefaultStorePolicy(offer.StoreId, offer.StoreName)
		}
		candidates[offer.ProductId] = append(candidates[offer.ProductId], models.Candidate{
			ProductId:          offer.ProductId,
			StoreId:            offer.StoreId,
			StoreName:          offer.StoreName,
			UnitPrice:          offer.UnitPrice,
			StockStatus:        offer.StockStatus,
			FulfillmentMinutes: offer.EstimatedFulfillmentMinutes,
			Policy:             policy,
		})
	}

	for productId := range candidates {
		sortCandidates(candidates[productId])
	}

	return assembleCandidateMap(req.Items, candidates, feed.PolicyVersion(), hash)
}

func sortCandidates(list []models.Candidate) {
	sort.SliceStable(list, func(i, j int) bool {
		if cmp := list[i].UnitPrice.Cmp(list[j].UnitPrice); cmp != 0 {
			return cmp < 0
		}
		return list[i].StoreId < list[j].StoreId
	})
}

// assembleCandidateMap binds a (possibly cached) candidate table to the
// request's items and recomputes the unresolved set.
func assembleCandidateMap(items []models.ShoppingListItem, candidates map[string][]models.Candidate, policyVersion int, hash string) *models.CandidateMap {
	unresolved := []string{}
	for _, item := range items {
		if len(candidates[item.ProductId]) == 0 {
			unresolved = append(unresolved, item.ProductId)
		}
	}
	return &models.CandidateMap{
		Items:         items,
		Candidates:    candidates,
		Unresolved:    unresolved,
		PolicyVersion: policyVersion,
		Hash:          hash,
	}
}

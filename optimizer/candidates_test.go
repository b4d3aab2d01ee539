package optimizer

import (
	"testing"

	"github.com/TheBeardNerd/SmartCart-sub002/catalog"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
)

func TestBuildCandidates_FiltersAndSorts(t *testing.T) {
	req := &models.OptimizationRequest{
		Items:            []models.ShoppingListItem{listItem("a", 1), listItem("ghost", 1)},
		ExcludedStoreIds: []string{"Banned"},
	}
	feed := &catalog.Feed{
		Offers: []models.Offer{
			offer("a", "S2", "1.50", 30),
			offer("a", "S1", "1.50", 30),
			offer("a", "Banned", "0.10", 30),
			offer("a", "S3", "1.00", 30),
			{ProductId: "a", StoreId: "S4", StoreName: "Store S4", UnitPrice: dec("0.01"), StockStatus: models.StockStatusOutOfStock},
			offer("unrequested", "S1", "9.99", 30),
		},
		Policies: map[string]models.StorePolicy{
			"S1": policy("S1", "0", "", "0"),
		},
	}

	cm := BuildCandidates(req, feed, CandidateSetHash(req.ProductIds(), req.ExcludedStoreIds))

	cands := cm.Candidates["a"]
	if len(cands) != 3 {
		t.Fatalf("candidates for a = %d, want 3 (out-of-stock and excluded dropped)", len(cands))
	}
	// cheapest first, store id breaks the 1.50 tie
	if cands[0].StoreId != "S3" || cands[1].StoreId != "S1" || cands[2].StoreId != "S2" {
		t.Fatalf("candidate order = %s,%s,%s, want S3,S1,S2", cands[0].StoreId, cands[1].StoreId, cands[2].StoreId)
	}
	if len(cm.Candidates["unrequested"]) != 0 {
		t.Fatalf("offers for products not on the list must not become candidates")
	}

	if len(cm.Unresolved) != 1 || cm.Unresolved[0] != "ghost" {
		t.Fatalf("unresolved = %v, want [ghost]", cm.Unresolved)
	}

	// S2 had no policy row: default zero-fee policy, not an error
	for _, cand := range cands {
		if cand.StoreId == "S2" && !cand.Policy.DeliveryFee.IsZero() {
			t.Fatalf("missing policy must default to zero fee, got %s", cand.Policy.DeliveryFee)
		}
	}
}

func TestCandidateSetHash_OrderAndQuantityInsensitive(t *testing.T) {
	h1 := CandidateSetHash([]string{"a", "b", "c"}, []string{"S9"})
	h2 := CandidateSetHash([]string{"c", "a", "b", "a"}, []string{"S9"})
	if h1 != h2 {
		t.Fatalf("hash must ignore order and duplicates")
	}

	if CandidateSetHash([]string{"a", "b"}, nil) == CandidateSetHash([]string{"a"}, nil) {
		t.Fatalf("different product sets must hash differently")
	}
	if CandidateSetHash([]string{"a"}, []string{"S1"}) == CandidateSetHash([]string{"a"}, nil) {
		t.Fatalf("exclusions must change the hash")
	}
}

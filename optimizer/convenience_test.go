package optimizer

import (
	"testing"

	"github.com/TheBeardNerd/SmartCart-sub002/models"
)

func TestSolveConvenience_SingleStoreWhenPossible(t *testing.T) {
	// Two stores cover everything; the cheaper full basket wins.
	cm := buildMap(
		[]models.ShoppingListItem{listItem("a", 1), listItem("b", 1)},
		[]models.Offer{
			offer("a", "S1", "2.00", 30), offer("a", "S2", "1.00", 30),
			offer("b", "S1", "2.00", 30), offer("b", "S2", "1.50", 30),
		},
		policy("S1", "0", "", "0"),
		policy("S2", "0", "", "0"),
	)

	s := solveConvenience(cm)

	if s.DistinctStoreCount != 1 {
		t.Fatalf("distinctStoreCount = %d, want 1", s.DistinctStoreCount)
	}
	if s.Assignments[0].StoreId != "S2" {
		t.Fatalf("chose %s, want S2 (cheaper full basket)", s.Assignments[0].StoreId)
	}
}

func TestSolveConvenience_GreedyCoverFallback(t *testing.T) {
	// No single store stocks all three; S1 covers two of them, so the plan
	// must be exactly {S1, S3}.
	cm := buildMap(
		[]models.ShoppingListItem{listItem("a", 1), listItem("b", 1), listItem("c", 1)},
		[]models.Offer{
			offer("a", "S1", "1.00", 30), offer("a", "S2", "0.50", 30),
			offer("b", "S1", "1.00", 30),
			offer("c", "S3", "1.00", 30),
		},
		policy("S1", "0", "", "0"),
		policy("S2", "0", "", "0"),
		policy("S3", "0", "", "0"),
	)

	s := solveConvenience(cm)

	if s.DistinctStoreCount != 2 {
		t.Fatalf("distinctStoreCount = %d, want 2", s.DistinctStoreCount)
	}
	byProduct := assignmentsByProduct(s)
	if byProduct["a"].StoreId != "S1" || byProduct["b"].StoreId != "S1" {
		t.Fatalf("a,b should consolidate on S1, got %+v", s.Assignments)
	}
	if byProduct["c"].StoreId != "S3" {
		t.Fatalf("c assigned to %s, want S3", byProduct["c"].StoreId)
	}
}

func TestSolveConvenience_CoverTieBrokenByPriceThenStoreId(t *testing.T) {
	// S1 and S2 both cover both items; equal coverage, S2 cheaper.
	cm := buildMap(
		[]models.ShoppingListItem{listItem("a", 2), listItem("b", 1)},
		[]models.Offer{
			offer("a", "S1", "3.00", 30), offer("a", "S2", "2.00", 30),
			offer("b", "S1", "3.00", 30), offer("b", "S2", "2.00", 30),
		},
		policy("S1", "0", "", "0"),
		policy("S2", "0", "", "0"),
	)

	s := solveConvenience(cm)

	if s.Assignments[0].StoreId != "S2" {
		t.Fatalf("chose %s, want S2", s.Assignments[0].StoreId)
	}
}

func TestSolveConvenience_AllUnresolved(t *testing.T) {
	cm := buildMap(
		[]models.ShoppingListItem{listItem("ghost", 1)},
		nil,
	)

	s := solveConvenience(cm)

	if len(s.Assignments) != 0 {
		t.Fatalf("assignments = %+v, want none", s.Assignments)
	}
	if s.DistinctStoreCount != 0 {
		t.Fatalf("distinctStoreCount = %d, want 0", s.DistinctStoreCount)
	}
	if len(s.UnresolvedItems) != 1 {
		t.Fatalf("unresolvedItems = %v, want [ghost]", s.UnresolvedItems)
	}
}

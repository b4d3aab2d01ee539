package optimizer

import (
	"testing"

	"github.com/TheBeardNerd/SmartCart-sub002/models"
)

// The canonical fixed-cost trap: apples are cheaper at StoreB, but StoreB
// charges a $5 fee below a $10 subtotal. Buying everything from StoreA
// ($10.00, no fee) beats the naive cheapest-per-item split ($14.00), so the
// solver must walk the seed back.
func TestSolvePrice_RejectsNaiveCheapestSplit(t *testing.T) {
	cm := buildMap(
		[]models.ShoppingListItem{listItem("apples", 2), listItem("milk", 1)},
		[]models.Offer{
			offer("apples", "StoreA", "3.00", 30),
			offer("apples", "StoreB", "2.50", 45),
			offer("milk", "StoreA", "4.00", 30),
			offer("milk", "StoreB", "4.50", 45),
		},
		policy("StoreA", "0", "", "0"),
		policy("StoreB", "5.00", "10.00", "0"),
	)

	s := solvePrice(cm, 3, 2)

	if got := s.TotalCost(); !got.Equal(dec("10.00")) {
		t.Fatalf("total cost = %s, want 10.00", got)
	}
	if s.DistinctStoreCount != 1 {
		t.Fatalf("distinctStoreCount = %d, want 1", s.DistinctStoreCount)
	}
	byProduct := assignmentsByProduct(s)
	for _, productId := range []string{"apples", "milk"} {
		if byProduct[productId].StoreId != "StoreA" {
			t.Fatalf("%s assigned to %s, want StoreA", productId, byProduct[productId].StoreId)
		}
	}
	if !s.DeliveryFeesTotal.IsZero() {
		t.Fatalf("deliveryFeesTotal = %s, want 0", s.DeliveryFeesTotal)
	}
}

func TestSolvePrice_KeepsSplitWhenFeesAreWorthIt(t *testing.T) {
	// StoreB is drastically cheaper for bulk rice; its fee is worth paying.
	cm := buildMap(
		[]models.ShoppingListItem{listItem("rice", 10), listItem("milk", 1)},
		[]models.Offer{
			offer("rice", "StoreA", "8.00", 30),
			offer("rice", "StoreB", "5.00", 45),
			offer("milk", "StoreA", "4.00", 30),
		},
		policy("StoreA", "0", "", "0"),
		policy("StoreB", "5.00", "100.00", "0"),
	)

	s := solvePrice(cm, 3, 2)

	// rice@B 50.00 + fee 5.00 + milk@A 4.00 = 59.00 beats all-A 84.00
	if got := s.TotalCost(); !got.Equal(dec("59.00")) {
		t.Fatalf("total cost = %s, want 59.00", got)
	}
	if s.DistinctStoreCount != 2 {
		t.Fatalf("distinctStoreCount = %d, want 2", s.DistinctStoreCount)
	}
}

func TestSolvePrice_RepairsMinimumOrderViolation(t *testing.T) {
	// StoreB sells bread cheapest but requires a $15 minimum this cart
	// cannot reach there; the item must move to an open store.
	cm := buildMap(
		[]models.ShoppingListItem{listItem("bread", 1), listItem("milk", 1)},
		[]models.Offer{
			offer("bread", "StoreA", "3.00", 30),
			offer("bread", "StoreB", "2.00", 45),
			offer("milk", "StoreA", "4.00", 30),
		},
		policy("StoreA", "0", "", "0"),
		policy("StoreB", "0", "", "15.00"),
	)

	s := solvePrice(cm, 3, 2)

	byProduct := assignmentsByProduct(s)
	if byProduct["bread"].StoreId != "StoreA" {
		t.Fatalf("bread assigned to %s, want StoreA (StoreB minimum unreachable)", byProduct["bread"].StoreId)
	}
	if got := s.TotalCost(); !got.Equal(dec("7.00")) {
		t.Fatalf("total cost = %s, want 7.00", got)
	}
}

func TestSolvePrice_KeepsItemWithoutAlternative(t *testing.T) {
	// Only StoreB sells caviar and the cart misses StoreB's minimum. The
	// assignment stays: a partially feasible plan beats dropping the item.
	cm := buildMap(
		[]models.ShoppingListItem{listItem("caviar", 1)},
		[]models.Offer{offer("caviar", "StoreB", "9.00", 45)},
		policy("StoreB", "0", "", "50.00"),
	)

	s := solvePrice(cm, 3, 2)

	if len(s.Assignments) != 1 || s.Assignments[0].StoreId != "StoreB" {
		t.Fatalf("assignments = %+v, want caviar pinned to StoreB", s.Assignments)
	}
}

// Total price-mode cost never exceeds the naive "first available store per
// item" plan, across a spread of fee/minimum shapes.
func TestSolvePrice_NeverWorseThanNaiveBaseline(t *testing.T) {
	scenarios := []*models.CandidateMap{
		buildMap(
			[]models.ShoppingListItem{listItem("a", 1), listItem("b", 2), listItem("c", 3)},
			[]models.Offer{
				offer("a", "S1", "1.00", 10), offer("a", "S2", "0.90", 20),
				offer("b", "S1", "2.00", 10), offer("b", "S3", "1.50", 15),
				offer("c", "S2", "3.00", 20), offer("c", "S3", "2.75", 15),
			},
			policy("S1", "2.00", "20.00", "0"),
			policy("S2", "4.00", "", "5.00"),
			policy("S3", "3.00", "10.00", "0"),
		),
		buildMap(
			[]models.ShoppingListItem{listItem("x", 5), listItem("y", 1)},
			[]models.Offer{
				offer("x", "S1", "2.00", 10), offer("x", "S2", "1.80", 20),
				offer("y", "S1", "6.00", 10), offer("y", "S2", "5.00", 20),
			},
			policy("S1", "0", "", "0"),
			policy("S2", "7.00", "25.00", "0"),
		),
	}

	for i, cm := range scenarios {
		s := solvePrice(cm, 3, 2)

		naive := assignmentMap{}
		for _, productId := range cm.ResolvedIds() {
			cands := append([]models.Candidate{}, cm.Candidates[productId]...)
			// "first available" = lowest store id, ignoring price
			first := cands[0]
			for _, cand := range cands[1:] {
				if cand.StoreId < first.StoreId {
					first = cand
				}
			}
			naive[productId] = first
		}
		naiveCost := scorePlan(cm, naive).cost

		if s.TotalCost().GreaterThan(naiveCost) {
			t.Fatalf("scenario %d: optimized cost %s exceeds naive %s", i, s.TotalCost(), naiveCost)
		}
	}
}

func TestSolvePrice_DeterministicAcrossRuns(t *testing.T) {
	cm := buildMap(
		[]models.ShoppingListItem{listItem("a", 1), listItem("b", 1), listItem("c", 2), listItem("d", 1)},
		[]models.Offer{
			offer("a", "S1", "1.00", 10), offer("a", "S2", "1.00", 20),
			offer("b", "S1", "2.00", 10), offer("b", "S2", "2.00", 20),
			offer("c", "S1", "3.00", 10), offer("c", "S3", "3.00", 15),
			offer("d", "S2", "4.00", 20), offer("d", "S3", "4.00", 15),
		},
		policy("S1", "1.00", "", "0"),
		policy("S2", "1.00", "", "0"),
		policy("S3", "1.00", "", "0"),
	)

	reference := solvePrice(cm, 3, 2)
	for run := 0; run < 50; run++ {
		s := solvePrice(cm, 3, 2)
		if len(s.Assignments) != len(reference.Assignments) {
			t.Fatalf("run %d: assignment count changed", run)
		}
		for i := range s.Assignments {
			if s.Assignments[i] != reference.Assignments[i] {
				t.Fatalf("run %d: assignment %d = %+v, want %+v", run, i, s.Assignments[i], reference.Assignments[i])
			}
		}
		if !s.TotalCost().Equal(reference.TotalCost()) {
			t.Fatalf("run %d: cost changed", run)
		}
	}
}

func TestSolvePrice_TieBrokenByFewerStoresThenStoreId(t *testing.T) {
	// Same total either way; the single-store plan must win.
	cm := buildMap(
		[]models.ShoppingListItem{listItem("a", 1), listItem("b", 1)},
		[]models.Offer{
			offer("a", "S1", "2.00", 10), offer("a", "S2", "2.00", 20),
			offer("b", "S1", "3.00", 10), offer("b", "S2", "3.00", 20),
		},
		policy("S1", "0", "", "0"),
		policy("S2", "0", "", "0"),
	)

	s := solvePrice(cm, 3, 2)

	if s.DistinctStoreCount != 1 {
		t.Fatalf("distinctStoreCount = %d, want 1", s.DistinctStoreCount)
	}
	if s.Assignments[0].StoreId != "S1" {
		t.Fatalf("tie broken to %s, want S1", s.Assignments[0].StoreId)
	}
}

func TestSolvePrice_QuantitiesNeverSplit(t *testing.T) {
	cm := buildMap(
		[]models.ShoppingListItem{listItem("a", 7), listItem("b", 3)},
		[]models.Offer{
			offer("a", "S1", "1.00", 10), offer("a", "S2", "0.50", 20),
			offer("b", "S1", "2.00", 10), offer("b", "S2", "1.75", 20),
		},
		policy("S1", "0", "", "0"),
		policy("S2", "3.00", "50.00", "0"),
	)

	s := solvePrice(cm, 3, 2)

	byProduct := assignmentsByProduct(s)
	if byProduct["a"].Quantity != 7 || byProduct["b"].Quantity != 3 {
		t.Fatalf("quantities not preserved: %+v", s.Assignments)
	}
	if len(s.Assignments) != 2 {
		t.Fatalf("expected one assignment per item, got %d", len(s.Assignments))
	}
}

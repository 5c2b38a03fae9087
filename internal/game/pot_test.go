package game

import (
	"reflect"
	"testing"
)

func TestComputePotsSingleMain(t *testing.T) {
	hands := []*Hand{
		{Seat: 0, Contributed: 200},
		{Seat: 1, Contributed: 200},
		{Seat: 2, Contributed: 200},
	}
	pots := ComputePots(hands)
	if len(pots) != 1 {
		t.Fatalf("pots = %d, want 1", len(pots))
	}
	if pots[0].Amount != 600 {
		t.Fatalf("main pot = %d, want 600", pots[0].Amount)
	}
	if !reflect.DeepEqual(pots[0].Eligible, []int{0, 1, 2}) {
		t.Fatalf("eligible = %v, want [0 1 2]", pots[0].Eligible)
	}
}

func TestComputePotsThreeWaySidePot(t *testing.T) {
	// A all-in for 300 preflop, B and C call then bet 400 more on the flop.
	hands := []*Hand{
		{Seat: 0, Contributed: 300, AllIn: true},
		{Seat: 1, Contributed: 700},
		{Seat: 2, Contributed: 700},
	}
	pots := ComputePots(hands)
	if len(pots) != 2 {
		t.Fatalf("pots = %d, want 2", len(pots))
	}
	if pots[0].Amount != 900 || !reflect.DeepEqual(pots[0].Eligible, []int{0, 1, 2}) {
		t.Fatalf("main pot = %d eligible %v, want 900 [0 1 2]", pots[0].Amount, pots[0].Eligible)
	}
	if pots[1].Amount != 800 || !reflect.DeepEqual(pots[1].Eligible, []int{1, 2}) {
		t.Fatalf("side pot = %d eligible %v, want 800 [1 2]", pots[1].Amount, pots[1].Eligible)
	}
	if PotTotal(pots) != 1700 {
		t.Fatalf("pot total = %d, want 1700", PotTotal(pots))
	}
}

func TestComputePotsFoldedChipsStayInPots(t *testing.T) {
	// Seat 2 folded after contributing 150: the chips fund the pots but the
	// seat wins nothing.
	hands := []*Hand{
		{Seat: 0, Contributed: 100, AllIn: true},
		{Seat: 1, Contributed: 400},
		{Seat: 2, Contributed: 150, Folded: true},
		{Seat: 3, Contributed: 400},
	}
	pots := ComputePots(hands)
	if PotTotal(pots) != 1050 {
		t.Fatalf("pot total = %d, want 1050", PotTotal(pots))
	}
	if len(pots) != 2 {
		t.Fatalf("pots = %d, want 2", len(pots))
	}
	// 100 from each of the four hands.
	if pots[0].Amount != 400 || !reflect.DeepEqual(pots[0].Eligible, []int{0, 1, 3}) {
		t.Fatalf("main pot = %d eligible %v", pots[0].Amount, pots[0].Eligible)
	}
	// 300+50+300 above the tier; the folded seat is never eligible.
	if pots[1].Amount != 650 || !reflect.DeepEqual(pots[1].Eligible, []int{1, 3}) {
		t.Fatalf("side pot = %d eligible %v", pots[1].Amount, pots[1].Eligible)
	}
}

func TestComputePotsMultipleAllInTiers(t *testing.T) {
	hands := []*Hand{
		{Seat: 0, Contributed: 100, AllIn: true},
		{Seat: 1, Contributed: 250, AllIn: true},
		{Seat: 2, Contributed: 600},
		{Seat: 3, Contributed: 600},
	}
	pots := ComputePots(hands)
	if len(pots) != 3 {
		t.Fatalf("pots = %d, want 3", len(pots))
	}
	want := []struct {
		amount   int64
		eligible []int
	}{
		{400, []int{0, 1, 2, 3}},
		{450, []int{1, 2, 3}},
		{700, []int{2, 3}},
	}
	for i, w := range want {
		if pots[i].Amount != w.amount || !reflect.DeepEqual(pots[i].Eligible, w.eligible) {
			t.Fatalf("pot %d = %d eligible %v, want %d %v",
				i, pots[i].Amount, pots[i].Eligible, w.amount, w.eligible)
		}
	}
	// Monotonicity: the all-in hands appear in every tier up to their
	// contribution and nothing above it.
	for i, pot := range pots {
		for _, seat := range pot.Eligible {
			if hands[seat].Contributed < []int64{100, 250, 600}[i] {
				t.Fatalf("seat %d eligible for tier %d beyond its contribution", seat, i)
			}
		}
	}
}

func TestComputePotsEmpty(t *testing.T) {
	hands := []*Hand{
		{Seat: 0, Folded: true},
		{Seat: 1, Folded: true},
	}
	if pots := ComputePots(hands); pots != nil {
		t.Fatalf("pots = %v, want nil for zero contributions", pots)
	}
}

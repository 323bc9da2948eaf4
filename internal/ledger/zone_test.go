package ledger

import "testing"

func TestClassifyByPrice(t *testing.T) {
	if got := ClassifyByPrice(45.0, 50.0); got != ZoneLocAvg {
		t.Errorf("Expected a below-average fill in LOC평단, got %s", got)
	}
	if got := ClassifyByPrice(50.0, 50.0); got != ZoneLocAvg {
		t.Errorf("Expected a tie in LOC평단, got %s", got)
	}
	if got := ClassifyByPrice(55.0, 50.0); got != ZoneLocHigh {
		t.Errorf("Expected an above-average fill in LOC고가, got %s", got)
	}
}

func TestZonePriceCol(t *testing.T) {
	a := Anchor{HeaderRow: 13, DateCol: 2, LocAvgCol: 4, LocHighCol: 6}
	if got := ZoneLocAvg.PriceCol(a); got != 4 {
		t.Errorf("Expected col 4 for LOC평단, got %d", got)
	}
	if got := ZoneLocHigh.PriceCol(a); got != 6 {
		t.Errorf("Expected col 6 for LOC고가, got %d", got)
	}
}

func TestClassifyByAmount(t *testing.T) {
	const half = 100000.0
	cases := []struct {
		amount float64
		want   SplitMode
	}{
		{195000, SplitBoth},   // near a full round
		{160000, SplitBoth},   // lower full-round band edge
		{240000, SplitBoth},   // upper full-round band edge
		{100000, SplitSingle}, // exactly a half round
		{80000, SplitSingle},  // lower half-round band edge
		{120000, SplitSingle}, // upper half-round band edge
		{130000, SplitSkip},   // between the bands
		{30000, SplitSkip},
		{500000, SplitSkip},
	}
	for _, c := range cases {
		mode, _, _ := ClassifyByAmount(c.amount, half)
		if mode != c.want {
			t.Errorf("ClassifyByAmount(%v, %v): expected mode %d, got %d", c.amount, half, c.want, mode)
		}
	}

	mode, rh, rf := ClassifyByAmount(100000, 0)
	if mode != SplitSkip || rh != 0 || rf != 0 {
		t.Errorf("Expected a skip with zero ratios when the half-round cell is empty, got %d %v %v", mode, rh, rf)
	}
	if mode, _, _ := ClassifyByAmount(100000, -5); mode != SplitSkip {
		t.Error("Expected a skip for a negative half-round amount")
	}

	_, rh, rf = ClassifyByAmount(98000, half)
	if rh != 0.98 || rf != 0.49 {
		t.Errorf("Expected ratios 0.98/0.49, got %v/%v", rh, rf)
	}
}

package ledger

// Zone names the two buy columns of the ledger.
type Zone int

const (
	ZoneLocAvg Zone = iota
	ZoneLocHigh
)

func (z Zone) String() string {
	if z == ZoneLocHigh {
		return "LOC고가"
	}
	return "LOC평단"
}

// PriceCol returns the zone's price column under an anchor.
func (z Zone) PriceCol(a Anchor) int {
	if z == ZoneLocHigh {
		return a.LocHighCol
	}
	return a.LocAvgCol
}

// ClassifyByPrice picks the zone for a fill priced against the running
// average. Ties land in the average zone.
func ClassifyByPrice(fillPrice, avgPrice float64) Zone {
	if fillPrice <= avgPrice {
		return ZoneLocAvg
	}
	return ZoneLocHigh
}

// SplitMode says how an exchange fill maps onto the zones.
type SplitMode int

const (
	SplitSkip SplitMode = iota
	SplitSingle
	SplitBoth
)

// Tolerance band around a half-round or full-round spend. Exchange fees and
// price drift keep real spends off the exact figure.
const (
	ratioBandLow  = 0.8
	ratioBandHigh = 1.2
)

// ClassifyByAmount matches an exchange fill's total spend against the
// ledger's half-round amount H: a spend near 2H is a full round recorded in
// both zones at half quantity, a spend near H is a half round recorded in
// one zone, anything else is not part of the strategy and is skipped.
// H <= 0 always skips. The two ratios are returned for logging.
func ClassifyByAmount(amount, halfRound float64) (mode SplitMode, ratioHalf, ratioFull float64) {
	if halfRound <= 0 {
		return SplitSkip, 0, 0
	}
	ratioHalf = amount / halfRound
	ratioFull = amount / (halfRound * 2)
	switch {
	case ratioFull >= ratioBandLow && ratioFull <= ratioBandHigh:
		return SplitBoth, ratioHalf, ratioFull
	case ratioHalf >= ratioBandLow && ratioHalf <= ratioBandHigh:
		return SplitSingle, ratioHalf, ratioFull
	default:
		return SplitSkip, ratioHalf, ratioFull
	}
}

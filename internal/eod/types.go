package eod

// journalLine is one recorded fill read back from the day's journal file.
// This structure matches the JSON format written by the tradelog package.
type journalLine struct {
	Time   string  // Timestamp of the ledger write
	Source string  // "meritz" or "upbit"
	Symbol string  // Ledger symbol (e.g., "TQQQ", "BTC")
	Zone   string  // Buy zone the fill landed in ("LOC평단" or "LOC고가")
	FillID string  // Exchange fill id, empty for brokerage fills
	Row    int     // Sheet row the fill was written to
	Price  float64 // Fill price
	Qty    float64 // Fill quantity booked into the zone
}

// aggRow accumulates one day's fills for a symbol and zone.
// Used to calculate the per-zone totals in the EOD summary.
type aggRow struct {
	Symbol   string  // Ledger symbol
	Zone     string  // Buy zone
	Fills    int     // Number of fills booked
	TotalQty float64 // Total quantity booked
	Value    float64 // Total value booked (price * qty per fill)
}

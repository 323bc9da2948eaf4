package types

import "time"

// Grid is an immutable snapshot of a worksheet: row-major cell strings,
// possibly ragged. Missing cells read as "".
type Grid [][]string

// Cell returns the value at (row, col), 1-based. Anything out of range is "".
func (g Grid) Cell(row, col int) string {
	if row < 1 || row > len(g) {
		return ""
	}
	r := g[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// Rows returns the number of rows in the snapshot.
func (g Grid) Rows() int { return len(g) }

// MaxCols returns the width of the widest row.
func (g Grid) MaxCols() int {
	max := 0
	for _, r := range g {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// Coord addresses one cell, 1-based. A1 notation exists only at the
// transport boundary.
type Coord struct {
	Row, Col int
}

// SheetRef names one worksheet inside one spreadsheet. An empty Worksheet
// means the spreadsheet's first sheet.
type SheetRef struct {
	SpreadsheetID string
	Worksheet     string
}

const (
	SourceMeritz = "meritz"
	SourceUpbit  = "upbit"

	SideBuy  = "buy"
	SideSell = "sell"
)

// FillEvent is one executed trade fill, normalized across sources.
// Amount is the total spend and is only populated on exchange fills.
// ID is the idempotency key: the exchange fill uuid, or a
// market:time:qty:price fallback when the exchange omits one.
type FillEvent struct {
	Source string
	Symbol string
	Side   string
	Price  float64
	Qty    float64
	Amount float64
	Time   time.Time
	ID     string
}

// WriteResult is the summary read back from the sheet after a fill lands.
type WriteResult struct {
	SpreadsheetTitle    string
	Currency            string
	AvgPrice            float64
	CurrentPrice        float64
	BuyLocAvg           float64
	BuyLocHigh          float64
	SellAll             float64
	SellQtyCurrentRound float64
}

// SyncReport summarizes one exchange reconciliation run.
type SyncReport struct {
	Date      time.Time
	Processed int
	Written   int
	Last      *WriteResult
}

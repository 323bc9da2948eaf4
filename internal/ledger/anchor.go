package ledger

import (
	"fmt"

	"fill-ledger-bot/internal/types"
)

// Anchor fixes the ledger's coordinate system: the header row, the date
// column, and the two LOC price columns. Each zone's quantity column sits
// one to the right of its price column.
type Anchor struct {
	HeaderRow  int
	DateCol    int
	LocAvgCol  int
	LocHighCol int
}

// LayoutError means the sheet the bot was pointed at does not look like a
// ledger: its header labels could not be located.
type LayoutError struct {
	msg string
}

func (e *LayoutError) Error() string { return e.msg }

func layoutErrorf(format string, args ...any) *LayoutError {
	return &LayoutError{msg: fmt.Sprintf(format, args...)}
}

// The label window scanned right of a date label. Split headers put the LOC
// labels one or two rows below the date, and the LOC pair sits within 14
// columns of it.
const (
	anchorWindowRows = 2
	anchorWindowCols = 14
)

// ResolveAnchor locates the header labels in a snapshot.
//
// Phase one walks the grid for a date label and scans a bounded window right
// of it for the LOC pair; a window that yields only one of the pair is
// abandoned and the walk continues with the next date label. Phase two is
// the fallback for sheets whose date label sits outside the window: find the
// LOC pair anywhere, then hunt a date label in the rows adjacent to it.
// The two LOC columns are always distinct; a candidate landing on the other
// zone's column is passed over.
func ResolveAnchor(grid types.Grid) (Anchor, error) {
	if grid.Rows() == 0 {
		return Anchor{}, layoutErrorf("sheet is empty")
	}
	if a, ok := anchorByDateWindow(grid); ok {
		return a, nil
	}
	if a, ok := anchorByLocPair(grid); ok {
		return a, nil
	}
	return Anchor{}, layoutErrorf("header labels not found: 날짜/LOC평단/LOC고가")
}

func anchorByDateWindow(grid types.Grid) (Anchor, bool) {
	rowCount := grid.Rows()
	maxCol := grid.MaxCols()
	for r := 1; r <= rowCount; r++ {
		for c := 1; c <= len(grid[r-1]); c++ {
			if !isDateLabel(grid.Cell(r, c)) {
				continue
			}

			locAvg, locHigh := 0, 0
			locAvgRow, locHighRow := r, r
			for rr := r; rr <= min(r+anchorWindowRows, rowCount); rr++ {
				for cc := c + 1; cc <= min(c+anchorWindowCols, maxCol); cc++ {
					cell := grid.Cell(rr, cc)
					if locAvg == 0 && cc != locHigh && isLocAvgLabel(cell) {
						locAvg, locAvgRow = cc, rr
					}
					if locHigh == 0 && cc != locAvg && isLocHighLabel(cell) {
						locHigh, locHighRow = cc, rr
					}
				}
				if locAvg != 0 && locHigh != 0 {
					return Anchor{
						HeaderRow:  max(r, locAvgRow, locHighRow),
						DateCol:    c,
						LocAvgCol:  locAvg,
						LocHighCol: locHigh,
					}, true
				}
			}
		}
	}
	return Anchor{}, false
}

func anchorByLocPair(grid types.Grid) (Anchor, bool) {
	rowCount := grid.Rows()

	locAvg, locHigh := 0, 0
	locAvgRow, locHighRow := 0, 0
	for r := 1; r <= rowCount && (locAvg == 0 || locHigh == 0); r++ {
		for c := 1; c <= len(grid[r-1]); c++ {
			cell := grid.Cell(r, c)
			if locAvg == 0 && c != locHigh && isLocAvgLabel(cell) {
				locAvg, locAvgRow = c, r
			}
			if locHigh == 0 && c != locAvg && isLocHighLabel(cell) {
				locHigh, locHighRow = c, r
			}
		}
	}
	if locAvg == 0 || locHigh == 0 {
		return Anchor{}, false
	}

	for _, baseRow := range [2]int{locAvgRow, locHighRow} {
		for _, rr := range [3]int{baseRow, baseRow - 1, baseRow + 1} {
			if rr < 1 || rr > rowCount {
				continue
			}
			for c := 1; c <= len(grid[rr-1]); c++ {
				if isDateLabel(grid.Cell(rr, c)) {
					return Anchor{
						HeaderRow:  max(rr, locAvgRow, locHighRow),
						DateCol:    c,
						LocAvgCol:  locAvg,
						LocHighCol: locHigh,
					}, true
				}
			}
		}
	}
	return Anchor{}, false
}

// FindTotalQtyColumn locates the 총수량 column around the header row,
// falling back to the conventional slot four columns right of LOC-high.
func FindTotalQtyColumn(grid types.Grid, a Anchor) int {
	for _, rr := range [3]int{a.HeaderRow, a.HeaderRow - 1, a.HeaderRow + 1} {
		if rr < 1 || rr > grid.Rows() {
			continue
		}
		for c := 1; c <= len(grid[rr-1]); c++ {
			if isTotalQtyLabel(grid.Cell(rr, c)) {
				return c
			}
		}
	}
	return a.LocHighCol + 4
}

package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/types"
)

// FindOrCreateDateRow returns the ledger row holding target's date, writing
// the date into the first free row when no row has it yet.
//
// The lookup runs over the snapshot and accepts any recognized date
// rendering. The creation path deliberately re-reads cells live through the
// store instead: rows may have been appended since the snapshot was taken,
// and writing over one of those would corrupt somebody else's entry. Rows
// whose date cell holds unrecognized text are stepped over, not reused.
func FindOrCreateDateRow(
	ctx context.Context,
	store interfaces.GridStore,
	ref types.SheetRef,
	grid types.Grid,
	anchor Anchor,
	target time.Time,
) (int, error) {
	for r := anchor.HeaderRow + 1; r <= grid.Rows(); r++ {
		if d, ok := ParseCellDate(grid.Cell(r, anchor.DateCol)); ok && sameDay(d, target) {
			return r, nil
		}
	}

	dateText := target.Format("2006-01-02")
	for r := anchor.HeaderRow + 1; ; r++ {
		raw, err := store.CellValue(ctx, ref, types.Coord{Row: r, Col: anchor.DateCol})
		if err != nil {
			return 0, fmt.Errorf("scan date column row %d: %w", r, err)
		}
		if strings.TrimSpace(raw) != "" {
			continue
		}
		cell := types.Coord{Row: r, Col: anchor.DateCol}
		if err := store.UpdateCell(ctx, ref, cell, dateText); err != nil {
			return 0, fmt.Errorf("write date %s to row %d: %w", dateText, r, err)
		}
		return r, nil
	}
}

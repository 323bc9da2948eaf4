package gridobs

import (
	"context"

	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/trace"
	"fill-ledger-bot/internal/types"
)

type observableGridStore struct {
	store interfaces.GridStore
}

var _ interfaces.GridStore = (*observableGridStore)(nil)

func Wrap(store interfaces.GridStore) interfaces.GridStore {
	return &observableGridStore{
		store: store,
	}
}

func (ogs *observableGridStore) Title(ctx context.Context, ref types.SheetRef) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gridstore.Title")
	defer span.End()

	title, err := ogs.store.Title(ctx, ref)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Spreadsheet title read failed", err,
			"spreadsheet_id", ref.SpreadsheetID,
		)
		return "", err
	}
	return title, nil
}

func (ogs *observableGridStore) AllValues(ctx context.Context, ref types.SheetRef) (types.Grid, error) {
	ctx, span := trace.StartSpan(ctx, "gridstore.AllValues")
	defer span.End()

	grid, err := ogs.store.AllValues(ctx, ref)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Worksheet snapshot failed", err,
			"spreadsheet_id", ref.SpreadsheetID,
			"worksheet", ref.Worksheet,
		)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Worksheet snapshot read",
		"spreadsheet_id", ref.SpreadsheetID,
		"rows", grid.Rows(),
	)
	return grid, nil
}

func (ogs *observableGridStore) CellValue(ctx context.Context, ref types.SheetRef, cell types.Coord) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gridstore.CellValue")
	defer span.End()

	value, err := ogs.store.CellValue(ctx, ref, cell)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Cell read failed", err,
			"spreadsheet_id", ref.SpreadsheetID,
			"row", cell.Row,
			"col", cell.Col,
		)
		return "", err
	}
	return value, nil
}

func (ogs *observableGridStore) RawCellValue(ctx context.Context, ref types.SheetRef, cell types.Coord) (any, error) {
	ctx, span := trace.StartSpan(ctx, "gridstore.RawCellValue")
	defer span.End()

	value, err := ogs.store.RawCellValue(ctx, ref, cell)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Cell read failed", err,
			"spreadsheet_id", ref.SpreadsheetID,
			"row", cell.Row,
			"col", cell.Col,
		)
		return nil, err
	}
	return value, nil
}

func (ogs *observableGridStore) UpdateCell(ctx context.Context, ref types.SheetRef, cell types.Coord, value any) error {
	ctx, span := trace.StartSpan(ctx, "gridstore.UpdateCell")
	defer span.End()

	if err := ogs.store.UpdateCell(ctx, ref, cell, value); err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Cell write failed", err,
			"spreadsheet_id", ref.SpreadsheetID,
			"row", cell.Row,
			"col", cell.Col,
		)
		return err
	}

	logger.InfoSkip(ctx, 1, "Cell written",
		"spreadsheet_id", ref.SpreadsheetID,
		"row", cell.Row,
		"col", cell.Col,
	)
	return nil
}

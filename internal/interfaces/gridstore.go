package interfaces

import (
	"context"

	"fill-ledger-bot/internal/types"
)

type GridStore interface {
	Title(ctx context.Context, ref types.SheetRef) (string, error)
	AllValues(ctx context.Context, ref types.SheetRef) (types.Grid, error)
	CellValue(ctx context.Context, ref types.SheetRef, cell types.Coord) (string, error)
	RawCellValue(ctx context.Context, ref types.SheetRef, cell types.Coord) (any, error)
	UpdateCell(ctx context.Context, ref types.SheetRef, cell types.Coord, value any) error
}

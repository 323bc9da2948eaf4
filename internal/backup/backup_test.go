package backup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"fill-ledger-bot/internal/types"
)

type fakeStore struct {
	title      string
	grid       types.Grid
	titleCalls int
}

func (f *fakeStore) Title(ctx context.Context, ref types.SheetRef) (string, error) {
	f.titleCalls++
	return f.title, nil
}

func (f *fakeStore) AllValues(ctx context.Context, ref types.SheetRef) (types.Grid, error) {
	return f.grid, nil
}

func (f *fakeStore) CellValue(ctx context.Context, ref types.SheetRef, cell types.Coord) (string, error) {
	return f.grid.Cell(cell.Row, cell.Col), nil
}

func (f *fakeStore) RawCellValue(ctx context.Context, ref types.SheetRef, cell types.Coord) (any, error) {
	return f.grid.Cell(cell.Row, cell.Col), nil
}

func (f *fakeStore) UpdateCell(ctx context.Context, ref types.SheetRef, cell types.Coord, value any) error {
	return nil
}

func TestEnsureWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{
		title: "BTC 무한매수",
		grid: types.Grid{
			{"날짜", "LOC평단"},
			{"2026-08-23", "100.5"},
		},
	}
	mgr := NewManager(dir, store)
	ref := types.SheetRef{SpreadsheetID: "sheet-id-1"}

	if err := mgr.Ensure(context.Background(), ref, "upbit_update_7_2026-08-23", "BTC"); err != nil {
		t.Fatalf("Expected backup to succeed, got %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "BTC", "*_BTC_sheet-id-1_upbit_update_7_2026-08-23.xlsx"))
	if err != nil {
		t.Fatalf("Expected glob to work, got %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 snapshot file, got %d", len(matches))
	}

	f, err := excelize.OpenFile(matches[0])
	if err != nil {
		t.Fatalf("Expected a readable xlsx, got %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if got, _ := f.GetCellValue(sheet, "A1"); got != "날짜" {
		t.Errorf("Expected A1 to hold the header, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "B2"); got != "100.5" {
		t.Errorf("Expected B2 to hold the price, got %q", got)
	}
}

func TestEnsureDeduplicatesPerReset(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{title: "BTC", grid: types.Grid{{"x"}}}
	mgr := NewManager(dir, store)
	ref := types.SheetRef{SpreadsheetID: "sheet-id-1"}
	ctx := context.Background()

	if err := mgr.Ensure(ctx, ref, "meritz_update_1", "TQQQ"); err != nil {
		t.Fatalf("Expected backup to succeed, got %v", err)
	}
	if err := mgr.Ensure(ctx, ref, "meritz_update_1", "TQQQ"); err != nil {
		t.Fatalf("Expected the cached call to succeed, got %v", err)
	}
	if store.titleCalls != 1 {
		t.Errorf("Expected one snapshot before reset, got %d", store.titleCalls)
	}

	mgr.Reset()
	if err := mgr.Ensure(ctx, ref, "meritz_update_2", "TQQQ"); err != nil {
		t.Fatalf("Expected backup after reset to succeed, got %v", err)
	}
	if store.titleCalls != 2 {
		t.Errorf("Expected a new snapshot after reset, got %d calls", store.titleCalls)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("무한매수 TQQQ!", "spreadsheet"); got != "TQQQ" {
		t.Errorf("Expected TQQQ, got %q", got)
	}
	if got := sanitize("한글만", "spreadsheet"); got != "spreadsheet" {
		t.Errorf("Expected the fallback for an all-stripped name, got %q", got)
	}
	if got := sanitize("plain-name_1.2", "x"); got != "plain-name_1.2" {
		t.Errorf("Expected safe names to pass through, got %q", got)
	}
}

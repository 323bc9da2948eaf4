// Package backup snapshots a spreadsheet to a local .xlsx file before the
// bot writes to it. The ledgers are hand-made and have no version history
// worth trusting, so every mutating trigger files one snapshot away first.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/types"
)

var unsafeChars = regexp.MustCompile(`[^0-9A-Za-z._-]+`)

// Manager writes snapshots under dir/<bucket>/ and remembers which
// spreadsheet+tag+bucket combinations it already saved since the last
// Reset. Not safe for concurrent use; the bot runs a single update loop.
type Manager struct {
	dir   string
	store interfaces.GridStore
	done  map[string]struct{}
}

func NewManager(dir string, store interfaces.GridStore) *Manager {
	return &Manager{
		dir:   dir,
		store: store,
		done:  make(map[string]struct{}),
	}
}

// Reset clears the dedup cache. The bot calls it once per incoming update,
// so one update backs each spreadsheet up at most once no matter how many
// fills it produces.
func (m *Manager) Reset() {
	m.done = make(map[string]struct{})
}

// Ensure snapshots the spreadsheet unless the same trigger already did so
// this cycle. tag names the trigger, bucket groups snapshot files on disk.
func (m *Manager) Ensure(ctx context.Context, ref types.SheetRef, tag, bucket string) error {
	key := ref.SpreadsheetID + ":" + tag + ":" + bucket
	if _, ok := m.done[key]; ok {
		return nil
	}
	path, err := m.snapshot(ctx, ref, tag, bucket)
	if err != nil {
		return fmt.Errorf("spreadsheet backup: %w", err)
	}
	m.done[key] = struct{}{}
	logger.Info(ctx, "Spreadsheet backup written", "path", path)
	return nil
}

func (m *Manager) snapshot(ctx context.Context, ref types.SheetRef, tag, bucket string) (string, error) {
	title, err := m.store.Title(ctx, ref)
	if err != nil {
		return "", err
	}
	grid, err := m.store.AllValues(ctx, ref)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(m.dir, sanitize(bucket, "misc"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s_%s_%s.xlsx",
		time.Now().Format("20060102_150405"),
		sanitize(title, "spreadsheet"),
		ref.SpreadsheetID,
		sanitize(tag, "run"))
	path := filepath.Join(dir, name)

	if err := writeXLSX(path, grid); err != nil {
		return "", err
	}
	return path, nil
}

func writeXLSX(path string, grid types.Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range grid {
		for j, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

// sanitize keeps file names portable: anything outside [0-9A-Za-z._-]
// collapses to an underscore.
func sanitize(s, fallback string) string {
	s = strings.Trim(unsafeChars.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return fallback
	}
	return s
}

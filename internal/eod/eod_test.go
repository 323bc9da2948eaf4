package eod

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSummarizeDayAggregatesByZone(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEDGER_LOG_DIR", dir)

	lines := []string{
		`{"Time":"2026-08-23 10:00:00","Source":"meritz","Symbol":"TQQQ","Zone":"LOC평단","Row":12,"Price":45,"Qty":2}`,
		`{"Time":"2026-08-23 10:05:00","Source":"meritz","Symbol":"TQQQ","Zone":"LOC평단","Row":12,"Price":47,"Qty":2}`,
		`{"Time":"2026-08-23 11:00:00","Source":"upbit","Symbol":"BTC","Zone":"LOC고가","Row":8,"Price":100,"Qty":0.5}`,
		`not json, skipped`,
	}
	journal := filepath.Join(dir, "2026-08-23.txt")
	if err := os.WriteFile(journal, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("Expected journal to write, got %v", err)
	}

	s := &eodSummarizer{cutoffHour: 23}
	day := time.Date(2026, 8, 23, 10, 0, 0, 0, time.FixedZone("KST", 32400))
	csvPath, err := s.SummarizeDay(day)
	if err != nil {
		t.Fatalf("Expected summary to succeed, got %v", err)
	}
	if csvPath == "" {
		t.Fatal("Expected a CSV path")
	}

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Expected the CSV to open, got %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got %v", err)
	}

	// header + BTC row + TQQQ row + TOTAL
	if len(records) != 4 {
		t.Fatalf("Expected 4 CSV records, got %d", len(records))
	}
	btc := records[1]
	if btc[0] != "BTC" || btc[1] != "LOC고가" || btc[2] != "1" {
		t.Errorf("Expected the BTC zone row first, got %v", btc)
	}
	tqqq := records[2]
	if tqqq[0] != "TQQQ" || tqqq[1] != "LOC평단" || tqqq[2] != "2" {
		t.Errorf("Expected the TQQQ zone row, got %v", tqqq)
	}
	if tqqq[4] != "46.0000" {
		t.Errorf("Expected volume-weighted avg price 46.0000, got %s", tqqq[4])
	}
	total := records[3]
	if total[0] != "TOTAL" || total[2] != "3" || total[5] != "234.00" {
		t.Errorf("Expected the TOTAL row, got %v", total)
	}
}

func TestSummarizeDayNoJournal(t *testing.T) {
	t.Setenv("LEDGER_LOG_DIR", t.TempDir())

	s := &eodSummarizer{cutoffHour: 23}
	csvPath, err := s.SummarizeDay(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected no error for a missing journal, got %v", err)
	}
	if csvPath != "" {
		t.Errorf("Expected no CSV path, got %s", csvPath)
	}
}

func TestShouldRunNowOnlyOncePerDay(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEDGER_LOG_DIR", dir)

	// Cutoff hour zero makes the cutoff always in the past.
	s := &eodSummarizer{cutoffHour: 0}
	shouldRun, csvPath := s.ShouldRunNow()
	if !shouldRun {
		t.Fatal("Expected the summary to be due")
	}

	if err := os.MkdirAll(filepath.Dir(csvPath), 0o755); err != nil {
		t.Fatalf("Expected mkdir to work, got %v", err)
	}
	if err := os.WriteFile(csvPath, []byte("done"), 0o644); err != nil {
		t.Fatalf("Expected the CSV to write, got %v", err)
	}

	shouldRun, _ = s.ShouldRunNow()
	if shouldRun {
		t.Error("Expected no second run once the CSV exists")
	}
}

package eod

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type eodSummarizer struct {
	cutoffHour int
}

// SummarizeDay folds one day of the fill journal into a CSV report grouped
// by symbol and buy zone. A missing journal file means no fills and is not
// an error.
func (s *eodSummarizer) SummarizeDay(t time.Time) (string, error) {
	inPath := dayJournalFile(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var jl journalLine
		if err := json.Unmarshal(sc.Bytes(), &jl); err != nil {
			continue
		}
		key := jl.Symbol + "|" + jl.Zone
		row := aggs[key]
		if row == nil {
			row = &aggRow{Symbol: jl.Symbol, Zone: jl.Zone}
			aggs[key] = row
		}
		row.Fills++
		row.TotalQty += jl.Qty
		row.Value += jl.Price * jl.Qty
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := eodCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"symbol", "zone", "fills", "total_qty", "avg_price", "total_value"}
	if err := w.Write(headers); err != nil {
		return "", err
	}

	var totalFills int
	var totalValue float64
	for _, k := range keys {
		r := aggs[k]
		var avgPrice float64
		if r.TotalQty > 0 {
			avgPrice = r.Value / r.TotalQty
		}
		rec := []string{
			r.Symbol,
			r.Zone,
			strconv.Itoa(r.Fills),
			fmt.Sprintf("%.8f", r.TotalQty),
			fmt.Sprintf("%.4f", avgPrice),
			fmt.Sprintf("%.2f", r.Value),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalFills += r.Fills
		totalValue += r.Value
	}
	_ = w.Write([]string{"TOTAL", "", strconv.Itoa(totalFills), "", "", fmt.Sprintf("%.2f", totalValue)})
	return outPath, nil
}

func (s *eodSummarizer) SummarizeToday() (string, error) { return s.SummarizeDay(kstNow()) }

// ShouldRunNow reports whether the daily cutoff has passed without a
// summary having been written yet.
func (s *eodSummarizer) ShouldRunNow() (bool, string) {
	now := kstNow()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), s.cutoffHour, 0, 0, 0, now.Location())
	outPath := eodCSVPath(now)
	if now.After(cutoff) {
		if _, err := os.Stat(outPath); errors.Is(err, os.ErrNotExist) {
			return true, outPath
		}
	}
	return false, outPath
}

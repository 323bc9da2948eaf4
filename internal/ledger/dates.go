package ledger

import (
	"strings"
	"time"
)

// Date renderings seen in hand-kept ledgers. Unpadded variants last; the
// padded layouts reject single-digit months so both forms are needed.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006.01.02",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
}

// ParseCellDate normalizes a date-column cell. Empty or unrecognized text
// reports ok=false; such rows are skipped during lookup, never matched.
func ParseCellDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

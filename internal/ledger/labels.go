package ledger

import (
	"strings"
	"unicode"
)

// Header label matching is deliberately fuzzy. The ledgers are hand-made
// spreadsheets, so "날짜", "체결 일자" and "체결일자" all have to hit the
// date class. Every predicate runs on a normalized form: trimmed,
// lowercased, all whitespace removed (including interior runs).

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isDateLabel(s string) bool {
	n := normalizeLabel(s)
	return strings.Contains(n, "날짜") || strings.Contains(n, "체결일자")
}

func isLocAvgLabel(s string) bool {
	n := normalizeLabel(s)
	return strings.Contains(n, "loc") && strings.Contains(n, "평단")
}

func isLocHighLabel(s string) bool {
	n := normalizeLabel(s)
	return strings.Contains(n, "loc") && strings.Contains(n, "고가")
}

func isTotalQtyLabel(s string) bool {
	return strings.Contains(normalizeLabel(s), "총수량")
}

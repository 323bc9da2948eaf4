package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyForSymbol maps a ledger symbol to the currency its sheet is kept
// in. Crypto ledgers run in KRW, the US-listed ones in USD.
func CurrencyForSymbol(symbol string) string {
	switch strings.ToUpper(strings.TrimSpace(symbol)) {
	case "BTC":
		return "KRW"
	case "TQQQ":
		return "USD"
	default:
		return "USD"
	}
}

// CurrencyForSheetTitle guesses the currency from a spreadsheet title when
// no symbol is at hand.
func CurrencyForSheetTitle(title string) string {
	t := strings.ToUpper(title)
	switch {
	case strings.Contains(t, "TQQQ"):
		return "USD"
	case strings.Contains(t, "BTC") || strings.Contains(title, "비트코인"):
		return "KRW"
	default:
		return "USD"
	}
}

// Format renders an amount with its currency sign, thousands separators and
// two decimals: Format(1234.5, "KRW") == "₩1,234.50".
func Format(v float64, currency string) string {
	sign := "$"
	if currency == "KRW" {
		sign = "₩"
	}
	return sign + group(decimal.NewFromFloat(v).StringFixed(2))
}

// group inserts thousands separators into a fixed-point decimal string.
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

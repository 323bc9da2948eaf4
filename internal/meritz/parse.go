// Package meritz parses the brokerage push notifications relayed into the
// chat. A fill notification is a Korean key:value block behind a fixed
// marker line; everything else in the chat is ignored.
package meritz

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fill-ledger-bot/internal/ledger"
	"fill-ledger-bot/internal/types"
)

const fillMarker = "[메리츠증권] 해외주식 주문체결 안내"

const (
	keySymbol = "종목명"
	keySide   = "매매구분"
	keyPrice  = "체결단가"
	keyQty    = "체결수량"
	keyDate   = "체결일자"
)

var (
	symbolPattern   = regexp.MustCompile(`\(([^)]+)\)`)
	fillDatePattern = regexp.MustCompile(`(\d{1,2})\s*/\s*(\d{1,2})`)
)

// ParseFill reads one chat message. ok is false when the message is not a
// fill notification at all; err is set when it carries the marker but a
// required field is missing a parseable value. The fill date has no year on
// the wire, so the current year in now's location is assumed.
func ParseFill(text string, now time.Time) (ev types.FillEvent, ok bool, err error) {
	if !strings.Contains(text, fillMarker) {
		return types.FillEvent{}, false, nil
	}

	kv := parseKV(text)
	stockName := kv[keySymbol]
	side := kv[keySide]
	priceRaw := kv[keyPrice]
	qtyRaw := kv[keyQty]
	dateRaw := kv[keyDate]
	if stockName == "" || side == "" || priceRaw == "" || qtyRaw == "" || dateRaw == "" {
		return types.FillEvent{}, false, nil
	}

	symbol, err := parseSymbol(stockName)
	if err != nil {
		return types.FillEvent{}, false, err
	}
	price, err := ledger.ParseNumber(priceRaw)
	if err != nil {
		return types.FillEvent{}, false, fmt.Errorf("%s: %w", keyPrice, err)
	}
	qty, err := ledger.ParseNumber(qtyRaw)
	if err != nil {
		return types.FillEvent{}, false, fmt.Errorf("%s: %w", keyQty, err)
	}
	fillTime, err := parseFillDate(dateRaw, now)
	if err != nil {
		return types.FillEvent{}, false, err
	}

	ev = types.FillEvent{
		Source: types.SourceMeritz,
		Symbol: symbol,
		Side:   types.SideSell,
		Price:  price,
		Qty:    qty,
		Amount: price * qty,
		Time:   fillTime,
	}
	if side == "매수" {
		ev.Side = types.SideBuy
	}
	return ev, true, nil
}

// parseKV splits the message into key:value pairs, one per line, on the
// first colon. Later duplicates win.
func parseKV(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ":")
		if line == "" || !found {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// parseSymbol pulls the ticker out of a name like "티큐큐큐(TQQQ)".
func parseSymbol(stockName string) (string, error) {
	m := symbolPattern.FindStringSubmatch(stockName)
	if m == nil {
		return "", fmt.Errorf("symbol not found in %s: %q", keySymbol, stockName)
	}
	return strings.ToUpper(strings.TrimSpace(m[1])), nil
}

// parseFillDate reads a month/day pair like "06/13" or "6 / 13".
func parseFillDate(raw string, now time.Time) (time.Time, error) {
	m := fillDatePattern.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q", keyDate, raw)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	t := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
	if t.Year() != now.Year() || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid %s: %q", keyDate, raw)
	}
	return t, nil
}

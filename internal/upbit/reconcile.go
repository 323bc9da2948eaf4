package upbit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fill-ledger-bot/internal/types"
)

// ledgerAsset is the only base asset the ledger flow handles, regardless of
// what the market filter is configured to.
const ledgerAsset = "BTC"

// Reconciler turns raw closed orders into the fill events that belong on
// the ledger for one trading day. It is pure: fetching and dedup against
// already-processed ids live with the callers.
type Reconciler struct {
	Market      string // exact market filter, e.g. "KRW-BTC"
	MarketAsset string // base-asset filter applied when the market differs
	SheetSymbol string // symbol the fills are booked under
	Location    *time.Location
}

// Skips counts orders dropped during reconciliation, by reason.
type Skips struct {
	Date   int
	Market int
	Side   int
	Qty    int
	Amount int
}

// FillsForDate keeps the buy fills whose done or created timestamp lands on
// target's calendar day, derives unit price and total amount per order, and
// returns them oldest first.
func (r Reconciler) FillsForDate(trades []types.RawTrade, target time.Time) ([]types.FillEvent, Skips, error) {
	var (
		out   []types.FillEvent
		skips Skips
	)
	for _, row := range trades {
		doneAt, err := parseTradeTime(row.DoneAt, r.Location)
		if err != nil {
			return nil, skips, fmt.Errorf("order %s: %w", row.UUID, err)
		}
		createdAt, err := parseTradeTime(row.CreatedAt, r.Location)
		if err != nil {
			return nil, skips, fmt.Errorf("order %s: %w", row.UUID, err)
		}
		if doneAt.IsZero() && createdAt.IsZero() {
			continue
		}
		if !onDate(doneAt, target) && !onDate(createdAt, target) {
			skips.Date++
			continue
		}

		market := row.Market
		baseAsset := strings.ToUpper(market)
		if _, after, found := strings.Cut(market, "-"); found {
			baseAsset = strings.ToUpper(after)
		}
		if baseAsset != ledgerAsset {
			skips.Market++
			continue
		}
		if r.Market != "" && market != r.Market {
			if r.MarketAsset == "" || baseAsset != strings.ToUpper(r.MarketAsset) {
				skips.Market++
				continue
			}
		}

		if row.Side != "bid" {
			skips.Side++
			continue
		}

		qty, err := num(row.ExecutedVolume)
		if err != nil {
			return nil, skips, fmt.Errorf("order %s: executed_volume: %w", row.UUID, err)
		}
		funds, err := num(row.ExecutedFunds)
		if err != nil {
			return nil, skips, fmt.Errorf("order %s: executed_funds: %w", row.UUID, err)
		}
		rawPrice, err := num(row.Price)
		if err != nil {
			return nil, skips, fmt.Errorf("order %s: price: %w", row.UUID, err)
		}
		if qty <= 0 {
			skips.Qty++
			continue
		}

		// A market buy (ord_type "price") reports total spend in the price
		// field, not unit price.
		marketBuy := row.OrdType == "price"
		var amount float64
		switch {
		case marketBuy && rawPrice > 0:
			amount = rawPrice
		case funds > 0:
			amount = funds
		case rawPrice > 0:
			amount = rawPrice * qty
		}
		if amount <= 0 {
			skips.Amount++
			continue
		}

		var price float64
		if marketBuy {
			price = amount / qty
		} else if rawPrice > 0 {
			price = rawPrice
		} else {
			price = amount / qty
		}

		tradeTime := doneAt
		if tradeTime.IsZero() {
			tradeTime = createdAt
		}
		id := row.UUID
		if id == "" {
			id = fmt.Sprintf("%s:%s:%s:%s",
				market,
				tradeTime.Format(time.RFC3339Nano),
				strconv.FormatFloat(qty, 'g', -1, 64),
				strconv.FormatFloat(price, 'g', -1, 64))
		}

		out = append(out, types.FillEvent{
			Source: types.SourceUpbit,
			Symbol: r.SheetSymbol,
			Side:   types.SideBuy,
			Price:  price,
			Qty:    qty,
			Amount: amount,
			Time:   tradeTime,
			ID:     id,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, skips, nil
}

// parseTradeTime reads an RFC 3339 timestamp in the exchange payload and
// shifts it into the ledger timezone. Empty input is a zero time, not an
// error: closed orders can miss either done_at or created_at.
func parseTradeTime(s string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse trade time %q: %w", s, err)
	}
	return t.In(loc), nil
}

func onDate(t, target time.Time) bool {
	if t.IsZero() {
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := target.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// num parses the exchange's string-encoded decimals. Absent fields come
// through as empty strings and count as zero.
func num(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

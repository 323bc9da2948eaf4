package upbit

import (
	"strings"
	"testing"
	"time"

	"fill-ledger-bot/internal/types"
)

var kst = time.FixedZone("KST", 9*60*60)

func testReconciler() Reconciler {
	return Reconciler{
		Market:      "KRW-BTC",
		MarketAsset: "BTC",
		SheetSymbol: "BTC",
		Location:    kst,
	}
}

func TestFillsForDateLimitOrder(t *testing.T) {
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{
			UUID:           "order-1",
			Market:         "KRW-BTC",
			Side:           "bid",
			OrdType:        "limit",
			Price:          "150000000",
			ExecutedVolume: "0.002",
			ExecutedFunds:  "300000",
			DoneAt:         "2026-08-23T10:15:00+09:00",
		},
	}

	fills, skips, err := testReconciler().FillsForDate(trades, target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("Expected 1 fill, got %d (skips %+v)", len(fills), skips)
	}

	fill := fills[0]
	if fill.Source != types.SourceUpbit {
		t.Errorf("Expected upbit source, got %s", fill.Source)
	}
	if fill.Symbol != "BTC" {
		t.Errorf("Expected symbol BTC, got %s", fill.Symbol)
	}
	if fill.Side != types.SideBuy {
		t.Errorf("Expected buy side, got %s", fill.Side)
	}
	if fill.Price != 150000000 {
		t.Errorf("Expected unit price from the order, got %f", fill.Price)
	}
	if fill.Amount != 300000 {
		t.Errorf("Expected amount from executed funds, got %f", fill.Amount)
	}
	if fill.ID != "order-1" {
		t.Errorf("Expected the order uuid as fill id, got %s", fill.ID)
	}
}

func TestFillsForDateMarketBuyDerivesUnitPrice(t *testing.T) {
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{
			UUID:           "order-2",
			Market:         "KRW-BTC",
			Side:           "bid",
			OrdType:        "price",
			Price:          "300000", // total spend, not unit price
			ExecutedVolume: "0.002",
			DoneAt:         "2026-08-23T09:00:00+09:00",
		},
	}

	fills, _, err := testReconciler().FillsForDate(trades, target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("Expected 1 fill, got %d", len(fills))
	}
	if fills[0].Amount != 300000 {
		t.Errorf("Expected amount to be the total spend, got %f", fills[0].Amount)
	}
	if fills[0].Price != 150000000 {
		t.Errorf("Expected unit price amount/qty, got %f", fills[0].Price)
	}
}

func TestFillsForDateSkipReasons(t *testing.T) {
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{UUID: "other-day", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1", ExecutedVolume: "1", DoneAt: "2026-08-21T10:00:00+09:00"},
		{UUID: "other-asset", Market: "KRW-ETH", Side: "bid", OrdType: "limit", Price: "1", ExecutedVolume: "1", DoneAt: "2026-08-23T10:00:00+09:00"},
		{UUID: "a-sell", Market: "KRW-BTC", Side: "ask", OrdType: "limit", Price: "1", ExecutedVolume: "1", DoneAt: "2026-08-23T10:00:00+09:00"},
		{UUID: "no-qty", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1", ExecutedVolume: "0", DoneAt: "2026-08-23T10:00:00+09:00"},
		{UUID: "no-amount", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "", ExecutedVolume: "1", DoneAt: "2026-08-23T10:00:00+09:00"},
		{UUID: "no-timestamps", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1", ExecutedVolume: "1"},
	}

	fills, skips, err := testReconciler().FillsForDate(trades, target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fills) != 0 {
		t.Fatalf("Expected no fills, got %d", len(fills))
	}
	if skips.Date != 1 {
		t.Errorf("Expected 1 date skip, got %d", skips.Date)
	}
	if skips.Market != 1 {
		t.Errorf("Expected 1 market skip, got %d", skips.Market)
	}
	if skips.Side != 1 {
		t.Errorf("Expected 1 side skip, got %d", skips.Side)
	}
	if skips.Qty != 1 {
		t.Errorf("Expected 1 qty skip, got %d", skips.Qty)
	}
	if skips.Amount != 1 {
		t.Errorf("Expected 1 amount skip, got %d", skips.Amount)
	}
}

func TestFillsForDateOtherMarketSameAssetPasses(t *testing.T) {
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{UUID: "usdt-btc", Market: "USDT-BTC", Side: "bid", OrdType: "limit", Price: "60000", ExecutedVolume: "0.01", DoneAt: "2026-08-23T10:00:00+09:00"},
	}

	fills, skips, err := testReconciler().FillsForDate(trades, target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("Expected the same-asset market to pass, got %d fills (skips %+v)", len(fills), skips)
	}
}

func TestFillsForDateUsesUTCTimestampsInLocalDay(t *testing.T) {
	// 2026-08-22T23:30Z is already 2026-08-23 in KST.
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{UUID: "utc-row", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1000", ExecutedVolume: "1", DoneAt: "2026-08-22T23:30:00Z"},
	}

	fills, _, err := testReconciler().FillsForDate(trades, target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("Expected 1 fill, got %d", len(fills))
	}
	if got := fills[0].Time.In(kst).Day(); got != 23 {
		t.Errorf("Expected trade time shifted into the ledger timezone, got day %d", got)
	}
}

func TestFillsForDateCreatedAtFallback(t *testing.T) {
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{UUID: "created-only", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1000", ExecutedVolume: "1", CreatedAt: "2026-08-23T08:00:00+09:00"},
	}

	fills, _, err := testReconciler().FillsForDate(trades, target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("Expected 1 fill, got %d", len(fills))
	}
	if fills[0].Time.Hour() != 8 {
		t.Errorf("Expected created_at as the trade time, got %v", fills[0].Time)
	}
}

func TestFillsForDateSortedOldestFirst(t *testing.T) {
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{UUID: "late", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1000", ExecutedVolume: "1", DoneAt: "2026-08-23T15:00:00+09:00"},
		{UUID: "early", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1000", ExecutedVolume: "1", DoneAt: "2026-08-23T09:00:00+09:00"},
	}

	fills, _, err := testReconciler().FillsForDate(trades, target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fills) != 2 {
		t.Fatalf("Expected 2 fills, got %d", len(fills))
	}
	if fills[0].ID != "early" || fills[1].ID != "late" {
		t.Errorf("Expected fills sorted oldest first, got %s then %s", fills[0].ID, fills[1].ID)
	}
}

func TestFillsForDateSyntheticID(t *testing.T) {
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1000", ExecutedVolume: "0.5", DoneAt: "2026-08-23T09:00:00+09:00"},
	}

	fills, _, err := testReconciler().FillsForDate(trades, target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("Expected 1 fill, got %d", len(fills))
	}
	id := fills[0].ID
	if !strings.HasPrefix(id, "KRW-BTC:") {
		t.Errorf("Expected synthetic id with market prefix, got %s", id)
	}
	if !strings.Contains(id, ":0.5:") {
		t.Errorf("Expected synthetic id to embed the quantity, got %s", id)
	}
}

func TestFillsForDateBadTimestampFails(t *testing.T) {
	target := time.Date(2026, 8, 23, 0, 0, 0, 0, kst)
	trades := []types.RawTrade{
		{UUID: "bad", Market: "KRW-BTC", Side: "bid", OrdType: "limit", Price: "1000", ExecutedVolume: "1", DoneAt: "not-a-time"},
	}

	_, _, err := testReconciler().FillsForDate(trades, target)
	if err == nil {
		t.Fatal("Expected an error for a malformed timestamp")
	}
}

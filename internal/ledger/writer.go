package ledger

import (
	"context"

	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/money"
	"fill-ledger-bot/internal/tradelog"
	"fill-ledger-bot/internal/types"
)

// Fixed summary cells every ledger keeps in the same place.
var (
	cellAvgPrice   = types.Coord{Row: 6, Col: 18}  // R6: running average price
	cellCurrent    = types.Coord{Row: 2, Col: 2}   // B2: current market price
	cellHalfRound  = types.Coord{Row: 3, Col: 2}   // B3: half-round spend amount
	cellBuyLocAvg  = types.Coord{Row: 9, Col: 18}  // R9: LOC-average buy target
	cellBuyLocHigh = types.Coord{Row: 10, Col: 18} // R10: LOC-high buy target
	cellSellAll    = types.Coord{Row: 11, Col: 18} // R11: sell-all target
)

// Writer applies fill events to a ledger sheet and reads back its summary
// block. It holds no layout state: every call re-resolves the anchor from a
// fresh snapshot, so header edits between fills are picked up.
type Writer struct {
	store interfaces.GridStore
}

func NewWriter(store interfaces.GridStore) *Writer {
	return &Writer{store: store}
}

// RecordFill writes one brokerage fill: the zone is chosen by comparing the
// fill price against the running average (ties buy into the average zone).
// Sells and negative quantities are ignored; written reports whether cells
// changed.
func (w *Writer) RecordFill(ctx context.Context, ref types.SheetRef, ev types.FillEvent) (res *types.WriteResult, written bool, err error) {
	if ev.Side != types.SideBuy {
		logger.FillSkipped(ctx, ev.Source, ev.ID, "not a buy", "symbol", ev.Symbol, "side", ev.Side)
		journalSkip(ctx, ev, "not a buy")
		return nil, false, nil
	}
	if ev.Qty < 0 {
		logger.FillSkipped(ctx, ev.Source, ev.ID, "negative quantity", "symbol", ev.Symbol, "qty", ev.Qty)
		journalSkip(ctx, ev, "negative quantity")
		return nil, false, nil
	}

	grid, err := w.store.AllValues(ctx, ref)
	if err != nil {
		return nil, false, err
	}
	anchor, err := ResolveAnchor(grid)
	if err != nil {
		return nil, false, err
	}
	totalQtyCol := FindTotalQtyColumn(grid, anchor)

	row, err := FindOrCreateDateRow(ctx, w.store, ref, grid, anchor, ev.Time)
	if err != nil {
		return nil, false, err
	}

	avg, err := w.numericCell(ctx, ref, cellAvgPrice)
	if err != nil {
		return nil, false, err
	}
	zone := ClassifyByPrice(ev.Price, avg)
	priceCol := zone.PriceCol(anchor)

	if err := w.writePair(ctx, ref, row, priceCol, ev.Price, ev.Qty); err != nil {
		return nil, false, err
	}
	logger.LedgerWrite(ctx, ev.Symbol, zone.String(), row, ev.Price, ev.Qty,
		"source", ev.Source, "price_col", priceCol, "qty_col", priceCol+1)
	journalFill(ctx, ev, zone.String(), row, ev.Qty)

	res, err = w.summary(ctx, ref, row, totalQtyCol, ev.Symbol)
	return res, err == nil, err
}

// RecordExchangeFill writes one exchange fill, classified by spend amount
// against the half-round figure in B3. A full-round spend lands in both
// zones at half quantity; a half-round spend lands in one zone picked by
// price; anything else is outside the strategy and skipped.
func (w *Writer) RecordExchangeFill(ctx context.Context, ref types.SheetRef, ev types.FillEvent) (res *types.WriteResult, written bool, err error) {
	if ev.Side != types.SideBuy {
		logger.FillSkipped(ctx, ev.Source, ev.ID, "not a buy", "symbol", ev.Symbol, "side", ev.Side)
		journalSkip(ctx, ev, "not a buy")
		return nil, false, nil
	}

	grid, err := w.store.AllValues(ctx, ref)
	if err != nil {
		return nil, false, err
	}
	anchor, err := ResolveAnchor(grid)
	if err != nil {
		return nil, false, err
	}
	totalQtyCol := FindTotalQtyColumn(grid, anchor)

	halfRound, err := w.numericCell(ctx, ref, cellHalfRound)
	if err != nil {
		return nil, false, err
	}
	avg, err := w.numericCell(ctx, ref, cellAvgPrice)
	if err != nil {
		return nil, false, err
	}

	mode, ratioHalf, ratioFull := ClassifyByAmount(ev.Amount, halfRound)
	logger.Info(ctx, "Exchange fill ratio check",
		"fill_id", ev.ID,
		"amount", ev.Amount,
		"half_round", halfRound,
		"ratio_half", ratioHalf,
		"ratio_full", ratioFull,
	)

	var row int
	switch mode {
	case SplitBoth:
		row, err = FindOrCreateDateRow(ctx, w.store, ref, grid, anchor, ev.Time)
		if err != nil {
			return nil, false, err
		}
		halfQty := ev.Qty / 2
		if err := w.writePair(ctx, ref, row, anchor.LocAvgCol, ev.Price, halfQty); err != nil {
			return nil, false, err
		}
		if err := w.writePair(ctx, ref, row, anchor.LocHighCol, ev.Price, halfQty); err != nil {
			return nil, false, err
		}
		logger.LedgerWrite(ctx, ev.Symbol, "both", row, ev.Price, halfQty,
			"source", ev.Source, "fill_id", ev.ID, "ratio_full", ratioFull)
		journalFill(ctx, ev, ZoneLocAvg.String(), row, halfQty)
		journalFill(ctx, ev, ZoneLocHigh.String(), row, halfQty)

	case SplitSingle:
		row, err = FindOrCreateDateRow(ctx, w.store, ref, grid, anchor, ev.Time)
		if err != nil {
			return nil, false, err
		}
		zone := ClassifyByPrice(ev.Price, avg)
		priceCol := zone.PriceCol(anchor)
		if err := w.writePair(ctx, ref, row, priceCol, ev.Price, ev.Qty); err != nil {
			return nil, false, err
		}
		logger.LedgerWrite(ctx, ev.Symbol, zone.String(), row, ev.Price, ev.Qty,
			"source", ev.Source, "fill_id", ev.ID, "ratio_half", ratioHalf)
		journalFill(ctx, ev, zone.String(), row, ev.Qty)

	default:
		logger.FillSkipped(ctx, ev.Source, ev.ID, "spend outside ratio bands",
			"amount", ev.Amount, "ratio_half", ratioHalf, "ratio_full", ratioFull)
		journalSkip(ctx, ev, "spend outside ratio bands")
		return nil, false, nil
	}

	res, err = w.summary(ctx, ref, row, totalQtyCol, ev.Symbol)
	return res, err == nil, err
}

// writePair puts a fill's price and quantity into a zone's column pair.
func (w *Writer) writePair(ctx context.Context, ref types.SheetRef, row, priceCol int, price, qty float64) error {
	if err := w.store.UpdateCell(ctx, ref, types.Coord{Row: row, Col: priceCol}, price); err != nil {
		return err
	}
	return w.store.UpdateCell(ctx, ref, types.Coord{Row: row, Col: priceCol + 1}, qty)
}

// summary reads back the fixed summary block plus the current round's sell
// quantity. An unreadable sell-quantity cell reports 0 rather than failing
// the whole write.
func (w *Writer) summary(ctx context.Context, ref types.SheetRef, row, totalQtyCol int, symbol string) (*types.WriteResult, error) {
	title, err := w.store.Title(ctx, ref)
	if err != nil {
		return nil, err
	}
	avg, err := w.numericCell(ctx, ref, cellAvgPrice)
	if err != nil {
		return nil, err
	}
	current, err := w.numericCell(ctx, ref, cellCurrent)
	if err != nil {
		return nil, err
	}
	buyAvg, err := w.numericCell(ctx, ref, cellBuyLocAvg)
	if err != nil {
		return nil, err
	}
	buyHigh, err := w.numericCell(ctx, ref, cellBuyLocHigh)
	if err != nil {
		return nil, err
	}
	sellAll, err := w.numericCell(ctx, ref, cellSellAll)
	if err != nil {
		return nil, err
	}
	sellQty, err := w.numericCell(ctx, ref, types.Coord{Row: row, Col: totalQtyCol})
	if err != nil {
		sellQty = 0
	}

	currency := money.CurrencyForSymbol(symbol)
	if symbol == "" {
		currency = money.CurrencyForSheetTitle(title)
	}
	return &types.WriteResult{
		SpreadsheetTitle:    title,
		Currency:            currency,
		AvgPrice:            avg,
		CurrentPrice:        current,
		BuyLocAvg:           buyAvg,
		BuyLocHigh:          buyHigh,
		SellAll:             sellAll,
		SellQtyCurrentRound: sellQty,
	}, nil
}

func (w *Writer) numericCell(ctx context.Context, ref types.SheetRef, cell types.Coord) (float64, error) {
	raw, err := w.store.RawCellValue(ctx, ref, cell)
	if err != nil {
		return 0, err
	}
	return NumericValue(raw)
}

// journalFill records a written fill in the daily journal. A journal failure
// never fails the ledger write that already happened.
func journalFill(ctx context.Context, ev types.FillEvent, zone string, row int, qty float64) {
	err := tradelog.Append(tradelog.Entry{
		Source: ev.Source,
		Symbol: ev.Symbol,
		Zone:   zone,
		FillID: ev.ID,
		Row:    row,
		Price:  ev.Price,
		Qty:    qty,
	})
	if err != nil {
		logger.Warn(ctx, "Fill journal append failed", "error", err.Error(), "fill_id", ev.ID)
	}
}

func journalSkip(ctx context.Context, ev types.FillEvent, reason string) {
	err := tradelog.AppendSkip(tradelog.SkipEntry{
		Source: ev.Source,
		Symbol: ev.Symbol,
		FillID: ev.ID,
		Reason: reason,
	})
	if err != nil {
		logger.Warn(ctx, "Skip journal append failed", "error", err.Error(), "fill_id", ev.ID)
	}
}

package upbitobs

import (
	"context"
	"time"

	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/trace"
	"fill-ledger-bot/internal/types"
)

type observableTradeSource struct {
	source interfaces.TradeSource
}

var _ interfaces.TradeSource = (*observableTradeSource)(nil)

func Wrap(src interfaces.TradeSource) interfaces.TradeSource {
	return &observableTradeSource{
		source: src,
	}
}

func (os *observableTradeSource) ClosedOrders(ctx context.Context) ([]types.RawTrade, error) {
	ctx, span := trace.StartSpan(ctx, "upbit.ClosedOrders")
	defer span.End()

	start := time.Now()

	trades, err := os.source.ClosedOrders(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Closed-orders fetch failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Closed orders fetched",
		"orders", len(trades),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return trades, nil
}

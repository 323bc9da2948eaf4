package interfaces

import (
	"context"

	"fill-ledger-bot/internal/types"
)

type TradeSource interface {
	ClosedOrders(ctx context.Context) ([]types.RawTrade, error)
}

package interfaces

import (
	"context"
	"time"

	"fill-ledger-bot/internal/types"
)

type Engine interface {
	HandleUpdate(ctx context.Context, upd types.Update) error
	SyncExchange(ctx context.Context, target time.Time, explicit bool, label string) (types.SyncReport, error)
}

package interfaces

import (
	"context"
	"time"

	"fill-ledger-bot/internal/types"
)

type Messenger interface {
	FetchUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]types.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
}

package engine

import (
	"time"

	"fill-ledger-bot/internal/backup"
	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/ledger"
	"fill-ledger-bot/internal/state"
	"fill-ledger-bot/internal/store"
)

// Params carries the engine's collaborators. Source may be nil; the sync
// command then answers that no exchange keys are configured.
type Params struct {
	Config    *store.Config
	Writer    *ledger.Writer
	Source    interfaces.TradeSource
	State     *state.Store
	Backups   *backup.Manager
	Messenger interfaces.Messenger
	Location  *time.Location
}

func New(p Params) interfaces.Engine {
	return newEngine(p)
}

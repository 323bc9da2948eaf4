package engineobs

import (
	"context"
	"time"

	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/trace"
	"fill-ledger-bot/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) HandleUpdate(ctx context.Context, upd types.Update) error {
	ctx, span := trace.StartSpan(ctx, "engine.HandleUpdate")
	defer span.End()

	start := time.Now()

	err := oe.engine.HandleUpdate(ctx, upd)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Update handling failed", err,
			"update_id", upd.UpdateID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}

	logger.DebugSkip(ctx, 1, "Update handled",
		"update_id", upd.UpdateID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

func (oe *observableEngine) SyncExchange(ctx context.Context, target time.Time, explicit bool, label string) (types.SyncReport, error) {
	ctx, span := trace.StartSpan(ctx, "engine.SyncExchange")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting exchange sync",
		"date", target.Format("2006-01-02"),
		"explicit_date", explicit,
		"label", label,
	)

	report, err := oe.engine.SyncExchange(ctx, target, explicit, label)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Exchange sync failed", err,
			"date", target.Format("2006-01-02"),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return report, err
	}

	logger.InfoSkip(ctx, 1, "Exchange sync completed",
		"date", target.Format("2006-01-02"),
		"processed", report.Processed,
		"written", report.Written,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}

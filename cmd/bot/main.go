package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fill-ledger-bot/internal/backup"
	"fill-ledger-bot/internal/eod"
	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/state"
	"fill-ledger-bot/internal/store"
	"fill-ledger-bot/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = trace.Shutdown(shutdownCtx)
	}()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}
	loc := loadLocation(ctx, cfg.Timezone)
	initializeEOD(cfg)
	compressOldJournals(ctx)

	grid, err := initializeGridStore(ctx)
	if err != nil {
		os.Exit(1)
	}
	msgr, err := initializeMessenger(ctx, cfg)
	if err != nil {
		os.Exit(1)
	}
	src := initializeTradeSource(ctx, cfg)

	st, existed := state.Load(ctx, cfg.StateFile)
	backups := backup.NewManager(cfg.Backup.Dir, grid)
	eng := initializeEngine(cfg, grid, src, st, backups, msgr, loc)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		logger.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	var offset int64
	if id := st.LastUpdateID(); id > 0 {
		offset = id + 1
	}
	offset = warmupOffset(ctx, cfg, msgr, st, existed, offset)

	interval := time.Duration(cfg.PollIntervalSeconds) * time.Second
	pollTimeout := time.Duration(cfg.PollTimeoutSeconds) * time.Second
	logger.Info(ctx, "Bot started",
		"poll_interval", interval.String(),
		"poll_timeout", pollTimeout.String(),
		"offset", offset,
		"upbit_enabled", cfg.Upbit.Enabled,
	)

	for ctx.Err() == nil {
		updates, err := msgr.FetchUpdates(ctx, offset, pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.ErrorWithErr(ctx, "Update fetch failed", err)
			sleepCtx(ctx, maxDuration(3*time.Second, interval))
			continue
		}

		for _, upd := range updates {
			// Failures are logged by the obs wrapper; a broken update must
			// not stop the loop, and its offset still advances so it is
			// never fetched again.
			_ = eng.HandleUpdate(ctx, upd)
			if upd.UpdateID+1 > offset {
				offset = upd.UpdateID + 1
			}
		}
		if len(updates) > 0 {
			st.SetLastUpdateID(offset - 1)
			if err := st.Save(ctx); err != nil {
				logger.Warn(ctx, "State save failed", "error", err.Error())
			}
		}

		maybeRunEOD(ctx, cfg, msgr, st)
		sleepCtx(ctx, interval)
	}

	logger.Info(ctx, "Shutting down")
	flushEOD(ctx, cfg)
}

// warmupOffset jumps past the backlog on a first run: with no state file the
// bot would otherwise replay every update Telegram still holds.
func warmupOffset(ctx context.Context, cfg *store.Config, msgr interfaces.Messenger, st *state.Store, existed bool, offset int64) int64 {
	if existed || !cfg.StartFromLatest {
		return offset
	}
	updates, err := msgr.FetchUpdates(ctx, 0, 0)
	if err != nil {
		logger.Warn(ctx, "Warmup fetch failed, starting from the backlog", "error", err.Error())
		return offset
	}
	if len(updates) == 0 {
		return offset
	}

	offset = updates[len(updates)-1].UpdateID + 1
	st.SetLastUpdateID(offset - 1)
	if err := st.Save(ctx); err != nil {
		logger.Warn(ctx, "State save failed after warmup", "error", err.Error())
	}
	logger.Info(ctx, "Skipping backlog", "updates", len(updates), "offset", offset)
	return offset
}

func maybeRunEOD(ctx context.Context, cfg *store.Config, msgr interfaces.Messenger, st *state.Store) {
	if !cfg.Eod.Enabled {
		return
	}
	if ok, _ := eod.ShouldRunNow(); !ok {
		return
	}
	p, err := eod.SummarizeToday()
	if err != nil {
		logger.Warn(ctx, "EOD summary failed", "error", err.Error())
		return
	}
	if p == "" {
		return
	}
	logger.Info(ctx, "EOD CSV written", "path", p)
	if chatID := st.DefaultChatID(); chatID != 0 {
		if err := msgr.SendMessage(ctx, chatID, "일별 기록 요약 저장 완료: "+p); err != nil {
			logger.Warn(ctx, "EOD notice send failed", "error", err.Error())
		}
	}
}

func flushEOD(ctx context.Context, cfg *store.Config) {
	if !cfg.Eod.Enabled {
		return
	}
	if p, err := eod.SummarizeToday(); err == nil && p != "" {
		logger.Info(ctx, "EOD CSV written", "path", p)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

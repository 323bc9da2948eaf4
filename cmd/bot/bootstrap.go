package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fill-ledger-bot/internal/backup"
	"fill-ledger-bot/internal/engine"
	"fill-ledger-bot/internal/engine/engineobs"
	"fill-ledger-bot/internal/eod"
	"fill-ledger-bot/internal/eod/eodobs"
	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/ledger"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/sheets"
	"fill-ledger-bot/internal/sheets/gridobs"
	"fill-ledger-bot/internal/state"
	"fill-ledger-bot/internal/store"
	"fill-ledger-bot/internal/telegram"
	"fill-ledger-bot/internal/trace"
	"fill-ledger-bot/internal/tradelog"
	"fill-ledger-bot/internal/upbit"
	"fill-ledger-bot/internal/upbit/upbitobs"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return err
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// loadLocation resolves the ledger timezone, falling back to fixed KST when
// the zone database has no entry for it.
func loadLocation(ctx context.Context, name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn(ctx, "Unknown timezone, using fixed KST", "timezone", name, "error", err.Error())
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// compressOldJournals gzips fill journals past the retention window
func compressOldJournals(ctx context.Context) {
	days := 30
	if v := os.Getenv("LEDGER_LOG_RETENTION_DAYS"); v != "" {
		fmt.Sscanf(v, "%d", &days)
	}
	if err := tradelog.CompressOlder(days); err != nil {
		logger.Warn(ctx, "Failed to compress old journals", "error", err)
	}
}

// initializeGridStore initializes the Google Sheets client with observability
func initializeGridStore(ctx context.Context) (interfaces.GridStore, error) {
	credFile := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	if credFile == "" {
		credFile = "service_account.json"
	}

	gs, err := sheets.New(ctx, credFile)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize Sheets client", err)
		return nil, err
	}

	// Wrap with observability middleware
	return gridobs.Wrap(gs), nil
}

// initializeMessenger initializes the Telegram client
func initializeMessenger(ctx context.Context, cfg *store.Config) (interfaces.Messenger, error) {
	msgr, err := telegram.New(telegram.Params{
		Token:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		PollTimeout: time.Duration(cfg.PollTimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize Telegram client", err)
		return nil, err
	}
	return msgr, nil
}

// initializeTradeSource initializes the Upbit client with observability.
// A nil return is valid: the sync command then reports what is missing.
func initializeTradeSource(ctx context.Context, cfg *store.Config) interfaces.TradeSource {
	if !cfg.Upbit.Enabled {
		logger.Info(ctx, "Upbit sync disabled in config")
		return nil
	}

	access := os.Getenv("UPBIT_ACCESS_KEY")
	secret := os.Getenv("UPBIT_SECRET_KEY")
	if access == "" || secret == "" {
		logger.Warn(ctx, "Upbit API keys not configured")
		return nil
	}

	src, err := upbit.New(upbit.Params{
		AccessKey:  access,
		SecretKey:  secret,
		BaseURL:    cfg.Upbit.BaseURL,
		OrdersPath: cfg.Upbit.OrdersPath,
		MaxPages:   cfg.Upbit.MaxPages,
	})
	if err != nil {
		logger.Warn(ctx, "Failed to initialize Upbit client", "error", err.Error())
		return nil
	}

	// Wrap with observability middleware
	return upbitobs.Wrap(src)
}

// initializeEngine initializes and returns the ledger engine with observability
func initializeEngine(
	cfg *store.Config,
	grid interfaces.GridStore,
	src interfaces.TradeSource,
	st *state.Store,
	backups *backup.Manager,
	msgr interfaces.Messenger,
	loc *time.Location,
) interfaces.Engine {
	// Create base engine
	eng := engine.New(engine.Params{
		Config:    cfg,
		Writer:    ledger.NewWriter(grid),
		Source:    src,
		State:     st,
		Backups:   backups,
		Messenger: msgr,
		Location:  loc,
	})

	// Wrap with observability middleware
	return engineobs.Wrap(eng)
}

// initializeEOD wraps the default EOD summarizer with observability
func initializeEOD(cfg *store.Config) {
	// Create base summarizer
	baseSummarizer := eod.NewSummarizer(cfg.Eod.Hour)

	// Wrap with observability middleware
	observableSummarizer := eodobs.Wrap(baseSummarizer)

	// Set as default summarizer
	eod.SetDefaultSummarizer(observableSummarizer)
}

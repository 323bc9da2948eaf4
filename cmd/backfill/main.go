package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"fill-ledger-bot/internal/backup"
	"fill-ledger-bot/internal/engine"
	"fill-ledger-bot/internal/engine/engineobs"
	"fill-ledger-bot/internal/ledger"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/sheets"
	"fill-ledger-bot/internal/sheets/gridobs"
	"fill-ledger-bot/internal/state"
	"fill-ledger-bot/internal/store"
	"fill-ledger-bot/internal/trace"
	"fill-ledger-bot/internal/upbit"
	"fill-ledger-bot/internal/upbit/upbitobs"

	"github.com/joho/godotenv"
)

// backfill re-runs the exchange reconciliation for one day, outside the
// chat flow:
//
//	backfill 2026-08-05
//
// The date is explicit, so already-processed fills are written again.
func main() {
	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	ctx := context.Background()
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = trace.Shutdown(shutdownCtx)
	}()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: backfill YYYY-MM-DD")
		os.Exit(2)
	}

	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Upbit.Enabled {
		fmt.Fprintln(os.Stderr, "upbit.enabled is false in config.yaml")
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	target, err := time.ParseInLocation("2006-01-02", os.Args[1], loc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid date %q: %v\n", os.Args[1], err)
		os.Exit(2)
	}

	access := os.Getenv("UPBIT_ACCESS_KEY")
	secret := os.Getenv("UPBIT_SECRET_KEY")
	src, err := upbit.New(upbit.Params{
		AccessKey:  access,
		SecretKey:  secret,
		BaseURL:    cfg.Upbit.BaseURL,
		OrdersPath: cfg.Upbit.OrdersPath,
		MaxPages:   cfg.Upbit.MaxPages,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize Upbit client: %v\n", err)
		os.Exit(1)
	}

	credFile := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	if credFile == "" {
		credFile = "service_account.json"
	}
	gs, err := sheets.New(ctx, credFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize Sheets client: %v\n", err)
		os.Exit(1)
	}
	grid := gridobs.Wrap(gs)

	st, _ := state.Load(ctx, cfg.StateFile)
	eng := engineobs.Wrap(engine.New(engine.Params{
		Config:   cfg,
		Writer:   ledger.NewWriter(grid),
		Source:   upbitobs.Wrap(src),
		State:    st,
		Backups:  backup.NewManager(cfg.Backup.Dir, grid),
		Location: loc,
	}))

	report, err := eng.SyncExchange(ctx, target, true, "backfill")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backfill failed: %v\n", err)
		os.Exit(1)
	}
	if err := st.Save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "State save failed: %v\n", err)
	}

	b, _ := json.Marshal(report)
	fmt.Println(string(b))
}

// Package engine routes incoming chat updates to the ledger: brokerage fill
// notifications are written directly, the sync command reconciles the
// exchange's closed orders for a day. Replies go back to the chat the
// trigger came from.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"fill-ledger-bot/internal/backup"
	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/ledger"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/meritz"
	"fill-ledger-bot/internal/state"
	"fill-ledger-bot/internal/store"
	"fill-ledger-bot/internal/types"
	"fill-ledger-bot/internal/upbit"
)

type Engine struct {
	cfg     *store.Config
	writer  *ledger.Writer
	source  interfaces.TradeSource // nil when no exchange keys are configured
	state   *state.Store
	backups *backup.Manager
	msgr    interfaces.Messenger
	loc     *time.Location
	cmd     *regexp.Regexp
}

var _ interfaces.Engine = (*Engine)(nil)

func newEngine(p Params) *Engine {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		cfg:     p.Config,
		writer:  p.Writer,
		source:  p.Source,
		state:   p.State,
		backups: p.Backups,
		msgr:    p.Messenger,
		loc:     loc,
		cmd:     commandPattern(p.Config.Upbit.CommandText),
	}
}

// HandleUpdate processes one chat update. Most updates are chatter and fall
// straight through; the sync command and fill notifications act on the
// ledger. The chat an update came from becomes the default reply target.
func (e *Engine) HandleUpdate(ctx context.Context, upd types.Update) error {
	e.backups.Reset()

	text := upd.Text()
	if text == "" {
		return nil
	}
	chatID := upd.ChatID()
	if chatID != 0 {
		e.state.SetDefaultChatID(chatID)
	}

	target, explicit, isCommand, err := e.parseCommand(text)
	if err != nil {
		return err
	}
	if isCommand {
		return e.handleCommand(ctx, upd, chatID, target, explicit)
	}

	ev, isFill, err := meritz.ParseFill(text, time.Now().In(e.loc))
	if err != nil {
		return fmt.Errorf("parse fill notification: %w", err)
	}
	if !isFill {
		return nil
	}
	return e.handleFill(ctx, upd, chatID, ev)
}

func (e *Engine) handleFill(ctx context.Context, upd types.Update, chatID int64, ev types.FillEvent) error {
	sheetID, err := e.cfg.SheetID(ev.Symbol)
	if err != nil {
		return err
	}
	ref := types.SheetRef{SpreadsheetID: sheetID, Worksheet: e.cfg.Worksheet}

	// The snapshot must exist before any cell changes; a failed backup
	// aborts the write.
	if e.cfg.Backup.Enabled {
		tag := fmt.Sprintf("meritz_update_%d", upd.UpdateID)
		if err := e.backups.Ensure(ctx, ref, tag, ev.Symbol); err != nil {
			return err
		}
	}

	res, written, err := e.writer.RecordFill(ctx, ref, ev)
	if err != nil {
		return err
	}
	if !written || res == nil {
		return nil
	}
	return e.reply(ctx, chatID, buildFillReply(res))
}

func (e *Engine) handleCommand(ctx context.Context, upd types.Update, chatID int64, target time.Time, explicit bool) error {
	logger.Info(ctx, "Ledger sync command received",
		"date", target.Format("2006-01-02"), "explicit_date", explicit)

	if !e.cfg.Upbit.Enabled {
		return e.reply(ctx, chatID, replyUpbitDisabled)
	}
	if e.source == nil {
		return e.reply(ctx, chatID, replyUpbitKeysMissing)
	}

	report, err := e.SyncExchange(ctx, target, explicit, fmt.Sprintf("update_%d", upd.UpdateID))
	if err != nil {
		return err
	}
	if err := e.state.Save(ctx); err != nil {
		return fmt.Errorf("save state after sync: %w", err)
	}
	return e.reply(ctx, chatID, buildSyncReply(report))
}

// SyncExchange reconciles the exchange's closed orders against the ledger
// for target's calendar day. An explicit date bypasses the processed-fill
// dedup so a day can be re-run deliberately; marks reach disk only when the
// caller saves state, so a sync that fails midway replays whole. label names
// the trigger in backup file names.
func (e *Engine) SyncExchange(ctx context.Context, target time.Time, explicit bool, label string) (types.SyncReport, error) {
	report := types.SyncReport{Date: target}
	if e.source == nil {
		return report, fmt.Errorf("exchange sync: no trade source configured")
	}

	sheetID, err := e.cfg.SheetID(e.cfg.Upbit.SheetSymbol)
	if err != nil {
		return report, err
	}
	ref := types.SheetRef{SpreadsheetID: sheetID, Worksheet: e.cfg.Worksheet}

	trades, err := e.source.ClosedOrders(ctx)
	if err != nil {
		return report, err
	}

	rec := upbit.Reconciler{
		Market:      e.cfg.Upbit.Market,
		MarketAsset: e.cfg.Upbit.MarketAsset,
		SheetSymbol: e.cfg.Upbit.SheetSymbol,
		Location:    e.loc,
	}
	fills, skips, err := rec.FillsForDate(trades, target)
	if err != nil {
		return report, err
	}
	logger.Info(ctx, "Exchange orders reconciled",
		"date", target.Format("2006-01-02"),
		"orders", len(trades),
		"fills", len(fills),
		"skip_date", skips.Date,
		"skip_market", skips.Market,
		"skip_side", skips.Side,
		"skip_qty", skips.Qty,
		"skip_amount", skips.Amount,
	)

	tag := fmt.Sprintf("upbit_%s_%s", label, target.Format("2006-01-02"))
	for _, ev := range fills {
		if !explicit && e.state.HasProcessedFill(ev.ID) {
			continue
		}
		if e.cfg.Backup.Enabled {
			if err := e.backups.Ensure(ctx, ref, tag, ev.Symbol); err != nil {
				return report, err
			}
		}
		res, written, err := e.writer.RecordExchangeFill(ctx, ref, ev)
		if err != nil {
			return report, err
		}
		report.Processed++
		if written {
			report.Written++
			report.Last = res
		}
		e.state.MarkProcessedFill(ev.ID)
	}
	return report, nil
}

func (e *Engine) reply(ctx context.Context, chatID int64, text string) error {
	if chatID == 0 {
		chatID = e.state.DefaultChatID()
	}
	if chatID == 0 {
		return nil
	}
	return e.msgr.SendMessage(ctx, chatID, text)
}

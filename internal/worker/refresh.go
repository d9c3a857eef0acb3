package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fplstat/fplstat/internal/aggregate"
	"github.com/fplstat/fplstat/internal/domain"
	"github.com/fplstat/fplstat/internal/fpl"
)

// Session is the FPL session surface the worker drives.
type Session interface {
	Login(ctx context.Context) (fpl.LoginResult, error)
	Logout(ctx context.Context)
	OpenAccounts(ctx context.Context) ([]string, error)
}

// SnapshotCapturer aggregates one account and persists the dated snapshot.
type SnapshotCapturer interface {
	Capture(ctx context.Context, accountNumber string, date time.Time) (domain.AccountRecord, aggregate.Manifest, error)
}

// ExportHook is called after each successfully captured account record.
type ExportHook interface {
	Export(ctx context.Context, accountNumber string, record domain.AccountRecord) error
}

// RefreshWorker periodically logs in, aggregates every open account one
// after another, and hands each captured record to the export hooks.
type RefreshWorker struct {
	session  Session
	capturer SnapshotCapturer
	interval time.Duration
	hooks    []ExportHook
}

// NewRefreshWorker creates a new RefreshWorker with optional export hooks.
func NewRefreshWorker(session Session, capturer SnapshotCapturer, interval time.Duration, hooks ...ExportHook) *RefreshWorker {
	return &RefreshWorker{
		session:  session,
		capturer: capturer,
		interval: interval,
		hooks:    hooks,
	}
}

// utcDate returns the current date normalized to midnight UTC.
func utcDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Run starts the refresh loop. It blocks until the context is cancelled.
func (w *RefreshWorker) Run(ctx context.Context) {
	slog.Info("RefreshWorker: starting")

	// Refresh immediately on startup
	if err := w.RefreshOnce(ctx); err != nil {
		slog.Error("RefreshWorker: initial refresh failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RefreshWorker: shutting down")
			return
		case <-ticker.C:
			if err := w.RefreshOnce(ctx); err != nil {
				slog.Error("RefreshWorker: refresh failed", "error", err)
			}
		}
	}
}

// RefreshOnce runs one full refresh: login, capture every open account,
// logout. A single account's failure is logged and skipped; only session
// level problems abort the whole refresh.
func (w *RefreshWorker) RefreshOnce(ctx context.Context) error {
	result, err := w.session.Login(ctx)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	if result != fpl.LoginOK {
		return fmt.Errorf("login rejected: %s", result)
	}
	defer w.session.Logout(ctx)

	accounts, err := w.session.OpenAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing open accounts: %w", err)
	}

	date := utcDate()
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, manifest, err := w.capturer.Capture(ctx, account, date)
		if err != nil {
			slog.Error("RefreshWorker: account capture failed", "account", account, "error", err)
			continue
		}
		logCapture(account, record, manifest)

		for _, hook := range w.hooks {
			if err := hook.Export(ctx, account, record); err != nil {
				slog.Error("RefreshWorker: export hook failed", "account", account, "error", err)
			}
		}
	}
	return nil
}

func logCapture(account string, record domain.AccountRecord, manifest aggregate.Manifest) {
	failed := 0
	for _, outcome := range manifest {
		if outcome.Status == aggregate.StageFailed {
			failed++
		}
	}

	args := []any{"account", account, "stages", len(manifest), "failedStages", failed}
	if entry, ok := record.LatestDailyUsage(); ok {
		args = append(args, "readTime", entry.ReadTime)
		if entry.Usage != nil {
			args = append(args, "usageKwh", *entry.Usage)
		}
	}
	slog.Info("RefreshWorker: account captured", args...)
}

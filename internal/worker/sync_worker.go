// Package worker moves stored expenses into the spreadsheet export target.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"utlegg/internal/amqp"
	"utlegg/internal/core"
	"utlegg/internal/sheets"
	"utlegg/internal/store/sqlite"
)

// ExpenseSource is the slice of the SQLite repository the worker needs.
type ExpenseSource interface {
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	GetPendingSync(ctx context.Context, limit int) ([]sqlite.PendingExpense, error)
	MarkSynced(ctx context.Context, id int64) error
	MarkSyncError(ctx context.Context, id int64) error
}

// SyncWorker exports expenses from the local store to a spreadsheet.
type SyncWorker struct {
	source    ExpenseSource
	appender  sheets.RowAppender
	batchSize int
}

func NewSyncWorker(source ExpenseSource, appender sheets.RowAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		source:    source,
		appender:  appender,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single expense sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ExpenseSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	expense, err := w.source.GetExpense(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get expense from storage: %w", err)
	}

	if err := w.export(ctx, expense); err != nil {
		return fmt.Errorf("export expense: %w", err)
	}

	return nil
}

// ProcessPending exports any expenses that haven't been synced yet.
// This is the backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.source.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending expenses", "count", len(pending))

	for _, p := range pending {
		expense, err := w.source.GetExpense(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get expense", "id", p.ID, "error", err)
			if err := w.source.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.export(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending expense", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck runs one pending pass at boot to catch anything missed
// while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	return w.ProcessPending(ctx)
}

func (w *SyncWorker) export(ctx context.Context, e core.Expense) error {
	ref, err := w.appender.AppendExpense(ctx, e)
	if err != nil {
		if markErr := w.source.MarkSyncError(ctx, e.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", e.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.source.MarkSynced(ctx, e.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Expense synced to sheet", "id", e.ID, "ref", ref)
	return nil
}

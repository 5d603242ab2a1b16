package adapters

import (
	"context"
	"time"

	"utlegg/internal/core"
	"utlegg/internal/services"
	"utlegg/internal/store/sqlite"
)

// SQLiteAdapter combines the SQLite repository with the expense service so the
// HTTP handlers see a single store. Writes go through the service, which also
// publishes a sync message, while reads hit the repository directly.
type SQLiteAdapter struct {
	repo    *sqlite.Repository
	service *services.ExpenseService
}

func NewSQLiteAdapter(repo *sqlite.Repository, service *services.ExpenseService) *SQLiteAdapter {
	return &SQLiteAdapter{
		repo:    repo,
		service: service,
	}
}

// Record implements store.Recorder
func (a *SQLiteAdapter) Record(ctx context.Context, e core.Expense) (string, error) {
	return a.service.Record(ctx, e)
}

// SumRange implements store.SummaryReader
func (a *SQLiteAdapter) SumRange(ctx context.Context, userID string, from, to time.Time) (core.Money, error) {
	return a.repo.SumRange(ctx, userID, from, to)
}

// ListRecent implements store.RecentReader
func (a *SQLiteAdapter) ListRecent(ctx context.Context, userID string, limit int) ([]core.Expense, error) {
	return a.repo.ListRecent(ctx, userID, limit)
}

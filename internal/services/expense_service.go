// Package services orchestrates expense operations across the local store
// and the async export pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"utlegg/internal/core"
	"utlegg/internal/store"
)

// SyncPublisher publishes a sync notification for a stored expense.
// *amqp.Client satisfies it; tests use fakes.
type SyncPublisher interface {
	PublishExpenseSync(ctx context.Context, id, version int64) error
}

// Closer is implemented by stores that hold external resources.
type Closer interface {
	Close() error
}

// ExpenseService saves expenses locally first and then notifies the export
// worker. A publish failure never fails the request; the expense is already
// safe in the store and the worker's catch-up pass will pick it up.
type ExpenseService struct {
	store     store.Recorder
	publisher SyncPublisher
}

func NewExpenseService(st store.Recorder, publisher SyncPublisher) *ExpenseService {
	return &ExpenseService{
		store:     st,
		publisher: publisher,
	}
}

// Record implements store.Recorder.
func (s *ExpenseService) Record(ctx context.Context, e core.Expense) (string, error) {
	ref, err := s.store.Record(ctx, e)
	if err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}

	if s.publisher == nil {
		return ref, nil
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to parse expense ref", "ref", ref, "error", err)
		return ref, nil // the local save succeeded
	}

	if err := s.publisher.PublishExpenseSync(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
	}

	return ref, nil
}

// Close releases the underlying store and publisher resources.
func (s *ExpenseService) Close() error {
	var errs []error

	if c, ok := s.store.(Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if c, ok := s.publisher.(Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}

// Package store defines the ports the bot uses to persist and query
// expenses. Adapters live in the subpackages sqlite and memory.
package store

import (
	"context"
	"time"

	"utlegg/internal/core"
)

type (
	// Recorder persists a single expense and returns a reference to it.
	Recorder interface {
		Record(ctx context.Context, e core.Expense) (ref string, err error)
	}

	// SummaryReader sums a user's expenses within [from, to).
	SummaryReader interface {
		SumRange(ctx context.Context, userID string, from, to time.Time) (core.Money, error)
	}

	// RecentReader returns a user's most recent expenses, newest first.
	RecentReader interface {
		ListRecent(ctx context.Context, userID string, limit int) ([]core.Expense, error)
	}

	// Store bundles everything the slash-command handler needs.
	Store interface {
		Recorder
		SummaryReader
		RecentReader
	}
)

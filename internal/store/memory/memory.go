// Package memory provides an in-memory expense store, used as the default
// local backend and as a fake in handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"utlegg/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
	next  int64
}

func New() *Store {
	return &Store{next: 1}
}

// Record stores the expense and returns a synthetic reference.
func (s *Store) Record(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.ID = s.next
	s.next++
	s.items = append(s.items, e)
	return fmt.Sprintf("mem:%d", e.ID), nil
}

// SumRange sums a user's expenses within [from, to).
func (s *Store) SumRange(_ context.Context, userID string, from, to time.Time) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cents int64
	for _, e := range s.items {
		if e.UserID != userID {
			continue
		}
		if e.CreatedAt.Before(from) || !e.CreatedAt.Before(to) {
			continue
		}
		cents += e.Amount.Cents
	}
	return core.Money{Cents: cents}, nil
}

// ListRecent returns a user's most recent expenses, newest first.
func (s *Store) ListRecent(_ context.Context, userID string, limit int) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.items {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len reports the number of stored expenses, for tests.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

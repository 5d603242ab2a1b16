package memory

import (
	"context"
	"testing"
	"time"

	"utlegg/internal/core"
)

func TestRecordAndSumRange(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	records := []struct {
		user  string
		cents int64
		at    time.Time
	}{
		{"U1", 100, base},
		{"U1", 200, base.Add(time.Hour)},
		{"U1", 400, base.Add(48 * time.Hour)},
		{"U2", 800, base},
	}
	for _, rec := range records {
		if _, err := s.Record(ctx, core.Expense{
			UserID: rec.user, Amount: core.Money{Cents: rec.cents}, Note: "n", CreatedAt: rec.at,
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	sum, err := s.SumRange(ctx, "U1", base, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum.Cents != 300 {
		t.Fatalf("expected 300, got %d", sum.Cents)
	}
}

func TestListRecentOrderAndLimit(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := s.Record(ctx, core.Expense{
			UserID: "U1", Amount: core.Money{Cents: int64(i + 1)}, Note: "n",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	out, err := s.ListRecent(ctx, "U1", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3, got %d", len(out))
	}
	if out[0].Amount.Cents != 5 || out[2].Amount.Cents != 3 {
		t.Fatalf("wrong order: %+v", out)
	}
}

func TestRecordValidates(t *testing.T) {
	s := New()
	if _, err := s.Record(context.Background(), core.Expense{UserID: "U1", Note: "x"}); err == nil {
		t.Fatalf("expected validation error for zero amount")
	}
	if s.Len() != 0 {
		t.Fatalf("invalid expense must not be stored")
	}
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"utlegg/internal/core"
	"utlegg/internal/slack"
	"utlegg/internal/store/memory"
)

const testSecret = "8f742231b10e8888abcd99yyyzzz85a5"

var testNow = time.Date(2026, time.August, 12, 14, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *memory.Store, *slack.Verifier) {
	t.Helper()
	verifier := slack.NewVerifierAt(testSecret, func() time.Time { return testNow })
	st := memory.New()
	return NewServer(":0", verifier, st, nil), st, verifier
}

// doCommand sends a signed slash-command request through the full handler chain.
func doCommand(s *Server, verifier *slack.Verifier, userID, text string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("user_id", userID)
	form.Set("text", text)
	return doRaw(s, verifier, form.Encode(), true)
}

func doRaw(s *Server, verifier *slack.Verifier, body string, sign bool) *httptest.ResponseRecorder {
	ts := "1786545000" // testNow as unix seconds
	req := httptest.NewRequest(http.MethodPost, "/slack/command", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(slack.TimestampHeader, ts)
	if sign {
		req.Header.Set(slack.SignatureHeader, verifier.Sign([]byte(body), ts))
	} else {
		req.Header.Set(slack.SignatureHeader, "v0=deadbeef")
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func TestSlashCommand_RejectsUnsignedRequest(t *testing.T) {
	s, st, verifier := newTestServer(t)

	rec := doRaw(s, verifier, "user_id=U1&text=100+kaffe", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if st.Len() != 0 {
		t.Fatalf("expense recorded despite invalid signature")
	}
}

func TestSlashCommand_RejectsNonPost(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/slack/command", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestSlashCommand_Help(t *testing.T) {
	s, _, verifier := newTestServer(t)

	for _, text := range []string{"", "hjelp", "HELP", "?"} {
		rec := doCommand(s, verifier, "U1", text)
		if rec.Code != http.StatusOK {
			t.Fatalf("text %q: status = %d", text, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Slik bruker du") {
			t.Fatalf("text %q: body = %q, want usage text", text, rec.Body.String())
		}
	}
}

func TestSlashCommand_AddExpense(t *testing.T) {
	s, st, verifier := newTestServer(t)

	rec := doCommand(s, verifier, "U1", "120 lunsj med kollegaer #mat")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := "Registrert: 120,00 kr - lunsj med kollegaer (#mat)"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
	if st.Len() != 1 {
		t.Fatalf("store has %d expenses, want 1", st.Len())
	}
}

func TestSlashCommand_AddExpenseWithoutCategory(t *testing.T) {
	s, _, verifier := newTestServer(t)

	rec := doCommand(s, verifier, "U1", "59,90 taxi hjem")
	want := "Registrert: 59,90 kr - taxi hjem"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestSlashCommand_MonthSummary(t *testing.T) {
	s, st, verifier := newTestServer(t)

	seed := func(cents int64, at time.Time) {
		_, err := st.Record(context.Background(), core.Expense{
			UserID:    "U1",
			Amount:    core.Money{Cents: cents},
			Note:      "x",
			CreatedAt: at,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	// Summaries are computed against the wall clock, so seed relative to it.
	now := time.Now().UTC()
	seed(10000, now)
	seed(2550, now)
	seed(99900, now.AddDate(0, -1, 0)) // previous month, excluded

	rec := doCommand(s, verifier, "U1", "måned")
	want := "Totalt denne måneden: 125,50 kr"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestSlashCommand_TodaySummary(t *testing.T) {
	s, st, verifier := newTestServer(t)

	_, err := st.Record(context.Background(), core.Expense{
		UserID:    "U1",
		Amount:    core.Money{Cents: 4500},
		Note:      "kaffe",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doCommand(s, verifier, "U1", "i dag")
	want := "Totalt i dag: 45,00 kr"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestSlashCommand_ListRecent(t *testing.T) {
	s, st, verifier := newTestServer(t)

	rec := doCommand(s, verifier, "U1", "liste")
	if rec.Body.String() != "Ingen utgifter registrert." {
		t.Fatalf("empty list body = %q", rec.Body.String())
	}

	for i := int64(1); i <= 12; i++ {
		_, err := st.Record(context.Background(), core.Expense{
			UserID:    "U1",
			Amount:    core.Money{Cents: i * 100},
			Note:      "vare",
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rec = doCommand(s, verifier, "U1", "liste")
	lines := strings.Split(rec.Body.String(), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[0] != "12,00 kr - vare" {
		t.Fatalf("first line = %q, want newest expense", lines[0])
	}
}

func TestSlashCommand_Invalid(t *testing.T) {
	s, st, verifier := newTestServer(t)

	for _, text := range []string{"kaffe 100", "-50 tyveri", "100"} {
		rec := doCommand(s, verifier, "U1", text)
		if rec.Code != http.StatusOK {
			t.Fatalf("text %q: status = %d, want 200", text, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "hjelp") {
			t.Fatalf("text %q: body = %q, want hint", text, rec.Body.String())
		}
	}
	if st.Len() != 0 {
		t.Fatalf("invalid commands must not record expenses")
	}
}

func TestSlashCommand_StoreFailureRepliesInformationally(t *testing.T) {
	verifier := slack.NewVerifierAt(testSecret, func() time.Time { return testNow })
	s := NewServer(":0", verifier, failingStore{}, nil)

	rec := doCommand(s, verifier, "U1", "100 kaffe")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even on store failure", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ikke registrert") {
		t.Fatalf("body = %q, want informational failure text", rec.Body.String())
	}
}

type failingStore struct{}

func (failingStore) Record(context.Context, core.Expense) (string, error) {
	return "", context.DeadlineExceeded
}

func (failingStore) SumRange(context.Context, string, time.Time, time.Time) (core.Money, error) {
	return core.Money{}, context.DeadlineExceeded
}

func (failingStore) ListRecent(context.Context, string, int) ([]core.Expense, error) {
	return nil, context.DeadlineExceeded
}

package http

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"utlegg/internal/core"
	applog "utlegg/internal/log"
	"utlegg/internal/slack"
)

// maxBodyBytes bounds the slash-command payload; Slack form bodies are small.
const maxBodyBytes = 64 * 1024

const usageText = `Slik bruker du /utlegg:
  <beløp> <notat> [#kategori]   registrer et utlegg, f.eks. "120 lunsj #mat"
  måned                         sum for inneværende måned
  i dag                         sum for i dag
  liste                         de ti siste utleggene
  hjelp                         denne meldingen`

const invalidHint = `Forsto ikke kommandoen. Prøv "120 lunsj #mat" eller skriv "hjelp".`

const storeFailureText = "Noe gikk galt ved lagring. Utlegget er ikke registrert, prøv igjen."

func (s *Server) handleSlashCommand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		logger.WarnContext(ctx, "Failed to read request body", applog.FieldError, err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// The signature covers the exact bytes on the wire, so verification
	// happens before any form decoding.
	timestamp := r.Header.Get(slack.TimestampHeader)
	signature := r.Header.Get(slack.SignatureHeader)
	if !s.verifier.Verify(body, timestamp, signature) {
		logger.WarnContext(ctx, "Rejected request with invalid signature",
			applog.FieldClientIP, extractClientIP(r))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	userID := form.Get("user_id")
	text := form.Get("text")

	cmd := core.ParseCommand(text)
	logger.InfoContext(ctx, "Parsed slash command",
		applog.FieldUserID, userID,
		applog.FieldCommand, string(cmd.Kind))

	var reply string
	switch cmd.Kind {
	case core.CmdHelp:
		reply = usageText
	case core.CmdAddExpense:
		reply = s.addExpense(r, userID, cmd)
	case core.CmdMonthSummary:
		from, to := monthRange(time.Now().UTC())
		reply = s.sumReply(r, userID, from, to, "Totalt denne måneden: %s")
	case core.CmdTodaySummary:
		from, to := dayRange(time.Now().UTC())
		reply = s.sumReply(r, userID, from, to, "Totalt i dag: %s")
	case core.CmdListRecent:
		reply = s.listRecent(r, userID)
	default:
		reply = invalidHint
	}

	writeReply(w, reply)
}

func (s *Server) addExpense(r *http.Request, userID string, cmd core.Command) string {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	expense := core.Expense{
		UserID:   userID,
		Amount:   cmd.Amount,
		Note:     cmd.Note,
		Category: cmd.Category,
	}

	ref, err := s.store.Record(ctx, expense)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to record expense",
			applog.FieldUserID, userID,
			applog.FieldError, err)
		return storeFailureText
	}

	logger.InfoContext(ctx, "Recorded expense",
		applog.FieldUserID, userID,
		applog.FieldAmountCents, cmd.Amount.Cents,
		applog.FieldCategory, cmd.Category,
		"ref", ref)

	return "Registrert: " + formatExpenseLine(expense)
}

func (s *Server) sumReply(r *http.Request, userID string, from, to time.Time, format string) string {
	ctx := r.Context()

	total, err := s.store.SumRange(ctx, userID, from, to)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Failed to sum expenses",
			applog.FieldUserID, userID,
			applog.FieldError, err)
		return "Klarte ikke hente summen. Prøv igjen."
	}

	return fmt.Sprintf(format, core.FormatKroner(total.Cents))
}

func (s *Server) listRecent(r *http.Request, userID string) string {
	ctx := r.Context()

	expenses, err := s.store.ListRecent(ctx, userID, 10)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Failed to list expenses",
			applog.FieldUserID, userID,
			applog.FieldError, err)
		return "Klarte ikke hente listen. Prøv igjen."
	}

	if len(expenses) == 0 {
		return "Ingen utgifter registrert."
	}

	lines := make([]string, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, formatExpenseLine(e))
	}
	return strings.Join(lines, "\n")
}

// formatExpenseLine renders one expense as "120,00 kr - lunsj (#mat)".
func formatExpenseLine(e core.Expense) string {
	line := core.FormatKroner(e.Amount.Cents) + " - " + e.Note
	if e.Category != "" {
		line += " (#" + e.Category + ")"
	}
	return line
}

// monthRange returns the half-open interval covering now's calendar month.
func monthRange(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}

// dayRange returns the half-open interval covering now's calendar day.
func dayRange(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}

func writeReply(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

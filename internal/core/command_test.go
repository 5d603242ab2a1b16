package core

import (
	"fmt"
	"strconv"
	"testing"
)

func TestParseCommandKeywords(t *testing.T) {
	cases := []struct {
		in   string
		kind CommandKind
	}{
		{"", CmdHelp},
		{"   ", CmdHelp},
		{"help", CmdHelp},
		{"HJELP", CmdHelp},
		{"?", CmdHelp},
		{" hjelp ", CmdHelp},
		{"month", CmdMonthSummary},
		{"måned", CmdMonthSummary},
		{"MANED", CmdMonthSummary},
		{"today", CmdTodaySummary},
		{"i dag", CmdTodaySummary},
		{"idag", CmdTodaySummary},
		{"dag", CmdTodaySummary},
		{"list", CmdListRecent},
		{"liste", CmdListRecent},
		{"SISTE", CmdListRecent},
	}
	for _, tc := range cases {
		got := ParseCommand(tc.in)
		if got.Kind != tc.kind {
			t.Fatalf("%q expected kind %s, got %s", tc.in, tc.kind, got.Kind)
		}
	}
}

func TestParseCommandAddExpense(t *testing.T) {
	cases := []struct {
		in       string
		cents    int64
		note     string
		category string
	}{
		{"120 kaffe #mat", 12000, "kaffe", "mat"},
		{"99,50 lunsj", 9950, "lunsj", ""},
		{"12.5 taxi hjem", 1250, "taxi hjem", ""},
		{"50 #mat kaffe", 5000, "kaffe", "mat"},
		{"  80   kino  ", 8000, "kino", ""},
		{"10 gave #jul til mor", 1000, "gave  til mor", "jul"},
	}
	for _, tc := range cases {
		got := ParseCommand(tc.in)
		if got.Kind != CmdAddExpense {
			t.Fatalf("%q expected add, got %s", tc.in, got.Kind)
		}
		if got.Amount.Cents != tc.cents {
			t.Fatalf("%q expected %d cents, got %d", tc.in, tc.cents, got.Amount.Cents)
		}
		if got.Note != tc.note {
			t.Fatalf("%q expected note %q, got %q", tc.in, tc.note, got.Note)
		}
		if got.Category != tc.category {
			t.Fatalf("%q expected category %q, got %q", tc.in, tc.category, got.Category)
		}
	}
}

func TestParseCommandInvalid(t *testing.T) {
	cases := []string{
		"0 kaffe",      // non-positive amount
		"12",           // no note
		"12 ",          // trimmed to no note
		"abc kaffe",    // no numeric prefix
		"1.2.3 x",      // two separators
		"1,000.50 x",   // mixed separators break the number token
		"12kr kaffe",   // junk glued to the number
		"50 #mat",      // tag only, empty note after stripping
		"tull og tøys", // free text
	}
	for _, in := range cases {
		got := ParseCommand(in)
		if got.Kind != CmdInvalid {
			t.Fatalf("%q expected invalid, got %s (%+v)", in, got.Kind, got)
		}
	}
}

// Only the first '#token' is treated as a category; later '#' characters
// stay in the note as free text.
func TestParseCommandFirstTagOnly(t *testing.T) {
	got := ParseCommand("25 kaffe #mat #ute")
	if got.Kind != CmdAddExpense {
		t.Fatalf("expected add, got %s", got.Kind)
	}
	if got.Category != "mat" {
		t.Fatalf("expected category mat, got %q", got.Category)
	}
	if got.Note != "kaffe  #ute" {
		t.Fatalf("expected note with trailing tag kept, got %q", got.Note)
	}

	// A '#' glued to a word is not a tag start
	got = ParseCommand("25 kaffe#mat")
	if got.Category != "" || got.Note != "kaffe#mat" {
		t.Fatalf("glued tag should stay in note, got %+v", got)
	}
}

// Re-serializing "amount note #category" from a parsed command and parsing
// again yields an equivalent command.
func TestParseCommandRoundTrip(t *testing.T) {
	inputs := []string{
		"120 kaffe #mat",
		"99,50 lunsj",
		"12.5 taxi hjem",
	}
	for _, in := range inputs {
		first := ParseCommand(in)
		if first.Kind != CmdAddExpense {
			t.Fatalf("%q expected add, got %s", in, first.Kind)
		}
		s := strconv.FormatFloat(first.Amount.Kroner(), 'f', -1, 64) + " " + first.Note
		if first.Category != "" {
			s += " #" + first.Category
		}
		second := ParseCommand(s)
		if second != first {
			t.Fatalf("round trip of %q via %q: %+v != %+v", in, s, second, first)
		}
	}
}

func BenchmarkParseCommand(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ParseCommand(fmt.Sprintf("%d kaffe #mat", i%1000+1))
	}
}

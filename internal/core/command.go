package core

import "strings"

// CommandKind tags the interpretation of a slash-command text.
type CommandKind string

const (
	CmdHelp         CommandKind = "help"
	CmdMonthSummary CommandKind = "month"
	CmdTodaySummary CommandKind = "today"
	CmdListRecent   CommandKind = "list"
	CmdAddExpense   CommandKind = "add"
	CmdInvalid      CommandKind = "invalid"
)

// Command is the parsed form of a slash-command text. Amount, Note and
// Category are only set for CmdAddExpense.
type Command struct {
	Kind     CommandKind
	Amount   Money
	Note     string
	Category string // Without the leading '#'; empty when no tag was given
}

// Keyword sets, matched case-insensitively against the whole trimmed input.
var (
	helpWords  = map[string]bool{"help": true, "hjelp": true, "?": true}
	monthWords = map[string]bool{"month": true, "måned": true, "maned": true}
	todayWords = map[string]bool{"today": true, "i dag": true, "idag": true, "dag": true}
	listWords  = map[string]bool{"list": true, "liste": true, "siste": true}
)

// ParseCommand classifies a slash-command text. Classification is total:
// every input maps to exactly one Command, the empty string to help, and
// anything that is neither a keyword nor a valid "<amount> <note> [#tag]"
// line to CmdInvalid. It never returns an error.
func ParseCommand(text string) Command {
	t := strings.TrimSpace(text)
	if t == "" {
		return Command{Kind: CmdHelp}
	}

	lower := strings.ToLower(t)
	switch {
	case helpWords[lower]:
		return Command{Kind: CmdHelp}
	case monthWords[lower]:
		return Command{Kind: CmdMonthSummary}
	case todayWords[lower]:
		return Command{Kind: CmdTodaySummary}
	case listWords[lower]:
		return Command{Kind: CmdListRecent}
	}

	number, rest, ok := splitAmountPrefix(t)
	if !ok {
		return Command{Kind: CmdInvalid}
	}

	cents, err := ParseDecimalToCents(number)
	if err != nil {
		return Command{Kind: CmdInvalid}
	}

	category, note := extractCategoryTag(rest)
	note = strings.TrimSpace(note)
	if note == "" {
		return Command{Kind: CmdInvalid}
	}

	return Command{
		Kind:     CmdAddExpense,
		Amount:   Money{Cents: cents},
		Note:     note,
		Category: category,
	}
}

// splitAmountPrefix decomposes a trimmed input into a leading decimal number
// token and the remaining text after it. The number is anchored at the start:
// digits, optionally one '.' or ',' followed by more digits. It must be
// separated from the rest by whitespace, and the rest must be non-empty;
// otherwise the whole input fails to decompose.
func splitAmountPrefix(t string) (number, rest string, ok bool) {
	i := 0
	for i < len(t) && isASCIIDigit(t[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	if i < len(t) && (t[i] == '.' || t[i] == ',') && i+1 < len(t) && isASCIIDigit(t[i+1]) {
		i++
		for i < len(t) && isASCIIDigit(t[i]) {
			i++
		}
	}
	number = t[:i]

	j := i
	for j < len(t) && isSpace(t[j]) {
		j++
	}
	// No separating whitespace, or trailing separator junk glued to the
	// number ("1.2.3", "12kr"): the decomposition is anchored, so fail.
	if j == i || j == len(t) {
		return "", "", false
	}
	return number, t[j:], true
}

// extractCategoryTag finds the first '#token' in rest that starts the string
// or follows whitespace, and returns the token text (without '#') plus the
// rest with the whole tag removed. Only the first tag is extracted; any
// later '#' stays in the note as free text.
func extractCategoryTag(rest string) (category, remainder string) {
	for i := 0; i < len(rest); i++ {
		if rest[i] != '#' {
			continue
		}
		if i > 0 && !isSpace(rest[i-1]) {
			continue
		}
		end := i + 1
		for end < len(rest) && !isSpace(rest[end]) {
			end++
		}
		if end == i+1 {
			// Bare '#' with nothing attached is not a tag
			continue
		}
		return rest[i+1 : end], rest[:i] + rest[end:]
	}
	return "", rest
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

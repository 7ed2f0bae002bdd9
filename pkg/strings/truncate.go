package strings

import (
	"strings"
)

// DefaultCellMaxLen is the default maximum width for value cells in table
// output. Model lists and mapping JSON routinely run far past any sane
// terminal width.
const DefaultCellMaxLen = 60

// MinTruncateLen is the smallest usable maxLen: one character plus "...".
const MinTruncateLen = 4

// TruncateCell flattens a value to a single line and truncates it to maxLen
// runes, appending "..." when text was cut. Newlines and whitespace runs
// collapse to single spaces so multi-line mapping values cannot break table
// rows.
func TruncateCell(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

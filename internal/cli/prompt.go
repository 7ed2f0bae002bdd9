package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks the operator a yes/no question and returns their answer.
// assumeYes (-y) short-circuits to true without printing. EOF counts as no:
// a closed stdin must never approve a mutation.
func Confirm(in io.Reader, out io.Writer, prompt string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

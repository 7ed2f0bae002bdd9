package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// WithSpinner runs fn behind a progress spinner. Quiet mode, or output not
// going to a terminal-ish writer, skips the spinner entirely.
func WithSpinner(out io.Writer, quiet bool, message string, fn func() error) error {
	if quiet || out != os.Stdout && out != os.Stderr {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	s.Start()
	defer s.Stop()
	return fn()
}

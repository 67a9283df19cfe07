package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

// lineCounterTemplate shows a running entry count; the probe does not
// announce a total ahead of time, so there is no percentage bar
var lineCounterTemplate pb.ProgressBarTemplate = `{{string . "prefix"}}{{counters . }} entries {{speed . "%s entries/s" "..."}}`

// LineCounter displays a live count of probe output lines while the
// stream is consumed. Disabled counters are no-ops, so callers never
// branch on TTY state.
type LineCounter struct {
	bar *pb.ProgressBar
}

// NewLineCounter starts a counter on w when enabled; pass
// StdoutIsTerminal() so pipes and redirects stay clean
func NewLineCounter(w io.Writer, enabled bool) *LineCounter {
	if !enabled {
		return &LineCounter{}
	}
	bar := lineCounterTemplate.New(0)
	bar.Set("prefix", "scanning: ")
	bar.SetWriter(w)
	bar.Start()
	return &LineCounter{bar: bar}
}

// Increment advances the counter by one line
func (c *LineCounter) Increment() {
	if c.bar != nil {
		c.bar.Increment()
	}
}

// Finish stops the counter and clears its output line
func (c *LineCounter) Finish() {
	if c.bar != nil {
		c.bar.Finish()
	}
}

// StdoutIsTerminal reports whether standard output is attached to an
// interactive terminal
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

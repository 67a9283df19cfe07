// Package output renders completed comparison reports and writes them
// to their sink. Rendering is a pure function of the report, so writing
// the same report twice produces identical bytes.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jverlinden/treecompare/pkg/models"
)

const bannerWidth = 80

// Render writes the human-readable report. Directories appear in
// lexicographic order regardless of probe arrival order.
func Render(w io.Writer, r *models.ComparisonReport) error {
	var err error
	p := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("%s\n", banner('='))
	p("TREE COMPARISON REPORT\n")
	p("%s\n", banner('='))
	p("Run ID:      %s\n", r.RunID)
	p("Source:      %s\n", r.Source)
	p("Destination: %s\n", r.Dest)
	p("Started:     %s\n", r.StartTime.Format(time.RFC3339))
	p("Duration:    %s\n", r.Duration().Round(time.Millisecond))
	p("Status:      %s\n", r.Status)
	p("\n")

	if r.Status == models.StatusDegraded {
		p("%s\n", banner('!'))
		p("WARNING: comparison is incomplete; the probe failed part-way.\n")
		if r.Warning != "" {
			p("Reason: %s\n", r.Warning)
		}
		p("Figures below cover only the output captured before the failure.\n")
		p("%s\n", banner('!'))
		p("\n")
	}

	p("DIFFERING CONTENT BY DIRECTORY\n")
	p("%s\n", banner('='))
	p("\n")

	for _, dir := range r.SortedDirectories() {
		name := dir.Path
		if name != models.RootKey {
			name += "/"
		}
		p("Directory: %s\n", name)
		for _, t := range models.AllChangeTypes {
			if n := dir.Counts[t]; n > 0 {
				p("  - %-17s %d\n", string(t)+":", n)
			}
		}
		p("  - %-17s %d\n", "total entries:", dir.Counts.Total())
		p("  - %-17s %s\n", "known size:", formatBytes(dir.TotalBytes))
		if len(dir.Samples) > 0 {
			p("  - sample entries:\n")
			for _, s := range dir.Samples {
				p("      [%s %s] %s\n", s.Type, s.Kind, s.Path)
			}
		}
		p("\n")
	}

	p("%s\n", banner('='))
	p("SUMMARY\n")
	p("%s\n", banner('='))
	p("Directories touched: %d\n", len(r.Directories))
	for _, t := range models.AllChangeTypes {
		if n := r.Totals[t]; n > 0 {
			p("Total %-17s %d\n", string(t)+":", n)
		}
	}
	p("Grand total entries: %d\n", r.Totals.Total())
	p("Total known size:    %s\n", formatBytes(r.TotalBytes))
	p("Probe lines parsed:  %d (ignored: %d)\n", r.LinesParsed, r.LinesIgnored)

	return err
}

func banner(c byte) string {
	b := make([]byte, bannerWidth)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

// formatBytes renders a byte count at human scale
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

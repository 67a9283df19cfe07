package models

import (
	"sort"
	"time"
)

// RunStatus represents the overall result of a comparison run
type RunStatus string

const (
	// StatusClean indicates the probe finished and all output was consumed
	StatusClean RunStatus = "clean"
	// StatusDegraded indicates the probe failed part-way; the report
	// reflects only the output captured before the failure
	StatusDegraded RunStatus = "degraded"
	// StatusFailed indicates the run aborted before producing a report
	StatusFailed RunStatus = "failed"
)

// ExitCode returns the process exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusClean:
		return 0
	case StatusDegraded:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}

// ComparisonReport is the completed, immutable result of one comparison
// run, handed to the reporter after the record stream is exhausted
type ComparisonReport struct {
	// RunID uniquely identifies this comparison run
	RunID string

	// Source and Dest are the endpoint strings as supplied by the user
	Source string
	Dest   string

	// Timing
	StartTime time.Time
	EndTime   time.Time

	// Status is clean or degraded; a failed run never produces a report
	Status RunStatus

	// Warning carries detail for degraded runs (probe exit error,
	// timeout, interrupt); empty otherwise
	Warning string

	// Diagnostics
	LinesParsed  int
	LinesIgnored int

	// Totals across all directories
	Totals     TypeCounts
	TotalBytes int64

	// Directories maps normalized parent path to its summary
	Directories map[string]*DirectorySummary
}

// SortedDirectories returns the directory summaries ordered
// lexicographically by path, so rendering is reproducible
func (r *ComparisonReport) SortedDirectories() []*DirectorySummary {
	dirs := make([]*DirectorySummary, 0, len(r.Directories))
	for _, d := range r.Directories {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		return dirs[i].Path < dirs[j].Path
	})
	return dirs
}

// Duration returns the wall-clock duration of the run
func (r *ComparisonReport) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

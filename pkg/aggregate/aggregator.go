// Package aggregate folds a stream of change records into per-directory
// summaries. Records are grouped under their normalized parent path in
// a flat map, created on first touch, so memory stays proportional to
// the number of distinct directories rather than the number of changes.
package aggregate

import (
	"github.com/jverlinden/treecompare/internal/platform"
	"github.com/jverlinden/treecompare/pkg/models"
)

// DefaultSampleCap is the number of example entries retained per
// directory when no override is configured
const DefaultSampleCap = 5

// Aggregator owns the directory summary map for the duration of a run.
// It consumes records strictly in arrival order and discards each one
// after folding, so arbitrarily large change sets stay bounded.
type Aggregator struct {
	sampleCap  int
	dirs       map[string]*models.DirectorySummary
	totals     models.TypeCounts
	totalBytes int64
	records    int
}

// New creates an aggregator retaining up to sampleCap example entries
// per directory. A negative cap falls back to the default; zero
// disables sampling.
func New(sampleCap int) *Aggregator {
	if sampleCap < 0 {
		sampleCap = DefaultSampleCap
	}
	return &Aggregator{
		sampleCap: sampleCap,
		dirs:      make(map[string]*models.DirectorySummary),
		totals:    make(models.TypeCounts),
	}
}

// Add folds one record into the summary for its parent directory.
// Entries directly under the compared root aggregate under the root
// sentinel key.
func (a *Aggregator) Add(rec *models.ChangeRecord) {
	key := platform.ParentKey(rec.Path)

	dir, ok := a.dirs[key]
	if !ok {
		dir = models.NewDirectorySummary(key)
		a.dirs[key] = dir
	}

	dir.Counts[rec.Type]++
	a.totals[rec.Type]++
	a.records++

	if rec.SizeKnown {
		dir.TotalBytes += rec.Size
		a.totalBytes += rec.Size
	}

	// Only the first records per directory are sampled; later ones
	// still count toward totals
	if len(dir.Samples) < a.sampleCap {
		dir.Samples = append(dir.Samples, models.SampleEntry{
			Type: rec.Type,
			Kind: rec.Kind,
			Path: rec.Path,
		})
	}
}

// Records returns the number of records folded so far
func (a *Aggregator) Records() int {
	return a.records
}

// Report assembles the completed comparison report. The aggregator must
// not be used again afterwards; the summaries are handed over as-is.
func (a *Aggregator) Report() *models.ComparisonReport {
	return &models.ComparisonReport{
		Totals:      a.totals,
		TotalBytes:  a.totalBytes,
		Directories: a.dirs,
	}
}

package models

// RootKey is the sentinel directory key for entries directly under the
// compared root
const RootKey = "."

// TypeCounts maps a change type to the number of records observed
type TypeCounts map[ChangeType]int

// Total returns the sum of all counts
func (c TypeCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Add folds another set of counts into this one
func (c TypeCounts) Add(other TypeCounts) {
	for t, n := range other {
		c[t] += n
	}
}

// SampleEntry is one retained example record for human inspection
type SampleEntry struct {
	Type ChangeType
	Kind EntryKind
	Path string
}

// DirectorySummary is the per-parent-directory rollup of change counts,
// byte totals, and a bounded sample of example entries
type DirectorySummary struct {
	// Path is the normalized parent directory this summary covers
	Path string

	// Counts per change type; values always sum to the number of
	// records folded into this summary
	Counts TypeCounts

	// TotalBytes is the sum of known sizes observed under this
	// directory; records without a size do not contribute
	TotalBytes int64

	// Samples holds the first records observed for this directory,
	// capped at the configured sample limit
	Samples []SampleEntry
}

// NewDirectorySummary creates an empty summary for a directory key
func NewDirectorySummary(path string) *DirectorySummary {
	return &DirectorySummary{
		Path:   path,
		Counts: make(TypeCounts),
	}
}

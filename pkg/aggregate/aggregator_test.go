package aggregate

import (
	"fmt"
	"testing"

	"github.com/jverlinden/treecompare/pkg/models"
)

func record(t models.ChangeType, path string, size int64) *models.ChangeRecord {
	rec := &models.ChangeRecord{Type: t, Kind: models.KindFile, Path: path}
	if size >= 0 {
		rec.Size = size
		rec.SizeKnown = true
	}
	return rec
}

func TestAddGroupsByParentDirectory(t *testing.T) {
	agg := New(5)
	agg.Add(record(models.ChangeAdded, "a/b/file1.txt", -1))
	agg.Add(record(models.ChangeModified, "a/b/file2.txt", 1024))
	agg.Add(record(models.ChangeDeleted, "a/c/old.log", -1))

	report := agg.Report()

	ab, ok := report.Directories["a/b"]
	if !ok {
		t.Fatal("missing summary for a/b")
	}
	if ab.Counts[models.ChangeAdded] != 1 || ab.Counts[models.ChangeModified] != 1 {
		t.Errorf("a/b counts = %v, want added:1 modified:1", ab.Counts)
	}
	if ab.TotalBytes != 1024 {
		t.Errorf("a/b TotalBytes = %d, want 1024", ab.TotalBytes)
	}

	ac, ok := report.Directories["a/c"]
	if !ok {
		t.Fatal("missing summary for a/c")
	}
	if ac.Counts[models.ChangeDeleted] != 1 {
		t.Errorf("a/c counts = %v, want deleted:1", ac.Counts)
	}
	if ac.TotalBytes != 0 {
		t.Errorf("a/c TotalBytes = %d, want 0", ac.TotalBytes)
	}
}

func TestRootLevelEntriesUseSentinelKey(t *testing.T) {
	agg := New(5)
	agg.Add(record(models.ChangeAdded, "topfile.txt", 10))

	report := agg.Report()
	if _, ok := report.Directories[models.RootKey]; !ok {
		t.Fatalf("root-level entry not aggregated under %q: %v", models.RootKey, report.Directories)
	}
}

func TestCountsAlwaysSumToRecordsFolded(t *testing.T) {
	agg := New(2)

	types := []models.ChangeType{
		models.ChangeAdded, models.ChangeDeleted, models.ChangeModified,
		models.ChangePermissions, models.ChangeTypeChanged, models.ChangeUnknown,
	}
	total := 0
	for i := 0; i < 100; i++ {
		dir := fmt.Sprintf("dir%d", i%3)
		agg.Add(record(types[i%len(types)], fmt.Sprintf("%s/f%d", dir, i), int64(i)))
		total++
	}

	report := agg.Report()
	sum := 0
	for _, dir := range report.Directories {
		sum += dir.Counts.Total()
	}
	if sum != total {
		t.Errorf("sum of per-directory counts = %d, want %d", sum, total)
	}
	if report.Totals.Total() != total {
		t.Errorf("overall totals = %d, want %d", report.Totals.Total(), total)
	}
	if agg.Records() != total {
		t.Errorf("Records() = %d, want %d", agg.Records(), total)
	}
}

func TestSampleCapBoundsSamples(t *testing.T) {
	for _, cap := range []int{0, 1, 3, 10} {
		t.Run(fmt.Sprintf("Cap%d", cap), func(t *testing.T) {
			agg := New(cap)
			for i := 0; i < 25; i++ {
				agg.Add(record(models.ChangeAdded, fmt.Sprintf("d/f%02d", i), -1))
			}

			dir := agg.Report().Directories["d"]
			if len(dir.Samples) > cap {
				t.Errorf("len(Samples) = %d, want <= %d", len(dir.Samples), cap)
			}
			// Counts still reflect every record
			if dir.Counts[models.ChangeAdded] != 25 {
				t.Errorf("count = %d, want 25", dir.Counts[models.ChangeAdded])
			}
			// Samples are the first records observed, in arrival order
			for i, s := range dir.Samples {
				want := fmt.Sprintf("d/f%02d", i)
				if s.Path != want {
					t.Errorf("Samples[%d].Path = %q, want %q", i, s.Path, want)
				}
			}
		})
	}
}

func TestNegativeCapFallsBackToDefault(t *testing.T) {
	agg := New(-1)
	for i := 0; i < 20; i++ {
		agg.Add(record(models.ChangeAdded, fmt.Sprintf("d/f%d", i), -1))
	}
	dir := agg.Report().Directories["d"]
	if len(dir.Samples) != DefaultSampleCap {
		t.Errorf("len(Samples) = %d, want %d", len(dir.Samples), DefaultSampleCap)
	}
}

func TestUnknownSizesDoNotContribute(t *testing.T) {
	agg := New(5)
	agg.Add(record(models.ChangeAdded, "d/a", 100))
	agg.Add(record(models.ChangeAdded, "d/b", -1))
	agg.Add(record(models.ChangeAdded, "d/c", 50))

	report := agg.Report()
	if report.TotalBytes != 150 {
		t.Errorf("TotalBytes = %d, want 150", report.TotalBytes)
	}
	if report.Directories["d"].TotalBytes != 150 {
		t.Errorf("d TotalBytes = %d, want 150", report.Directories["d"].TotalBytes)
	}
}

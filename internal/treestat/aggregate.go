package treestat

import (
	"path/filepath"
	"strings"
	"sync"
)

// FileRecord is a single regular file and its size.
type FileRecord struct {
	// Path is the file path, rooted at the analyzed directory.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// prefers reports whether r wins a size tie against other.
// The lexicographically smaller path wins, independent of merge order.
func (r FileRecord) prefers(other FileRecord) bool {
	return r.Path < other.Path
}

// aggregate is the single shared summary of a traversal.
// Every mutation is one critical section, so concurrent merges behave as some
// sequential ordering of them.
type aggregate struct {
	mu          sync.Mutex // Protect concurrent access
	files       int64
	folders     int64
	bytes       int64
	largest     FileRecord
	smallest    FileRecord
	smallestSet bool
	skipped     int64
	incomplete  bool
}

// newAggregate creates an empty aggregate for one traversal.
func newAggregate() *aggregate {
	return &aggregate{}
}

// merge records one regular file.
func (a *aggregate) merge(rec FileRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.files++
	a.bytes += rec.Size

	// files == 1 means largest still holds the zero placeholder.
	if a.files == 1 || rec.Size > a.largest.Size || (rec.Size == a.largest.Size && rec.prefers(a.largest)) {
		a.largest = rec
	}

	if !a.smallestSet || rec.Size < a.smallest.Size || (rec.Size == a.smallest.Size && rec.prefers(a.smallest)) {
		a.smallest = rec
		a.smallestSet = true
	}
}

// mergeFolder records one discovered directory.
func (a *aggregate) mergeFolder() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.folders++
}

// skip records an entry that was excluded because it could not be accessed.
func (a *aggregate) skip() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.skipped++
}

// markIncomplete flags that the traversal stopped before visiting every entry.
func (a *aggregate) markIncomplete() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.incomplete = true
}

// progress returns the running file count and byte total.
func (a *aggregate) progress() (int64, int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.files, a.bytes
}

// finalize produces the immutable report. It must only be called after every
// worker has been joined.
func (a *aggregate) finalize() *Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	report := &Report{
		Files:      a.files,
		Folders:    a.folders,
		Bytes:      a.bytes,
		Skipped:    a.skipped,
		Incomplete: a.incomplete,
	}

	if a.files > 0 {
		largest := displayRecord(a.largest)
		smallest := displayRecord(a.smallest)
		report.Largest = &largest
		report.Smallest = &smallest
	}

	return report
}

// displayRecord converts the path to slash format and drops a leading "./".
func displayRecord(rec FileRecord) FileRecord {
	rec.Path = strings.TrimPrefix(filepath.ToSlash(rec.Path), "./")

	return rec
}

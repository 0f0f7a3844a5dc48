package treestat

import "time"

// Report is the immutable result of a traversal.
type Report struct {
	// Root is the analyzed directory.
	Root string `json:"root"`
	// Engine is the traversal implementation that produced the report.
	Engine Engine `json:"engine"`
	// Files is the number of regular files under the root.
	Files int64 `json:"total_files"`
	// Folders is the number of directories under the root, excluding the root itself.
	Folders int64 `json:"total_folders"`
	// Bytes is the cumulative size of all regular files.
	Bytes int64 `json:"total_bytes"`
	// Largest is the largest file, or nil when no file was found.
	Largest *FileRecord `json:"largest_file,omitempty"`
	// Smallest is the smallest file, or nil when no file was found.
	Smallest *FileRecord `json:"smallest_file,omitempty"`
	// Skipped is the number of entries excluded because they could not be accessed.
	Skipped int64 `json:"skipped"`
	// Incomplete is set when the traversal stopped early on cancellation or timeout.
	Incomplete bool `json:"incomplete"`
	// PeakWorkers is the highest number of concurrently running directory workers.
	PeakWorkers int64 `json:"peak_workers"`
	// Elapsed is the total time taken for the traversal.
	Elapsed time.Duration `json:"elapsed"`
}

// Package treestat computes aggregate statistics for a directory tree.
//
// It walks the tree with a bounded pool of directory workers and a second,
// bounded tier of per-file workers, merges every regular file into a single
// mutex-protected aggregate, and reports file and folder counts, the
// cumulative byte size and the largest and smallest files once every
// spawned unit has been joined.
//
// An alternate engine drives the same aggregate through fastwalk.
package treestat

package treestat

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"emperror.dev/errors"
	"github.com/charlievieth/fastwalk"
)

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// walkFastwalk drives the aggregate through fastwalk's parallel traversal.
// It applies the same rules as the pool engine: the root is not counted,
// only directories and regular files are merged, and unreadable entries are
// skipped with a warning.
func walkFastwalk(ctx context.Context, opt Options, agg *aggregate) error {
	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: opt.Workers,
	}

	//nolint:varnamelen // d is standard for DirEntry
	err := fastwalk.Walk(conf, opt.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			agg.skip()
			opt.Logger.WithField("path", path).WithError(err).Warn("skipping inaccessible entry")

			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if path == opt.Path {
			return nil
		}

		currentDepth := calculateDepth(path, opt.Path)
		if opt.MaxDepth > 0 && currentDepth > opt.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		switch {
		case d.IsDir():
			agg.mergeFolder()
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				agg.skip()
				opt.Logger.WithField("path", path).WithError(err).Warn("skipping inaccessible file")

				return nil //nolint:nilerr // Intentionally skip errors during walk
			}

			agg.merge(FileRecord{Path: path, Size: info.Size()})
		}

		return nil
	})

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		agg.markIncomplete()

		return nil
	}

	return errors.WrapIf(err, "fastwalk traversal")
}

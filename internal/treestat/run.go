package treestat

import (
	"context"
	"path/filepath"
	"time"

	"emperror.dev/errors"
)

// ErrRootInaccessible is returned when the root path cannot be listed as a directory.
const ErrRootInaccessible = errors.Sentinel("root directory is not accessible")

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, agg *aggregate, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(agg.progress())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run traverses the tree at opt.Path and returns its aggregate report.
//
// The root must be listable; any other unreadable entry is skipped, logged
// and counted in Report.Skipped. Cancelling ctx or exceeding opt.Timeout stops
// new work from starting, and the partial report is returned with
// Report.Incomplete set. Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	if err := opt.normalize(); err != nil {
		return nil, err
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	opt.Path = filepath.Clean(opt.Path)

	logger := opt.Logger.WithField("root", opt.Path)

	if opt.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opt.Timeout)
		defer cancel()
	}

	fs := opt.Accessor
	if opt.Engine == EngineFastwalk {
		fs = OSAccessor{}
	}

	entries, err := fs.ListDir(opt.Path)
	if err != nil {
		return nil, errors.Errorf("%w: %q: %w", ErrRootInaccessible, opt.Path, err)
	}

	agg := newAggregate()

	// Child context to ensure progress reporter cleanup
	progressCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()

	startProgressReporter(progressCtx, agg, progressHook, opt.ProgressInterval)

	logger.WithField("engine", opt.Engine).
		WithField("workers", opt.Workers).
		WithField("file_workers", opt.FileWorkers).
		Debug("starting traversal")

	start := time.Now()

	var peak int64

	switch opt.Engine {
	case EngineFastwalk:
		if err := walkFastwalk(ctx, opt, agg); err != nil {
			return nil, err
		}
	case EnginePool:
		w := newWalker(ctx, opt, agg)
		w.run(TraversalTask{Path: opt.Path}, entries)
		peak = w.peak.Load()
	}

	report := agg.finalize()
	report.Root = opt.Path
	report.Engine = opt.Engine
	report.PeakWorkers = peak
	report.Elapsed = time.Since(start)

	logger.WithField("files", report.Files).
		WithField("folders", report.Folders).
		WithField("skipped", report.Skipped).
		WithField("incomplete", report.Incomplete).
		WithField("elapsed", report.Elapsed).
		Debug("traversal finished")

	return report, nil
}

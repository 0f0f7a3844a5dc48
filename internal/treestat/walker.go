package treestat

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TraversalTask is a directory waiting to be processed.
type TraversalTask struct {
	// Path is the directory path.
	Path string
	// Depth is the number of path components below the root (root = 0).
	Depth int
}

// walker is the bounded two-tier traversal engine.
//
// Directory tasks run on an errgroup limited to Workers goroutines; when the
// group is saturated a task runs inline in the goroutine that discovered it.
// Regular files within a directory are stat'ed by per-file units holding one
// of FileWorkers semaphore permits, and each directory task joins its own
// file units before returning. Wait on the group therefore covers every
// transitively spawned unit.
type walker struct {
	ctx      context.Context //nolint:containedctx // Scoped to a single run
	fs       Accessor
	agg      *aggregate
	log      log.Interface
	maxDepth int

	dirs  errgroup.Group
	files *semaphore.Weighted

	live atomic.Int64
	peak atomic.Int64
}

// newWalker creates a walker bounded by opt.Workers and opt.FileWorkers.
func newWalker(ctx context.Context, opt Options, agg *aggregate) *walker {
	w := &walker{
		ctx:      ctx,
		fs:       opt.Accessor,
		agg:      agg,
		log:      opt.Logger,
		maxDepth: opt.MaxDepth,
		files:    semaphore.NewWeighted(int64(opt.FileWorkers)),
	}
	w.dirs.SetLimit(opt.Workers)

	return w
}

// run processes the root task using the already listed root entries and
// blocks until the whole tree has been joined.
func (w *walker) run(root TraversalTask, entries []Entry) {
	w.dirs.Go(func() error {
		w.track(func() { w.processEntries(root, entries) })

		return nil
	})

	// Tasks never return errors; failures are recorded on the aggregate.
	_ = w.dirs.Wait()
}

// submit schedules a directory task, running it inline when the pool is full.
func (w *walker) submit(task TraversalTask) {
	if w.ctx.Err() != nil {
		w.agg.markIncomplete()

		return
	}

	spawned := w.dirs.TryGo(func() error {
		w.track(func() { w.processDir(task) })

		return nil
	})
	if !spawned {
		w.processDir(task)
	}
}

// track runs fn while counting it as a live directory worker.
func (w *walker) track(fn func()) {
	live := w.live.Add(1)
	defer w.live.Add(-1)

	for {
		peak := w.peak.Load()
		if live <= peak || w.peak.CompareAndSwap(peak, live) {
			break
		}
	}

	fn()
}

// processDir lists one directory and dispatches a unit per entry.
func (w *walker) processDir(task TraversalTask) {
	entries, err := w.fs.ListDir(task.Path)
	if err != nil {
		w.skip(task.Path, err, "skipping unreadable directory")

		return
	}

	w.processEntries(task, entries)
}

// processEntries dispatches one unit per entry and joins the per-file units.
func (w *walker) processEntries(task TraversalTask, entries []Entry) {
	var units sync.WaitGroup

	for _, entry := range entries {
		if w.ctx.Err() != nil {
			w.agg.markIncomplete()

			break
		}

		path := filepath.Join(task.Path, entry.Name)

		switch entry.Kind {
		case KindDir:
			w.agg.mergeFolder()

			child := TraversalTask{Path: path, Depth: task.Depth + 1}
			if w.maxDepth > 0 && child.Depth >= w.maxDepth {
				w.log.WithField("path", path).Debugf("not descending (beyond depth %d)", w.maxDepth)

				continue
			}

			w.submit(child)
		case KindFile:
			if !w.files.TryAcquire(1) {
				w.processFile(path)

				continue
			}

			units.Add(1)

			go func() {
				defer units.Done()
				defer w.files.Release(1)

				w.processFile(path)
			}()
		case KindOther:
			w.log.WithField("path", path).Debug("ignoring non-regular entry")
		}
	}

	units.Wait()
}

// processFile stats a single regular file and merges it.
func (w *walker) processFile(path string) {
	size, err := w.fs.Stat(path)
	if err != nil {
		w.skip(path, err, "skipping inaccessible file")

		return
	}

	w.agg.merge(FileRecord{Path: path, Size: size})
}

// skip counts an inaccessible entry and logs a warning for it.
func (w *walker) skip(path string, err error, msg string) {
	w.agg.skip()
	w.log.WithField("path", path).WithError(err).Warn(msg)
}

package treestat

import (
	"runtime"
	"slices"
	"time"

	"emperror.dev/errors"
	"github.com/apex/log"
	"github.com/creasty/defaults"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// ErrInvalidOptions is returned when Options cannot be normalized.
const ErrInvalidOptions = errors.Sentinel("invalid options")

// Engine selects the traversal implementation.
type Engine string

const (
	// EnginePool is the bounded two-tier worker pool.
	EnginePool Engine = "pool"
	// EngineFastwalk delegates traversal to fastwalk.
	EngineFastwalk Engine = "fastwalk"
)

// Engines lists the supported engines.
//
//nolint:gochecknoglobals // Config constant
var Engines = []Engine{EnginePool, EngineFastwalk}

// Options configures a traversal.
type Options struct {
	// Path is the root directory to analyze.
	Path string `default:"."`
	// Engine selects the traversal implementation.
	Engine Engine `default:"pool"`
	// Workers caps the number of concurrent directory workers (0 = number of CPUs).
	Workers int
	// FileWorkers caps the number of concurrent per-file workers (0 = 4 x Workers).
	FileWorkers int
	// MaxDepth is the maximum traversal depth (0 = unlimited).
	MaxDepth int
	// Timeout bounds the traversal. On expiry the report is marked incomplete (0 = none).
	Timeout time.Duration
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration `default:"500ms"`
	// Accessor is the filesystem used by the pool engine (nil = OSAccessor).
	Accessor Accessor `default:"-"`
	// Logger receives per-entry warnings and debug events (nil = log.Log).
	Logger log.Interface `default:"-"`
}

// normalize fills in defaults and validates the options.
func (o *Options) normalize() error {
	if err := defaults.Set(o); err != nil {
		return errors.WrapIf(err, "applying option defaults")
	}

	if !slices.Contains(Engines, o.Engine) {
		return errors.Wrapf(ErrInvalidOptions, "unknown engine %q: must be one of %v", o.Engine, Engines)
	}

	switch {
	case o.Workers < 0:
		return errors.Wrap(ErrInvalidOptions, "workers cannot be negative")
	case o.FileWorkers < 0:
		return errors.Wrap(ErrInvalidOptions, "file workers cannot be negative")
	case o.MaxDepth < 0:
		return errors.Wrap(ErrInvalidOptions, "depth cannot be negative")
	case o.Timeout < 0:
		return errors.Wrap(ErrInvalidOptions, "timeout cannot be negative")
	}

	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}

	if o.FileWorkers == 0 {
		o.FileWorkers = 4 * o.Workers
	}

	if o.Accessor == nil {
		o.Accessor = OSAccessor{}
	}

	if o.Logger == nil {
		o.Logger = log.Log
	}

	return nil
}

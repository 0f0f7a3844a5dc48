package cli

import (
	"slices"

	"emperror.dev/errors"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/treestat/internal/treestat"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// settings holds the options that only concern the command surface.
type settings struct {
	engine string
	output string
	debug  bool
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var (
		options treestat.Options
		cfg     settings
	)

	allowedOutputs := []string{"table", "json"}

	cmd := &cobra.Command{
		Use:   "treestat [flags] <path>",
		Short: "Report file, folder and size statistics for a directory tree",
		Long: heredoc.Doc(`
			treestat walks a directory tree concurrently and reports the total number of
			files and folders, the cumulative size, and the largest and smallest files.

			The root directory itself is not counted as a folder. Symlinks, devices and
			other non-regular entries are ignored. Entries that cannot be read are skipped
			with a warning on stderr.
		`),
		Version:       c.version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(allowedOutputs, cfg.output) {
				return errors.Errorf("invalid output format %q: must be one of %v", cfg.output, allowedOutputs)
			}

			options.Path = args[0]
			options.Engine = treestat.Engine(cfg.engine)

			return logic(cmd, options, cfg)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.IntVarP(&options.Workers, "workers", "w", 0, "Maximum concurrent directory workers (0=number of CPUs)")
	flags.IntVar(&options.FileWorkers, "file-workers", 0, "Maximum concurrent per-file workers (0=4x workers)")
	flags.IntVarP(&options.MaxDepth, "depth", "d", 0, "Maximum traversal depth (0=unlimited)")
	flags.DurationVar(&options.Timeout, "timeout", 0, "Stop after this long and report partial results (0=none)")
	flags.StringVar(&cfg.engine, "engine", string(treestat.EnginePool), "Traversal engine: pool or fastwalk")
	flags.StringVarP(&cfg.output, "output", "o", "table", "Output format: json or table")
	flags.BoolVar(&cfg.debug, "debug", false, "Enable debug output")

	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

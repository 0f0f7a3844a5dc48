package cli

import (
	"fmt"
	"os"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/idelchi/treestat/internal/treestat"
)

func logic(cmd *cobra.Command, options treestat.Options, cfg settings) error {
	stderr := cmd.ErrOrStderr()

	logger := &log.Logger{Handler: logcli.New(stderr), Level: log.WarnLevel}
	if cfg.debug {
		logger.Level = log.DebugLevel
	}

	options.Logger = logger

	enableProgress := cfg.output != "json" &&
		!cfg.debug &&
		stderr == os.Stderr &&
		isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	report, err := treestat.Run(cmd.Context(), options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch cfg.output {
	case "json":
		return PrintJSON(report, cmd.OutOrStdout())
	default:
		return PrintTable(report, cmd.OutOrStdout())
	}
}

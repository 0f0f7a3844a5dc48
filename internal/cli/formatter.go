package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"emperror.dev/errors"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"

	"github.com/idelchi/treestat/internal/treestat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *treestat.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.WrapIf(err, "encoding JSON output")
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// bytesLabel renders a size as "1.2 KiB (1234 bytes)".
func bytesLabel(size int64) string {
	return fmt.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(size)), size) //nolint:gosec // Sizes are never negative
}

// fileLabel renders a file record, or "-" when absent.
func fileLabel(rec *treestat.FileRecord) string {
	if rec == nil {
		return "-"
	}

	return fmt.Sprintf("'%s'\t%s", rec.Path, bytesLabel(rec.Size))
}

// PrintTable outputs the report in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *treestat.Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\t\n", report.Files)
	fmt.Fprintf(w, "Total folders:\t%d\t\n", report.Folders)
	fmt.Fprintf(w, "Largest file:\t%s\n", fileLabel(report.Largest))
	fmt.Fprintf(w, "Smallest file:\t%s\n", fileLabel(report.Smallest))
	fmt.Fprintf(w, "Total size:\t%s\t\n", bytesLabel(report.Bytes))

	if report.Skipped > 0 {
		fmt.Fprintf(w, "Skipped entries:\t%d\t\n", report.Skipped)
	}

	if report.Incomplete {
		fmt.Fprintln(w, "\nWarning:\ttraversal stopped early, results are partial\t")
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\t\n", report.Elapsed)

	return w.Flush()
}

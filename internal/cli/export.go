package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tfscope/internal/export"
	"github.com/roach88/tfscope/internal/record"
	"github.com/roach88/tfscope/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database  string
	Session   string
	Operation string
	Severity  string
	To        string // "csv" | "json" | "ndjson"
	Output    string // file path, empty = stdout
}

// validExportFormats defines the allowed --to values.
var validExportFormats = []string{"csv", "json", "ndjson"}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored records to CSV, JSON, or NDJSON",
		Long: `Export stored records, optionally filtered, to a file or stdout.

Examples:
  tfscope export --db ./tfscope.db --to csv --output records.csv
  tfscope export --db ./tfscope.db --to json --operation apply
  tfscope export --db ./tfscope.db --to ndjson | jq .severity`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "restrict to one ingest session")
	cmd.Flags().StringVar(&opts.Operation, "operation", "", "filter by operation class")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&opts.To, "to", "csv", "export format (csv|json|ndjson)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	if !isValidExportFormat(opts.To) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid export format %q: must be one of %v", opts.To, validExportFormats))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	records, err := st.List(context.Background(), store.Filter{
		Session:   opts.Session,
		Operation: record.Operation(opts.Operation),
		Severity:  record.Severity(opts.Severity),
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "list records", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "create output file", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.To {
	case "csv":
		err = export.CSV(w, records)
	case "json":
		err = export.JSON(w, records, time.Now())
	case "ndjson":
		err = export.NDJSON(w, records)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "export records", err)
	}

	opts.Logger.Debug().Int("records", len(records)).Str("to", opts.To).Msg("exported")
	return nil
}

func isValidExportFormat(format string) bool {
	for _, f := range validExportFormats {
		if f == format {
			return true
		}
	}
	return false
}

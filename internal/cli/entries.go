package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tfscope/internal/record"
	"github.com/roach88/tfscope/internal/store"
)

// defaultEntriesLimit bounds listings unless --limit says otherwise.
const defaultEntriesLimit = 100

// EntriesOptions holds flags for the entries command.
type EntriesOptions struct {
	*RootOptions
	Database     string
	Session      string
	Operation    string
	Severity     string
	ResourceType string
	Search       string
	HideRead     bool
	HideFailed   bool
	Limit        int
}

// NewEntriesCommand creates the entries command.
func NewEntriesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EntriesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List stored records with filtering",
		Long: `List stored records, optionally filtered by session, operation class,
severity, resource type, or a message substring.

Examples:
  tfscope entries --db ./tfscope.db --operation apply --severity error
  tfscope entries --db ./tfscope.db --search aws_instance --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntries(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "filter to one ingest session")
	cmd.Flags().StringVar(&opts.Operation, "operation", "", "filter by operation class (plan|apply|validate|unknown)")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "filter by severity (trace|debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.ResourceType, "resource", "", "filter by resource type")
	cmd.Flags().StringVar(&opts.Search, "search", "", "substring search in message, rpc method, resource type")
	cmd.Flags().BoolVar(&opts.HideRead, "hide-read", false, "exclude records marked read")
	cmd.Flags().BoolVar(&opts.HideFailed, "hide-failed", false, "exclude hard decode failures")
	cmd.Flags().IntVar(&opts.Limit, "limit", defaultEntriesLimit, "maximum records to return (0 = unlimited)")

	return cmd
}

func runEntries(opts *EntriesOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	records, err := st.List(context.Background(), store.Filter{
		Session:      opts.Session,
		Operation:    record.Operation(opts.Operation),
		Severity:     record.Severity(opts.Severity),
		ResourceType: opts.ResourceType,
		Search:       opts.Search,
		HideRead:     opts.HideRead,
		HideFailed:   opts.HideFailed,
		Limit:        opts.Limit,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "list records", err)
	}

	out := formatter(opts.RootOptions, cmd.OutOrStdout())
	return out.Emit(records, func(w io.Writer) error {
		for _, rec := range records {
			fmt.Fprintf(w, "%s  %-5s  %-8s  %s\n",
				rec.Timestamp.UTC().Format(time.RFC3339),
				rec.Severity, rec.Operation, rec.Message)
		}
		fmt.Fprintf(w, "%d records\n", len(records))
		return nil
	})
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tfscope/internal/store"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Database string
	Session  string
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics for stored records",
		Long: `Show record counts broken down by decode outcome, operation class,
severity, resource type, and RPC method.

Examples:
  tfscope stats --db ./tfscope.db
  tfscope stats --db ./tfscope.db --session 0190... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "restrict to one ingest session")

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	stats, err := st.ReadStats(context.Background(), opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "read stats", err)
	}

	out := formatter(opts.RootOptions, cmd.OutOrStdout())
	return out.Emit(stats, func(w io.Writer) error {
		fmt.Fprintf(w, "records:    %d (%d sessions, %d decode failures)\n",
			stats.TotalRecords, stats.SessionCount, stats.DecodeFailed)
		fmt.Fprintf(w, "outcomes:   %s\n", formatCounts(stats.ByOutcome))
		fmt.Fprintf(w, "operations: %s\n", formatCounts(stats.ByOperation))
		fmt.Fprintf(w, "severities: %s\n", formatCounts(stats.BySeverity))
		if len(stats.ByResource) > 0 {
			fmt.Fprintf(w, "resources:  %s\n", formatCounts(stats.ByResource))
		}
		if len(stats.ByRPCMethod) > 0 {
			fmt.Fprintf(w, "rpc:        %s\n", formatCounts(stats.ByRPCMethod))
		}
		fmt.Fprintf(w, "embedded blocks: %d\n", stats.EmbeddedCount)
		return nil
	})
}

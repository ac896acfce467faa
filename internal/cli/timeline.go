package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tfscope/internal/store"
	"github.com/roach88/tfscope/internal/timeline"
)

// TimelineOptions holds flags for the timeline command.
type TimelineOptions struct {
	*RootOptions
	Database string
	Session  string
}

// TimelineResult is the timeline command's output payload.
type TimelineResult struct {
	Spans []timeline.Span `json:"spans"`

	// TimeBased reports whether the gap-grouping fallback produced
	// the spans (no record carried a correlation id).
	TimeBased bool `json:"time_based"`
}

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TimelineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Aggregate stored records into timeline spans",
		Long: `Aggregate records into display-ready timeline spans, grouped by
correlation id and operation class. When no record carries a
correlation id, records are grouped by wall-clock gaps instead.

Examples:
  tfscope timeline --db ./tfscope.db
  tfscope timeline --db ./tfscope.db --session 0190... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "restrict to one ingest session")

	return cmd
}

func runTimeline(opts *TimelineOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	records, err := st.List(context.Background(), store.Filter{Session: opts.Session})
	if err != nil {
		return WrapExitError(ExitCommandError, "read records", err)
	}

	spans := timeline.Build(records)
	result := TimelineResult{Spans: spans}
	if len(spans) > 0 && spans[0].TimeBased {
		result.TimeBased = true
	}

	out := formatter(opts.RootOptions, cmd.OutOrStdout())
	return out.Emit(result, func(w io.Writer) error {
		for _, span := range spans {
			fmt.Fprintf(w, "%s  %-40s  %s  (%d entries)\n",
				span.Start.UTC().Format(time.RFC3339),
				span.Label, span.Duration, span.EntryCount)
		}
		fmt.Fprintf(w, "%d spans\n", len(spans))
		return nil
	})
}

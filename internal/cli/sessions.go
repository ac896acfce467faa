package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tfscope/internal/store"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database string
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List ingest sessions",
		Long: `List ingest sessions, newest first, with their source file and
record count.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSessions(opts *SessionsOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	sessions, err := st.Sessions(context.Background())
	if err != nil {
		return WrapExitError(ExitCommandError, "list sessions", err)
	}

	out := formatter(opts.RootOptions, cmd.OutOrStdout())
	return out.Emit(sessions, func(w io.Writer) error {
		for _, s := range sessions {
			fmt.Fprintf(w, "%s  %s  %-30s  %d records\n",
				s.CreatedAt.UTC().Format(time.RFC3339), s.Token, s.Source, s.RecordCount)
		}
		fmt.Fprintf(w, "%d sessions\n", len(sessions))
		return nil
	})
}

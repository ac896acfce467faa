package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tfscope/internal/store"
)

// MarkReadOptions holds flags for the mark-read command.
type MarkReadOptions struct {
	*RootOptions
	Database string
}

// MarkReadResult is the mark-read command's output payload.
type MarkReadResult struct {
	ID     string `json:"id"`
	Marked bool   `json:"marked"`
}

// NewMarkReadCommand creates the mark-read command.
func NewMarkReadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MarkReadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "mark-read <record-id>",
		Short:         "Mark a stored record as read",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarkRead(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runMarkRead(opts *MarkReadOptions, cmd *cobra.Command, id string) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	marked, err := st.MarkRead(context.Background(), id)
	if err != nil {
		return WrapExitError(ExitCommandError, "mark read", err)
	}
	if !marked {
		return NewExitError(ExitFailure, fmt.Sprintf("record %q not found", id))
	}

	out := formatter(opts.RootOptions, cmd.OutOrStdout())
	return out.Emit(MarkReadResult{ID: id, Marked: true}, func(w io.Writer) error {
		fmt.Fprintf(w, "marked %s as read\n", id)
		return nil
	})
}

// Package cli implements the tfscope command line interface.
//
// Commands follow one shape: a NewXCommand constructor building a
// cobra.Command around an Options struct, and a runX function doing
// the work against the internal packages. All structured output goes
// through OutputFormatter so every command supports json and text.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/tfscope/internal/logging"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Logger is initialized in PersistentPreRunE and inherited by
	// every command.
	Logger zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tfscope CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tfscope",
		Short: "tfscope - Terraform log decoding and timeline analysis",
		Long: `tfscope decodes Terraform's JSON log stream into normalized records,
surviving truncated and malformed lines, and aggregates them into
timelines, statistics, and exports.

Every input line yields a record: cleanly parsed, structurally
repaired, regex-salvaged, or an explicit failure record. Nothing is
dropped.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.Logger = logging.Init(opts.Verbose, opts.Format == "json")
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewIngestCommand(opts))
	cmd.AddCommand(NewEntriesCommand(opts))
	cmd.AddCommand(NewTimelineCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSessionsCommand(opts))
	cmd.AddCommand(NewMarkReadCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

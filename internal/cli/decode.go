package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/tfscope/internal/decoder"
	"github.com/roach88/tfscope/internal/export"
)

// DecodeOptions holds flags for the decode command.
type DecodeOptions struct {
	*RootOptions
	Hint string

	// Decoder is injectable for deterministic tests.
	Decoder *decoder.Decoder
}

// NewDecodeCommand creates the decode command: one-shot decoding to
// NDJSON on stdout, no store involved.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a log file to NDJSON records on stdout",
		Long: `Decode a Terraform JSON log file (or stdin when no file is given)
and write one normalized record per line to stdout.

Useful for piping into jq or other tools without touching a database:

  tfscope decode plan.log | jq 'select(.decode_outcome != "clean")'
  terraform plan -json 2>&1 | tfscope decode`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Hint, "hint", "", "source filename hint for operation classification")

	return cmd
}

func runDecode(opts *DecodeOptions, cmd *cobra.Command, args []string) error {
	dec := opts.Decoder
	if dec == nil {
		dec = decoder.New()
	}

	in := cmd.InOrStdin()
	hint := opts.Hint
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "open input", err)
		}
		defer f.Close()
		in = f
		if hint == "" {
			hint = filepath.Base(args[0])
		}
	}

	records, err := dec.DecodeReader(in, hint)
	if err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}

	return export.NDJSON(cmd.OutOrStdout(), records)
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/tfscope/internal/decoder"
	"github.com/roach88/tfscope/internal/record"
	"github.com/roach88/tfscope/internal/session"
	"github.com/roach88/tfscope/internal/store"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	Database string

	// TokenGen and Decoder are injectable for deterministic tests.
	TokenGen session.TokenGenerator
	Decoder  *decoder.Decoder
}

// FileSummary reports the outcome of ingesting one file.
type FileSummary struct {
	File          string         `json:"file"`
	Session       string         `json:"session"`
	Records       int            `json:"records"`
	Inserted      int            `json:"inserted"`
	Outcomes      map[string]int `json:"outcomes"`
	Operations    map[string]int `json:"operations"`
	ResourceTypes []string       `json:"resource_types,omitempty"`
	EmbeddedCount int            `json:"embedded_block_count"`
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest <files...>",
		Short: "Decode log files and store the records",
		Long: `Decode one or more Terraform JSON log files and store the normalized
records. Each file becomes its own ingest session with a fresh session
token. Files are decoded in parallel; each file's pipeline runs
single-threaded and shares nothing with the others.

Re-ingesting identical input is idempotent: record ids are derived
from content and position, so duplicates are silently skipped.

Examples:
  tfscope ingest --db ./tfscope.db plan.log
  tfscope ingest --db ./tfscope.db plan.log apply.log --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runIngest(opts *IngestOptions, cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	tokenGen := opts.TokenGen
	if tokenGen == nil {
		tokenGen = session.UUIDv7Generator{}
	}
	dec := opts.Decoder
	if dec == nil {
		dec = decoder.New()
	}

	summaries := make([]FileSummary, len(files))

	// Decode in parallel across files; the store stays single-writer
	// behind the mutex.
	var writeMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			records, err := decodeFile(dec, file)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("decode %s", file), err)
			}

			writeMu.Lock()
			defer writeMu.Unlock()
			token := tokenGen.Generate()
			inserted, err := st.WriteBatch(gctx, token, filepath.Base(file), records)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("store %s", file), err)
			}

			summary := summarize(records)
			summary.File = file
			summary.Session = token
			summary.Inserted = inserted
			summaries[i] = summary

			opts.Logger.Debug().
				Str("file", file).
				Str("session", token).
				Int("records", summary.Records).
				Int("failed", summary.Outcomes[string(record.OutcomeFailed)]).
				Msg("ingested")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := formatter(opts.RootOptions, cmd.OutOrStdout())
	return out.Emit(summaries, func(w io.Writer) error {
		for _, s := range summaries {
			fmt.Fprintf(w, "%s: %d records (session %s)\n", s.File, s.Records, s.Session)
			fmt.Fprintf(w, "  outcomes:   %s\n", formatCounts(s.Outcomes))
			fmt.Fprintf(w, "  operations: %s\n", formatCounts(s.Operations))
			if len(s.ResourceTypes) > 0 {
				fmt.Fprintf(w, "  resources:  %v\n", s.ResourceTypes)
			}
		}
		return nil
	})
}

func decodeFile(dec *decoder.Decoder, path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dec.DecodeReader(f, filepath.Base(path))
}

func summarize(records []record.Record) FileSummary {
	summary := FileSummary{
		Records:    len(records),
		Outcomes:   map[string]int{},
		Operations: map[string]int{},
	}
	seen := map[string]bool{}
	for _, rec := range records {
		summary.Outcomes[string(rec.Outcome)]++
		summary.Operations[string(rec.Operation)]++
		summary.EmbeddedCount += len(rec.Blocks)
		if rec.ResourceType != "" && !seen[rec.ResourceType] {
			seen[rec.ResourceType] = true
			summary.ResourceTypes = append(summary.ResourceTypes, rec.ResourceType)
		}
	}
	return summary
}

// formatCounts renders a count map with stable key order.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", k, counts[k])
	}
	if out == "" {
		out = "-"
	}
	return out
}

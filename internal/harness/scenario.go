package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tfscope/internal/decoder"
	"github.com/roach88/tfscope/internal/record"
	"github.com/roach88/tfscope/internal/timeline"
)

// defaultClock anchors scenarios that don't set one. Any fixed instant
// works; this one predates every timestamp used in the scenario corpus
// so wall-clock fallbacks are recognizable in golden output.
var defaultClock = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Scenario defines one decode conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files use it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// SourceHint is the filename hint passed to the decoder.
	SourceHint string `yaml:"source_hint,omitempty"`

	// Clock fixes the decoder's wall clock (RFC3339). Defaults to a
	// fixed instant so scenarios are deterministic either way.
	Clock string `yaml:"clock,omitempty"`

	// Lines are the raw input lines, in order. Blank entries are
	// preserved so scenarios can cover blank-line skipping.
	Lines []string `yaml:"lines"`
}

// Result holds a scenario execution's output.
type Result struct {
	Records []record.Record
	Spans   []timeline.Span
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if len(s.Lines) == 0 {
		return nil, fmt.Errorf("scenario %s: no input lines", path)
	}
	return &s, nil
}

// LoadScenarios reads every *.yaml scenario under dir, sorted by
// filename for deterministic test order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Run executes the scenario: decode, enrich, aggregate.
func Run(s *Scenario) (*Result, error) {
	instant := defaultClock
	if s.Clock != "" {
		parsed, err := time.Parse(time.RFC3339, s.Clock)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: bad clock: %w", s.Name, err)
		}
		instant = parsed
	}

	dec := decoder.New(decoder.WithClock(decoder.FixedClock{Instant: instant}))
	records := dec.DecodeBatch(s.Lines, s.SourceHint)
	spans := timeline.Build(records)

	return &Result{Records: records, Spans: spans}, nil
}

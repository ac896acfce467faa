package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenariosGolden(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenarioFile(t, "lines:\n  - '{}'\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestLoadScenario_NoLines(t *testing.T) {
	path := writeScenarioFile(t, "name: empty\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input lines")
}

func TestLoadScenario_BadYAML(t *testing.T) {
	path := writeScenarioFile(t, "name: [unclosed\n")

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestRun_BadClock(t *testing.T) {
	s := &Scenario{
		Name:  "bad-clock",
		Clock: "not-a-timestamp",
		Lines: []string{"{}"},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad clock")
}

func TestRun_DefaultClock(t *testing.T) {
	s := &Scenario{
		Name:  "default-clock",
		Lines: []string{`{"@message":"no timestamp anywhere"}`},
	}

	result, err := Run(s)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, defaultClock, result.Records[0].Timestamp)
}

func writeScenarioFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

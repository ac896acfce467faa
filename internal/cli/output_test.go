package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	err := f.Emit(map[string]int{"records": 3}, func(w io.Writer) error {
		t.Fatal("text renderer must not run in json mode")
		return nil
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"records": 3}`, buf.String())
}

func TestOutputFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	err := f.Emit(nil, func(w io.Writer) error {
		fmt.Fprintln(w, "3 records")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "3 records\n", buf.String())
}

func TestExitError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewExitError(ExitFailure, "not found")
		assert.Equal(t, "not found", err.Error())
		assert.Equal(t, ExitFailure, GetExitCode(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		cause := errors.New("disk full")
		err := WrapExitError(ExitCommandError, "open database", cause)
		assert.Equal(t, "open database: disk full", err.Error())
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("wrapped further up the chain", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("plain error defaults to failure", func(t *testing.T) {
		assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	})
}

func TestFormatCounts(t *testing.T) {
	assert.Equal(t, "apply=2 plan=1", formatCounts(map[string]int{"plan": 1, "apply": 2}))
	assert.Equal(t, "-", formatCounts(nil))
}

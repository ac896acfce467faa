package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_HasDuration(t *testing.T) {
	rec := Record{}
	assert.False(t, rec.HasDuration())

	rec.Duration = time.Millisecond
	assert.True(t, rec.HasDuration())
}

func TestRecord_Failed(t *testing.T) {
	for _, outcome := range []Outcome{OutcomeClean, OutcomeRepaired, OutcomeExtracted} {
		rec := Record{Outcome: outcome}
		assert.False(t, rec.Failed(), "outcome %s", outcome)
	}

	rec := Record{Outcome: OutcomeFailed}
	assert.True(t, rec.Failed())
}

func TestValidSeverities(t *testing.T) {
	for _, sev := range []Severity{SeverityTrace, SeverityDebug, SeverityInfo, SeverityWarn, SeverityError} {
		assert.True(t, ValidSeverities[sev], "severity %s", sev)
	}
	assert.False(t, ValidSeverities[Severity("fatal")])
}

package decoder

import "time"

// Clock supplies wall-clock time for the decoder's final timestamp
// fallback and for anchoring date-less times to a day. Injecting it
// keeps batch decoding deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock returns a predetermined instant on every call.
// Used in tests and golden scenarios for deterministic output.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.Instant }

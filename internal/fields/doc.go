// Package fields infers ambiguous record fields from a raw key/value
// map and/or original line text.
//
// Every function here is pure and deterministic: same inputs, same
// outputs, no state. The decoder calls the same inference path for
// every cascade stage, so a repaired or regex-extracted line goes
// through exactly the heuristics a cleanly parsed line does.
//
// Priority orders (severity keyword families, operation pattern
// families, timestamp formats, alias lists) are fixed and never
// data-dependent.
package fields

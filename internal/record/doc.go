// Package record defines the normalized log record types shared across
// tfscope.
//
// This package contains type definitions and identity derivation only.
// All other internal packages import record; record imports nothing
// internal. This keeps it the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Record identity is content-addressed and deterministic: the same
//     line at the same position always hashes to the same ID.
//   - Enums are typed string constants and marshal as their wire value.
//   - All JSON tags use snake_case.
package record

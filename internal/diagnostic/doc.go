// Package diagnostic provides structured errors, warnings and notes for the
// dispatch table generator.
//
// Key capabilities:
//   - Skipped generic and interface types
//   - Methods left out of a generated table
//   - A combined error for fatal problems
package diagnostic

// Package core defines the shared language of the bemdeps system.
//
// This package contains:
//   - Resolution inputs (Params, Level)
//   - Resolution output (Result)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core

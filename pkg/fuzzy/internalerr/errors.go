// Package internalerr holds the sentinel errors shared by the fuzzy packages.
//
// Call sites wrap these with errors.Wrapf so callers can match the class with
// errors.Is while still seeing which argument was at fault.
package internalerr

import "github.com/cockroachdb/errors"

// Sentinel errors for common cases
var (
	// Construction validation
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidOperator = errors.New("invalid operator")

	// Evaluation input
	ErrLengthMismatch = errors.New("length mismatch")
	ErrShapeMismatch  = errors.New("shape mismatch")

	// Numeric degeneracy
	ErrZeroArea = errors.New("membership function has zero area")

	// Sequencing
	ErrNotComposed = errors.New("engine not composed")

	// Lookups
	ErrNotFound = errors.New("not found")
)

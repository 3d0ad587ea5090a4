// Package matching implements the worker-job scoring, ranking, and
// explanation engine. Every operation is a pure function of its inputs and
// the configured policy; given identical inputs the results are identical.
package matching

import "errors"

// Domain errors raised on caller-contract violations. The engine never
// errors on "no matches found"; that is a valid empty result.
var (
	// ErrInvalidLimit indicates a non-positive result limit.
	ErrInvalidLimit = errors.New("limit must be a positive integer")

	// ErrUnknownPolicy indicates an unrecognized scoring policy name.
	ErrUnknownPolicy = errors.New("unknown scoring policy")

	// ErrInvalidWeights indicates a weight table with negative or
	// non-finite entries.
	ErrInvalidWeights = errors.New("invalid weight table")
)

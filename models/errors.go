package models

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnavailable: the entire offer/policy feed could not be
	// retrieved. Fatal for the request; no partial result is returned.
	// Distinct from individual items being unavailable, which is data
	// (Strategy.UnresolvedItems), not an error.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrOptimizationTimeout: the overall deadline expired before every
	// requested mode completed. Callers may retry with a relaxed deadline.
	ErrOptimizationTimeout = errors.New("optimization deadline exceeded")
)

// InvariantViolationError is an internal defect signal: the assembled result
// failed a consistency check that correct solver output can never fail. It
// carries the full request/result snapshot so the defect can be reproduced
// from the log line alone.
type InvariantViolationError struct {
	Reason   string
	Mode     OptimizationMode
	Request  *OptimizationRequest
	Strategy *Strategy
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("optimization invariant violated (%s mode): %s", e.Mode, e.Reason)
}

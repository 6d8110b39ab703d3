package topo

import "errors"

// Sentinel errors for topology operations, per spec.md 7's error taxonomy.
var (
	// ErrInvalidHandle is returned when an operation receives a NULL or
	// DELETED handle.
	ErrInvalidHandle = errors.New("topo: invalid handle")

	// ErrNonClosedLoop is returned when addLoop's half-edges do not form a
	// single cycle.
	ErrNonClosedLoop = errors.New("topo: half-edges do not form a closed loop")
)

// Package errors provides error handling for weft.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("unbalanced element nesting")
//
//	// Wrap with context
//	if err := pull(); err != nil {
//	    return errors.Wrap(err, "selection stage")
//	}
//
//	// Check sentinels
//	if errors.Is(err, transform.ErrStreamConsistency) {
//	    // malformed input, not retryable
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// AssertionFailedf marks programming errors (contract violations) as
// opposed to data errors; these carry a stack trace and should never be
// silently recovered from.
var AssertionFailedf = crdb.AssertionFailedf

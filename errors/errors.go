// Package errors provides error handling for credence.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel errors for the evidence-engine failure taxonomy
//
// Usage:
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check the failure class
//	if errors.IsNormalization(err) {
//	    // mass function does not sum to 1
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
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the credence failure taxonomy.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the class.
var (
	// ErrConfiguration indicates an invalid universe or constraint definition:
	// zero slot count, empty alphabet, out-of-range slot index, or an option
	// label that does not belong to its slot's alphabet.
	ErrConfiguration = New("invalid configuration")

	// ErrNormalization indicates a mass function whose probabilities violate
	// the [0,1] bound or whose total deviates from 1 beyond tolerance.
	ErrNormalization = New("mass not normalized")

	// ErrDomainMismatch indicates an operation mixing constraints or masses
	// that were built from different frames.
	ErrDomainMismatch = New("frame mismatch")

	// ErrInvalidQuery indicates a degenerate belief query: an empty or
	// universal query constraint, or an engine with no registered masses.
	ErrInvalidQuery = New("invalid query")
)

// IsConfiguration checks if an error is or wraps ErrConfiguration.
func IsConfiguration(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsNormalization checks if an error is or wraps ErrNormalization.
func IsNormalization(err error) bool {
	return err != nil && Is(err, ErrNormalization)
}

// IsDomainMismatch checks if an error is or wraps ErrDomainMismatch.
func IsDomainMismatch(err error) bool {
	return err != nil && Is(err, ErrDomainMismatch)
}

// IsInvalidQuery checks if an error is or wraps ErrInvalidQuery.
func IsInvalidQuery(err error) bool {
	return err != nil && Is(err, ErrInvalidQuery)
}

// Configurationf creates a configuration error with a formatted message.
func Configurationf(format string, args ...interface{}) error {
	return Wrap(ErrConfiguration, Newf(format, args...).Error())
}

// Normalizationf creates a normalization error with a formatted message.
func Normalizationf(format string, args ...interface{}) error {
	return Wrap(ErrNormalization, Newf(format, args...).Error())
}

// DomainMismatchf creates a frame-mismatch error with a formatted message.
func DomainMismatchf(format string, args ...interface{}) error {
	return Wrap(ErrDomainMismatch, Newf(format, args...).Error())
}

// InvalidQueryf creates an invalid-query error with a formatted message.
func InvalidQueryf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidQuery, Newf(format, args...).Error())
}

package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data integrity errors: a single malformed session record.
	// Recovered locally by skipping the record; never fatal to a run.
	ErrDataIntegrity   = errors.New("session record integrity violation")
	ErrCountMismatch   = fmt.Errorf("%w: counts do not sum to total games", ErrDataIntegrity)
	ErrNegativeCount   = fmt.Errorf("%w: negative count", ErrDataIntegrity)
	ErrNegativeAverage = fmt.Errorf("%w: negative average", ErrDataIntegrity)
	ErrEmptyConfigKey  = fmt.Errorf("%w: empty configuration key", ErrDataIntegrity)

	// Comparison errors
	ErrInsufficientData = errors.New("insufficient data for comparison")

	// Lookup errors
	ErrNotFound       = errors.New("resource not found")
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)
	ErrGroupNotFound  = fmt.Errorf("%w: configuration group", ErrNotFound)
)

// Error constructors with context

func NewIntegrityError(key string, reason string) error {
	return fmt.Errorf("%w: %s (%s)", ErrDataIntegrity, reason, key)
}

func NewCountMismatchError(key string, total, p1, p2, draws int) error {
	return fmt.Errorf("%w: %d + %d + %d != %d (%s)", ErrCountMismatch, p1, p2, draws, total, key)
}

func NewInsufficientDataError(have int) error {
	return fmt.Errorf("%w: need at least 2 configurations, have %d", ErrInsufficientData, have)
}

// Error checking helpers

func IsDataIntegrityError(err error) bool {
	return errors.Is(err, ErrDataIntegrity)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrSourceUnavailable ErrorType = iota
	ErrMalformedRecord
	ErrTimestampUnavailable
	ErrRender
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrSourceUnavailable:
		return "SourceUnavailable"
	case ErrMalformedRecord:
		return "MalformedRecord"
	case ErrTimestampUnavailable:
		return "TimestampUnavailable"
	case ErrRender:
		return "Render"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// IndexError represents an error while building the index. Dist is set
// when the error is scoped to a single distribution.
type IndexError struct {
	Type ErrorType
	Dist string
	Err  error
}

// Error implements the error interface
func (e *IndexError) Error() string {
	if e.Dist != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Dist, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *IndexError) Unwrap() error {
	return e.Err
}

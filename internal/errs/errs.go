// Package errs defines the categorized error type shared across the
// processing pipeline. Config errors are fatal before any file is touched;
// every other category is contained to the file that raised it.
package errs

import (
	"errors"
	"fmt"
)

// Category classifies error types for targeted handling.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryDecode Category = "decode"
	CategoryEncode Category = "encode"
	CategoryWrite  Category = "write"
)

// ProcessError is the structured error type used throughout the module.
type ProcessError struct {
	Category Category
	Op       string // operation name
	Err      error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Op, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// New creates a ProcessError.
func New(category Category, op string, err error) *ProcessError {
	return &ProcessError{Category: category, Op: op, Err: err}
}

// Wrap wraps an existing error with context. Returns nil for nil errors.
func Wrap(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(category, op, err)
}

// IsCategory reports whether err belongs to the given category.
func IsCategory(err error, cat Category) bool {
	var pe *ProcessError
	if errors.As(err, &pe) {
		return pe.Category == cat
	}
	return false
}

// Sentinel errors for common failure modes.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidRatio      = errors.New("invalid ratio")
	ErrSignatureTooLarge = errors.New("signature larger than available space")
	ErrUnreadableImage   = errors.New("unreadable image")
)

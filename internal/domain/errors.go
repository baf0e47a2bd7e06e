package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrEmptyTable     = errors.New("empty structure")
	ErrNoAPIKey       = errors.New("API key not configured")
	ErrEmptyStructure = errors.New("generator returned no levels")
)

// GenerationError represents a failure of the structure generator
type GenerationError struct {
	Op      string // Operation: "request", "decode", "parse", etc.
	Message string // Human-readable context
	Err     error  // Underlying error
}

func (e *GenerationError) Error() string {
	if e.Message != "" && e.Err != nil {
		return fmt.Sprintf("generate %s: %s: %v", e.Op, e.Message, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("generate %s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("generate %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("generate %s failed", e.Op)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// InvalidEditError represents a structure edit that cannot be applied
type InvalidEditError struct {
	Index   int // Level index, -1 for the whole table
	Field   LevelField
	Message string
	Err     error
}

func (e *InvalidEditError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("invalid structure: %s", e.Message)
	case e.Field != "":
		return fmt.Sprintf("invalid level %d (%s): %s", e.Index+1, e.Field, e.Message)
	default:
		return fmt.Sprintf("invalid level %d: %s", e.Index+1, e.Message)
	}
}

func (e *InvalidEditError) Unwrap() error {
	return e.Err
}

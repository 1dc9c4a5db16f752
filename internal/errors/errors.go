package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies failures by what the caller should do with them.
type ErrorCategory string

const (
	// Precondition violations: the input was unusable, nothing was computed.
	ErrorCategoryPrecondition ErrorCategory = "PRECONDITION"
	// Constraint violations: a valid computation produced an out-of-bounds result.
	ErrorCategoryConstraint ErrorCategory = "CONSTRAINT"
	// Configuration problems found at load time.
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
	// Storage and I/O failures around the trade journal.
	ErrorCategoryStorage ErrorCategory = "STORAGE"
)

// Sentinel precondition errors. Sizing and simulation functions must fail with
// one of these rather than degrade into a silent zero result.
var (
	ErrInvalidStopLoss   = errors.New("stop-loss distance must be positive")
	ErrInvalidVolatility = errors.New("atr must be positive")
	ErrInvalidWinRate    = errors.New("win rate must be in (0,1)")
	ErrInvalidPayoff     = errors.New("average win/loss ratio must be positive")
	ErrInvalidRiskPct    = errors.New("risk percent must be positive")
	ErrInsufficientData  = errors.New("not enough trade returns to resample")
	ErrBelowMinimum      = errors.New("computed size is below the instrument minimum")
	ErrAboveMaximum      = errors.New("computed size exceeds the instrument maximum")
)

// CoreError carries category and component context around an underlying error.
type CoreError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// NewCoreError creates a categorized error without an underlying cause.
func NewCoreError(category ErrorCategory, component, operation, message string) *CoreError {
	return &CoreError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// Precondition wraps a sentinel precondition error with component context,
// keeping errors.Is(err, sentinel) working for callers.
func Precondition(sentinel error, component, operation string) *CoreError {
	return &CoreError{
		Category:   ErrorCategoryPrecondition,
		Component:  component,
		Operation:  operation,
		Message:    "precondition failed",
		Underlying: sentinel,
	}
}

// WrapError attaches category/component context to an existing error.
func WrapError(err error, category ErrorCategory, component, operation string) *CoreError {
	if err == nil {
		return nil
	}
	return &CoreError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
	}
}

// Is re-exported so call sites don't need to import both error packages.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

package calculation

import (
	"errors"
	"fmt"
)

// Error kinds. All three are input-validation failures raised before any
// period construction begins; the engine never fails mid-computation.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidTimeline = errors.New("invalid timeline")
	ErrPoolExhausted   = errors.New("pool exhausted")
)

// Error wraps a validation failure with the operation it occurred in.
type Error struct {
	Kind      error
	Operation string
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func invalidInput(op, format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidInput, Operation: op, Message: fmt.Sprintf(format, args...)}
}

func invalidTimeline(op, format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidTimeline, Operation: op, Message: fmt.Sprintf(format, args...)}
}

func poolExhausted(op, format string, args ...any) *Error {
	return &Error{Kind: ErrPoolExhausted, Operation: op, Message: fmt.Sprintf(format, args...)}
}

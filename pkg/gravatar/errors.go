package gravatar

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported profile format")
	ErrEmptyEntry        = errors.New("profile response has no entry")
)

type ValidationKind string

const (
	KindOutOfRange       ValidationKind = "OutOfRange"
	KindUnrecognizedEnum ValidationKind = "UnrecognizedEnum"
	KindEmptyKey         ValidationKind = "EmptyKey"
)

// ValidationError reports a rejected option value. The option it targets
// keeps its previous value.
type ValidationError struct {
	Field   string
	Value   any
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "invalid option"
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
}

func newOutOfRangeError(field string, value any, minimum int, maximum int) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Kind:    KindOutOfRange,
		Message: fmt.Sprintf("must be between %d and %d", minimum, maximum),
	}
}

func newUnrecognizedEnumError(field string, value any, allowed string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Kind:    KindUnrecognizedEnum,
		Message: fmt.Sprintf("must be one of %s", allowed),
	}
}

// RequestError reports a failed request: transport failure (Cause set) or a
// non-2xx status (Status set).
type RequestError struct {
	Message    string
	URL        string
	Status     int
	StatusText string
	Body       string
	Cause      error
}

func (e *RequestError) Error() string {
	if e == nil {
		return "gravatar request failed"
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s (status=%d %s)", e.Message, e.Status, e.StatusText)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// DecodeError reports a response body that could not be decoded.
type DecodeError struct {
	Format  Format
	Message string
	Body    string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "gravatar decode error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

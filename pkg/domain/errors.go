package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed conversion.
type ErrorKind string

const (
	// KindValidation marks a structurally invalid automaton.
	KindValidation ErrorKind = "ValidationError"
	// KindSyntax marks a malformed regular expression.
	KindSyntax ErrorKind = "SyntaxError"
	// KindInternal marks a broken invariant inside an algorithm. It is a bug,
	// never a user error.
	KindInternal ErrorKind = "InternalError"
)

// Sentinels for errors.Is against a *ConversionError of the matching kind.
var (
	ErrValidation = errors.New("validation error")
	ErrSyntax     = errors.New("syntax error")
	ErrInternal   = errors.New("internal error")
)

// ConversionError is the error description carried by a failed Result.
type ConversionError struct {
	Kind    ErrorKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
	Details []string  `json:"details,omitempty" yaml:"details,omitempty"`
	// Offset and Char locate a syntax error in the input regex.
	Offset *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Char   string `json:"char,omitempty" yaml:"char,omitempty"`
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Offset != nil {
		fmt.Fprintf(&b, " at position %d", *e.Offset)
		if e.Char != "" {
			fmt.Fprintf(&b, " (%q)", e.Char)
		}
	}
	if len(e.Details) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Details, "; "))
	}
	return b.String()
}

// Is matches the kind sentinels.
func (e *ConversionError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrInternal:
		return e.Kind == KindInternal
	}
	return false
}

// NewValidationError reports an invalid automaton.
func NewValidationError(message string, details ...string) *ConversionError {
	return &ConversionError{Kind: KindValidation, Message: message, Details: details}
}

// NewSyntaxError reports a malformed regex. A negative offset means the
// error has no single location (empty input, missing closing paren at end).
func NewSyntaxError(message string, offset int, char string) *ConversionError {
	e := &ConversionError{Kind: KindSyntax, Message: message, Char: char}
	if offset >= 0 {
		e.Offset = &offset
	}
	return e
}

// NewInternalError reports a broken algorithm invariant.
func NewInternalError(message string) *ConversionError {
	return &ConversionError{Kind: KindInternal, Message: message}
}

// AsConversionError unwraps err into a *ConversionError, wrapping anything
// else as an internal error.
func AsConversionError(err error) *ConversionError {
	if err == nil {
		return nil
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce
	}
	return NewInternalError(err.Error())
}

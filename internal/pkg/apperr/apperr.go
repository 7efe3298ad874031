package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can pick a status code
// without string-matching messages.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is a user-fixable input problem (empty description,
	// out-of-range completion percent, due date before start date).
	KindValidation
	// KindStateTransition is a business-rule violation on an otherwise
	// well-formed request (moving a Complete task backward).
	KindStateTransition
	// KindNotFound is an operation on an id that does not exist.
	KindNotFound
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error with a human-readable message
// identifying the specific rule violated.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// StateTransition returns a KindStateTransition error.
func StateTransition(format string, args ...any) error {
	return &Error{Kind: KindStateTransition, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of err, or KindUnknown for errors outside
// this taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindStore
	KindUpload
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	case KindUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// Error is the error returned across the repository and use case boundary.
// Message is safe to show to callers; Err is for logs only.
type Error struct {
	Kind       Kind
	Op         string
	Message    string
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

func NotFound(op, msg string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: msg}
}

func Store(op string, err error) error {
	return &Error{Kind: KindStore, Op: op, Message: "failed to access product store", Err: err}
}

// Constraint reports a store write rejected by an integrity constraint.
func Constraint(op, constraint, msg string, err error) error {
	return &Error{Kind: KindStore, Op: op, Message: msg, Constraint: constraint, Err: err}
}

func Upload(op string, err error) error {
	return &Error{Kind: KindUpload, Op: op, Message: "failed to upload image", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

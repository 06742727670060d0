// Package apperror defines the closed set of tagged errors the use cases return.
// Callers match on the variant code with errors.Is, or on the broad Kind when
// mapping to a transport status.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the edges (HTTP status, queue logging).
type Kind uint8

const (
	// KindUnexpected is an opaque server-side fault; its cause is never exposed.
	KindUnexpected Kind = iota
	// KindNotFound is a legitimate lookup that returned zero results.
	KindNotFound
	// KindValidationConflict is a business rule rejection such as missing stock.
	KindValidationConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidationConflict:
		return "validation_conflict"
	default:
		return "unexpected"
	}
}

// Code is the variant tag.
type Code string

// CodeUnexpected tags generic gateway and transport faults.
const CodeUnexpected Code = "app.unexpected"

// UnexpectedMessage is the only text an Unexpected error exposes.
const UnexpectedMessage = "An unexpected error occurred."

// ErrUnexpected matches any Unexpected error via errors.Is.
var ErrUnexpected = &Error{kind: KindUnexpected, code: CodeUnexpected, message: UnexpectedMessage}

// Error is an immutable tagged error value.
type Error struct {
	kind    Kind
	code    Code
	message string
	cause   error
}

// New builds a tagged error. A failure without a message is a programming
// error, so New panics rather than returning a silent value.
func New(kind Kind, code Code, message string, cause error) *Error {
	if message == "" {
		panic(fmt.Sprintf("apperror: %s built without a message", code))
	}
	if code == "" {
		panic("apperror: error built without a code")
	}
	return &Error{kind: kind, code: code, message: message, cause: cause}
}

// Unexpected wraps an infrastructure fault.
func Unexpected(cause error) *Error {
	return New(KindUnexpected, CodeUnexpected, UnexpectedMessage, cause)
}

// Wrap returns tagged errors untouched and turns anything else into Unexpected.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}
	return Unexpected(err)
}

// Restore rebuilds a variant that crossed a serialization boundary.
func Restore(kind Kind, code Code, message string) *Error {
	if message == "" {
		message = UnexpectedMessage
	}
	if code == "" {
		code = CodeUnexpected
	}
	return New(kind, code, message, nil)
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target carries the same variant code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Code() Code { return e.code }

// Message is the client-safe text, without the cause.
func (e *Error) Message() string { return e.message }

// KindOf classifies any error; untagged errors are Unexpected.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.kind
	}
	return KindUnexpected
}

// CodeOf returns the variant code; untagged errors are CodeUnexpected.
func CodeOf(err error) Code {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.code
	}
	return CodeUnexpected
}

// MessageOf returns the client-safe message for any error.
func MessageOf(err error) string {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.message
	}
	return UnexpectedMessage
}

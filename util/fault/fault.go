// Package fault carries the error taxonomy shared by all services.
package fault

import "errors"

type Kind string

const (
	Validation Kind = "VALIDATION"
	NotFound   Kind = "NOT_FOUND"
	Forbidden  Kind = "FORBIDDEN"
	Conflict   Kind = "CONFLICT"
	Upstream   Kind = "UPSTREAM"
	Internal   Kind = "INTERNAL"
)

type coded struct {
	kind Kind
	msg  string
	err  error
}

func (e coded) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}
func (e coded) Unwrap() error { return e.err }
func (e coded) Code() Kind    { return e.kind }

func New(k Kind, msg string) error { return coded{kind: k, msg: msg} }

// Wrap keeps the cause for logging while pinning the kind seen by handlers.
func Wrap(k Kind, msg string, err error) error { return coded{kind: k, msg: msg, err: err} }

// KindOf extracts the kind of err, Internal when untagged.
func KindOf(err error) Kind {
	var ce interface{ Code() Kind }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return Internal
}

// Message returns the caller-safe message of a tagged error.
// Untagged errors yield a generic message so internals never leak.
func Message(err error) string {
	var ce coded
	if errors.As(err, &ce) {
		return ce.msg
	}
	return "internal error"
}

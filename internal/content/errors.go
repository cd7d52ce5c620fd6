package content

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match with errors.Is.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrValidationFailed   = errors.New("validation failed")
)

// Error describes a failed content operation. The storage cause is kept for
// logging only and is deliberately not reachable through Unwrap.
type Error struct {
	Kind   error
	Op     string
	Type   string
	ID     string
	Reason string
	cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("content: ")
	b.WriteString(e.Op)
	if e.Type != "" {
		b.WriteString(" ")
		b.WriteString(e.Type)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " %q", e.ID)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// Cause returns the underlying storage error, if any.
func (e *Error) Cause() error { return e.cause }

func invalidID(op, typ, id string) error {
	return &Error{Kind: ErrInvalidIdentifier, Op: op, Type: typ, ID: id}
}

func invalid(op, typ, reason string) error {
	return &Error{Kind: ErrValidationFailed, Op: op, Type: typ, Reason: reason}
}

func unavailable(op, typ, id string, cause error) error {
	return &Error{Kind: ErrStorageUnavailable, Op: op, Type: typ, ID: id, cause: cause}
}

// Reason extracts the human-readable validation reason from err.
func Reason(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return ""
}

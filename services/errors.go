// services/errors.go
package services

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument marks missing or malformed caller input (HTTP 400).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks an absent or already-consumed target (HTTP 404).
	ErrNotFound = errors.New("not found")
)

// Error pairs a taxonomy sentinel with a caller-facing message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func invalidf(format string, args ...interface{}) error {
	return &Error{kind: ErrInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

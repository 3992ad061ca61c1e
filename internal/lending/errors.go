package lending

import (
	"errors"
	"fmt"
)

// Code is the stable machine-readable classification of a lending failure.
type Code string

const (
	CodeNotFound       Code = "not_found"
	CodeInvalidInput   Code = "invalid_input"
	CodeGuardViolation Code = "guard_violation"
	CodeConflict       Code = "conflict"
)

// Error carries a code plus a human message. Guard violations keep enough
// detail for a caller to tell "already handled" apart from "never valid".
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func notFoundErr(what string) error {
	return &Error{Code: CodeNotFound, Message: what + " not found"}
}

func invalidErr(msg string) error {
	return &Error{Code: CodeInvalidInput, Message: msg}
}

func guardErr(msg string) error {
	return &Error{Code: CodeGuardViolation, Message: msg}
}

func conflictErr() error {
	return &Error{Code: CodeConflict, Message: "concurrent update, please retry"}
}

// CodeOf extracts the failure code, or empty string for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

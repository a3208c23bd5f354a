package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced template or question no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is an access-control denial. It is reported distinctly
	// from ErrNotFound so callers can offer a request-access path.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a locally recoverable input problem: a malformed
// answer, an empty title, an out-of-range index. It is always surfaced to the
// caller before any network or storage call.
type ValidationError struct {
	Code string
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Msg == "" {
		return e.Code
	}
	return e.Code + ": " + e.Msg
}

func Invalid(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ValidationCode returns the code of the wrapped ValidationError, or "".
func ValidationCode(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Code
	}
	return ""
}

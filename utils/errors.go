package utils

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a domain failure so the response layer can pick an HTTP
// status without inspecting message strings. KindUnknown means "not a domain
// error": render a generic 500 and log the cause server-side.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindInvalidInput
	KindInvalidOperation
	KindUnauthorized
)

// DomainError carries a user-facing message together with its kind. The
// message is safe to return verbatim in an API response.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NotFound(format string, args ...interface{}) error {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...interface{}) error {
	return &DomainError{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperation(format string, args ...interface{}) error {
	return &DomainError{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) error {
	return &DomainError{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// KindOf unwraps err (including pkg/errors wrapping) and returns the kind of
// the innermost DomainError, or KindUnknown.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

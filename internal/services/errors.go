// internal/services/errors.go
package services

import "errors"

// ErrorCode is the stable machine-readable kind surfaced to API clients.
type ErrorCode string

const (
	CodeInvalidAttributes ErrorCode = "INVALID_ATTRIBUTES"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeInvalidRole       ErrorCode = "INVALID_ROLE"
	CodeOrderViolation    ErrorCode = "INVALID_APPROVAL_ORDER"
	CodeInvalidState      ErrorCode = "INVALID_STATE"
)

// Error is a typed service failure. None of these are retried internally:
// every operation either completes or fails with exactly one of the codes
// above plus a human-readable message.
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// AsServiceError unwraps err into a typed service error, if it is one.
func AsServiceError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

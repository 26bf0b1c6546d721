package internal

import (
	"fmt"
)

// ErrorCode classifies an Error so transport layers can pick a status code.
type ErrorCode uint

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeNotFound
	ErrorCodeInvalidArgument
	ErrorCodeInvalidCredential
	ErrorCodeQuotaExceeded
	ErrorCodeContentBlocked
	ErrorCodeGenerationFailed
)

// Error wraps an underlying error with a code and a human readable message.
type Error struct {
	orig error
	msg  string
	code ErrorCode
}

// WrapErrorf returns a wrapped error.
func WrapErrorf(orig error, code ErrorCode, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// NewErrorf instantiates a new error.
func NewErrorf(code ErrorCode, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

// Error returns the message, when wrapping errors the wrapped error is returned.
func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.orig
}

// Code returns the code representing this error.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Message returns the message without the wrapped error, suitable for end users.
func (e *Error) Message() string {
	return e.msg
}

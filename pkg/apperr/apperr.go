// Package apperr defines the typed domain errors used across Bazaar.
//
// Services raise an *Error at the point of detection; controllers hand it
// to response.Fail, which maps the Kind to an HTTP status and renders the
// uniform {message, errorCode, errors?} body. Nothing else in the codebase
// inspects HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindBadRequest
	KindValidation
)

// Code is the application-level error code surfaced to API clients.
type Code int

const (
	CodeUserNotFound         Code = 1001
	CodeUserAlreadyExists    Code = 1002
	CodeIncorrectPassword    Code = 1003
	CodeAddressNotFound      Code = 1004
	CodeAddressDoesNotBelong Code = 1005
	CodeProductNotFound      Code = 2001
	CodeUnprocessableEntity  Code = 2002
	CodeCartItemNotFound     Code = 2003
	CodeOrderNotFound        Code = 2004
	CodeOrderCartEmpty       Code = 2005
	CodeOrderNotCancelable   Code = 2006
	CodeInvalidOrderStatus   Code = 2007
	CodeInternal             Code = 3000
	CodeUnauthorized         Code = 4001
)

// Error is the single error type services return to controllers.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Errors  map[string]string // field-level issues, validation only
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an error with an explicit kind and code.
func New(kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// NotFound reports an absent entity. Ownership mismatches use the same
// constructor so callers cannot distinguish "missing" from "not yours".
func NotFound(code Code, message string) *Error {
	return New(KindNotFound, code, message)
}

// BadRequest reports a domain-rule violation.
func BadRequest(code Code, message string) *Error {
	return New(KindBadRequest, code, message)
}

// Unauthenticated reports a missing or invalid credential.
func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, CodeUnauthorized, message)
}

// Unauthorized reports a role mismatch.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, CodeUnauthorized, message)
}

// Validation reports schema-level shape violations with a field issue list.
func Validation(errs map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    CodeUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	}
}

// Internal wraps an unexpected failure. The cause is logged server-side
// but never serialized to the client.
func Internal(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    CodeInternal,
		Message: "Something went wrong",
		cause:   cause,
	}
}

// From normalizes any error into an *Error, wrapping unknown ones as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

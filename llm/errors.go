package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the stable provider fault classification surfaced to
// clients. Raw provider messages never leave the server.
type ErrorCode string

const (
	CodeRateLimited  ErrorCode = "rate_limited"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeUnavailable  ErrorCode = "unavailable"
	CodeTimeout      ErrorCode = "timeout"
	CodeInternal     ErrorCode = "internal"
)

// Error wraps a provider failure with the HTTP status the provider
// returned, when one exists.
type Error struct {
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("llm: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("llm: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(status int, err error) *Error {
	return &Error{Status: status, Err: err}
}

// Classify maps any provider failure onto its stable code.
func Classify(err error) ErrorCode {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}

	var le *Error
	if errors.As(err, &le) {
		switch {
		case le.Status == http.StatusTooManyRequests:
			return CodeRateLimited
		case le.Status == http.StatusUnauthorized || le.Status == http.StatusForbidden:
			return CodeUnauthorized
		case le.Status >= 500:
			return CodeUnavailable
		}
	}

	return CodeInternal
}

// Message is the operator-safe text paired with a code on the wire.
func (c ErrorCode) Message() string {
	switch c {
	case CodeRateLimited:
		return "the assistant is receiving too many requests, please retry shortly"
	case CodeUnauthorized:
		return "the assistant is not authorized to reach its language model"
	case CodeUnavailable:
		return "the language model service is temporarily unavailable"
	case CodeTimeout:
		return "the assistant took too long to respond"
	default:
		return "the assistant hit an unexpected internal error"
	}
}

package service

import (
	"errors"
	"fmt"
)

// Kind classifies service errors for transport mapping
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidRequest
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a user-facing service error. Message is returned to clients verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidRequest creates a KindInvalidRequest error
func InvalidRequest(message string, cause error) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message, Err: cause}
}

// NotFound creates a KindNotFound error
func NotFound(message string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: cause}
}

// KindOf returns the Kind of err, KindInternal for anything that is not a *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

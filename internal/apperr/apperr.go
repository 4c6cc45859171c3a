package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies application errors so the REST layer can map them to a
// status code without inspecting error strings.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidInput marks malformed caller input. Never retried.
	KindInvalidInput
	// KindNotFound marks an absent or expired resource (typically a session).
	// Callers recover by recreating the resource, not by retrying.
	KindNotFound
	// KindUpstreamUnavailable marks an exhausted retry budget against an
	// external provider (LLM, embedding, vector index).
	KindUpstreamUnavailable
	// KindDataCorruption marks an unreadable persisted record. The store
	// self-heals by purging; this kind exists mainly for logging.
	KindDataCorruption
)

// Error is the application error carried across service boundaries.
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

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsInvalidInput(err error) bool {
	return KindOf(err) == KindInvalidInput
}

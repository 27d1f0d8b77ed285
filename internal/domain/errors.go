package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUpstream       = errors.New("upstream feed error")
	ErrNotImplemented = errors.New("not implemented")
)

// InvalidInputError reports a caller mistake detected before any network call,
// such as a malformed postal code or an element code missing from the catalog.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UpstreamError reports a feed that was unreachable or returned a document
// that could not be used. It is terminal for the request; nothing retries it.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ndfd %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func upstreamf(op, format string, args ...any) error {
	return &UpstreamError{Op: op, Err: fmt.Errorf(format, args...)}
}

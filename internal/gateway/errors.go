package gateway

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a gateway failure.
type Kind string

const (
	KindAccessDenied Kind = "access_denied"
	KindUnknownTable Kind = "unknown_table"
	KindTransport    Kind = "transport"
	KindTimeout      Kind = "timeout"
	KindMalformed    Kind = "malformed_reply"
)

// Error is the typed failure returned by all gateway operations.
type Error struct {
	Kind  Kind
	Table string
	Op    string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Table, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind, or empty for non-gateway errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return ""
}

// Retryable reports whether a caller-side retry could succeed. Access
// denials and unknown tables are permanent for a given run.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTransport, KindTimeout:
		return true
	}
	return false
}

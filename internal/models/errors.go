package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so callers can map it to a response
// without string matching.
type ErrorKind string

const (
	// KindValidation marks malformed input, rejected before any mutation.
	KindValidation ErrorKind = "validation"
	// KindNotFound marks an identifier that does not resolve.
	KindNotFound ErrorKind = "not_found"
	// KindConflict marks a mutation blocked by existing references or a
	// duplicate name.
	KindConflict ErrorKind = "conflict"
	// KindDependency marks an unreachable or misconfigured backing store;
	// the caller decides whether to retry.
	KindDependency ErrorKind = "dependency"
)

// DomainError is a classified error. Use errors.As / ErrorKindOf to inspect.
type DomainError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewValidationError creates a validation error.
func NewValidationError(format string, args ...any) error {
	return &DomainError{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(format string, args ...any) error {
	return &DomainError{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// NewConflictError creates a conflict error.
func NewConflictError(format string, args ...any) error {
	return &DomainError{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// NewDependencyError wraps a backing-store failure as retryable.
func NewDependencyError(msg string, err error) error {
	return &DomainError{Kind: KindDependency, Msg: msg, Err: err}
}

// ErrorKindOf returns the kind of err, or "" when err carries no DomainError.
func ErrorKindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return ErrorKindOf(err) == kind
}

// ReconciliationWarning reports a balance adjustment that could not be fully
// applied (a transaction references an account that no longer resolves). The
// enclosing mutation is not aborted; the warning is logged and returned to
// the caller.
type ReconciliationWarning struct {
	TransactionID string  `json:"transaction_id"`
	AccountID     string  `json:"account_id"`
	Side          string  `json:"side"` // "source" or "destination"
	Delta         float64 `json:"delta"`
}

func (w ReconciliationWarning) String() string {
	return fmt.Sprintf("account %q (%s side) not found; delta %.2f not applied for transaction %q",
		w.AccountID, w.Side, w.Delta, w.TransactionID)
}

package database

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("tutorial not found")

	// ErrOperationFailed matches any OperationError via errors.Is.
	ErrOperationFailed = errors.New("database operation failed")
)

// NotFoundError reports that no row matches the requested tutorial ID.
// It never wraps a lower-level cause.
type NotFoundError struct {
	ID int64
	Op string
}

func (e *NotFoundError) Error() string {
	switch e.Op {
	case opUpdate:
		return fmt.Sprintf("tutorial with ID %d not found for update", e.ID)
	case opDelete:
		return fmt.Sprintf("tutorial with ID %d not found for deletion", e.ID)
	default:
		return fmt.Sprintf("tutorial with ID %d not found", e.ID)
	}
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// OperationError reports a store operation that could not complete for a
// reason other than a missing row. Err holds the driver-level cause.
type OperationError struct {
	Op     string
	Detail string
	Err    error
}

func (e *OperationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("failed to %s: %s", opPhrase(e.Op), e.Detail)
	}
	return "failed to " + opPhrase(e.Op)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}

// Kind classifies the outcome of a store call
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindOperationFailed
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindNotFound:
		return "not_found"
	case KindOperationFailed:
		return "operation_failed"
	default:
		return "unknown"
	}
}

// KindOf returns the taxonomy kind of err
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrOperationFailed):
		return KindOperationFailed
	default:
		return KindUnknown
	}
}

const (
	opAdd    = "add"
	opGet    = "get"
	opList   = "list"
	opUpdate = "update"
	opDelete = "delete"
)

func opPhrase(op string) string {
	switch op {
	case opGet:
		return "retrieve tutorial"
	case opList:
		return "list tutorials"
	case "":
		return "access tutorials"
	default:
		return op + " tutorial"
	}
}

func notFound(op string, id int64) error {
	return &NotFoundError{ID: id, Op: op}
}

func operationFailed(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}

func operationAnomaly(op, detail string) error {
	return &OperationError{Op: op, Detail: detail, Err: errors.New(detail)}
}

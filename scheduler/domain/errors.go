package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an operation was rejected.
// A rejected operation never changes scheduler state.
type Kind int

const (
	// A priority, rid, pid or unit count outside its valid domain.
	ArgumentOutOfRange Kind = iota + 1

	// The operation would break the process forest: destroying the root,
	// destroying a process outside the running subtree, the root requesting.
	StructuralViolation

	// A request for more units than the class will ever own.
	PermanentInfeasibility

	// No free slot in the process table.
	ResourceExhausted

	// A release that does not match a single held grant exactly.
	ResourceNotHeld
)

func (k Kind) String() string {
	switch k {
	case ArgumentOutOfRange:
		return "ArgumentOutOfRange"
	case StructuralViolation:
		return "StructuralViolation"
	case PermanentInfeasibility:
		return "PermanentInfeasibility"
	case ResourceExhausted:
		return "ResourceExhausted"
	case ResourceNotHeld:
		return "ResourceNotHeld"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op names the engine operation an error came from.
type Op string

const (
	OpInit    Op = "init"
	OpCreate  Op = "create"
	OpDestroy Op = "destroy"
	OpRequest Op = "request"
	OpRelease Op = "release"
	OpTimeout Op = "timeout"
)

// Error is returned when the engine rejects an operation.
// Retrying the same operation against the same state will fail the same way.
type Error struct {
	Op   Op
	Kind Kind
	msg  string
}

func NewError(op Op, kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Op: op, Kind: kind, msg: fmt.Sprintf(msg, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.msg)
}

// IsKind reports whether err, or the error it wraps, is a rejection of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := errors.Cause(err).(*Error)
	return ok && e.Kind == kind
}

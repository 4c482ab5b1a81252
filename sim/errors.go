package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches a ResolutionError for an unregistered identifier.
	ErrNotFound = errors.New("no simulation registered")
	// ErrConstructionFailed matches a ResolutionError raised while constructing.
	ErrConstructionFailed = errors.New("simulation construction failed")

	errNilSimulation = errors.New("factory returned a nil simulation")
)

// ResolutionKind distinguishes the two ways resolution can fail.
type ResolutionKind int

const (
	NotFound ResolutionKind = iota
	ConstructionFailed
)

func (k ResolutionKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case ConstructionFailed:
		return "ConstructionFailed"
	default:
		return fmt.Sprintf("ResolutionKind(%d)", int(k))
	}
}

// ResolutionError reports an identifier with no registered factory, or a
// factory that failed.
type ResolutionError struct {
	Kind       ResolutionKind
	Identifier string
	Cause      error
}

func (e *ResolutionError) Error() string {
	if e.Kind == NotFound {
		return fmt.Sprintf("no simulation registered for className %q", e.Identifier)
	}
	return fmt.Sprintf("constructing simulation %q: %v", e.Identifier, e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }

// Is lets errors.Is match ErrNotFound and ErrConstructionFailed.
func (e *ResolutionError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrConstructionFailed:
		return e.Kind == ConstructionFailed
	}
	return false
}

// RunError wraps a failure raised by Simulation.Run.
type RunError struct {
	Identifier string
	Cause      error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("running simulation %q: %v", e.Identifier, e.Cause)
}

func (e *RunError) Unwrap() error { return e.Cause }

// PanicError carries a recovered panic and the stack where it happened.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

package footprint

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrCyclicReference is returned when a value is reachable from itself.
var ErrCyclicReference = errors.New("cyclic reference detected")

// CycleError locates the reference that closed a cycle.
type CycleError struct {
	// Path leads from the root to the reference that points back at an ancestor.
	Path string
	// Type is the type of that reference.
	Type reflect.Type
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s at %s", ErrCyclicReference, e.Type, e.Path)
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicReference
}

package node

import (
	"reflect"
	"unsafe"
)

// Identity names a piece of referenced storage. Content never takes part in it:
// two strings with equal bytes at different addresses are different identities.
type Identity struct {
	Addr uintptr
	Type reflect.Type // pointee type for pointers, nil for text
	Len  int          // element count for slices and text
}

// IdentityOf returns the identity of the storage v refers to. Only non-nil
// pointers, maps, non-empty slices and non-empty strings have one; values,
// arrays and zero-length data share addresses freely and are never tracked.
func IdentityOf(v reflect.Value) (Identity, bool) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return Identity{}, false
		}
		return Identity{Addr: v.Pointer(), Type: v.Type().Elem()}, true
	case reflect.Map:
		if v.IsNil() {
			return Identity{}, false
		}
		return Identity{Addr: v.Pointer(), Type: v.Type()}, true
	case reflect.Slice:
		if v.Len() == 0 {
			return Identity{}, false
		}
		return Identity{Addr: v.Pointer(), Type: v.Type(), Len: v.Len()}, true
	case reflect.String:
		if v.Len() == 0 {
			return Identity{}, false
		}
		s := v.String()
		return Identity{Addr: uintptr(unsafe.Pointer(unsafe.StringData(s))), Len: len(s)}, true
	default:
		return Identity{}, false
	}
}

// Tracker is the per-call alias bookkeeping: done holds every identity that
// entered, active the ones still being accounted for. The zero value is ready to use.
type Tracker struct {
	active map[Identity]struct{}
	done   map[Identity]struct{}
}

// Enter classifies id and, when it is fresh, marks it in progress.
func (t *Tracker) Enter(id Identity) StateEnum {
	if _, ok := t.active[id]; ok {
		return StateCyclic
	}

	if _, ok := t.done[id]; ok {
		return StateCompleted
	}

	if t.active == nil {
		t.active = make(map[Identity]struct{})
	}

	if t.done == nil {
		t.done = make(map[Identity]struct{})
	}

	t.active[id] = struct{}{}
	t.done[id] = struct{}{}

	return StateFresh
}

// Leave pops id off the active stack; it stays done for the rest of the call.
func (t *Tracker) Leave(id Identity) {
	delete(t.active, id)
}

// Seen returns the number of distinct identities entered so far.
func (t *Tracker) Seen() int {
	return len(t.done)
}

// Reset forgets everything, so one Tracker can serve several walks.
// The estimator allocates a fresh Tracker per call instead.
func (t *Tracker) Reset() {
	t.active = nil
	t.done = nil
}

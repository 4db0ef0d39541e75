package introspect

import (
	"errors"
	"path"
	"reflect"
	"runtime"
	"strings"

	"memfootprint/utils"
)

var (
	ErrIsNotAnAccessor        = errors.New("provided function is not a recognizable property accessor")
	ErrAccessorIsNotAFunction = errors.New("provided accessor is not a function")
	ErrIndexedAccessor        = errors.New("indexed accessors are computed views and are not accounted for")
	ErrReceiverMismatch       = errors.New("accessor receiver does not match the registered type")
	ErrAccessorDoublePointer  = errors.New("accessor does not support double pointer receivers")
	ErrSelfValueAccessor      = errors.New("accessor returns a value of its own receiver type")
)

// Accessor is a zero-parameter property getter bound to one composite type.
type Accessor struct {
	Recv         reflect.Type // T or *T
	Result       reflect.Type
	PackageAlias string
	Name         string
	HasErr       bool

	fn reflect.Value
}

// ParseAccessor inspects fn and returns an Accessor if it is a valid property getter.
//
// Supports interfaces:
//   - func(recv T) R
//   - func(recv *T) R
//   - func(recv T) (R, error)
//   - func(recv *T) (R, error)
//
// Functions taking anything besides the receiver are indexers and yield ErrIndexedAccessor.
func ParseAccessor(fn any) (Accessor, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return Accessor{}, ErrAccessorIsNotAFunction
	}

	fnType := fnVal.Type()
	switch {
	case fnType.NumIn() == 0 || fnType.NumOut() == 0:
		return Accessor{}, ErrIsNotAnAccessor
	case fnType.IsVariadic() && fnType.NumIn() == 1:
		return Accessor{}, ErrIsNotAnAccessor
	case fnType.NumIn() > 1:
		return Accessor{}, ErrIndexedAccessor
	}

	recv := fnType.In(0)
	if recv.Kind() == reflect.Pointer && recv.Elem().Kind() == reflect.Pointer {
		return Accessor{}, ErrAccessorDoublePointer
	}

	fnPC := runtime.FuncForPC(fnVal.Pointer())
	alias, name := utils.Unpack2(strings.SplitN(fnPC.Name(), ".", 2))

	acc := Accessor{
		Recv:         recv,
		Result:       fnType.Out(0),
		Name:         name,
		PackageAlias: utils.Second(path.Split(alias)),
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return Accessor{}, ErrIsNotAnAccessor

	case 1:
		return acc, nil

	case 2:
		if !isError(fnType.Out(1)) {
			return Accessor{}, ErrIsNotAnAccessor
		}

		acc.HasErr = true
		return acc, nil
	}
}

// Target returns the composite type the accessor reads from.
func (a Accessor) Target() reflect.Type {
	if a.Recv.Kind() == reflect.Pointer {
		return a.Recv.Elem()
	}

	return a.Recv
}

// Get calls the accessor on v, which must be an exported value of Target.
// Pointer receivers need v to be addressable.
func (a Accessor) Get(v reflect.Value) (reflect.Value, error) {
	recv := v
	if a.Recv.Kind() == reflect.Pointer {
		if !v.CanAddr() {
			return reflect.Value{}, ErrInaccessible
		}
		recv = v.Addr()
	}

	if !recv.CanInterface() {
		return reflect.Value{}, ErrInaccessible
	}

	out := a.fn.Call([]reflect.Value{recv})
	if a.HasErr && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}

	return out[0], nil
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(reflect.TypeFor[error]())
}

package node

import (
	"reflect"

	"memfootprint/primitive"
)

// Classify returns the accounting category of t. Text is checked ahead of
// primitives because its cost depends on its length. Named types classify by
// their underlying kind.
func Classify(t reflect.Type) CategoryEnum {
	if t == nil {
		return CategoryUnknown
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return CategoryReference
	case reflect.String:
		return CategoryText
	case reflect.Slice, reflect.Array, reflect.Map:
		return CategoryContainer
	case reflect.Struct:
		return CategoryComposite
	}

	if primitive.FromReflectType(t) != 0 {
		return CategoryPrimitive
	}

	return CategoryUnknown
}

// Base strips every pointer level off t.
func Base(t reflect.Type) reflect.Type {
	_, b := PtrDepthAndBase(t)
	return b
}

// PtrDepthAndBase returns the pointer depth and the final base type.
func PtrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base != nil && base.Kind() == reflect.Pointer {
		depth++
		base = base.Elem()
	}

	return
}

// IsAbsent reports whether v holds nothing to account for: an invalid value or
// a nil pointer, interface, slice, map, chan, func or unsafe.Pointer.
func IsAbsent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

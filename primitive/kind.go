package primitive

import (
	"reflect"
	"strings"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUintptr
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindChan          // opaque handle, sized as a pointer
	KindFunc          // opaque handle, sized as a pointer
	KindUnsafePointer // opaque handle, sized as a pointer

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindNames = [KindTotal]string{
	KindBool:          "bool",
	KindInt:           "int",
	KindInt8:          "int8",
	KindInt16:         "int16",
	KindInt32:         "int32",
	KindInt64:         "int64",
	KindUint:          "uint",
	KindUint8:         "uint8",
	KindUint16:        "uint16",
	KindUint32:        "uint32",
	KindUint64:        "uint64",
	KindUintptr:       "uintptr",
	KindFloat32:       "float32",
	KindFloat64:       "float64",
	KindComplex64:     "complex64",
	KindComplex128:    "complex128",
	KindChan:          "chan",
	KindFunc:          "func",
	KindUnsafePointer: "unsafe.Pointer",
}

// Name returns the Go spelling of the kind, as used in configuration files.
func (k KindEnum) Name() string {
	if !k.IsValid() {
		return ""
	}

	return kindNames[k]
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64, KindUintptr:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64, KindComplex64, KindComplex128:
		return true
	}
}

// IsHandle reports whether the kind is an opaque reference whose width follows the pointer width.
func (k KindEnum) IsHandle() bool {
	switch k {
	default:
		return false
	case KindChan, KindFunc, KindUnsafePointer:
		return true
	}
}

// ParseKind maps a Go type spelling ("int32", "unsafe.Pointer", "byte", ...) to its kind.
func ParseKind(name string) (KindEnum, bool) {
	name = strings.TrimSpace(name)

	switch name {
	case "byte":
		return KindUint8, true
	case "rune":
		return KindInt32, true
	}

	for k := KindEnum(1); int(k) < KindTotal; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}

	return 0, false
}

// FromReflectType returns the primitive kind of rtype, or zero if rtype is not a fixed-width scalar.
// Named types resolve to their underlying kind, so time.Duration is KindInt64.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Bool:
		return KindBool
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Uintptr:
		return KindUintptr
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.Complex64:
		return KindComplex64
	case reflect.Complex128:
		return KindComplex128
	case reflect.Chan:
		return KindChan
	case reflect.Func:
		return KindFunc
	case reflect.UnsafePointer:
		return KindUnsafePointer
	}
}

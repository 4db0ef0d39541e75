package primitive

import "reflect"

const (
	// PointerWidth is the header cost of text and containers on a 64-bit target.
	PointerWidth = 8
	// CodeUnitWidth is the cost of one UTF-16 code unit of text.
	CodeUnitWidth = 2
)

// Widths maps primitive kinds to a fixed byte width. It is a value type:
// With returns a modified copy and never touches the receiver.
type Widths struct {
	// Pointer is charged once per text or container header and for opaque handles.
	Pointer uint64
	// CodeUnit is charged per UTF-16 code unit of text.
	CodeUnit uint64

	kinds [KindTotal]uint64
}

// DefaultWidths returns the width table for a 64-bit target.
// complex128 is the only 16-byte scalar, chan, func and unsafe.Pointer follow Pointer.
func DefaultWidths() Widths {
	w := Widths{
		Pointer:  PointerWidth,
		CodeUnit: CodeUnitWidth,
	}

	w.kinds[KindBool] = 1
	w.kinds[KindInt8] = 1
	w.kinds[KindUint8] = 1
	w.kinds[KindInt16] = 2
	w.kinds[KindUint16] = 2
	w.kinds[KindInt32] = 4
	w.kinds[KindUint32] = 4
	w.kinds[KindFloat32] = 4
	w.kinds[KindInt] = 8
	w.kinds[KindUint] = 8
	w.kinds[KindInt64] = 8
	w.kinds[KindUint64] = 8
	w.kinds[KindUintptr] = 8
	w.kinds[KindFloat64] = 8
	w.kinds[KindComplex64] = 8
	w.kinds[KindComplex128] = 16

	return w
}

// With returns a copy of w with the width of kind replaced.
func (w Widths) With(kind KindEnum, width uint64) Widths {
	if !kind.IsValid() {
		panic("width requested for invalid kind: " + kind.String())
	}

	w.kinds[kind] = width
	return w
}

// Of returns the width of kind. Handle kinds without an explicit width use Pointer.
func (w Widths) Of(kind KindEnum) uint64 {
	if !kind.IsValid() {
		return 0
	}

	if kind.IsHandle() && w.kinds[kind] == 0 {
		return w.Pointer
	}

	return w.kinds[kind]
}

// OfType is Of for the primitive kind of rtype; non-primitive types have width 0.
func (w Widths) OfType(rtype reflect.Type) uint64 {
	return w.Of(FromReflectType(rtype))
}

// Text returns the cost of a text value made of units UTF-16 code units.
func (w Widths) Text(units int) uint64 {
	return w.Pointer + w.CodeUnit*uint64(units)
}

package footprint

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type stepKind int

const (
	stepRoot stepKind = iota
	stepField
	stepProperty
	stepIndex
	stepPointer
)

type step struct {
	kind stepKind
	name string
}

// Path is the readable location of the value being accounted for.
// Examples:
//   - "Order" for the root
//   - "Order.Items[2].ProductID" for a field within a slice element
//   - "Order.*Customer.Name" for a field behind a pointer
//   - "Order.Total()" for a registered property
//   - "Order.Tags[\"red\"]" for a map entry
//
// It is a stack: every push is undone by a pop once the value is accounted for,
// and it is only rendered when an error needs it.
type Path struct {
	steps []step
}

func (p *Path) Root(name string) {
	p.steps = append(p.steps[:0], step{kind: stepRoot, name: name})
}

func (p *Path) Field(name string) {
	p.steps = append(p.steps, step{kind: stepField, name: name})
}

func (p *Path) Property(name string) {
	p.steps = append(p.steps, step{kind: stepProperty, name: name})
}

func (p *Path) Index(i int) {
	p.steps = append(p.steps, step{kind: stepIndex, name: strconv.Itoa(i)})
}

// Key pushes a map key; string keys are quoted.
func (p *Path) Key(k reflect.Value) {
	p.steps = append(p.steps, step{kind: stepIndex, name: keyString(k)})
}

// Pointer marks a dereference of the step before it.
func (p *Path) Pointer() {
	p.steps = append(p.steps, step{kind: stepPointer})
}

func (p *Path) Pop() {
	if len(p.steps) > 0 {
		p.steps = p.steps[:len(p.steps)-1]
	}
}

// String returns the full path string.
func (p *Path) String() string {
	var b strings.Builder

	for i, s := range p.steps {
		switch s.kind {
		case stepRoot, stepField, stepProperty:
			if i > 0 {
				b.WriteByte('.')
			}
			for j := i + 1; j < len(p.steps) && p.steps[j].kind == stepPointer; j++ {
				b.WriteByte('*')
			}
			b.WriteString(s.name)
			if s.kind == stepProperty {
				b.WriteString("()")
			}
		case stepIndex:
			b.WriteString("[" + s.name + "]")
		case stepPointer:
			// rendered in front of the step it dereferences
		}
	}

	return b.String()
}

func keyString(k reflect.Value) string {
	switch {
	case k.Kind() == reflect.String:
		return strconv.Quote(k.String())
	case k.CanInterface():
		return fmt.Sprint(k.Interface())
	default:
		return k.Type().String()
	}
}

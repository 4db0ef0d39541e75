package introspect

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// ErrInaccessible is returned when a provider cannot read a member of a value.
var ErrInaccessible = errors.New("member is not accessible")

// Member is one named piece of state of a composite value.
type Member struct {
	Name  string
	Value reflect.Value
}

// Provider enumerates the state of composite values.
type Provider interface {
	// Fields returns every instance field of the struct v, including unexported ones.
	Fields(v reflect.Value) ([]Member, error)
	// Properties returns the zero-parameter properties of the struct v, evaluated now.
	Properties(v reflect.Value) ([]Member, error)
}

// PropertyError reports a failed property read.
type PropertyError struct {
	Type     reflect.Type
	Property string
	Err      error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("property %s.%s: %v", e.Type, e.Property, e.Err)
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}

// Reflect is a Provider backed by package reflect. Fields come straight from
// the struct layout. Go has no properties, so they come from accessors
// registered per type. The zero value is ready to use.
type Reflect struct {
	mu    sync.RWMutex
	props map[reflect.Type][]property
}

type property struct {
	name string
	acc  Accessor
}

// NewReflect returns an empty Reflect provider.
func NewReflect() *Reflect {
	return &Reflect{}
}

// RegisterProperty registers getter as the property name of the struct type typ.
// An empty name defaults to the getter's function name.
func (r *Reflect) RegisterProperty(typ reflect.Type, name string, getter any) error {
	acc, err := ParseAccessor(getter)
	if err != nil {
		return fmt.Errorf("register property %q on %v: %w", name, typ, err)
	}

	if typ == nil || typ.Kind() != reflect.Struct || acc.Target() != typ {
		return fmt.Errorf("register property %q on %v: %w", name, typ, ErrReceiverMismatch)
	}

	// a fresh value of the owner type has no identity, so it would never end
	if acc.Result == typ {
		return fmt.Errorf("register property %q on %v: %w", name, typ, ErrSelfValueAccessor)
	}

	if name == "" {
		name = acc.Name
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.props == nil {
		r.props = make(map[reflect.Type][]property)
	}
	r.props[typ] = append(r.props[typ], property{name: name, acc: acc})

	return nil
}

// RegisterFunc is RegisterProperty for a typed getter.
func RegisterFunc[T, R any](r *Reflect, name string, getter func(T) R) error {
	return r.RegisterProperty(reflect.TypeFor[T](), name, getter)
}

// RegisterPtrFunc is RegisterProperty for a typed getter with a pointer receiver.
func RegisterPtrFunc[T, R any](r *Reflect, name string, getter func(*T) R) error {
	return r.RegisterProperty(reflect.TypeFor[T](), name, getter)
}

// RegisterFuncErr is RegisterFunc for a getter that may fail.
func RegisterFuncErr[T, R any](r *Reflect, name string, getter func(T) (R, error)) error {
	return r.RegisterProperty(reflect.TypeFor[T](), name, getter)
}

// RegisterPtrFuncErr is RegisterPtrFunc for a getter that may fail.
func RegisterPtrFuncErr[T, R any](r *Reflect, name string, getter func(*T) (R, error)) error {
	return r.RegisterProperty(reflect.TypeFor[T](), name, getter)
}

func (r *Reflect) Fields(v reflect.Value) ([]Member, error) {
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("fields of %v: %w", v.Type(), ErrInaccessible)
	}

	t := v.Type()
	members := make([]Member, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		members = append(members, Member{
			Name:  t.Field(i).Name,
			Value: Exported(v.Field(i)),
		})
	}

	return members, nil
}

func (r *Reflect) Properties(v reflect.Value) ([]Member, error) {
	r.mu.RLock()
	props := r.props[v.Type()]
	r.mu.RUnlock()

	if len(props) == 0 {
		return nil, nil
	}

	recv := Exported(v)
	members := make([]Member, 0, len(props))
	for _, p := range props {
		val, err := p.acc.Get(recv)
		if err != nil {
			return nil, &PropertyError{Type: v.Type(), Property: p.name, Err: err}
		}

		members = append(members, Member{Name: p.name, Value: val})
	}

	return members, nil
}

// Exported returns v with the read-only flag of unexported fields lifted when
// v is addressable, so its members can be read and its accessors called.
// Non-addressable read-only values are returned unchanged.
func Exported(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanInterface() || !v.CanAddr() {
		return v
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// Addressable returns v itself when addressable, otherwise an addressable copy.
// A read-only value that cannot be copied is returned unchanged.
func Addressable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanAddr() || !v.CanInterface() {
		return v
	}

	c := reflect.New(v.Type()).Elem()
	c.Set(v)

	return c
}

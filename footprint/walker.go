package footprint

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"unicode/utf16"

	"memfootprint/introspect"
	"memfootprint/node"
	"memfootprint/primitive"
)

// walker is the state of one top-level call. It is never reused.
type walker struct {
	provider introspect.Provider
	widths   primitive.Widths
	tracker  node.Tracker
	path     Path
	report   *Report
	nodes    int
}

func (w *walker) value(v reflect.Value) (uint64, error) {
	if node.IsAbsent(v) {
		return 0, nil
	}

	// struct and array copies (interface contents, map entries, property
	// results) are made addressable so their members can be lifted
	if k := v.Kind(); (k == reflect.Struct || k == reflect.Array) && !v.CanAddr() {
		v = introspect.Addressable(v)
	}

	switch node.Classify(v.Type()) {
	case node.CategoryReference:
		return w.reference(v)
	case node.CategoryPrimitive:
		n := w.widths.OfType(v.Type())
		w.charge(v.Type(), n)
		return n, nil
	case node.CategoryText:
		return w.text(v)
	case node.CategoryContainer:
		return w.container(v)
	case node.CategoryComposite:
		return w.composite(v)
	default:
		return 0, nil
	}
}

func (w *walker) reference(v reflect.Value) (uint64, error) {
	if v.Kind() == reflect.Interface {
		return w.value(v.Elem())
	}

	id, _ := node.IdentityOf(v)
	return w.tracked(v, id, func() (uint64, error) {
		w.path.Pointer()
		defer w.path.Pop()

		return w.value(v.Elem())
	})
}

// tracked accounts for the referenced storage id once per call.
func (w *walker) tracked(v reflect.Value, id node.Identity, account func() (uint64, error)) (uint64, error) {
	switch w.tracker.Enter(id) {
	case node.StateCompleted:
		return 0, nil
	case node.StateCyclic:
		return 0, &CycleError{Path: w.path.String(), Type: v.Type()}
	}

	defer w.tracker.Leave(id)

	return account()
}

func (w *walker) text(v reflect.Value) (uint64, error) {
	id, ok := node.IdentityOf(v)
	if ok {
		if w.tracker.Enter(id) != node.StateFresh {
			return 0, nil
		}
		w.tracker.Leave(id)
	}

	n := w.widths.Text(codeUnits(v.String()))
	w.charge(v.Type(), n)

	return n, nil
}

// codeUnits counts s in UTF-16 code units; invalid bytes decode to U+FFFD, one unit each.
func codeUnits(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}

	return n
}

func (w *walker) container(v reflect.Value) (uint64, error) {
	id, ok := node.IdentityOf(v)
	if !ok {
		return w.elements(v)
	}

	return w.tracked(v, id, func() (uint64, error) {
		return w.elements(v)
	})
}

func (w *walker) elements(v reflect.Value) (uint64, error) {
	total := w.widths.Pointer
	w.charge(v.Type(), total)

	if v.Kind() == reflect.Map {
		return w.entries(v, total)
	}

	// fixed-width elements need no walk
	if kind := primitive.FromReflectType(v.Type().Elem()); kind != 0 && !kind.IsHandle() {
		n := w.widths.Of(kind)
		if v.Len() > 0 {
			w.chargeN(v.Type().Elem(), n*uint64(v.Len()), v.Len())
		}
		return total + n*uint64(v.Len()), nil
	}

	for i := 0; i < v.Len(); i++ {
		w.path.Index(i)
		n, err := w.value(v.Index(i))
		w.path.Pop()

		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}

type entry struct {
	key, value reflect.Value
}

func (w *walker) entries(v reflect.Value, total uint64) (uint64, error) {
	for _, e := range sortedEntries(v) {
		w.path.Key(e.key)

		nk, err := w.value(e.key)
		if err != nil {
			w.path.Pop()
			return 0, err
		}

		nv, err := w.value(e.value)
		w.path.Pop()
		if err != nil {
			return 0, err
		}

		total += nk + nv
	}

	return total, nil
}

// sortedEntries returns the entries of the map v ordered by key, so that
// repeated walks visit them in the same order.
func sortedEntries(v reflect.Value) []entry {
	out := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		out = append(out, entry{key: iter.Key(), value: iter.Value()})
	}

	slices.SortStableFunc(out, func(a, b entry) int {
		return compareKeys(a.key, b.key)
	})

	return out
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Bool:
		return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return cmp.Compare(boolInt(!a.IsNil()), boolInt(!b.IsNil()))
		}
		return compareKeys(a.Elem(), b.Elem())
	}

	if a.CanInterface() && b.CanInterface() {
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}

	return 0
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (w *walker) composite(v reflect.Value) (uint64, error) {
	w.charge(v.Type(), 0)

	fields, err := w.provider.Fields(v)
	if err != nil {
		return 0, fmt.Errorf("at %s: %w", w.path.String(), err)
	}

	props, err := w.provider.Properties(v)
	if err != nil {
		return 0, fmt.Errorf("at %s: %w", w.path.String(), err)
	}

	var total uint64
	for _, m := range fields {
		w.path.Field(m.Name)
		n, err := w.value(m.Value)
		w.path.Pop()

		if err != nil {
			return 0, err
		}
		total += n
	}

	for _, m := range props {
		w.path.Property(m.Name)
		n, err := w.value(m.Value)
		w.path.Pop()

		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}

func (w *walker) charge(t reflect.Type, n uint64) {
	w.chargeN(t, n, 1)
}

func (w *walker) chargeN(t reflect.Type, n uint64, count int) {
	w.nodes += count
	if w.report == nil {
		return
	}

	ts, ok := w.report.ByType[t]
	if !ok {
		ts = &TypeSize{}
		w.report.ByType[t] = ts
	}

	ts.Total += n
	ts.Count += uint64(count)
}

package footprint_test

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"memfootprint/footprint"
	"memfootprint/introspect"
	"memfootprint/primitive"
)

const (
	testString = "This is a test string"
	coolString = "This is a cool string"
)

type myStruct struct {
	MyInt    int32
	MyChar   byte
	MyString string
}

type myReference struct {
	String1 string
	String2 string
}

type recursive struct {
	Recurse *recursive
}

type leaf struct {
	Name  string
	Value int64
}

type diamond struct {
	Left  *leaf
	Right *leaf
}

type hidden struct {
	count int64
	name  string
}

type embedded struct {
	hidden
	Extra int16
}

func mustOf(t *testing.T, v any) uint64 {
	t.Helper()

	n, err := footprint.Of(v)
	if err != nil {
		t.Fatalf("footprint of %s: %v", spew.Sdump(v), err)
	}

	return n
}

func TestPrimitiveWidths(t *testing.T) {
	tests := []struct {
		value any
		want  uint64
	}{
		{int8(2), 1},
		{byte(' '), 1},
		{true, 1},
		{complex128(2), 16},
		{float64(2), 8},
		{float32(2), 4},
		{int32(2), 4},
		{uint32(2), 4},
		{int(2), 8},
		{uint(2), 8},
		{uintptr(2), 8},
		{int64(2), 8},
		{uint64(2), 8},
		{int16(2), 2},
		{uint16(2), 2},
	}

	for _, tt := range tests {
		t.Run(reflect.TypeOf(tt.value).String(), func(t *testing.T) {
			assert.Equal(t, tt.want, mustOf(t, tt.value))
		})
	}
}

func TestPrimitiveWidthIgnoresMagnitude(t *testing.T) {
	assert.Equal(t, mustOf(t, int64(0)), mustOf(t, int64(1<<62)))
	assert.Equal(t, mustOf(t, float32(0)), mustOf(t, float32(3.4e38)))
}

func TestAbsent(t *testing.T) {
	var (
		p *myStruct
		s []int
		m map[string]int
		f func()
	)

	assert.Zero(t, mustOf(t, nil))
	assert.Zero(t, mustOf(t, p))
	assert.Zero(t, mustOf(t, s))
	assert.Zero(t, mustOf(t, m))
	assert.Zero(t, mustOf(t, f))
	assert.Zero(t, mustOf(t, struct{ V any }{}))
}

func TestStruct(t *testing.T) {
	v := myStruct{MyInt: 2, MyChar: ' ', MyString: "Hello"}

	assert.Equal(t, uint64(23), mustOf(t, v))
	assert.Equal(t, uint64(23), mustOf(t, &v))
}

func TestText(t *testing.T) {
	assert.Equal(t, uint64(8), mustOf(t, ""))
	assert.Equal(t, uint64(18), mustOf(t, "Hello"))
	assert.Equal(t, uint64(18), mustOf(t, "héllo"), "characters, not bytes")
	assert.Equal(t, uint64(12), mustOf(t, "😀"), "surrogate pairs take two code units")
	assert.Equal(t, uint64(16), mustOf(t, struct{ A, B string }{}), "empty text is charged its header every time")
}

func TestSharedTextIsCountedOnce(t *testing.T) {
	shared := myReference{String1: testString, String2: testString}
	distinct := myReference{String1: testString, String2: coolString}

	sharedSize := mustOf(t, &shared)
	distinctSize := mustOf(t, &distinct)

	assert.Equal(t, uint64(50), sharedSize)
	assert.Equal(t, uint64(100), distinctSize)
	assert.NotEqual(t, sharedSize, distinctSize)
}

func TestEqualTextWithDistinctIdentity(t *testing.T) {
	v := myReference{String1: testString, String2: strings.Clone(testString)}

	assert.Equal(t, uint64(100), mustOf(t, v))
}

func TestCycle(t *testing.T) {
	c1 := &recursive{}
	c2 := &recursive{}
	c1.Recurse = c2
	c2.Recurse = c1

	n, err := footprint.Of(c1)
	require.ErrorIs(t, err, footprint.ErrCyclicReference)
	assert.Zero(t, n)

	var cerr *footprint.CycleError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, reflect.TypeFor[*recursive](), cerr.Type)
	assert.Equal(t, "*footprint_test.recursive.*Recurse.Recurse", cerr.Path)

	_, err = footprint.Of(*c1)
	assert.ErrorIs(t, err, footprint.ErrCyclicReference)
}

func TestSelfReferences(t *testing.T) {
	self := &recursive{}
	self.Recurse = self

	m := map[string]any{"name": "loop"}
	m["self"] = m

	s := make([]any, 2)
	s[0] = int32(1)
	s[1] = s

	for name, v := range map[string]any{"pointer": self, "map": m, "slice": s} {
		t.Run(name, func(t *testing.T) {
			_, err := footprint.Of(v)
			assert.ErrorIs(t, err, footprint.ErrCyclicReference)
		})
	}

	_, err := footprint.Of(m)
	assert.ErrorContains(t, err, `["self"]`)
}

func TestDiamondIsFree(t *testing.T) {
	shared := &leaf{Name: "abc", Value: 1}
	other := &leaf{Name: strings.Clone("abc"), Value: 1}

	assert.Equal(t, uint64(22), mustOf(t, shared))
	assert.Equal(t, uint64(22), mustOf(t, diamond{Left: shared, Right: shared}))
	assert.Equal(t, uint64(44), mustOf(t, diamond{Left: shared, Right: other}))

	// the same leaf reached through a slice and a struct field
	v := struct {
		Leaves []*leaf
		First  *leaf
	}{Leaves: []*leaf{shared, shared}, First: shared}
	assert.Equal(t, uint64(8+22), mustOf(t, v))
}

func TestSharedPrimitivePointer(t *testing.T) {
	p := new(int64)

	assert.Equal(t, uint64(8), mustOf(t, struct{ A, B *int64 }{p, p}))
	assert.Equal(t, uint64(16), mustOf(t, struct{ A, B *int64 }{p, new(int64)}))
}

func TestContainers(t *testing.T) {
	slice := []int32{1, 2, 3}
	array := [3]int32{1, 2, 3}
	list := []any{int32(1), int32(2), int32(3)}

	for name, v := range map[string]any{"slice": slice, "array": array, "list": list} {
		t.Run(name, func(t *testing.T) {
			n := mustOf(t, v)
			assert.GreaterOrEqual(t, n, uint64(3*4))
			assert.Equal(t, uint64(8+3*4), n)
		})
	}

	assert.Equal(t, uint64(8), mustOf(t, []int{}))
	assert.Equal(t, uint64(8+2*18), mustOf(t, []string{"Hello", "world"}))
}

func TestSharedSliceIsCountedOnce(t *testing.T) {
	s := []int64{1, 2}

	assert.Equal(t, uint64(24), mustOf(t, struct{ A, B []int64 }{s, s}))
	assert.Equal(t, uint64(24+16), mustOf(t, struct{ A, B []int64 }{s, s[:1]}), "a shorter view is its own value")
}

func TestMap(t *testing.T) {
	m := map[string]int32{"a": 1, "bb": 2}

	assert.Equal(t, uint64(8+(10+4)+(12+4)), mustOf(t, m))
	assert.Equal(t, uint64(8), mustOf(t, map[string]int32{}))
}

func TestUnexportedAndEmbeddedFields(t *testing.T) {
	h := hidden{count: 1, name: "xy"}

	assert.Equal(t, uint64(8+12), mustOf(t, h))
	assert.Equal(t, uint64(8+12+2), mustOf(t, &embedded{hidden: h, Extra: 3}))
}

func TestInterfacesAndHandles(t *testing.T) {
	assert.Equal(t, uint64(4), mustOf(t, struct{ V any }{V: int32(1)}))
	assert.Equal(t, uint64(23), mustOf(t, struct{ V any }{V: myStruct{MyString: "Hello"}}))

	handles := struct {
		F func()
		C chan int
	}{F: func() {}, C: make(chan int)}
	assert.Equal(t, uint64(16), mustOf(t, handles))
}

func TestDeterminism(t *testing.T) {
	build := func() *diamond {
		l := &leaf{Name: strings.Clone("left"), Value: 1}
		return &diamond{Left: l, Right: &leaf{Name: strings.Clone("right"), Value: 2}}
	}

	g := build()
	first := mustOf(t, g)
	assert.Equal(t, first, mustOf(t, g))
	assert.Equal(t, first, mustOf(t, build()))
}

func TestConcurrentCallsOnDisjointGraphs(t *testing.T) {
	e := footprint.New()

	var g errgroup.Group
	results := make([]uint64, 16)
	for i := range results {
		g.Go(func() error {
			v := &myReference{String1: strings.Clone(testString), String2: strings.Clone(coolString)}
			n, err := e.Of(v)
			results[i] = n
			return err
		})
	}

	require.NoError(t, g.Wait())
	for _, n := range results {
		assert.Equal(t, uint64(100), n)
	}
}

type counter struct {
	hits int32
}

func (c counter) Label() string { return "hits" }

func (c *counter) Self() *counter { return c }

func TestProperties(t *testing.T) {
	p := introspect.NewReflect()
	require.NoError(t, introspect.RegisterFunc(p, "Label", counter.Label))

	e := footprint.New(footprint.WithProvider(p))

	n, err := e.Of(&counter{hits: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(4+8+8), n)

	n, err = footprint.Of(&counter{hits: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n, "properties are only read when registered")
}

func TestPropertiesTakePartInCycleDetection(t *testing.T) {
	p := introspect.NewReflect()
	require.NoError(t, introspect.RegisterPtrFunc(p, "Self", (*counter).Self))

	_, err := footprint.New(footprint.WithProvider(p)).Of(&counter{})
	require.ErrorIs(t, err, footprint.ErrCyclicReference)
	assert.ErrorContains(t, err, "Self()")
}

func TestIndexedPropertiesAreRejected(t *testing.T) {
	p := introspect.NewReflect()

	err := p.RegisterProperty(reflect.TypeFor[counter](), "At", func(c counter, i int) int32 { return c.hits })
	assert.ErrorIs(t, err, introspect.ErrIndexedAccessor)
}

func TestWithWidths(t *testing.T) {
	w := primitive.DefaultWidths().With(primitive.KindInt, 4)
	w.Pointer = 4
	e := footprint.New(footprint.WithWidths(w))

	n, err := e.Of([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(4+2*4), n)
	assert.Equal(t, w, e.Widths())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := footprint.New(footprint.WithLogger(logger)).Of(myStruct{MyString: "Hello"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "footprint computed")
	assert.Contains(t, buf.String(), "bytes=23")
}

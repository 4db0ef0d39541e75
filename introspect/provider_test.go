package introspect

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secret struct {
	Public  int32
	private string
	nested  inner
}

type inner struct {
	code uint16
}

func (s secret) Label() string { return "secret:" + s.private }
func (s *secret) Doubled() int64 { return int64(s.Public) * 2 }
func (i inner) Code() (int, error) { return 0, errors.New("sealed") }
func (i inner) Next() inner { return inner{code: i.code + 1} }
func (i *inner) Prev() *inner { return i }

func (s *secret) Owner() (string, error) {
	if s.private == "" {
		return "", errors.New("no owner")
	}
	return s.private, nil
}

func TestReflectFields(t *testing.T) {
	v := reflect.ValueOf(&secret{Public: 7, private: "x", nested: inner{code: 3}}).Elem()

	members, err := NewReflect().Fields(v)
	require.NoError(t, err)
	require.Len(t, members, 3)

	assert.Equal(t, "Public", members[0].Name)
	assert.Equal(t, int64(7), members[0].Value.Int())
	assert.Equal(t, "private", members[1].Name)
	assert.Equal(t, "x", members[1].Value.String())
	assert.True(t, members[1].Value.CanInterface(), "unexported fields of addressable structs are lifted")
	assert.Equal(t, "nested", members[2].Name)
	assert.True(t, members[2].Value.CanAddr())
}

func TestReflectFieldsRejectsNonStruct(t *testing.T) {
	_, err := NewReflect().Fields(reflect.ValueOf(3))
	assert.ErrorIs(t, err, ErrInaccessible)
}

func TestReflectProperties(t *testing.T) {
	r := NewReflect()
	require.NoError(t, RegisterFunc(r, "Label", secret.Label))
	require.NoError(t, RegisterPtrFunc(r, "", (*secret).Doubled))

	v := reflect.ValueOf(&secret{Public: 21, private: "x"}).Elem()
	members, err := r.Properties(v)
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "Label", members[0].Name)
	assert.Equal(t, "secret:x", members[0].Value.String())
	assert.Equal(t, "(*secret).Doubled", members[1].Name)
	assert.Equal(t, int64(42), members[1].Value.Int())

	none, err := r.Properties(reflect.ValueOf(inner{}))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReflectPropertiesOfUnexportedField(t *testing.T) {
	type outer struct {
		hidden secret
	}

	r := NewReflect()
	require.NoError(t, RegisterPtrFunc(r, "Doubled", (*secret).Doubled))

	v := reflect.ValueOf(&outer{hidden: secret{Public: 5}}).Elem().Field(0)
	members, err := r.Properties(v)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, int64(10), members[0].Value.Int())
}

func TestReflectPropertiesNeedAddressForPointerReceivers(t *testing.T) {
	r := NewReflect()
	require.NoError(t, RegisterPtrFunc(r, "Doubled", (*secret).Doubled))

	_, err := r.Properties(reflect.ValueOf(secret{Public: 5}))

	var perr *PropertyError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Doubled", perr.Property)
	assert.ErrorIs(t, err, ErrInaccessible)

	_, err = r.Properties(Addressable(reflect.ValueOf(secret{Public: 5})))
	assert.NoError(t, err)
}

func TestReflectPropertyGetterError(t *testing.T) {
	r := NewReflect()
	require.NoError(t, RegisterFuncErr(r, "Code", inner.Code))

	_, err := r.Properties(reflect.ValueOf(inner{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sealed")
	assert.NotErrorIs(t, err, ErrInaccessible)
}

func TestRegisterPropertyErrors(t *testing.T) {
	r := NewReflect()

	err := r.RegisterProperty(reflect.TypeFor[inner](), "Label", secret.Label)
	assert.ErrorIs(t, err, ErrReceiverMismatch)

	err = r.RegisterProperty(reflect.TypeFor[int](), "Abs", func(i int) int { return i })
	assert.ErrorIs(t, err, ErrReceiverMismatch)

	err = r.RegisterProperty(reflect.TypeFor[secret](), "At", func(s secret, i int) byte { return s.private[i] })
	assert.ErrorIs(t, err, ErrIndexedAccessor)

	err = r.RegisterProperty(reflect.TypeFor[secret](), "Nothing", nil)
	assert.ErrorIs(t, err, ErrAccessorIsNotAFunction)

	err = r.RegisterProperty(reflect.TypeFor[secret](), "Deep", func(s **secret) int { return 0 })
	assert.ErrorIs(t, err, ErrAccessorDoublePointer)

	err = RegisterFunc(r, "Next", inner.Next)
	assert.ErrorIs(t, err, ErrSelfValueAccessor)

	assert.NoError(t, RegisterPtrFunc(r, "Prev", (*inner).Prev), "pointers to the owner are tracked")
}

func TestExportedAndAddressable(t *testing.T) {
	v := reflect.ValueOf(secret{private: "x"}).Field(1)
	assert.False(t, v.CanInterface())
	assert.False(t, Exported(v).CanInterface(), "non-addressable read-only values cannot be lifted")
	assert.Equal(t, v, Addressable(v))

	c := Addressable(reflect.ValueOf(inner{code: 9}))
	assert.True(t, c.CanAddr())
	assert.Equal(t, uint64(9), c.Field(0).Uint())

	assert.False(t, Exported(reflect.Value{}).IsValid())
}

func TestReflectPropertiesWithErrorResult(t *testing.T) {
	r := NewReflect()
	require.NoError(t, RegisterPtrFuncErr(r, "Owner", (*secret).Owner))

	members, err := r.Properties(reflect.ValueOf(&secret{private: "ann"}).Elem())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "ann", members[0].Value.String())

	_, err = r.Properties(reflect.ValueOf(&secret{}).Elem())
	assert.ErrorContains(t, err, "no owner")
}

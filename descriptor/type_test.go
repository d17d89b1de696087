package descriptor_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"converter-kit/descriptor"
	"converter-kit/primitive"
)

type tree []tree

type Counter struct{ n int }

func (c *Counter) Add(delta int) int { c.n += delta; return c.n }
func (c Counter) Value() int         { return c.n }

func join(sep string, parts ...string) string { return fmt.Sprint(sep, parts) }

func TestOf_Cached(t *testing.T) {
	t.Parallel()

	a := descriptor.Of(reflect.TypeFor[int]())
	b := descriptor.Of(reflect.TypeFor[int]())
	assert.Same(t, a, b)
	assert.Nil(t, descriptor.Of(nil))
	assert.Nil(t, descriptor.OfValue(nil))
}

func TestOf_Boxing(t *testing.T) {
	t.Parallel()

	intType := descriptor.Of(reflect.TypeFor[int]())
	assert.True(t, intType.IsPrimitive())
	assert.False(t, intType.IsNullable())
	assert.Equal(t, reflect.TypeFor[*int](), intType.Boxed())
	assert.Equal(t, primitive.KindInt, intType.Kind())
	assert.True(t, intType.BoxEquivalent(reflect.TypeFor[*int]()))
	assert.False(t, intType.BoxEquivalent(reflect.TypeFor[*int64]()))

	ptrType := descriptor.Of(reflect.TypeFor[*int]())
	assert.False(t, ptrType.IsPrimitive())
	assert.True(t, ptrType.IsNullable())
	assert.Equal(t, reflect.TypeFor[int](), ptrType.Unboxed())
	assert.True(t, ptrType.BoxEquivalent(reflect.TypeFor[int]()))

	structPtr := descriptor.Of(reflect.TypeFor[*Counter]())
	assert.Nil(t, structPtr.Unboxed())
}

func TestOf_Elements(t *testing.T) {
	t.Parallel()

	slice := descriptor.Of(reflect.TypeFor[[]string]())
	assert.True(t, slice.IsArray())
	assert.Equal(t, reflect.TypeFor[string](), slice.Elem().Reflect())

	m := descriptor.Of(reflect.TypeFor[map[string]int]())
	assert.False(t, m.IsArray())
	assert.Equal(t, reflect.TypeFor[string](), m.Key().Reflect())
	assert.Equal(t, reflect.TypeFor[int](), m.Elem().Reflect())

	recursive := descriptor.Of(reflect.TypeFor[tree]())
	assert.Same(t, recursive, recursive.Elem())
}

func TestCallable(t *testing.T) {
	t.Parallel()

	fn, err := descriptor.NewFunc("join", join)
	require.NoError(t, err)
	assert.False(t, fn.IsMethod())
	assert.True(t, fn.Variadic)
	assert.Equal(t, 2, fn.Arity())
	assert.True(t, fn.AcceptsArity(1))
	assert.True(t, fn.AcceptsArity(5))
	assert.False(t, fn.AcceptsArity(0))
	assert.Equal(t, reflect.TypeFor[string](), fn.VariadicElem().Reflect())
	assert.Equal(t, "join(string, ...string)", fn.String())

	m, err := descriptor.NewMethod("Add", (*Counter).Add)
	require.NoError(t, err)
	assert.True(t, m.IsMethod())
	assert.Equal(t, reflect.TypeFor[*Counter](), m.Owner)
	assert.Equal(t, 1, m.Arity())
	assert.Equal(t, "(*descriptor_test.Counter).Add(int)", m.String())

	value, ok := reflect.TypeFor[Counter]().MethodByName("Value")
	require.True(t, ok)
	fromMethod := descriptor.FromMethod(value)
	assert.Equal(t, "Value", fromMethod.Name)
	assert.Empty(t, fromMethod.Params)
	assert.False(t, fromMethod.ReturnsError())

	_, err = descriptor.NewFunc("bad", 42)
	require.ErrorIs(t, err, descriptor.ErrNotAFunction)

	_, err = descriptor.NewMethod("noRecv", func() {})
	require.ErrorIs(t, err, descriptor.ErrNoReceiver)
}

package primitive_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"converter-kit/primitive"
)

func TestIsSafeNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to primitive.KindEnum
		safe     bool
	}{
		{primitive.KindInt8, primitive.KindInt64, true},
		{primitive.KindInt32, primitive.KindFloat64, true},
		{primitive.KindInt32, primitive.KindFloat32, false},
		{primitive.KindInt64, primitive.KindInt32, false},
		{primitive.KindUint8, primitive.KindInt16, true},
		{primitive.KindUint64, primitive.KindInt64, false},
		{primitive.KindFloat64, primitive.KindFloat32, false},
		{primitive.KindFloat32, primitive.KindFloat64, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_"+tt.to.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.safe, primitive.IsSafeNumber(tt.from, tt.to))
		})
	}
}

func TestAllowedNumericBool(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.Allowed(primitive.CategoryNumericBool,
		primitive.ConversionPair{From: primitive.KindBool, To: primitive.KindFloat64}))
	assert.True(t, primitive.Allowed(primitive.CategoryNumericBool,
		primitive.ConversionPair{From: primitive.KindUint16, To: primitive.KindBool}))
	assert.False(t, primitive.Allowed(primitive.CategoryNumericBool,
		primitive.ConversionPair{From: primitive.KindFloat32, To: primitive.KindBool}))
	assert.False(t, primitive.Allowed(primitive.CategoryNone,
		primitive.ConversionPair{From: primitive.KindBool, To: primitive.KindInt}))
}

func TestFromKind_NamedScalars(t *testing.T) {
	t.Parallel()

	type Celsius float32
	type Flag bool

	assert.Equal(t, primitive.KindFloat32, primitive.FromKind(reflect.TypeFor[Celsius]()))
	assert.Equal(t, primitive.KindBool, primitive.FromKind(reflect.TypeFor[Flag]()))
	assert.Equal(t, primitive.KindInt64, primitive.FromKind(reflect.TypeFor[time.Duration]()))
	assert.Equal(t, primitive.KindEnum(0), primitive.FromKind(reflect.TypeFor[time.Time]()))
	assert.Equal(t, primitive.KindEnum(0), primitive.FromKind(nil))

	assert.True(t, primitive.IsScalar(reflect.TypeFor[string]()))
	assert.False(t, primitive.IsScalar(reflect.TypeFor[*int]()))
	assert.False(t, primitive.IsScalar(reflect.TypeFor[[]int]()))
}

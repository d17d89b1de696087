package match

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"converter-kit/descriptor"
)

func typeOf[T any]() *descriptor.Type {
	return descriptor.Of(reflect.TypeFor[T]())
}

func intPtr(v int) *int { return &v }

func TestCompatibility_String(t *testing.T) {
	tests := []struct {
		compat   Compatibility
		expected string
	}{
		{Identical, "identical"},
		{Assignable, "assignable"},
		{Boxed, "boxed"},
		{NullCompatible, "null"},
		{Incompatible, "incompatible"},
		{Compatibility(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.compat.String(); got != tt.expected {
				t.Errorf("Compatibility.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScore(t *testing.T) {
	var nilReader *strings.Reader

	tests := []struct {
		name     string
		formal   *descriptor.Type
		arg      Arg
		expected Compatibility
	}{
		{"identical int", typeOf[int](), ArgOf(1), Identical},
		{"interface satisfied", typeOf[fmt.Stringer](), ArgOf(reflect.TypeFor[int]()), Assignable},
		{"any takes everything", typeOf[any](), ArgOf("x"), Assignable},
		{"reader by pointer", typeOf[io.Reader](), ArgOf(strings.NewReader("x")), Assignable},
		{"boxed formal, primitive actual", typeOf[*int](), ArgOf(1), Boxed},
		{"primitive formal, boxed actual", typeOf[int](), ArgOf(intPtr(1)), Boxed},
		{"primitive formal, nil boxed actual", typeOf[int](), ArgOf((*int)(nil)), Incompatible},
		{"nil to pointer", typeOf[*int](), ArgOf(nil), NullCompatible},
		{"nil to slice", typeOf[[]string](), ArgOf(nil), NullCompatible},
		{"nil to primitive", typeOf[int](), ArgOf(nil), Incompatible},
		{"nil to struct", typeOf[struct{}](), ArgOf(nil), Incompatible},
		{"typed nil of other pointer", typeOf[*int](), ArgOf(nilReader), NullCompatible},
		{"no widening int to int64", typeOf[int64](), ArgOf(1), Incompatible},
		{"no boxing across widths", typeOf[*int64](), ArgOf(1), Incompatible},
		{"string is not a number", typeOf[int](), ArgOf("1"), Incompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.formal, tt.arg); got != tt.expected {
				t.Errorf("Score() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMatches_Fixed(t *testing.T) {
	formals := []*descriptor.Type{typeOf[string](), typeOf[*int]()}

	assert.True(t, Matches(formals, false, ArgsOf([]any{"a", 1})))
	assert.True(t, Matches(formals, false, ArgsOf([]any{"a", intPtr(2)})))
	assert.True(t, Matches(formals, false, ArgsOf([]any{"a", nil})))
	assert.False(t, Matches(formals, false, ArgsOf([]any{"a"})))
	assert.False(t, Matches(formals, false, ArgsOf([]any{"a", 1, 2})))
	assert.False(t, Matches(formals, false, ArgsOf([]any{1, 1})))

	assert.True(t, Matches(nil, false, nil))
	assert.False(t, Matches(nil, false, ArgsOf([]any{1})))
}

func TestMatches_Variadic(t *testing.T) {
	// varargs2(int, ...int)
	formals := []*descriptor.Type{typeOf[int](), typeOf[[]int]()}

	tests := []struct {
		name     string
		args     []any
		expected bool
	}{
		{"zero trailing", []any{1}, true},
		{"one trailing", []any{1, 1}, true},
		{"two trailing", []any{1, 1, 2}, true},
		{"boxed trailing", []any{1, intPtr(3)}, true},
		{"slice as tail", []any{1, []int{1, 2}}, true},
		{"nil as tail", []any{1, nil}, true},
		{"missing fixed", []any{}, false},
		{"wrong trailing type", []any{1, "x"}, false},
		{"slice mixed with elements", []any{1, 2, []int{3}}, false},
		{"wrong fixed type", []any{"x", 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(formals, true, ArgsOf(tt.args)))
		})
	}
}

func TestMatches_OnlyVariadic(t *testing.T) {
	formals := []*descriptor.Type{typeOf[[]string]()}

	assert.True(t, Matches(formals, true, nil))
	assert.True(t, Matches(formals, true, ArgsOf([]any{"a", "b"})))
	assert.False(t, Matches(formals, false, nil))
}

func TestMatchesCallable(t *testing.T) {
	c, err := descriptor.NewFunc("box", func(v *int) int { return *v })
	if err != nil {
		t.Fatal(err)
	}

	assert.True(t, MatchesCallable(c, ArgsOf([]any{5})))
	assert.False(t, MatchesCallable(c, ArgsOf([]any{int64(5)})))
}

func TestTypesOf(t *testing.T) {
	types := TypesOf(ArgsOf([]any{1, nil, "x"}))
	assert.Equal(t, []reflect.Type{reflect.TypeFor[int](), nil, reflect.TypeFor[string]()}, types)
}

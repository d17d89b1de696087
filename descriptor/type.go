// Package descriptor describes Go types and callables for the matching and
// conversion machinery.
//
// Key types:
//   - Type: a reflect.Type with its scalar kind, boxed/unboxed counterpart
//     and element types, cached once per distinct type
//   - Callable: a named function or method with formal parameter types and
//     a variadic flag
package descriptor

import (
	"reflect"
	"sync"

	"converter-kit/primitive"
)

// Type describes a Go type. Instances are immutable and shared; obtain them
// through Of.
type Type struct {
	rtype   reflect.Type
	kind    primitive.KindEnum
	boxed   reflect.Type // *T for a scalar T
	unboxed reflect.Type // T for a *T with scalar T
	elem    reflect.Type // slice, array and map element
	key     reflect.Type // map key
}

var cache sync.Map // reflect.Type -> *Type

// Of returns the descriptor of t, creating it on first use. Of(nil) is nil.
func Of(t reflect.Type) *Type {
	if t == nil {
		return nil
	}

	if cached, ok := cache.Load(t); ok {
		return cached.(*Type)
	}

	d := &Type{
		rtype: t,
		kind:  primitive.FromKind(t),
	}

	switch t.Kind() {
	case reflect.Ptr:
		if primitive.IsScalar(t.Elem()) {
			d.unboxed = t.Elem()
		}
	case reflect.Slice, reflect.Array:
		d.elem = t.Elem()
	case reflect.Map:
		d.key = t.Key()
		d.elem = t.Elem()
	default:
		if d.kind.IsScalar() {
			d.boxed = reflect.PointerTo(t)
		}
	}

	actual, _ := cache.LoadOrStore(t, d)

	return actual.(*Type)
}

// OfValue returns the descriptor of the dynamic type of v, nil for a nil interface.
func OfValue(v any) *Type {
	return Of(reflect.TypeOf(v))
}

// Reflect returns the described reflect.Type.
func (t *Type) Reflect() reflect.Type { return t.rtype }

// Kind returns the scalar kind the type is stored as, zero for non-scalars.
func (t *Type) Kind() primitive.KindEnum { return t.kind }

// IsPrimitive reports whether the type is a bool, number or string kind.
func (t *Type) IsPrimitive() bool { return t.kind.IsScalar() }

// IsNullable reports whether nil is a valid value of the type.
func (t *Type) IsNullable() bool {
	switch t.rtype.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// Boxed returns *T for a scalar T, or nil.
func (t *Type) Boxed() reflect.Type { return t.boxed }

// Unboxed returns T for a pointer to a scalar T, or nil.
func (t *Type) Unboxed() reflect.Type { return t.unboxed }

// IsArray reports whether the type is a slice or an array.
func (t *Type) IsArray() bool {
	k := t.rtype.Kind()
	return k == reflect.Slice || k == reflect.Array
}

// Elem returns the component type of a slice, array or map. Element
// descriptors are resolved lazily so self-referential types terminate.
func (t *Type) Elem() *Type { return Of(t.elem) }

// Key returns the key type of a map.
func (t *Type) Key() *Type { return Of(t.key) }

// AssignableFrom reports whether a value of other can be assigned to t.
func (t *Type) AssignableFrom(other reflect.Type) bool {
	return other != nil && other.AssignableTo(t.rtype)
}

// BoxEquivalent reports whether t and other differ only by one level of
// pointer to the same scalar type.
func (t *Type) BoxEquivalent(other reflect.Type) bool {
	if other == nil {
		return false
	}

	return (t.boxed != nil && t.boxed == other) || (t.unboxed != nil && t.unboxed == other)
}

func (t *Type) String() string {
	return t.rtype.String()
}

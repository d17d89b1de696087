package convert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"converter-kit/descriptor"
	"converter-kit/internal/match"
	"converter-kit/temporal"
)

// property is a readable value of a struct: an exported field or a niladic
// exported method with a single result.
type property struct {
	name string
	typ  reflect.Type
	get  func(v reflect.Value) reflect.Value
}

var propertyCache sync.Map // reflect.Type -> []property

// properties lists the readable properties of struct type t: fields in
// declaration order, then methods in name order. A GetX method is named X.
func properties(t reflect.Type) []property {
	if cached, ok := propertyCache.Load(t); ok {
		return cached.([]property)
	}

	var props []property

	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}

		index := field.Index
		props = append(props, property{
			name: field.Name,
			typ:  field.Type,
			get: func(v reflect.Value) reflect.Value {
				f, err := v.FieldByIndexErr(index)
				if err != nil {
					return reflect.Value{}
				}

				return f
			},
		})
	}

	ptr := reflect.PointerTo(t)
	for i := range ptr.NumMethod() {
		method := ptr.Method(i)
		if method.Type.NumIn() != 1 || method.Type.NumOut() != 1 {
			continue
		}

		name := strings.TrimPrefix(method.Name, "Get")
		if name == "" {
			name = method.Name
		}

		index := i
		props = append(props, property{
			name: name,
			typ:  method.Type.Out(0),
			get: func(v reflect.Value) reflect.Value {
				addr := reflect.New(t)
				addr.Elem().Set(v)

				return addr.Method(index).Call(nil)[0]
			},
		})
	}

	propertyCache.Store(t, props)

	return props
}

// findProperty looks a property up by name, ignoring case and separators.
func findProperty(t reflect.Type, name string) (property, bool) {
	want := match.NormalizeName(name)

	for _, prop := range properties(t) {
		if prop.name == name {
			return prop, true
		}
	}

	for _, prop := range properties(t) {
		if match.NormalizeName(prop.name) == want {
			return prop, true
		}
	}

	return property{}, false
}

func propertyNames(t reflect.Type) []string {
	props := properties(t)
	names := make([]string, len(props))

	for i, prop := range props {
		names[i] = prop.name
	}

	return names
}

// beanConverter reads the first property of a struct whose type is the
// target type or its pointer form. A property named Value wins over others.
// Structs with their own text form are left to the fallback.
func beanConverter(_ *Registry, src, dst reflect.Type, _ pending) Converter {
	if src.Kind() != reflect.Struct || temporal.IsTemporal(src) || hasText(src) || !isValueLike(dst) {
		return nil
	}

	prop, ok := pickProperty(src, dst)
	if !ok {
		return nil
	}

	return newConverter("bean", src, dst, func(v reflect.Value) (reflect.Value, error) {
		out := prop.get(v)
		if !out.IsValid() {
			return reflect.Value{}, nil
		}

		if out.Kind() == reflect.Ptr {
			if out.IsNil() {
				return reflect.Value{}, nil
			}

			if out.Type() != dst {
				out = out.Elem()
			}
		}

		if dst.Kind() == reflect.Ptr && out.Type() != dst {
			ptr := reflect.New(out.Type())
			ptr.Elem().Set(out)
			out = ptr
		}

		return out, nil
	})
}

func pickProperty(src, dst reflect.Type) (property, bool) {
	target := descriptor.Of(dst)

	var found []property
	for _, prop := range properties(src) {
		if prop.typ == dst || target.BoxEquivalent(prop.typ) {
			found = append(found, prop)
		}
	}

	if len(found) == 0 {
		return property{}, false
	}

	for _, prop := range found {
		if prop.name == "Value" && prop.typ == dst {
			return prop, true
		}
	}

	for _, prop := range found {
		if prop.typ == dst {
			return prop, true
		}
	}

	return found[0], true
}

// hasText reports whether t renders itself as text, in which case the
// fallback converter handles it.
func hasText(t reflect.Type) bool {
	ptr := reflect.PointerTo(t)

	return ptr.Implements(textMarshalType) || ptr.Implements(stringerType)
}

// isValueLike reports whether t is a scalar, a pointer to one or a temporal
// value.
func isValueLike(t reflect.Type) bool {
	d := descriptor.Of(t)

	return d.IsPrimitive() || d.Unboxed() != nil || temporal.IsTemporal(t)
}

// Extract reads property from every element of collection (a slice or an
// array of structs, struct pointers or string-keyed maps) and converts each
// value to elem. The result is a []elem.
func (r *Registry) Extract(collection any, property string, elem reflect.Type) (any, error) {
	rv := reflect.ValueOf(collection)
	if !rv.IsValid() {
		return nil, nil
	}

	if !isSequence(rv.Type()) {
		return nil, &UnsupportedError{Source: rv.Type(), Target: reflect.SliceOf(elem)}
	}

	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, nil
	}

	out := reflect.MakeSlice(reflect.SliceOf(elem), rv.Len(), rv.Len())

	for i := range rv.Len() {
		value, err := readProperty(rv.Index(i), property)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		if !value.IsValid() {
			continue
		}

		converted, err := r.Convert(value.Interface(), elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		assign(out.Index(i), converted)
	}

	return out.Interface(), nil
}

var ErrNoProperty = errors.New("no such property")

func readProperty(item reflect.Value, name string) (reflect.Value, error) {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return reflect.Value{}, nil
		}

		item = item.Elem()
	}

	switch {
	case item.Kind() == reflect.Map && item.Type().Key().Kind() == reflect.String:
		v := item.MapIndex(reflect.ValueOf(name).Convert(item.Type().Key()))
		if v.IsValid() && v.Kind() == reflect.Interface {
			if v.IsNil() {
				return reflect.Value{}, nil
			}

			v = v.Elem()
		}

		return v, nil
	case item.Kind() == reflect.Struct:
		prop, ok := findProperty(item.Type(), name)
		if !ok {
			msg := fmt.Sprintf("%s has no property %q", item.Type(), name)
			if hints := match.Suggest(name, propertyNames(item.Type()), 3); len(hints) > 0 {
				msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(hints, ", "))
			}

			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNoProperty, msg)
		}

		v := prop.get(item)
		if v.IsValid() && isNil(v) {
			return reflect.Value{}, nil
		}

		return v, nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s has no properties", ErrNoProperty, item.Type())
	}
}

package convert

import (
	"cmp"
	"reflect"
	"slices"
	"strings"
)

// structuralConverter converts slices, arrays, sets and maps element by
// element, and splits text into collections. A set is a map[T]struct{} or a
// map[T]bool.
func structuralConverter(r *Registry, src, dst reflect.Type, p pending) Converter {
	switch {
	case src.Kind() == reflect.String && (isSequence(dst) || isSet(dst)):
		return r.splitter(src, dst, p)
	case isSequence(src) && isSequence(dst):
		elem, err := r.resolve(src.Elem(), dst.Elem(), p)
		if err != nil {
			return nil
		}

		return newConverter("sequence", src, dst, func(v reflect.Value) (reflect.Value, error) {
			return fillSequence(dst, v.Len(), func(i int) (any, error) {
				return elem.Convert(v.Index(i).Interface())
			})
		})
	case isSequence(src) && isSet(dst):
		key, err := r.resolve(src.Elem(), dst.Key(), p)
		if err != nil {
			return nil
		}

		return newConverter("set", src, dst, func(v reflect.Value) (reflect.Value, error) {
			out := reflect.MakeMapWithSize(dst, v.Len())
			for i := range v.Len() {
				k, err := key.Convert(v.Index(i).Interface())
				if err != nil {
					return reflect.Value{}, err
				}

				addToSet(out, k)
			}

			return out, nil
		})
	case isSet(src) && isSequence(dst):
		elem, err := r.resolve(src.Key(), dst.Elem(), p)
		if err != nil {
			return nil
		}

		return newConverter("sequence", src, dst, func(v reflect.Value) (reflect.Value, error) {
			keys := setMembers(v)

			return fillSequence(dst, len(keys), func(i int) (any, error) {
				return elem.Convert(keys[i].Interface())
			})
		})
	case src.Kind() == reflect.Map && dst.Kind() == reflect.Map:
		return r.mapConverter(src, dst, p)
	}

	return nil
}

func (r *Registry) mapConverter(src, dst reflect.Type, p pending) Converter {
	key, err := r.resolve(src.Key(), dst.Key(), p)
	if err != nil {
		return nil
	}

	value, err := r.resolve(src.Elem(), dst.Elem(), p)
	if err != nil {
		return nil
	}

	return newConverter("map", src, dst, func(v reflect.Value) (reflect.Value, error) {
		out := reflect.MakeMapWithSize(dst, v.Len())

		iter := v.MapRange()
		for iter.Next() {
			k, err := key.Convert(iter.Key().Interface())
			if err != nil {
				return reflect.Value{}, err
			}

			if k == nil {
				continue
			}

			val, err := value.Convert(iter.Value().Interface())
			if err != nil {
				return reflect.Value{}, err
			}

			kv, vv := reflect.New(dst.Key()).Elem(), reflect.New(dst.Elem()).Elem()
			assign(kv, k)
			assign(vv, val)
			out.SetMapIndex(kv, vv)
		}

		return out, nil
	})
}

// splitter splits text on the list separator, trims the parts and converts
// the resulting []string.
func (r *Registry) splitter(src, dst reflect.Type, p pending) Converter {
	parts, err := r.resolve(reflect.TypeFor[[]string](), dst, p)
	if err != nil {
		return nil
	}

	sep := r.config.ListSeparator
	null := r.config.NullSubstitute

	split := newConverter("split", src, reflect.TypeFor[[]string](), func(v reflect.Value) (reflect.Value, error) {
		s := v.String()
		if null != "" && s == null {
			return reflect.Value{}, nil
		}

		return reflect.ValueOf(splitList(s, sep)), nil
	})

	return NewChain(split, parts)
}

func splitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	parts := strings.Split(s, sep)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}

	return parts
}

func isSequence(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

func isSet(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}

	elem := t.Elem()

	return elem.Kind() == reflect.Bool || elem.Kind() == reflect.Struct && elem.NumField() == 0
}

// fillSequence builds a slice of n elements, or an array cut or zero-padded
// to its length.
func fillSequence(dst reflect.Type, n int, elem func(i int) (any, error)) (reflect.Value, error) {
	var out reflect.Value
	if dst.Kind() == reflect.Array {
		out = reflect.New(dst).Elem()
		n = min(n, dst.Len())
	} else {
		out = reflect.MakeSlice(dst, n, n)
	}

	for i := range n {
		v, err := elem(i)
		if err != nil {
			return reflect.Value{}, err
		}

		assign(out.Index(i), v)
	}

	return out, nil
}

func addToSet(set reflect.Value, key any) {
	if key == nil {
		return
	}

	k := reflect.New(set.Type().Key()).Elem()
	assign(k, key)

	member := reflect.New(set.Type().Elem()).Elem()
	if member.Kind() == reflect.Bool {
		member.SetBool(true)
	}

	set.SetMapIndex(k, member)
}

// setMembers returns the members of a set, sorted when the key is ordered.
// Bool sets skip false entries.
func setMembers(set reflect.Value) []reflect.Value {
	keys := make([]reflect.Value, 0, set.Len())

	iter := set.MapRange()
	for iter.Next() {
		if iter.Value().Kind() == reflect.Bool && !iter.Value().Bool() {
			continue
		}

		keys = append(keys, iter.Key())
	}

	sortValues(keys)

	return keys
}

func sortValues(values []reflect.Value) {
	if len(values) == 0 {
		return
	}

	switch values[0].Kind() {
	case reflect.String:
		slices.SortFunc(values, func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		slices.SortFunc(values, func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) })
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		slices.SortFunc(values, func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) })
	case reflect.Float32, reflect.Float64:
		slices.SortFunc(values, func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) })
	}
}

package convert

import (
	"fmt"
	"reflect"
	"strings"

	"converter-kit/primitive"
)

// enumByName returns a lookup of enum constants by name for a named integer
// type, or nil when the type has no names. Names come from values registered
// with WithEnum and, for fmt.Stringer types, from probing the integers
// 0..EnumProbeLimit.
func (r *Registry) enumByName(t reflect.Type) func(name string) (reflect.Value, bool) {
	if primitive.FromReflectType(t) != primitive.KindPrimitiveEnum {
		return nil
	}

	registered := r.enums[t]
	probe := t.Implements(stringerType) && r.config.EnumProbeLimit > 0
	if len(registered) == 0 && !probe {
		return nil
	}

	limit := r.config.EnumProbeLimit

	return func(name string) (reflect.Value, bool) {
		for _, v := range registered {
			if enumName(v) == name {
				return v, true
			}
		}

		for _, v := range registered {
			if strings.EqualFold(enumName(v), name) {
				return v, true
			}
		}

		if !probe {
			return reflect.Value{}, false
		}

		v := reflect.New(t).Elem()
		for i := 0; i <= limit; i++ {
			if v.CanInt() {
				v.SetInt(int64(i))
			} else {
				v.SetUint(uint64(i))
			}

			if v.Interface().(fmt.Stringer).String() == name {
				return v, true
			}
		}

		return reflect.Value{}, false
	}
}

func enumName(v reflect.Value) string {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprint(v.Interface())
}

// enumValues groups values by their dynamic type.
func enumValues(values []any) map[reflect.Type][]reflect.Value {
	grouped := make(map[reflect.Type][]reflect.Value)

	for _, value := range values {
		if value == nil {
			continue
		}

		v := reflect.ValueOf(value)
		grouped[v.Type()] = append(grouped[v.Type()], v)
	}

	return grouped
}

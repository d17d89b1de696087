package invoke

import (
	"fmt"
	"reflect"

	"converter-kit/descriptor"
	"converter-kit/internal/match"
)

// binding is an argument list adapted to a callable. spread means the last
// value is the variadic slice itself.
type binding struct {
	in     []reflect.Value
	spread bool
}

// bind adapts args to the formals of c: nil becomes the zero value, scalars
// are boxed or unboxed, trailing arguments are packed into the variadic
// parameter. With coerce set, arguments are converted through the registry.
func (r *Resolver) bind(c *descriptor.Callable, args []any, coerce bool) (*binding, error) {
	if !c.AcceptsArity(len(args)) {
		return nil, fmt.Errorf("%s takes %d arguments, %d given", c, c.Arity(), len(args))
	}

	fixed := len(c.Params)
	if c.Variadic {
		fixed--
	}

	b := &binding{in: make([]reflect.Value, 0, len(args))}

	for i := range fixed {
		v, err := r.argValue(c.Params[i].Reflect(), args[i], coerce)
		if err != nil {
			return nil, err
		}

		b.in = append(b.in, v)
	}

	if !c.Variadic {
		return b, nil
	}

	tail := args[fixed:]
	last := c.Params[fixed]

	if len(tail) == 1 && match.Score(last, match.ArgOf(tail[0])) != match.Incompatible {
		v, err := r.argValue(last.Reflect(), tail[0], false)
		if err != nil {
			return nil, err
		}

		b.in = append(b.in, v)
		b.spread = true

		return b, nil
	}

	elem := last.Elem().Reflect()
	for _, arg := range tail {
		v, err := r.argValue(elem, arg, coerce)
		if err != nil {
			if coerce && len(tail) == 1 {
				return r.bindSlice(b, last.Reflect(), arg)
			}

			return nil, err
		}

		b.in = append(b.in, v)
	}

	return b, nil
}

// bindSlice converts a single trailing argument into the variadic slice.
func (r *Resolver) bindSlice(b *binding, sliceType reflect.Type, arg any) (*binding, error) {
	v, err := r.argValue(sliceType, arg, true)
	if err != nil {
		return nil, err
	}

	b.in = append(b.in, v)
	b.spread = true

	return b, nil
}

func (r *Resolver) argValue(formal reflect.Type, arg any, coerce bool) (reflect.Value, error) {
	if arg == nil {
		if descriptor.Of(formal).IsNullable() || coerce {
			return reflect.Zero(formal), nil
		}

		return reflect.Value{}, fmt.Errorf("nil does not fit %s", formal)
	}

	rv := reflect.ValueOf(arg)

	switch {
	case rv.Type().AssignableTo(formal):
		return rv, nil
	case formal.Kind() == reflect.Ptr && rv.Type().AssignableTo(formal.Elem()):
		ptr := reflect.New(formal.Elem())
		ptr.Elem().Set(rv)

		return ptr, nil
	case rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Type().Elem().AssignableTo(formal):
		return rv.Elem(), nil
	case !coerce:
		return reflect.Value{}, fmt.Errorf("%s does not fit %s", rv.Type(), formal)
	}

	out, err := r.registry.Convert(arg, formal)
	if err != nil {
		return reflect.Value{}, err
	}

	if out == nil {
		return reflect.Zero(formal), nil
	}

	ov := reflect.ValueOf(out)
	if !ov.Type().AssignableTo(formal) {
		if !ov.Type().ConvertibleTo(formal) {
			return reflect.Value{}, fmt.Errorf("%s does not fit %s", ov.Type(), formal)
		}

		ov = ov.Convert(formal)
	}

	return ov, nil
}

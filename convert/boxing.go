package convert

import "reflect"

// boxingConverter handles pointers on either side: dereference the source,
// convert the pointees, then lift into a fresh pointer.
func boxingConverter(r *Registry, src, dst reflect.Type, p pending) Converter {
	srcPtr, dstPtr := src.Kind() == reflect.Ptr, dst.Kind() == reflect.Ptr
	if !srcPtr && !dstPtr {
		return nil
	}

	from, to := src, dst
	if srcPtr {
		from = src.Elem()
	}

	if dstPtr {
		to = dst.Elem()
	}

	inner, err := r.resolve(from, to, p)
	if err != nil {
		return nil
	}

	var steps []Converter
	if srcPtr {
		steps = append(steps, deref(src))
	}

	steps = append(steps, inner)

	if dstPtr {
		steps = append(steps, lift(dst))
	}

	return NewChain(steps...)
}

func deref(src reflect.Type) *converter {
	return newConverter("unbox", src, src.Elem(), func(v reflect.Value) (reflect.Value, error) {
		return v.Elem(), nil
	})
}

func lift(dst reflect.Type) *converter {
	return newConverter("box", dst.Elem(), dst, func(v reflect.Value) (reflect.Value, error) {
		ptr := reflect.New(dst.Elem())
		if v.Type() != dst.Elem() {
			v = v.Convert(dst.Elem())
		}

		ptr.Elem().Set(v)

		return ptr, nil
	})
}

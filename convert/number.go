package convert

import (
	"math"
	"reflect"

	"converter-kit/primitive"
)

// numberConverter converts between numeric kinds. Out-of-range values wrap
// and fractions truncate, unless the registry is strict, in which case
// conversions that do not round-trip fail.
func numberConverter(r *Registry, src, dst reflect.Type, _ pending) Converter {
	from, to := primitive.FromKind(src), primitive.FromKind(dst)
	if !from.IsNumber() || !to.IsNumber() {
		return nil
	}

	if r.config.StrictNumbers && !primitive.IsSafeNumber(from, to) {
		return newConverter("number", src, dst, func(v reflect.Value) (reflect.Value, error) {
			out := v.Convert(dst)
			if !sameNumber(v, out.Convert(src)) {
				return reflect.Value{}, failedf(src, dst, v.Interface(), "%v does not fit into %s", v.Interface(), dst)
			}

			return out, nil
		})
	}

	return newConverter("number", src, dst, func(v reflect.Value) (reflect.Value, error) {
		return v.Convert(dst), nil
	})
}

func sameNumber(a, b reflect.Value) bool {
	switch primitive.FromKind(a.Type()) {
	case primitive.KindFloat32, primitive.KindFloat64:
		x, y := a.Float(), b.Float()
		return x == y || math.IsNaN(x) && math.IsNaN(y)
	case primitive.KindUint, primitive.KindUint8, primitive.KindUint16, primitive.KindUint32, primitive.KindUint64:
		return a.Uint() == b.Uint()
	default:
		return a.Int() == b.Int()
	}
}

// numericBoolConverter maps true to 1 and false to 0, and back for integer
// values 0 and 1.
func numericBoolConverter(_ *Registry, src, dst reflect.Type, _ pending) Converter {
	from, to := primitive.FromKind(src), primitive.FromKind(dst)
	if !primitive.Allowed(primitive.CategoryNumericBool, primitive.ConversionPair{From: from, To: to}) {
		return nil
	}

	if from == primitive.KindBool {
		one, zero := reflect.ValueOf(1).Convert(dst), reflect.Zero(dst)

		return newConverter("bool-number", src, dst, func(v reflect.Value) (reflect.Value, error) {
			if v.Bool() {
				return one, nil
			}

			return zero, nil
		})
	}

	return newConverter("number-bool", src, dst, func(v reflect.Value) (reflect.Value, error) {
		var n int64

		if from.IsUnsigned() {
			if v.Uint() > 1 {
				return reflect.Value{}, failedf(src, dst, v.Interface(), "only 0 and 1 map to bool")
			}

			n = int64(v.Uint())
		} else {
			n = v.Int()
		}

		switch n {
		case 0:
			return reflect.ValueOf(false).Convert(dst), nil
		case 1:
			return reflect.ValueOf(true).Convert(dst), nil
		default:
			return reflect.Value{}, failedf(src, dst, v.Interface(), "only 0 and 1 map to bool")
		}
	})
}

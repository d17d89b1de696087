package convert

import (
	"fmt"
	"math/big"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"converter-kit/primitive"
	"converter-kit/temporal"
)

// textParser turns text into a value of the target type.
type textParser func(s string) (reflect.Value, error)

// textConverter parses string-kind sources. Text equal to a non-empty null
// substitute converts to nil.
func textConverter(r *Registry, src, dst reflect.Type, _ pending) Converter {
	if src.Kind() != reflect.String {
		return nil
	}

	parse := r.textParser(dst)
	if parse == nil {
		return nil
	}

	null := r.config.NullSubstitute

	return newConverter("text", src, dst, func(v reflect.Value) (reflect.Value, error) {
		s := v.String()
		if null != "" && s == null {
			return reflect.Value{}, nil
		}

		out, err := parse(s)
		if err != nil {
			return reflect.Value{}, failed(src, dst, s, err)
		}

		return out, nil
	})
}

func (r *Registry) textParser(dst reflect.Type) textParser {
	if primitive.FromReflectType(dst) == primitive.KindDuration {
		return parseDuration
	}

	switch dst {
	case reflectTypeType:
		return r.parseType
	case tagType:
		return trimmed(func(s string) (any, error) { return language.Parse(s) })
	case urlType:
		return trimmed(func(s string) (any, error) {
			u, err := url.Parse(s)
			if err != nil {
				return nil, err
			}

			return *u, nil
		})
	case urlPtrType:
		return trimmed(func(s string) (any, error) { return url.Parse(s) })
	case regexpPtrType:
		return func(s string) (reflect.Value, error) {
			re, err := regexp.Compile(s)
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(re), nil
		}
	case locationPtrType:
		return trimmed(func(s string) (any, error) { return time.LoadLocation(s) })
	case uuidType:
		return trimmed(func(s string) (any, error) { return uuid.Parse(s) })
	case bigIntPtrType:
		return trimmed(func(s string) (any, error) {
			n, ok := new(big.Int).SetString(s, 10)
			if !ok {
				return nil, fmt.Errorf("invalid integer %q", s)
			}

			return n, nil
		})
	case bigFloatPtrType:
		return trimmed(func(s string) (any, error) {
			f, ok := new(big.Float).SetString(r.normalizeDecimal(s))
			if !ok {
				return nil, fmt.Errorf("invalid number %q", s)
			}

			return f, nil
		})
	case bigRatPtrType:
		return trimmed(func(s string) (any, error) {
			q, ok := new(big.Rat).SetString(r.normalizeDecimal(s))
			if !ok {
				return nil, fmt.Errorf("invalid rational %q", s)
			}

			return q, nil
		})
	}

	if temporal.IsTemporal(dst) {
		layouts := r.layouts(dst)

		return func(s string) (reflect.Value, error) {
			return r.parseTemporal(strings.TrimSpace(s), dst, layouts)
		}
	}

	if dst.Kind() != reflect.Ptr && reflect.PointerTo(dst).Implements(textUnmarshalType) {
		return unmarshalText(dst)
	}

	kind := primitive.FromKind(dst)

	switch {
	case kind == primitive.KindString:
		return enumString(dst)
	case dst.Kind() == reflect.Slice && dst.Elem().Kind() == reflect.Uint8:
		return func(s string) (reflect.Value, error) {
			return reflect.ValueOf([]byte(s)).Convert(dst), nil
		}
	case kind == primitive.KindBool:
		return func(s string) (reflect.Value, error) {
			b, err := parseBool(s)
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(b).Convert(dst), nil
		}
	case kind.IsInteger():
		return r.integerParser(dst, kind)
	case kind.IsFloat():
		return func(s string) (reflect.Value, error) {
			f, err := strconv.ParseFloat(r.normalizeDecimal(strings.TrimSpace(s)), kind.Bits())
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(f).Convert(dst), nil
		}
	}

	return nil
}

// trimmed adapts a parser returning any.
func trimmed(parse func(s string) (any, error)) textParser {
	return func(s string) (reflect.Value, error) {
		v, err := parse(strings.TrimSpace(s))
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(v), nil
	}
}

func (r *Registry) parseType(s string) (reflect.Value, error) {
	t, ok := r.types.lookup(s)
	if !ok {
		return reflect.Value{}, fmt.Errorf("unknown type %q", s)
	}

	v := reflect.New(reflectTypeType).Elem()
	v.Set(reflect.ValueOf(t))

	return v, nil
}

func parseDuration(s string) (reflect.Value, error) {
	s = strings.TrimSpace(s)

	d, err := time.ParseDuration(s)
	if err != nil {
		n, nerr := strconv.ParseInt(s, 10, 64)
		if nerr != nil {
			return reflect.Value{}, err
		}

		d = time.Duration(n)
	}

	return reflect.ValueOf(d), nil
}

func unmarshalText(dst reflect.Type) textParser {
	return func(s string) (reflect.Value, error) {
		ptr := reflect.New(dst)
		if err := ptr.Interface().(interface{ UnmarshalText([]byte) error }).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, err
		}

		return ptr.Elem(), nil
	}
}

// enumString converts into string kinds. Named types with an IsValid method
// reject values it does not accept.
func enumString(dst reflect.Type) textParser {
	return func(s string) (reflect.Value, error) {
		v := reflect.ValueOf(s).Convert(dst)

		if validator, ok := v.Interface().(interface{ IsValid() bool }); ok && !validator.IsValid() {
			return reflect.Value{}, fmt.Errorf("%q is not a valid %s", s, dst)
		}

		return v, nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1", "t", "y":
		return true, nil
	case "false", "no", "off", "0", "f", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

// integerParser accepts enum names for named integer types and decimal
// numbers for all of them.
func (r *Registry) integerParser(dst reflect.Type, kind primitive.KindEnum) textParser {
	byName := r.enumByName(dst)

	return func(s string) (reflect.Value, error) {
		s = strings.TrimSpace(s)

		if byName != nil {
			if v, ok := byName(s); ok {
				return v, nil
			}
		}

		if kind.IsUnsigned() {
			n, err := strconv.ParseUint(s, 10, kind.Bits())
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(n).Convert(dst), nil
		}

		n, err := strconv.ParseInt(s, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(n).Convert(dst), nil
	}
}

// normalizeDecimal rewrites the locale decimal separator to '.'.
func (r *Registry) normalizeDecimal(s string) string {
	if r.decimal == '.' {
		return s
	}

	return strings.ReplaceAll(s, string(r.decimal), ".")
}

package convert

import (
	"encoding"
	"fmt"
	"math/big"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"converter-kit/temporal"
)

var (
	stringType        = reflect.TypeFor[string]()
	durationType      = reflect.TypeFor[time.Duration]()
	dateType          = reflect.TypeFor[temporal.Date]()
	reflectTypeType   = reflect.TypeFor[reflect.Type]()
	tagType           = reflect.TypeFor[language.Tag]()
	urlType           = reflect.TypeFor[url.URL]()
	urlPtrType        = reflect.TypeFor[*url.URL]()
	regexpPtrType     = reflect.TypeFor[*regexp.Regexp]()
	locationPtrType   = reflect.TypeFor[*time.Location]()
	uuidType          = reflect.TypeFor[uuid.UUID]()
	bigIntPtrType     = reflect.TypeFor[*big.Int]()
	bigFloatPtrType   = reflect.TypeFor[*big.Float]()
	bigRatPtrType     = reflect.TypeFor[*big.Rat]()
	textUnmarshalType = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshalType   = reflect.TypeFor[encoding.TextMarshaler]()
	stringerType      = reflect.TypeFor[fmt.Stringer]()
)

// builtinTypes are resolvable by name in every registry.
func builtinTypes() []reflect.Type {
	types := []reflect.Type{
		reflect.TypeFor[bool](), stringType,
		reflect.TypeFor[int](), reflect.TypeFor[int8](), reflect.TypeFor[int16](),
		reflect.TypeFor[int32](), reflect.TypeFor[int64](),
		reflect.TypeFor[uint](), reflect.TypeFor[uint8](), reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](), reflect.TypeFor[uint64](), reflect.TypeFor[uintptr](),
		reflect.TypeFor[float32](), reflect.TypeFor[float64](),
		reflect.TypeFor[complex64](), reflect.TypeFor[complex128](),
		reflect.TypeFor[any](), reflect.TypeFor[error](),
		durationType, tagType, urlType, uuidType,
		reflect.TypeFor[regexp.Regexp](), reflect.TypeFor[time.Location](),
		reflect.TypeFor[big.Int](), reflect.TypeFor[big.Float](), reflect.TypeFor[big.Rat](),
	}

	return append(types, temporal.Family()...)
}

// typeTable resolves type names. Named types are known by their qualified
// name ("net/url.URL") and by their printed name ("url.URL").
type typeTable map[string]reflect.Type

func (tt typeTable) add(t reflect.Type) {
	tt[t.String()] = t
	if q := qualifiedName(t); q != t.String() {
		tt[q] = t
	}
}

func (tt typeTable) lookup(name string) (reflect.Type, bool) {
	name = strings.TrimSpace(name)

	if t, ok := tt[name]; ok {
		return t, true
	}

	switch {
	case strings.HasPrefix(name, "*"):
		if elem, ok := tt.lookup(name[1:]); ok {
			return reflect.PointerTo(elem), true
		}
	case strings.HasPrefix(name, "[]"):
		if elem, ok := tt.lookup(name[2:]); ok {
			return reflect.SliceOf(elem), true
		}
	case strings.HasPrefix(name, "map["):
		if key, value, ok := splitMapName(name); ok {
			kt, kok := tt.lookup(key)
			vt, vok := tt.lookup(value)
			if kok && vok && kt.Comparable() {
				return reflect.MapOf(kt, vt), true
			}
		}
	}

	return nil, false
}

// splitMapName splits "map[K]V" into K and V, honoring nested brackets in K.
func splitMapName(name string) (key, value string, ok bool) {
	depth := 0
	for i := len("map"); i < len(name); i++ {
		switch name[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return name[len("map["):i], name[i+1:], true
			}
		}
	}

	return "", "", false
}

func qualifiedName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

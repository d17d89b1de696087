package convert

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"converter-kit/primitive"
	"converter-kit/temporal"
)

var (
	localDateLayouts = []string{"2006-01-02", "20060102", "2006/01/02", "02.01.2006", "Jan 2, 2006", "2 Jan 2006"}
	localTimeLayouts = []string{"15:04:05.999999999", "15:04:05", "15:04", "3:04:05PM", "3:04PM", "3:04 PM"}

	localDateTimeLayouts = []string{
		"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04", "2006-01-02 15:04",
	}

	instantLayouts = []string{
		time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999 -0700 MST",
		time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC850,
		time.ANSIC, time.UnixDate, time.RubyDate,
	}
)

// layouts lists the patterns tried when parsing text into t, configured
// patterns first.
func (r *Registry) layouts(t reflect.Type) []string {
	cfg := r.config

	var layouts []string
	switch t {
	case reflect.TypeFor[temporal.LocalDate]():
		layouts = append(layouts, cfg.DatePattern)
		layouts = append(layouts, localDateLayouts...)
	case reflect.TypeFor[temporal.LocalTime]():
		layouts = append(layouts, cfg.TimePattern)
		layouts = append(layouts, localTimeLayouts...)
	case reflect.TypeFor[temporal.LocalDateTime]():
		layouts = append(layouts, cfg.DatePattern+"T"+cfg.TimePattern, cfg.DatePattern+" "+cfg.TimePattern)
		layouts = append(layouts, localDateTimeLayouts...)
		layouts = append(layouts, instantLayouts...)
	default:
		layouts = append(layouts, cfg.TimestampPattern)
		layouts = append(layouts, instantLayouts...)
		layouts = append(layouts, localDateTimeLayouts...)
		layouts = append(layouts, cfg.DatePattern)
		layouts = append(layouts, localDateLayouts...)
	}

	return dedupe(layouts)
}

func dedupe(layouts []string) []string {
	seen := make(map[string]struct{}, len(layouts))
	out := layouts[:0]

	for _, layout := range layouts {
		if _, ok := seen[layout]; ok {
			continue
		}

		seen[layout] = struct{}{}
		out = append(out, layout)
	}

	return out
}

var errNoLayout = errors.New("text matches no date or time pattern")

func (r *Registry) parseTemporal(s string, dst reflect.Type, layouts []string) (reflect.Value, error) {
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, r.location)
		if err != nil {
			continue
		}

		out, ok := temporal.FromTime(t, dst, t.Location())
		if !ok {
			break
		}

		return reflect.ValueOf(out), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %q", errNoLayout, s)
}

// temporalConverter converts between family members through time.Time.
// The registry zone stands in only where the source has none: a time.Time
// or OffsetDateTime keeps its own wall clock in a local target.
func temporalConverter(r *Registry, src, dst reflect.Type, _ pending) Converter {
	if !temporal.IsTemporal(src) || !temporal.IsTemporal(dst) {
		return nil
	}

	loc := r.location

	return newConverter("temporal", src, dst, func(v reflect.Value) (reflect.Value, error) {
		value := v.Interface()

		t, ok := temporal.ToTime(value, loc)
		if !ok {
			return reflect.Value{}, failedf(src, dst, value, "not a temporal value")
		}

		out, _ := temporal.FromTime(t, dst, temporal.Zone(value, loc))

		return reflect.ValueOf(out), nil
	})
}

// epochConverter maps temporal.Date to and from epoch milliseconds, and
// time.Time to and from Unix seconds.
func epochConverter(_ *Registry, src, dst reflect.Type, _ pending) Converter {
	srcTime := primitive.FromReflectType(src) == primitive.KindTime
	dstTime := primitive.FromReflectType(dst) == primitive.KindTime

	switch {
	case src == dateType && primitive.FromKind(dst).IsInteger():
		return newConverter("epoch", src, dst, func(v reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(v.Interface().(temporal.Date).UnixMilli()).Convert(dst), nil
		})
	case dst == dateType && primitive.FromKind(src).IsInteger():
		return newConverter("epoch", src, dst, func(v reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(temporal.UnixMilli(v.Convert(reflect.TypeFor[int64]()).Int())), nil
		})
	case srcTime && primitive.FromKind(dst).IsInteger():
		return newConverter("epoch", src, dst, func(v reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(v.Interface().(time.Time).Unix()).Convert(dst), nil
		})
	case dstTime && primitive.FromKind(src).IsInteger():
		return newConverter("epoch", src, dst, func(v reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(time.Unix(v.Convert(reflect.TypeFor[int64]()).Int(), 0)), nil
		})
	}

	return nil
}

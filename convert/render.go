package convert

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"converter-kit/config"
	"converter-kit/temporal"
)

// calendarTokens are the layout elements that print month and weekday
// names, longest first as time.Format matches them.
var calendarTokens = []string{"January", "Monday", "Jan", "Mon"}

// renderer produces the canonical text of a value. It is not safe for
// concurrent use because a cases.Caser keeps state.
type renderer struct {
	cfg     config.Config
	loc     *time.Location
	decimal rune
	caser   *cases.Caser
}

func newRenderer(cfg config.Config, tag language.Tag, loc *time.Location, decimal rune) *renderer {
	rd := &renderer{cfg: cfg, loc: loc, decimal: decimal}

	var caser cases.Caser
	switch cfg.Capitalization {
	case config.CapitalizationUpper:
		caser = cases.Upper(tag)
	case config.CapitalizationLower:
		caser = cases.Lower(tag)
	case config.CapitalizationTitle:
		caser = cases.Title(tag)
	default:
		return rd
	}

	rd.caser = &caser

	return rd
}

// decimalSeparator returns the rune tag uses between integer and fraction
// digits.
func decimalSeparator(tag language.Tag) rune {
	for _, r := range message.NewPrinter(tag).Sprintf("%.1f", 1.5) {
		if !unicode.IsDigit(r) {
			return r
		}
	}

	return '.'
}

func (rd *renderer) format(v any) string {
	if v == nil {
		return rd.cfg.NullSubstitute
	}

	rv := reflect.ValueOf(v)
	if isNil(rv) {
		return rd.cfg.NullSubstitute
	}

	switch tv := v.(type) {
	case string:
		return tv
	case time.Time:
		return rd.formatTime(tv, rd.cfg.TimestampPattern)
	case temporal.Date:
		return rd.formatTime(tv.In(rd.loc), rd.cfg.TimestampPattern)
	case temporal.Timestamp:
		return rd.formatTime(tv.In(rd.loc), rd.cfg.TimestampPattern)
	case temporal.OffsetDateTime:
		return rd.formatTime(tv.Time(), rd.cfg.TimestampPattern)
	case temporal.LocalDate:
		return rd.formatTime(tv.In(time.UTC), rd.cfg.DatePattern)
	case temporal.LocalTime:
		return rd.formatTime(tv.On(temporal.Epoch, time.UTC), rd.cfg.TimePattern)
	case temporal.LocalDateTime:
		return rd.formatTime(tv.In(time.UTC), rd.cfg.DatePattern+"T"+rd.cfg.TimePattern)
	case time.Duration:
		return tv.String()
	case reflect.Type:
		return tv.String()
	case *big.Int:
		return tv.String()
	case *big.Float:
		return rd.localize(tv.Text('g', -1))
	case *big.Rat:
		return tv.RatString()
	case []byte:
		return string(tv)
	case encoding.TextMarshaler:
		if text, err := tv.MarshalText(); err == nil {
			return string(text)
		}
	case fmt.Stringer:
		return tv.String()
	case error:
		return tv.Error()
	}

	switch rv.Kind() {
	case reflect.Ptr:
		return rd.format(rv.Elem().Interface())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return rd.localize(strconv.FormatFloat(rv.Float(), 'f', -1, 32))
	case reflect.Float64:
		return rd.localize(strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = rd.format(rv.Index(i).Interface())
		}

		return strings.Join(parts, rd.cfg.ListSeparator)
	case reflect.Map:
		if isSet(rv.Type()) {
			members := setMembers(rv)
			parts := make([]string, len(members))
			for i, member := range members {
				parts[i] = rd.format(member.Interface())
			}

			return strings.Join(parts, rd.cfg.ListSeparator)
		}
	case reflect.Struct:
		// methods declared on the pointer receiver
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)

		if m, ok := ptr.Interface().(encoding.TextMarshaler); ok {
			if text, err := m.MarshalText(); err == nil {
				return string(text)
			}
		}

		if s, ok := ptr.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}

	return fmt.Sprint(v)
}

// formatTime formats t with layout, applying the capitalization policy to
// month and weekday names only. Literal text and zone names stay as written.
func (rd *renderer) formatTime(t time.Time, layout string) string {
	if rd.caser == nil {
		return t.Format(layout)
	}

	var b strings.Builder

	start := 0
	for i := 0; i < len(layout); {
		token := calendarToken(layout[i:])
		if token == "" {
			i++
			continue
		}

		b.WriteString(t.Format(layout[start:i]))
		b.WriteString(rd.caser.String(t.Format(token)))

		i += len(token)
		start = i
	}

	b.WriteString(t.Format(layout[start:]))

	return b.String()
}

func calendarToken(layout string) string {
	for _, token := range calendarTokens {
		if strings.HasPrefix(layout, token) {
			return token
		}
	}

	return ""
}

func (rd *renderer) localize(s string) string {
	if rd.decimal == '.' {
		return s
	}

	return strings.Replace(s, ".", string(rd.decimal), 1)
}

package temporal

import (
	"reflect"
	"time"
)

var (
	timeType           = reflect.TypeFor[time.Time]()
	dateType           = reflect.TypeFor[Date]()
	timestampType      = reflect.TypeFor[Timestamp]()
	offsetDateTimeType = reflect.TypeFor[OffsetDateTime]()
	localDateType      = reflect.TypeFor[LocalDate]()
	localTimeType      = reflect.TypeFor[LocalTime]()
	localDateTimeType  = reflect.TypeFor[LocalDateTime]()
)

// Family lists the types that convert into each other.
func Family() []reflect.Type {
	return []reflect.Type{
		timeType, dateType, timestampType, offsetDateTimeType,
		localDateType, localTimeType, localDateTimeType,
	}
}

// IsTemporal reports whether t belongs to the family.
func IsTemporal(t reflect.Type) bool {
	switch t {
	case timeType, dateType, timestampType, offsetDateTimeType,
		localDateType, localTimeType, localDateTimeType:
		return true
	default:
		return false
	}
}

// IsLocal reports whether t is a wall-clock type without a zone.
func IsLocal(t reflect.Type) bool {
	return t == localDateType || t == localTimeType || t == localDateTimeType
}

// HasNanos reports whether t keeps sub-millisecond precision.
func HasNanos(t reflect.Type) bool {
	return IsTemporal(t) && t != dateType && t != localDateType
}

// ToTime returns the instant of a family value. Wall-clock values are
// interpreted in loc; LocalTime is placed on Epoch.
func ToTime(v any, loc *time.Location) (time.Time, bool) {
	switch tv := v.(type) {
	case time.Time:
		return tv, true
	case Date:
		return tv.In(loc), true
	case Timestamp:
		return tv.In(loc), true
	case OffsetDateTime:
		return tv.Time(), true
	case LocalDate:
		return tv.In(loc), true
	case LocalTime:
		return tv.On(Epoch, loc), true
	case LocalDateTime:
		return tv.In(loc), true
	default:
		return time.Time{}, false
	}
}

// Zone returns the zone a family value carries: the location of a
// time.Time and the offset of an OffsetDateTime. Date, Timestamp and the
// wall-clock types have none and get fallback.
func Zone(v any, fallback *time.Location) *time.Location {
	switch tv := v.(type) {
	case time.Time:
		return tv.Location()
	case OffsetDateTime:
		return tv.Time().Location()
	default:
		return fallback
	}
}

// FromTime converts an instant into a value of target. Wall-clock targets
// read the fields of t as seen in loc; pass Zone of the source to keep the
// wall clock it was written with.
func FromTime(t time.Time, target reflect.Type, loc *time.Location) (any, bool) {
	switch target {
	case timeType:
		return t, true
	case dateType:
		return DateOf(t), true
	case timestampType:
		return TimestampOf(t), true
	case offsetDateTimeType:
		return OffsetOf(t), true
	case localDateType:
		return LocalDateOf(t.In(loc)), true
	case localTimeType:
		return LocalTimeOf(t.In(loc)), true
	case localDateTimeType:
		return LocalDateTimeOf(t.In(loc)), true
	default:
		return nil, false
	}
}

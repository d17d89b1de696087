package temporal

import (
	"time"
)

// Date is an instant with millisecond precision.
type Date struct {
	ms int64
}

// UnixMilli returns the Date ms milliseconds after the Unix epoch.
func UnixMilli(ms int64) Date {
	return Date{ms: ms}
}

// DateOf truncates t to millisecond precision.
func DateOf(t time.Time) Date {
	return Date{ms: t.UnixMilli()}
}

// UnixMilli returns the milliseconds since the Unix epoch.
func (d Date) UnixMilli() int64 { return d.ms }

// In returns the instant as a time.Time in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.UnixMilli(d.ms).In(loc)
}

func (d Date) String() string {
	return d.In(time.UTC).Format("2006-01-02T15:04:05.000Z07:00")
}

// Timestamp is an instant with nanosecond precision.
type Timestamp struct {
	sec  int64
	nsec int32
}

// TimestampOf returns the instant of t.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{sec: t.Unix(), nsec: int32(t.Nanosecond())}
}

// Unix returns the seconds and nanoseconds since the Unix epoch.
func (ts Timestamp) Unix() (sec int64, nsec int32) { return ts.sec, ts.nsec }

// In returns the instant as a time.Time in loc.
func (ts Timestamp) In(loc *time.Location) time.Time {
	return time.Unix(ts.sec, int64(ts.nsec)).In(loc)
}

func (ts Timestamp) String() string {
	return ts.In(time.UTC).Format(time.RFC3339Nano)
}

// OffsetDateTime is an instant seen at a fixed offset from UTC.
type OffsetDateTime struct {
	t time.Time
}

// OffsetOf keeps the instant of t and freezes its current UTC offset.
func OffsetOf(t time.Time) OffsetDateTime {
	_, offset := t.Zone()

	return OffsetDateTime{t: t.In(time.FixedZone("", offset)).Round(0)}
}

// Time returns the instant at its offset.
func (o OffsetDateTime) Time() time.Time { return o.t }

// Offset returns the offset east of UTC in seconds.
func (o OffsetDateTime) Offset() int {
	_, offset := o.t.Zone()
	return offset
}

// Equal reports whether o and other describe the same instant at the same offset.
func (o OffsetDateTime) Equal(other OffsetDateTime) bool {
	return o.t.Equal(other.t) && o.Offset() == other.Offset()
}

func (o OffsetDateTime) String() string {
	return o.t.Format(time.RFC3339Nano)
}

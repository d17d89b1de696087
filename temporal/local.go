package temporal

import (
	"fmt"
	"time"
)

// LocalDate is a calendar date without a time zone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// LocalDateOf returns the wall-clock date of t in its own location.
func LocalDateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// In returns midnight of the date in loc.
func (d LocalDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// LocalTime is a wall-clock time of day without a date or zone.
type LocalTime struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// Epoch is the date LocalTime values are placed on when an instant is needed.
var Epoch = LocalDate{Year: 1970, Month: time.January, Day: 1}

// LocalTimeOf returns the wall-clock time of t in its own location.
func LocalTimeOf(t time.Time) LocalTime {
	h, m, s := t.Clock()
	return LocalTime{Hour: h, Minute: m, Second: s, Nanosecond: t.Nanosecond()}
}

// On places the time on date d in loc.
func (lt LocalTime) On(d LocalDate, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, lt.Hour, lt.Minute, lt.Second, lt.Nanosecond, loc)
}

func (lt LocalTime) String() string {
	return lt.On(Epoch, time.UTC).Format("15:04:05.999999999")
}

// LocalDateTime is a wall-clock date and time without a zone.
type LocalDateTime struct {
	Date LocalDate
	Time LocalTime
}

// LocalDateTimeOf returns the wall-clock date and time of t in its own location.
func LocalDateTimeOf(t time.Time) LocalDateTime {
	return LocalDateTime{Date: LocalDateOf(t), Time: LocalTimeOf(t)}
}

// In interprets the wall clock in loc.
func (dt LocalDateTime) In(loc *time.Location) time.Time {
	return dt.Time.On(dt.Date, loc)
}

func (dt LocalDateTime) String() string {
	return dt.In(time.UTC).Format("2006-01-02T15:04:05.999999999")
}

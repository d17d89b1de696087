// Package temporal holds the date and time value types converted by the
// registry alongside time.Time.
//
// Key types:
//   - Date: millisecond precision instant
//   - Timestamp: nanosecond precision instant
//   - OffsetDateTime: instant with a fixed UTC offset
//   - LocalDate, LocalTime, LocalDateTime: wall-clock values without a zone
package temporal

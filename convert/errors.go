package convert

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrConversionUnsupported = errors.New("conversion unsupported")
	ErrConversionFailed      = errors.New("conversion failed")
)

// UnsupportedError reports that no converter family handles a pair of types.
type UnsupportedError struct {
	Source reflect.Type
	Target reflect.Type
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrConversionUnsupported, typeString(e.Source), typeString(e.Target))
}

// Is makes errors.Is(err, ErrConversionUnsupported) hold.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrConversionUnsupported
}

// FailedError reports that a concrete value could not be converted.
type FailedError struct {
	Source reflect.Type
	Target reflect.Type
	Value  any
	Err    error
}

func (e *FailedError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s: value %#v", ErrConversionFailed, typeString(e.Source), typeString(e.Target), e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the parse or format error behind the failure.
func (e *FailedError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConversionFailed) hold.
func (e *FailedError) Is(target error) bool {
	return target == ErrConversionFailed
}

func failed(src, dst reflect.Type, value any, err error) error {
	return &FailedError{Source: src, Target: dst, Value: value, Err: err}
}

func failedf(src, dst reflect.Type, value any, format string, args ...any) error {
	return failed(src, dst, value, fmt.Errorf(format, args...))
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}

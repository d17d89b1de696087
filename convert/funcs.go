package convert

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"converter-kit/utils"
)

var (
	ErrIsNotAConverter     = errors.New("provided function is not a recognizable converter")
	ErrConverterIsNotAFunc = errors.New("provided converter is not a function")
	ErrDoublePointer       = errors.New("converter function does not support double pointers")
)

var errorType = reflect.TypeFor[error]()

// funcConverter calls a user supplied conversion function.
type funcConverter struct {
	src, dst reflect.Type
	name     string
	fn       reflect.Value
	hasBool  bool
	hasErr   bool
}

// parseFunc inspects fn and wraps it as a converter.
//
// Supports signatures:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
//
// A false bool result means the value has no conversion and maps to nil.
func parseFunc(fn any) (*funcConverter, error) {
	if fn == nil {
		return nil, ErrConverterIsNotAFunc
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func || fnVal.IsNil() {
		return nil, ErrConverterIsNotAFunc
	}

	if fnType.NumIn() != 1 || fnType.IsVariadic() || fnType.NumOut() == 0 {
		return nil, ErrIsNotAConverter
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Ptr && src.Elem().Kind() == reflect.Ptr {
		return nil, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return nil, ErrDoublePointer
	}

	c := &funcConverter{src: src, dst: dst, fn: fnVal, name: funcName(fnVal)}

	switch fnType.NumOut() {
	default:
		return nil, ErrIsNotAConverter

	case 1:
		return c, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return nil, ErrIsNotAConverter
		case last.Kind() == reflect.Bool:
			c.hasBool = true
		case last == errorType:
			c.hasErr = true
		}

		return c, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || terr != errorType {
			return nil, ErrIsNotAConverter
		}

		c.hasBool = true
		c.hasErr = true

		return c, nil
	}
}

// funcName returns "pkg.Func" for a named function.
func funcName(fnVal reflect.Value) string {
	fnPC := runtime.FuncForPC(fnVal.Pointer())
	if fnPC == nil {
		return "func"
	}

	full := fnPC.Name()
	dir, base := path.Split(full)
	if dir == "" {
		return full
	}

	pkg, name := utils.Unpack2(strings.SplitN(base, ".", 2))
	if name == "" {
		return base
	}

	return utils.Second(path.Split(pkg)) + "." + name
}

func (c *funcConverter) Name() string         { return c.name }
func (c *funcConverter) Source() reflect.Type { return c.src }
func (c *funcConverter) Target() reflect.Type { return c.dst }
func (c *funcConverter) Reusable() bool       { return true }

func (c *funcConverter) Convert(value any) (any, error) {
	rv, ok, err := sourceValue(c.src, c.dst, value)
	if !ok || err != nil {
		return nil, err
	}

	out, err := c.call(rv)
	if err != nil {
		return nil, failed(c.src, c.dst, value, err)
	}

	if !out.IsValid() || isNil(out) {
		return nil, nil
	}

	return out.Interface(), nil
}

func (c *funcConverter) call(rv reflect.Value) (out reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", c.name, r)
		}
	}()

	results := c.fn.Call([]reflect.Value{rv})

	if c.hasErr {
		if e, _ := results[len(results)-1].Interface().(error); e != nil {
			return reflect.Value{}, e
		}
	}

	if c.hasBool && !results[1].Bool() {
		return reflect.Value{}, nil
	}

	return results[0], nil
}

package convert

import (
	"reflect"
	"sync"
)

// Converter turns values of Source into values of Target. Convert(nil) is
// always (nil, nil); so is a nil pointer, map, slice, interface, func or
// channel.
type Converter interface {
	Name() string
	Source() reflect.Type
	Target() reflect.Type
	Convert(value any) (any, error)
	// Reusable reports whether Convert may be called concurrently.
	Reusable() bool
}

// convertFunc converts a non-nil value of the converter's source type. An
// invalid result stands for nil.
type convertFunc func(v reflect.Value) (reflect.Value, error)

type converter struct {
	name     string
	src, dst reflect.Type
	fn       convertFunc
	reusable bool
}

func newConverter(name string, src, dst reflect.Type, fn convertFunc) *converter {
	return &converter{name: name, src: src, dst: dst, fn: fn, reusable: true}
}

func (c *converter) Name() string         { return c.name }
func (c *converter) Source() reflect.Type { return c.src }
func (c *converter) Target() reflect.Type { return c.dst }
func (c *converter) Reusable() bool       { return c.reusable }

func (c *converter) Convert(value any) (any, error) {
	rv, ok, err := sourceValue(c.src, c.dst, value)
	if !ok || err != nil {
		return nil, err
	}

	out, err := c.fn(rv)
	if err != nil {
		return nil, err
	}

	if !out.IsValid() {
		return nil, nil
	}

	return out.Interface(), nil
}

// sourceValue reflects value as src. ok is false for nil values.
func sourceValue(src, dst reflect.Type, value any) (reflect.Value, bool, error) {
	if value == nil {
		return reflect.Value{}, false, nil
	}

	rv := reflect.ValueOf(value)
	if isNil(rv) {
		return reflect.Value{}, false, nil
	}

	if rv.Type() == src || src.Kind() == reflect.Interface {
		return rv, true, nil
	}

	if rv.Type().ConvertibleTo(src) && rv.Kind() == src.Kind() {
		return rv.Convert(src), true, nil
	}

	return reflect.Value{}, false, failedf(src, dst, value, "value of type %s given", rv.Type())
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// assign stores out into dst, converting between identical underlying types.
// A nil out leaves the zero value.
func assign(dst reflect.Value, out any) {
	if out == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return
	}

	ov := reflect.ValueOf(out)
	if !ov.Type().AssignableTo(dst.Type()) {
		ov = ov.Convert(dst.Type())
	}

	dst.Set(ov)
}

// identical passes values through, converting named and unnamed forms of
// the same type.
func identical(src, dst reflect.Type) *converter {
	return newConverter("identity", src, dst, func(v reflect.Value) (reflect.Value, error) {
		if dst.Kind() == reflect.Interface || v.Type() == dst {
			return v, nil
		}

		return v.Convert(dst), nil
	})
}

// dynamicConverter dispatches on the runtime type of values held by an
// interface-typed source.
type dynamicConverter struct {
	registry *Registry
	src, dst reflect.Type
}

func (c *dynamicConverter) Name() string         { return "dynamic" }
func (c *dynamicConverter) Source() reflect.Type { return c.src }
func (c *dynamicConverter) Target() reflect.Type { return c.dst }
func (c *dynamicConverter) Reusable() bool       { return true }

func (c *dynamicConverter) Convert(value any) (any, error) {
	if value == nil || isNil(reflect.ValueOf(value)) {
		return nil, nil
	}

	inner, err := c.registry.CreateConverter(reflect.TypeOf(value), c.dst)
	if err != nil {
		return nil, err
	}

	return inner.Convert(value)
}

// lazyConverter stands in for a pair whose converter is still being built,
// which happens for recursive types. It reads the cache on every call.
type lazyConverter struct {
	registry *Registry
	key      ConversionKey
}

func (c *lazyConverter) Name() string         { return "lazy" }
func (c *lazyConverter) Source() reflect.Type { return c.key.Source }
func (c *lazyConverter) Target() reflect.Type { return c.key.Target }
func (c *lazyConverter) Reusable() bool       { return true }

func (c *lazyConverter) Convert(value any) (any, error) {
	inner, err := c.registry.CreateConverter(c.key.Source, c.key.Target)
	if err != nil {
		return nil, err
	}

	return inner.Convert(value)
}

// syncConverter serializes calls to a converter that is not Reusable.
type syncConverter struct {
	mu    sync.Mutex
	inner Converter
}

func synchronized(c Converter) Converter {
	if c.Reusable() {
		return c
	}

	return &syncConverter{inner: c}
}

func (c *syncConverter) Name() string         { return c.inner.Name() }
func (c *syncConverter) Source() reflect.Type { return c.inner.Source() }
func (c *syncConverter) Target() reflect.Type { return c.inner.Target() }
func (c *syncConverter) Reusable() bool       { return true }

func (c *syncConverter) Convert(value any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inner.Convert(value)
}

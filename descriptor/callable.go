package descriptor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNotAFunction = errors.New("provided callable is not a function")
	ErrNoReceiver   = errors.New("method expression has no receiver parameter")
)

var errorType = reflect.TypeFor[error]()

// Callable describes an invocable function or method. The receiver of a
// method is not part of Params.
type Callable struct {
	Owner    reflect.Type // receiver type, nil for plain functions
	Name     string
	Params   []*Type
	Variadic bool
	Results  []*Type

	fn reflect.Value
}

// NewFunc describes a plain function registered under name.
func NewFunc(name string, fn any) (*Callable, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return nil, fmt.Errorf("%s: %w", name, ErrNotAFunction)
	}

	return newCallable(name, nil, fnVal, 0), nil
}

// NewMethod describes a method expression such as (*T).Name: its first
// parameter is the receiver.
func NewMethod(name string, fn any) (*Callable, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return nil, fmt.Errorf("%s: %w", name, ErrNotAFunction)
	}

	fnType := fnVal.Type()
	if fnType.NumIn() == 0 || (fnType.IsVariadic() && fnType.NumIn() == 1) {
		return nil, fmt.Errorf("%s: %w", name, ErrNoReceiver)
	}

	return newCallable(name, fnType.In(0), fnVal, 1), nil
}

// FromMethod describes a method obtained from reflect.Type.Method.
func FromMethod(m reflect.Method) *Callable {
	return newCallable(m.Name, m.Type.In(0), m.Func, 1)
}

func newCallable(name string, owner reflect.Type, fnVal reflect.Value, skip int) *Callable {
	fnType := fnVal.Type()

	c := &Callable{
		Owner:    owner,
		Name:     name,
		Variadic: fnType.IsVariadic(),
		fn:       fnVal,
	}

	for i := skip; i < fnType.NumIn(); i++ {
		c.Params = append(c.Params, Of(fnType.In(i)))
	}

	for i := range fnType.NumOut() {
		c.Results = append(c.Results, Of(fnType.Out(i)))
	}

	return c
}

// Func returns the underlying function value. Methods take the receiver first.
func (c *Callable) Func() reflect.Value { return c.fn }

// IsMethod reports whether the callable needs a receiver.
func (c *Callable) IsMethod() bool { return c.Owner != nil }

// Arity returns the number of formal parameters, the variadic one included.
func (c *Callable) Arity() int { return len(c.Params) }

// AcceptsArity reports whether n actual arguments can fill the formals.
func (c *Callable) AcceptsArity(n int) bool {
	if c.Variadic {
		return n >= len(c.Params)-1
	}

	return n == len(c.Params)
}

// VariadicElem returns T of a trailing ...T parameter, nil otherwise.
func (c *Callable) VariadicElem() *Type {
	if !c.Variadic {
		return nil
	}

	return c.Params[len(c.Params)-1].Elem()
}

// ReturnsError reports whether the last result is an error.
func (c *Callable) ReturnsError() bool {
	return len(c.Results) > 0 && c.Results[len(c.Results)-1].Reflect() == errorType
}

func (c *Callable) String() string {
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = p.String()
	}

	if c.Variadic {
		last := len(params) - 1
		params[last] = "..." + c.Params[last].Elem().String()
	}

	name := c.Name
	if c.Owner != nil {
		name = "(" + c.Owner.String() + ")." + name
	}

	return name + "(" + strings.Join(params, ", ") + ")"
}

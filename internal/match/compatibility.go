package match

import (
	"reflect"

	"converter-kit/descriptor"
)

// Compatibility is the verdict for one formal parameter and one actual argument.
type Compatibility int

const (
	// Incompatible means no rule accepts the argument.
	Incompatible Compatibility = iota
	// NullCompatible means a nil argument fills a nil-able formal.
	NullCompatible
	// Boxed means the argument differs from the formal by one pointer to the same scalar.
	Boxed
	// Assignable means the argument type is assignable to the formal (interfaces included).
	Assignable
	// Identical means the types are the same.
	Identical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictBoxed        = "boxed"
	VerdictNull         = "null"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the verdict.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return VerdictIdentical
	case Assignable:
		return VerdictAssignable
	case Boxed:
		return VerdictBoxed
	case NullCompatible:
		return VerdictNull
	case Incompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Arg is an actual argument as seen by the checker.
type Arg struct {
	Type reflect.Type // dynamic type, nil for an untyped nil
	Nil  bool         // the value is nil (untyped, or a nil pointer, slice, map...)
}

// ArgOf describes an actual argument value.
func ArgOf(v any) Arg {
	if v == nil {
		return Arg{Nil: true}
	}

	rv := reflect.ValueOf(v)

	return Arg{Type: rv.Type(), Nil: isNil(rv)}
}

// ArgsOf describes a list of actual argument values.
func ArgsOf(values []any) []Arg {
	args := make([]Arg, len(values))
	for i, v := range values {
		args[i] = ArgOf(v)
	}

	return args
}

// ArgOfType describes an actual argument known only by its type.
func ArgOfType(t reflect.Type) Arg {
	return Arg{Type: t}
}

// TypesOf returns the dynamic types of args, nil entries for untyped nils.
func TypesOf(args []Arg) []reflect.Type {
	res := make([]reflect.Type, len(args))
	for i, a := range args {
		res[i] = a.Type
	}

	return res
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

type rule struct {
	verdict Compatibility
	accept  func(formal *descriptor.Type, arg Arg) bool
}

// rules are evaluated in order, the first accepting rule gives the verdict.
var rules = []rule{
	{Identical, func(formal *descriptor.Type, arg Arg) bool {
		return arg.Type != nil && arg.Type == formal.Reflect()
	}},
	{Assignable, func(formal *descriptor.Type, arg Arg) bool {
		return formal.AssignableFrom(arg.Type)
	}},
	{Boxed, func(formal *descriptor.Type, arg Arg) bool {
		return !arg.Nil && formal.BoxEquivalent(arg.Type)
	}},
	{NullCompatible, func(formal *descriptor.Type, arg Arg) bool {
		return arg.Nil && formal.IsNullable()
	}},
}

// Score returns the verdict of the first rule accepting arg for formal.
func Score(formal *descriptor.Type, arg Arg) Compatibility {
	for _, r := range rules {
		if r.accept(formal, arg) {
			return r.verdict
		}
	}

	return Incompatible
}

// Matches reports whether args fill formals. When variadic is set the last
// formal is a slice type []T which takes zero or more trailing arguments
// fitting T, or exactly one trailing argument fitting []T itself.
func Matches(formals []*descriptor.Type, variadic bool, args []Arg) bool {
	if !variadic || len(formals) == 0 {
		return len(formals) == len(args) && allFit(formals, args)
	}

	fixed := len(formals) - 1
	if len(args) < fixed || !allFit(formals[:fixed], args[:fixed]) {
		return false
	}

	tail := args[fixed:]
	last := formals[fixed]

	if len(tail) == 1 && Score(last, tail[0]) != Incompatible {
		return true
	}

	elem := last.Elem()
	for _, arg := range tail {
		if Score(elem, arg) == Incompatible {
			return false
		}
	}

	return true
}

// MatchesCallable applies Matches to the formals of c.
func MatchesCallable(c *descriptor.Callable, args []Arg) bool {
	return Matches(c.Params, c.Variadic, args)
}

func allFit(formals []*descriptor.Type, args []Arg) bool {
	for i, formal := range formals {
		if Score(formal, args[i]) == Incompatible {
			return false
		}
	}

	return true
}

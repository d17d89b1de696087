package invoke

import (
	"fmt"
	"reflect"

	"converter-kit/convert"
	"converter-kit/descriptor"
	"converter-kit/internal/match"
	"converter-kit/logging"
)

// Resolver looks members up by name and argument types and invokes them.
// It is safe for concurrent use.
type Resolver struct {
	registry *convert.Registry
	logger   logging.Logger
	tables   map[reflect.Type]*Table
}

// Option configures a Resolver.
type Option func(r *Resolver)

// WithRegistry sets the registry used to coerce arguments.
func WithRegistry(registry *convert.Registry) Option {
	return func(r *Resolver) {
		r.registry = registry
	}
}

// WithLogger sets the logger receiving lookup and invocation events.
func WithLogger(logger logging.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTable makes values of rt use table instead of their reflected method
// set. Generated dispatch tables are installed this way.
func WithTable(rt reflect.Type, table *Table) Option {
	return func(r *Resolver) {
		r.tables[rt] = table
	}
}

// New creates a resolver. Without WithRegistry it coerces with a registry
// in the default configuration.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		logger: logging.NoOp(),
		tables: make(map[reflect.Type]*Table),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.registry == nil {
		r.registry = convert.MustRegistry(convert.WithLogger(r.logger))
	}

	return r
}

// target returns the table of owner and, for values, the receiver.
func (r *Resolver) target(owner any, name string) (*Table, reflect.Value, error) {
	if table, ok := owner.(*Table); ok && table != nil {
		return table, reflect.Value{}, nil
	}

	if owner == nil {
		return nil, reflect.Value{}, &IllegalAccessError{Owner: "nil", Name: name, Reason: "owner is nil"}
	}

	recv := reflect.ValueOf(owner)
	if recv.Kind() == reflect.Ptr && recv.IsNil() {
		return nil, reflect.Value{}, &IllegalAccessError{Owner: recv.Type().String(), Name: name, Reason: "owner is a nil pointer"}
	}

	if table, ok := r.tables[recv.Type()]; ok {
		return table, recv, nil
	}

	return TableOf(recv.Type()), recv, nil
}

func ownerName(owner any) string {
	if _, ok := owner.(*Table); ok {
		return "table"
	}

	return fmt.Sprintf("%T", owner)
}

// Lookup returns the first member named name whose formals accept args
// without conversion.
func (r *Resolver) Lookup(owner any, name string, args ...any) (*descriptor.Callable, bool) {
	table, _, err := r.target(owner, name)
	if err != nil {
		return nil, false
	}

	return firstMatch(table.Members(name), match.ArgsOf(args))
}

func firstMatch(candidates []*descriptor.Callable, args []match.Arg) (*descriptor.Callable, bool) {
	for _, c := range candidates {
		if match.MatchesCallable(c, args) {
			return c, true
		}
	}

	return nil, false
}

// Resolve is Lookup failing with a *MemberNotFoundError that suggests close
// member names.
func (r *Resolver) Resolve(owner any, name string, args ...any) (*descriptor.Callable, error) {
	table, _, err := r.target(owner, name)
	if err != nil {
		return nil, err
	}

	actual := match.ArgsOf(args)
	if c, ok := firstMatch(table.Members(name), actual); ok {
		return c, nil
	}

	return nil, notFound(owner, name, table, actual)
}

func notFound(owner any, name string, table *Table, args []match.Arg) error {
	return &MemberNotFoundError{
		Owner:       ownerName(owner),
		Name:        name,
		Args:        match.TypesOf(args),
		Suggestions: match.Suggest(name, table.Names(), 3),
	}
}

// Invoke calls the member named name on owner, a *Table of functions or a
// value whose methods are called. With coerce set, arguments that do not
// match any member strictly are converted to the formals of the first
// member they convert to.
//
// The result is nil for members without results, the single result, the
// first result when the second is an error, or a []any of all results.
// A panic or a non-nil trailing error result fails with *InvocationError.
func (r *Resolver) Invoke(owner any, name string, coerce bool, args ...any) (any, error) {
	table, recv, err := r.target(owner, name)
	if err != nil {
		return nil, err
	}

	candidates := table.Members(name)
	actual := match.ArgsOf(args)

	c, ok := firstMatch(candidates, actual)

	var call *binding
	if ok {
		call, err = r.bind(c, args, false)
		if err != nil {
			return nil, err
		}
	} else if coerce {
		for _, candidate := range candidates {
			if !candidate.AcceptsArity(len(args)) {
				continue
			}

			if bound, err := r.bind(candidate, args, true); err == nil {
				c, call = candidate, bound
				break
			}
		}
	}

	if call == nil {
		r.logger.Debug("member not found", "owner", ownerName(owner), "name", name, "args", len(args))
		return nil, notFound(owner, name, table, actual)
	}

	if c.IsMethod() {
		if !recv.IsValid() {
			return nil, &IllegalAccessError{Owner: ownerName(owner), Name: name, Reason: "method needs a receiver"}
		}

		if !recv.Type().AssignableTo(c.Owner) {
			return nil, &IllegalAccessError{
				Owner:  ownerName(owner),
				Name:   name,
				Reason: fmt.Sprintf("method has receiver %s", c.Owner),
			}
		}

		call.in = append([]reflect.Value{recv}, call.in...)
	}

	r.logger.Debug("invoking member", "member", c.String(), "coerced", !ok)

	return invoke(c, call)
}

func invoke(c *descriptor.Callable, call *binding) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			if perr, isErr := p.(error); isErr {
				err = &InvocationError{Member: c.String(), Err: perr}
				return
			}

			err = &InvocationError{Member: c.String(), Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	var out []reflect.Value
	if call.spread {
		out = c.Func().CallSlice(call.in)
	} else {
		out = c.Func().Call(call.in)
	}

	if c.ReturnsError() {
		last := out[len(out)-1]
		if !last.IsNil() {
			return nil, &InvocationError{Member: c.String(), Err: last.Interface().(error)}
		}

		out = out[:len(out)-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		results := make([]any, len(out))
		for i, v := range out {
			results[i] = v.Interface()
		}

		return results, nil
	}
}

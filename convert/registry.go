package convert

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"golang.org/x/text/language"

	"converter-kit/config"
	"converter-kit/logging"
	"converter-kit/options"
)

// factory builds a converter for a pair or returns nil when it does not
// apply. Nested pairs are resolved through r.resolve with the same pending
// set.
type factory struct {
	name     string
	category options.CategoryEnum
	create   func(r *Registry, src, dst reflect.Type, p pending) Converter
}

// factories in resolution order; the first one returning a converter wins.
// Set in init: the fallback factory reaches build, which reads the table.
var factories []factory

func init() {
	factories = []factory{
		{"identity", options.CategoryIdentity, identityConverter},
		{"dynamic", options.CategoryNone, dynamicSource},
		{"boxing", options.CategoryBoxing, boxingConverter},
		{"bool-number", options.CategoryNumber, numericBoolConverter},
		{"number", options.CategoryNumber, numberConverter},
		{"text", options.CategoryText, textConverter},
		{"temporal", options.CategoryTemporal, temporalConverter},
		{"epoch", options.CategoryTemporal, epochConverter},
		{"structural", options.CategoryStructural, structuralConverter},
		{"bean", options.CategoryBean, beanConverter},
		{"any", options.CategoryFallback, fallback},
	}
}

// Registry creates converters and caches them per (source, target) pair.
// It is safe for concurrent use; two goroutines asking for the same new
// pair may both build a converter, and either may end up cached.
type Registry struct {
	config     config.Config
	location   *time.Location
	tag        language.Tag
	decimal    rune
	categories options.CategoryEnum
	logger     logging.Logger

	custom map[ConversionKey]Converter
	types  typeTable
	enums  map[reflect.Type][]reflect.Value

	cache sync.Map // ConversionKey -> Converter
	any   *AnyConverter
}

// Option configures a Registry.
type Option func(r *Registry) error

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(r *Registry) error {
		r.config = cfg
		return nil
	}
}

// WithLogger sets the logger receiving resolution events.
func WithLogger(logger logging.Logger) Option {
	return func(r *Registry) error {
		if logger != nil {
			r.logger = logger
		}

		return nil
	}
}

// WithCategories restricts the converter families, overriding the
// configured category names.
func WithCategories(categories options.CategoryEnum) Option {
	return func(r *Registry) error {
		r.categories = categories
		return nil
	}
}

// WithFunc registers conversion functions (see parseFunc for the accepted
// signatures). They take precedence over every built-in family.
func WithFunc(fns ...any) Option {
	return func(r *Registry) error {
		for _, fn := range fns {
			c, err := parseFunc(fn)
			if err != nil {
				return fmt.Errorf("%T: %w", fn, err)
			}

			r.custom[ConversionKey{Source: c.src, Target: c.dst}] = c
		}

		return nil
	}
}

// WithType makes types resolvable when parsing text into reflect.Type.
func WithType(types ...reflect.Type) Option {
	return func(r *Registry) error {
		for _, t := range types {
			r.types.add(t)
		}

		return nil
	}
}

// WithEnum registers named constants of integer enum types, so their
// String() text parses back into the constant.
func WithEnum(values ...any) Option {
	return func(r *Registry) error {
		for t, vs := range enumValues(values) {
			r.enums[t] = append(r.enums[t], vs...)
		}

		return nil
	}
}

// NewRegistry creates a registry with the default configuration adjusted by
// opts.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		config:     config.Default(),
		categories: -1,
		logger:     logging.NoOp(),
		custom:     make(map[ConversionKey]Converter),
		types:      make(typeTable),
		enums:      make(map[reflect.Type][]reflect.Value),
	}

	for _, t := range builtinTypes() {
		r.types.add(t)
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.config = r.config.WithDefaults()
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	// errors were ruled out by Validate
	r.location, _ = r.config.Location()
	r.tag, _ = r.config.Tag()
	if r.categories < 0 {
		r.categories, _ = r.config.CategorySet()
	}

	r.decimal = decimalSeparator(r.tag)
	r.any = NewAnyConverter(r)

	r.logger.Debug("converter registry ready",
		"categories", r.categories.String(),
		"locale", r.tag.String(),
		"zone", r.location.String(),
		"custom", len(r.custom),
	)

	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(opts ...Option) *Registry {
	r, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}

	return r
}

// Config returns the configuration in effect.
func (r *Registry) Config() config.Config { return r.config }

// Location returns the zone used for wall-clock values.
func (r *Registry) Location() *time.Location { return r.location }

// Any returns the registry's AnyConverter.
func (r *Registry) Any() *AnyConverter { return r.any }

// CreateConverter returns the converter for src -> dst, building and caching
// it on first use. It fails with an *UnsupportedError when no family applies.
func (r *Registry) CreateConverter(src, dst reflect.Type) (Converter, error) {
	return r.resolve(src, dst, pending{})
}

// Find is CreateConverter reporting failure as false.
func (r *Registry) Find(src, dst reflect.Type) (Converter, bool) {
	c, err := r.CreateConverter(src, dst)
	return c, err == nil
}

// Convert converts v into a value of dst. Nil converts to nil.
func (r *Registry) Convert(v any, dst reflect.Type) (any, error) {
	if v == nil || isNil(reflect.ValueOf(v)) {
		return nil, nil
	}

	c, err := r.CreateConverter(reflect.TypeOf(v), dst)
	if err != nil {
		return nil, err
	}

	return c.Convert(v)
}

// Reset drops every cached converter.
func (r *Registry) Reset() {
	r.cache.Clear()
}

func (r *Registry) resolve(src, dst reflect.Type, p pending) (Converter, error) {
	if src == nil || dst == nil {
		return nil, &UnsupportedError{Source: src, Target: dst}
	}

	key := ConversionKey{Source: src, Target: dst}
	if cached, ok := r.cache.Load(key); ok {
		return cached.(Converter), nil
	}

	if !p.enter(key) {
		return &lazyConverter{registry: r, key: key}, nil
	}
	defer p.leave(key)

	c, family := r.build(key, p)
	if c == nil {
		r.logger.Debug("conversion unsupported", "source", src, "target", dst)
		return nil, &UnsupportedError{Source: src, Target: dst}
	}

	c = synchronized(c)
	r.cache.Store(key, c)
	r.logger.Debug("converter created", "source", src, "target", dst, "family", family, "converter", c.Name())

	return c, nil
}

func (r *Registry) build(key ConversionKey, p pending) (Converter, string) {
	if c, ok := r.custom[key]; ok {
		return c, "func"
	}

	for _, f := range factories {
		if !r.categories.Has(f.category) {
			continue
		}

		if c := f.create(r, key.Source, key.Target, p); c != nil {
			return c, f.name
		}
	}

	return nil, ""
}

func (r *Registry) newRenderer() *renderer {
	return newRenderer(r.config, r.tag, r.location, r.decimal)
}

func identityConverter(_ *Registry, src, dst reflect.Type, _ pending) Converter {
	if src == dst || src.AssignableTo(dst) {
		return identical(src, dst)
	}

	// named and unnamed forms of one composite type, or structs with
	// identical fields
	if src.Kind() == dst.Kind() && src.ConvertibleTo(dst) {
		switch src.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Chan, reflect.Func:
			return identical(src, dst)
		}
	}

	return nil
}

func dynamicSource(r *Registry, src, dst reflect.Type, _ pending) Converter {
	if src.Kind() != reflect.Interface {
		return nil
	}

	return &dynamicConverter{registry: r, src: src, dst: dst}
}

// To converts v into a T using r.
func To[T any](r *Registry, v any) (T, error) {
	var zero T

	out, err := r.Convert(v, reflect.TypeFor[T]())
	if err != nil || out == nil {
		return zero, err
	}

	return out.(T), nil
}

package convert

import (
	"reflect"
	"sync"
)

// AnyConverter converts any value by rendering it to its canonical text and
// parsing that text into the target type. It is safe for concurrent use.
type AnyConverter struct {
	registry *Registry

	mu     sync.Mutex
	render *renderer
}

// NewAnyConverter returns a converter parsing with r and rendering with r's
// configuration.
func NewAnyConverter(r *Registry) *AnyConverter {
	return &AnyConverter{registry: r, render: r.newRenderer()}
}

// Format returns the canonical text of v. Nil renders as the null
// substitute.
func (a *AnyConverter) Format(v any) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.render.format(v)
}

// Convert renders v and parses the text into target. Values already
// assignable to target are returned unchanged.
func (a *AnyConverter) Convert(v any, target reflect.Type) (any, error) {
	if v == nil || isNil(reflect.ValueOf(v)) {
		return nil, nil
	}

	if reflect.TypeOf(v).AssignableTo(target) {
		return v, nil
	}

	parse, err := a.registry.CreateConverter(stringType, target)
	if err != nil {
		return nil, &UnsupportedError{Source: reflect.TypeOf(v), Target: target}
	}

	text := a.Format(v)
	if null := a.registry.config.NullSubstitute; null != "" && text == null {
		return nil, nil
	}

	return parse.Convert(text)
}

// fallbackConverter is the registry's last resort for a pair: render, then
// parse. It owns a renderer and so is not Reusable.
type fallbackConverter struct {
	src, dst reflect.Type
	parse    Converter
	render   *renderer
	null     string
}

func fallback(r *Registry, src, dst reflect.Type, p pending) Converter {
	if src.Kind() == reflect.String || src.Kind() == reflect.Interface {
		return nil
	}

	parse, err := r.resolve(stringType, dst, p)
	if err != nil {
		return nil
	}

	return &fallbackConverter{src: src, dst: dst, parse: parse, render: r.newRenderer(), null: r.config.NullSubstitute}
}

func (c *fallbackConverter) Name() string         { return "any" }
func (c *fallbackConverter) Source() reflect.Type { return c.src }
func (c *fallbackConverter) Target() reflect.Type { return c.dst }
func (c *fallbackConverter) Reusable() bool       { return false }

func (c *fallbackConverter) Convert(value any) (any, error) {
	if value == nil || isNil(reflect.ValueOf(value)) {
		return nil, nil
	}

	text := c.render.format(value)
	if c.null != "" && text == c.null {
		return nil, nil
	}

	out, err := c.parse.Convert(text)
	if err != nil {
		return nil, failed(c.src, c.dst, value, err)
	}

	return out, nil
}

package convert

import "reflect"

// ConversionKey identifies a cached converter.
type ConversionKey struct {
	Source reflect.Type
	Target reflect.Type
}

func (k ConversionKey) String() string {
	return typeString(k.Source) + " -> " + typeString(k.Target)
}

// pending holds the pairs being resolved by one CreateConverter call, so a
// self-referential pair resolves to a lazy converter instead of recursing.
type pending map[ConversionKey]struct{}

func (p pending) enter(key ConversionKey) bool {
	if _, exists := p[key]; exists {
		return false
	}

	p[key] = struct{}{}

	return true
}

func (p pending) leave(key ConversionKey) {
	delete(p, key)
}

package convert

import (
	"reflect"
	"strings"
)

// Chain applies converters in sequence. A nil intermediate result ends the
// chain with nil.
type Chain struct {
	steps []Converter
}

// NewChain links steps; each step's target should feed the next one's source.
func NewChain(steps ...Converter) *Chain {
	return &Chain{steps: steps}
}

func (c *Chain) Name() string {
	names := make([]string, len(c.steps))
	for i, step := range c.steps {
		names[i] = step.Name()
	}

	return strings.Join(names, "+")
}

func (c *Chain) Source() reflect.Type { return c.steps[0].Source() }
func (c *Chain) Target() reflect.Type { return c.steps[len(c.steps)-1].Target() }

func (c *Chain) Reusable() bool {
	for _, step := range c.steps {
		if !step.Reusable() {
			return false
		}
	}

	return true
}

func (c *Chain) Convert(value any) (any, error) {
	current := value

	for _, step := range c.steps {
		if current == nil {
			return nil, nil
		}

		next, err := step.Convert(current)
		if err != nil {
			return nil, err
		}

		current = next
	}

	return current, nil
}

package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Capitalization is the policy for month and weekday names in rendered dates.
type Capitalization string

const (
	CapitalizationNone  Capitalization = "none"
	CapitalizationUpper Capitalization = "upper"
	CapitalizationLower Capitalization = "lower"
	CapitalizationTitle Capitalization = "title"
)

// IsValid reports whether c is a known policy; empty counts as none.
func (c Capitalization) IsValid() bool {
	switch c {
	case "", CapitalizationNone, CapitalizationUpper, CapitalizationLower, CapitalizationTitle:
		return true
	default:
		return false
	}
}

func parseCapitalization(s string) (Capitalization, error) {
	c := Capitalization(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown capitalization %q", s)
	}

	if c == "" {
		c = CapitalizationNone
	}

	return c, nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder.
func (c *Capitalization) UnmarshalText(text []byte) error {
	parsed, err := parseCapitalization(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Capitalization) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalYAML accepts a scalar policy name.
func (c *Capitalization) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected capitalization string, got %v", node.Kind)
	}

	var str string
	if err := node.Decode(&str); err != nil {
		return err
	}

	return c.UnmarshalText([]byte(str))
}

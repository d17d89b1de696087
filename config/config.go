package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"converter-kit/options"
	"converter-kit/utils"
)

const (
	DefaultDatePattern      = "2006-01-02"
	DefaultTimePattern      = "15:04:05.999999999"
	DefaultTimestampPattern = time.RFC3339Nano
	DefaultListSeparator    = ","
	DefaultEnumProbeLimit   = 256
	MaxEnumProbeLimit       = 1 << 16
)

var ErrInvalidConfig = errors.New("invalid converter configuration")

// Config is the registry and AnyConverter configuration.
type Config struct {
	// DatePattern renders and parses LocalDate values (Go reference layout).
	DatePattern string `toml:"date_pattern" yaml:"date_pattern"`
	// TimePattern renders and parses LocalTime values.
	TimePattern string `toml:"time_pattern" yaml:"time_pattern"`
	// TimestampPattern renders and parses instants (time.Time, Date, Timestamp, OffsetDateTime).
	TimestampPattern string `toml:"timestamp_pattern" yaml:"timestamp_pattern"`
	// NullSubstitute is the text rendered for nil; when not empty it also parses back to nil.
	NullSubstitute string `toml:"null_substitute" yaml:"null_substitute"`
	// Capitalization applies to month and weekday names in rendered dates.
	Capitalization Capitalization `toml:"capitalization" yaml:"capitalization"`
	// Locale is a BCP 47 tag selecting the decimal separator of rendered numbers.
	Locale string `toml:"locale" yaml:"locale"`
	// TimeZone is the IANA zone used when a conversion needs a zone; empty means local.
	TimeZone string `toml:"time_zone" yaml:"time_zone"`
	// ListSeparator splits text into slice elements and joins rendered elements.
	ListSeparator string `toml:"list_separator" yaml:"list_separator"`
	// Categories enables converter families by name; empty enables all.
	Categories []string `toml:"categories,omitempty" yaml:"categories,omitempty"`
	// StrictNumbers makes lossy numeric conversions fail instead of wrapping silently.
	StrictNumbers bool `toml:"strict_numbers" yaml:"strict_numbers"`
	// EnumProbeLimit bounds the integer values probed when looking up an enum by name.
	EnumProbeLimit int `toml:"enum_probe_limit" yaml:"enum_probe_limit"`
}

// Default returns the configuration used when none is given.
func Default() Config {
	return Config{
		DatePattern:      DefaultDatePattern,
		TimePattern:      DefaultTimePattern,
		TimestampPattern: DefaultTimestampPattern,
		Capitalization:   CapitalizationNone,
		ListSeparator:    DefaultListSeparator,
		EnumProbeLimit:   DefaultEnumProbeLimit,
	}
}

// WithDefaults returns c with unset fields filled in from Default.
func (c Config) WithDefaults() Config {
	applyDefaults(&c)
	return c
}

// applyDefaults fills in default values for unset fields.
func applyDefaults(c *Config) {
	def := Default()

	if c.DatePattern == "" {
		c.DatePattern = def.DatePattern
	}

	if c.TimePattern == "" {
		c.TimePattern = def.TimePattern
	}

	if c.TimestampPattern == "" {
		c.TimestampPattern = def.TimestampPattern
	}

	if c.ListSeparator == "" {
		c.ListSeparator = def.ListSeparator
	}

	if c.EnumProbeLimit == 0 {
		c.EnumProbeLimit = def.EnumProbeLimit
	}
}

// Validate checks patterns, locale, zone and category names.
func (c Config) Validate() error {
	var problems []string

	for name, pattern := range map[string]string{
		"date_pattern":      c.DatePattern,
		"time_pattern":      c.TimePattern,
		"timestamp_pattern": c.TimestampPattern,
	} {
		if strings.TrimSpace(pattern) == "" {
			problems = append(problems, name+" is empty")
		}
	}

	if !c.Capitalization.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown capitalization %q", c.Capitalization))
	}

	if _, err := c.Tag(); err != nil {
		problems = append(problems, err.Error())
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}

	if _, err := c.CategorySet(); err != nil {
		problems = append(problems, err.Error())
	}

	if c.ListSeparator == "" {
		problems = append(problems, "list_separator is empty")
	}

	if !utils.IsInRange(0, c.EnumProbeLimit, MaxEnumProbeLimit) {
		problems = append(problems, fmt.Sprintf("enum_probe_limit %d is outside 0..%d", c.EnumProbeLimit, MaxEnumProbeLimit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// Tag parses Locale; an empty locale is language.Und.
func (c Config) Tag() (language.Tag, error) {
	if c.Locale == "" {
		return language.Und, nil
	}

	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("locale %q: %w", c.Locale, err)
	}

	return tag, nil
}

// Location loads TimeZone; an empty zone is time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}

	return loc, nil
}

// CategorySet combines Categories into converter family flags.
func (c Config) CategorySet() (options.CategoryEnum, error) {
	return options.ParseCategories(c.Categories)
}

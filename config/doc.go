// Package config describes how a converter registry renders and parses text:
// date and time patterns, the null substitute, calendar-name capitalization,
// locale, default zone, list separator and enabled converter families.
//
// Configuration files are YAML (.yaml, .yml) or TOML (.toml).
package config

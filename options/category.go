package options

import (
	"fmt"
	"strings"
)

// CategoryEnum selects converter factory families of a registry.
type CategoryEnum int

const (
	CategoryIdentity   CategoryEnum = 1 << iota // same type, or target assignable from source
	CategoryBoxing                              // T <-> *T, pointer lift and dereference
	CategoryNumber                              // number <-> number, bool <-> number
	CategoryText                                // text -> bool, numbers, temporal, enums, locales, types, URLs, patterns
	CategoryTemporal                            // conversions inside the temporal family
	CategoryStructural                          // slice, array, set and map element-wise conversions
	CategoryBean                                // struct property extraction
	CategoryFallback                            // render to text, then parse (AnyConverter)

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected
)

var categoryNames = []struct {
	category CategoryEnum
	name     string
}{
	{CategoryIdentity, "identity"},
	{CategoryBoxing, "boxing"},
	{CategoryNumber, "number"},
	{CategoryText, "text"},
	{CategoryTemporal, "temporal"},
	{CategoryStructural, "structural"},
	{CategoryBean, "bean"},
	{CategoryFallback, "fallback"},
}

// Has reports whether every bit of other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

// String renders the enabled categories joined by "|".
func (c CategoryEnum) String() string {
	if c == CategoryNone {
		return "none"
	}

	var parts []string
	for _, cn := range categoryNames {
		if c&cn.category != 0 {
			parts = append(parts, cn.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseCategories combines named categories. "all" enables everything, an
// empty list means all as well.
func ParseCategories(names []string) (CategoryEnum, error) {
	if len(names) == 0 {
		return CategoryAll, nil
	}

	var res CategoryEnum

next:
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			res |= CategoryAll
			continue
		}

		for _, cn := range categoryNames {
			if cn.name == name {
				res |= cn.category
				continue next
			}
		}

		return CategoryNone, fmt.Errorf("unknown converter category %q", name)
	}

	return res, nil
}

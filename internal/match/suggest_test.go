package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Levenshtein(tt.a, tt.b); got != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}

			if got := Levenshtein(tt.b, tt.a); got != tt.expected {
				t.Errorf("Levenshtein symmetry failed for (%q, %q): %d", tt.b, tt.a, got)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "getvalue", NormalizeName("GetValue"))
	assert.Equal(t, "getvalue", NormalizeName("get_value"))
	assert.Equal(t, "getvalue", NormalizeName("get-Value"))
	assert.Equal(t, "", NormalizeName(""))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("GetValue", "get_value"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestSuggest(t *testing.T) {
	known := []string{"Add", "AddAll", "Sum", "Subtract", "Reset"}

	assert.Equal(t, []string{"Add", "AddAll"}, Suggest("add", known, 0))
	assert.Equal(t, []string{"Subtract"}, Suggest("Substract", known, 1))
	assert.Empty(t, Suggest("Multiply", known, 3))
	assert.Empty(t, Suggest("Add", []string{"Add"}, 3))
}

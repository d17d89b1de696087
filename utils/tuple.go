// Package utils holds small generic helpers shared by the converter packages.
package utils

// Second drops the first of two results, e.g. Second(path.Split(p)).
func Second[T any](_ any, second T) T { return second }

// Unpack2 returns the first two elements of s. Missing elements are zero,
// extra elements are ignored.
func Unpack2[Slice ~[]T, T any](s Slice) (first, second T) {
	if len(s) > 0 {
		first = s[0]
	}

	if len(s) > 1 {
		second = s[1]
	}

	return first, second
}

package itemset

import (
	"strconv"
	"strings"
)

// String renders s as {a, b, c}. The empty itemset is {}.
func (s Itemset) String() string {
	return "{" + join(s.items, ", ") + "}"
}

// Spaced renders s as "a b c".
func (s Itemset) Spaced() string {
	return join(s.items, " ")
}

// FormatPath renders an ordered item sequence (a prefix tree path) the same
// way String renders a set, keeping the given order.
func FormatPath(path []int32) string {
	return "{" + join(path, ", ") + "}"
}

func join(items []int32, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, strconv.FormatInt(int64(item), 10))
	}
	return strings.Join(parts, sep)
}

package utils

import (
	"sort"

	"github.com/shopspring/decimal"
)

// UniqueSlice keeps first occurrences, preserving order.
func UniqueSlice[T comparable](in []T) []T {
	seen := make(map[T]bool, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// SortedKeys returns map keys in lexicographic order. Iteration over Go maps
// is randomized; every loop that feeds a deterministic computation goes
// through this.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ClampNonNegative floors a decimal at zero. Savings are displayed through
// this; the raw value is kept separately for audit.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

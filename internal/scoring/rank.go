package scoring

import (
	"cmp"
	"slices"
)

// Rankable is anything with a score total and a display label.
type Rankable interface {
	RankTotal() float64
	RankLabel() string
}

func (c CategoryScore) RankTotal() float64 { return c.Total }
func (c CategoryScore) RankLabel() string  { return c.Title }
func (c ClusterScore) RankTotal() float64  { return c.Total }
func (c ClusterScore) RankLabel() string   { return c.Name }

// TopN returns up to n items with the highest totals. Equal totals are
// ordered by ascending label. The input slice is left untouched.
func TopN[T Rankable](items []T, n int) []T {
	return firstN(sortedBy(items, descending[T]), n)
}

// BottomN returns up to n items with the lowest totals. Equal totals are
// ordered by ascending label. The input slice is left untouched.
func BottomN[T Rankable](items []T, n int) []T {
	return firstN(sortedBy(items, ascending[T]), n)
}

// SortDesc returns a copy of items ordered as TopN orders them.
func SortDesc[T Rankable](items []T) []T {
	return sortedBy(items, descending[T])
}

func descending[T Rankable](a, b T) int {
	if c := cmp.Compare(b.RankTotal(), a.RankTotal()); c != 0 {
		return c
	}
	return cmp.Compare(a.RankLabel(), b.RankLabel())
}

func ascending[T Rankable](a, b T) int {
	if c := cmp.Compare(a.RankTotal(), b.RankTotal()); c != 0 {
		return c
	}
	return cmp.Compare(a.RankLabel(), b.RankLabel())
}

func sortedBy[T any](items []T, less func(a, b T) int) []T {
	out := make([]T, len(items))
	copy(out, items)
	slices.SortStableFunc(out, less)
	return out
}

func firstN[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n:n]
}

// window returns items[lo:hi] clamped to the slice, never nil.
func window[T any](items []T, lo, hi int) []T {
	if lo > len(items) {
		lo = len(items)
	}
	if hi > len(items) {
		hi = len(items)
	}
	out := make([]T, hi-lo)
	copy(out, items[lo:hi])
	return out
}

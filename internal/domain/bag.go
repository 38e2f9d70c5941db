package domain

import (
	"slices"
	"strings"
)

// Element is the constraint for values held in a Bag: a value with a total order.
// Two elements are equal when Compare returns 0.
type Element[T any] interface {
	Compare(T) int
}

// Bag is an immutable multiset iterated in ascending order.
// The zero value is the empty bag.
type Bag[T Element[T]] struct {
	items []T
}

// NewBag builds a bag holding the given items.
func NewBag[T Element[T]](items ...T) Bag[T] {
	if len(items) == 0 {
		return Bag[T]{}
	}
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int { return a.Compare(b) })
	return Bag[T]{items: out}
}

// BagOf builds a bag holding n copies of item.
func BagOf[T Element[T]](n int, item T) Bag[T] {
	var b BagBuilder[T]
	b.Add(n, item)
	return b.Build()
}

func (b Bag[T]) Len() int      { return len(b.items) }
func (b Bag[T]) IsEmpty() bool { return len(b.items) == 0 }

// Get returns the i-th element in ascending order.
func (b Bag[T]) Get(i int) T { return b.items[i] }

// Items returns a copy of the elements in ascending order.
func (b Bag[T]) Items() []T { return slices.Clone(b.items) }

// All iterates the elements in ascending order.
func (b Bag[T]) All(yield func(T) bool) {
	for _, it := range b.items {
		if !yield(it) {
			return
		}
	}
}

// CountOf returns the multiplicity of item.
func (b Bag[T]) CountOf(item T) int {
	n := 0
	for _, it := range b.items {
		if it.Compare(item) == 0 {
			n++
		}
	}
	return n
}

// Set returns the distinct elements in ascending order.
func (b Bag[T]) Set() []T {
	return slices.CompactFunc(slices.Clone(b.items), func(x, y T) bool { return x.Compare(y) == 0 })
}

// Union returns the sum of both bags.
func (b Bag[T]) Union(o Bag[T]) Bag[T] {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return NewBag(append(slices.Clone(b.items), o.items...)...)
}

// Difference removes every element of o from b, as far as b holds it.
func (b Bag[T]) Difference(o Bag[T]) Bag[T] {
	if o.IsEmpty() || b.IsEmpty() {
		return b
	}
	var out []T
	j := 0
	for _, it := range b.items {
		for j < len(o.items) && o.items[j].Compare(it) < 0 {
			j++
		}
		if j < len(o.items) && o.items[j].Compare(it) == 0 {
			j++
			continue
		}
		out = append(out, it)
	}
	return Bag[T]{items: out}
}

// Contains reports multiset inclusion: every element of o occurs in b at least as often.
func (b Bag[T]) Contains(o Bag[T]) bool {
	if o.Len() > b.Len() {
		return false
	}
	i := 0
	for _, want := range o.items {
		for i < len(b.items) && b.items[i].Compare(want) < 0 {
			i++
		}
		if i == len(b.items) || b.items[i].Compare(want) != 0 {
			return false
		}
		i++
	}
	return true
}

// Equal reports whether both bags hold the same elements with the same multiplicities.
func (b Bag[T]) Equal(o Bag[T]) bool {
	return b.Compare(o) == 0
}

// Compare orders bags lexicographically by their ascending element sequence.
func (b Bag[T]) Compare(o Bag[T]) int {
	return slices.CompareFunc(b.items, o.items, func(x, y T) int { return x.Compare(y) })
}

// SubsetsOfSize returns every distinct sub-bag of k elements, each exactly once.
func (b Bag[T]) SubsetsOfSize(k int) []Bag[T] {
	if k < 0 || k > b.Len() {
		return nil
	}
	distinct := b.Set()
	counts := make([]int, len(distinct))
	for i, d := range distinct {
		counts[i] = b.CountOf(d)
	}

	var out []Bag[T]
	take := make([]int, len(distinct))
	var walk func(i, left int)
	walk = func(i, left int) {
		if left == 0 {
			var sb BagBuilder[T]
			for j, n := range take[:i] {
				sb.Add(n, distinct[j])
			}
			out = append(out, sb.Build())
			return
		}
		if i == len(distinct) {
			return
		}
		for n := min(counts[i], left); n >= 0; n-- {
			take[i] = n
			walk(i+1, left-n)
		}
		take[i] = 0
	}
	walk(0, k)
	return out
}

func (b Bag[T]) String() string {
	parts := make([]string, 0, len(b.items))
	for _, it := range b.items {
		parts = append(parts, toString(it))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func toString(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return "?"
}

// BagBuilder accumulates elements before freezing them into a Bag.
// The zero value is ready to use.
type BagBuilder[T Element[T]] struct {
	items []T
}

// Add appends n copies of item.
func (bb *BagBuilder[T]) Add(n int, item T) *BagBuilder[T] {
	for range n {
		bb.items = append(bb.items, item)
	}
	return bb
}

// AddAll appends every element of b.
func (bb *BagBuilder[T]) AddAll(b Bag[T]) *BagBuilder[T] {
	bb.items = append(bb.items, b.items...)
	return bb
}

func (bb *BagBuilder[T]) Len() int { return len(bb.items) }

// Build returns the accumulated bag. The builder can keep being used afterwards.
func (bb *BagBuilder[T]) Build() Bag[T] {
	return NewBag(bb.items...)
}

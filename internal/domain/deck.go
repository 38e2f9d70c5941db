package domain

import (
	"math/rand"
	"slices"
)

// Deck is an immutable shuffled pile. Index 0 is the bottom, the last element is the top.
type Deck[T Element[T]] struct {
	items []T
}

// NewDeck returns a deck holding the elements of bag, shuffled with rng.
func NewDeck[T Element[T]](bag Bag[T], rng *rand.Rand) Deck[T] {
	items := bag.Items()
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return Deck[T]{items: items}
}

func (d Deck[T]) Len() int      { return len(d.items) }
func (d Deck[T]) IsEmpty() bool { return len(d.items) == 0 }

// TopCard returns the top element.
func (d Deck[T]) TopCard() (T, error) {
	var zero T
	if d.IsEmpty() {
		return zero, invalidf("top card of an empty deck")
	}
	return d.items[len(d.items)-1], nil
}

// WithoutTopCard returns the deck minus its top element.
func (d Deck[T]) WithoutTopCard() (Deck[T], error) {
	return d.WithoutTopCards(1)
}

// TopCards returns the n top elements as a bag.
func (d Deck[T]) TopCards(n int) (Bag[T], error) {
	if err := check(n >= 0 && n <= d.Len(), "cannot take %d cards from a deck of %d", n, d.Len()); err != nil {
		return Bag[T]{}, err
	}
	return NewBag(d.items[len(d.items)-n:]...), nil
}

// WithoutTopCards returns the deck minus its n top elements.
func (d Deck[T]) WithoutTopCards(n int) (Deck[T], error) {
	if err := check(n >= 0 && n <= d.Len(), "cannot remove %d cards from a deck of %d", n, d.Len()); err != nil {
		return d, err
	}
	if n == 0 {
		return d, nil
	}
	return Deck[T]{items: d.items[: len(d.items)-n : len(d.items)-n]}, nil
}

// Bag returns the deck contents as a bag.
func (d Deck[T]) Bag() Bag[T] {
	return NewBag(d.items...)
}

// Equal reports whether both decks hold the same elements in the same order.
func (d Deck[T]) Equal(o Deck[T]) bool {
	return slices.EqualFunc(d.items, o.items, func(x, y T) bool { return x.Compare(y) == 0 })
}

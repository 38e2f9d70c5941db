package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func cards(cs ...Card) Bag[Card] { return NewBag(cs...) }

func TestBagOrderAndCounts(t *testing.T) {
	b := cards(Locomotive, Red, Black, Red)
	want := []Card{Black, Red, Red, Locomotive}
	got := b.Items()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if n := b.CountOf(Red); n != 2 {
		t.Errorf("CountOf(Red) = %d, want 2", n)
	}
	if set := b.Set(); len(set) != 3 {
		t.Errorf("Set() = %v, want 3 distinct cards", set)
	}
}

func TestBagUnionDifference(t *testing.T) {
	a := cards(Red, Red, Blue)
	b := cards(Locomotive, White)
	if got := a.Union(b).Difference(b); !got.Equal(a) {
		t.Errorf("(a+b)-b = %s, want %s", got, a)
	}
	if !a.Contains(a) {
		t.Errorf("a does not contain itself")
	}
	if a.Contains(cards(Red, Red, Red)) {
		t.Errorf("a should not contain three reds")
	}
	if got := a.Difference(cards(Red, Green)); !got.Equal(cards(Red, Blue)) {
		t.Errorf("difference = %s, want {BLUE, RED}", got)
	}
	if got := cards().Difference(a); !got.IsEmpty() {
		t.Errorf("empty minus a = %s", got)
	}
}

func TestBagSubsetsOfSize(t *testing.T) {
	b := cards(Red, Red, Blue, Locomotive)
	tests := []struct {
		k    int
		want int
	}{
		{0, 1},
		{1, 3},
		{2, 4}, // RR, RB, RL, BL
		{3, 3}, // RRB, RRL, RBL
		{4, 1},
		{5, 0},
	}
	for _, tt := range tests {
		subsets := b.SubsetsOfSize(tt.k)
		if len(subsets) != tt.want {
			t.Errorf("SubsetsOfSize(%d) = %v, want %d subsets", tt.k, subsets, tt.want)
		}
		for _, s := range subsets {
			if s.Len() != tt.k || !b.Contains(s) {
				t.Errorf("SubsetsOfSize(%d) produced %s", tt.k, s)
			}
		}
	}
	if zero := b.SubsetsOfSize(0); !zero[0].IsEmpty() {
		t.Errorf("size 0 subset is %s", zero[0])
	}
}

func TestBagBuilder(t *testing.T) {
	var bb BagBuilder[Card]
	bb.Add(2, Green).AddAll(cards(Black))
	if got := bb.Build(); !got.Equal(cards(Black, Green, Green)) {
		t.Errorf("Build() = %s", got)
	}
}

func TestDeckTopCards(t *testing.T) {
	bag := AllCardsBag()
	d := NewDeck(bag, rand.New(rand.NewSource(1)))
	if d.Len() != TotalCardsCount {
		t.Fatalf("deck size = %d, want %d", d.Len(), TotalCardsCount)
	}
	for _, n := range []int{0, 1, 5, d.Len()} {
		top, err := d.TopCards(n)
		if err != nil {
			t.Fatalf("TopCards(%d): %v", n, err)
		}
		rest, err := d.WithoutTopCards(n)
		if err != nil {
			t.Fatalf("WithoutTopCards(%d): %v", n, err)
		}
		if got := top.Union(rest.Bag()); !got.Equal(bag) {
			t.Errorf("top(%d) + rest != deck", n)
		}
	}
	if same, _ := d.WithoutTopCards(0); !same.Equal(d) {
		t.Errorf("WithoutTopCards(0) changed the deck")
	}
	if _, err := d.TopCards(d.Len() + 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("TopCards past size err = %v, want ErrInvalidArgument", err)
	}
	if _, err := (Deck[Card]{}).TopCard(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("TopCard of empty deck err = %v", err)
	}
}

func TestDeckIsReproducible(t *testing.T) {
	a := NewDeck(AllCardsBag(), rand.New(rand.NewSource(7)))
	b := NewDeck(AllCardsBag(), rand.New(rand.NewSource(7)))
	if !a.Equal(b) {
		t.Errorf("same seed gave different decks")
	}
	top, _ := a.TopCard()
	rest, _ := a.WithoutTopCard()
	if rest.Len() != a.Len()-1 || a.Len() != TotalCardsCount {
		t.Errorf("WithoutTopCard mutated the original deck")
	}
	if top == NoCard {
		t.Errorf("top card is NoCard")
	}
}

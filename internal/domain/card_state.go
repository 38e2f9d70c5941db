package domain

import (
	"math/rand"
	"slices"
)

// PublicCardState is the part of the card piles both players can see.
type PublicCardState struct {
	faceUp       [FaceUpCardsCount]Card
	deckSize     int
	discardsSize int
}

// NewPublicCardState validates and builds a public card state.
func NewPublicCardState(faceUp []Card, deckSize, discardsSize int) (PublicCardState, error) {
	if err := check(len(faceUp) == FaceUpCardsCount, "%d face-up cards", len(faceUp)); err != nil {
		return PublicCardState{}, err
	}
	if err := check(deckSize >= 0 && discardsSize >= 0, "negative pile size"); err != nil {
		return PublicCardState{}, err
	}
	s := PublicCardState{deckSize: deckSize, discardsSize: discardsSize}
	copy(s.faceUp[:], faceUp)
	return s, nil
}

func (s PublicCardState) FaceUpCards() []Card { return slices.Clone(s.faceUp[:]) }
func (s PublicCardState) DeckSize() int       { return s.deckSize }
func (s PublicCardState) DiscardsSize() int   { return s.discardsSize }
func (s PublicCardState) IsDeckEmpty() bool   { return s.deckSize == 0 }

// TotalSize counts face-up, deck and discarded cards.
func (s PublicCardState) TotalSize() int {
	return FaceUpCardsCount + s.deckSize + s.discardsSize
}

// FaceUpCard returns the card in the given slot.
func (s PublicCardState) FaceUpCard(slot int) (Card, error) {
	if err := checkSlot(slot); err != nil {
		return NoCard, err
	}
	return s.faceUp[slot], nil
}

func checkSlot(slot int) error {
	return check(slot >= 0 && slot < FaceUpCardsCount, "face-up slot %d out of range", slot)
}

// CardState adds the deck order and the discards to PublicCardState.
type CardState struct {
	PublicCardState
	deck     Deck[Card]
	discards Bag[Card]
}

// NewCardState deals the face-up cards from the top of deck.
func NewCardState(deck Deck[Card]) (CardState, error) {
	top, err := deck.TopCards(FaceUpCardsCount)
	if err != nil {
		return CardState{}, err
	}
	rest, _ := deck.WithoutTopCards(FaceUpCardsCount)
	return newCardState(top.Items(), rest, Bag[Card]{}), nil
}

func newCardState(faceUp []Card, deck Deck[Card], discards Bag[Card]) CardState {
	s := CardState{deck: deck, discards: discards}
	copy(s.faceUp[:], faceUp)
	s.deckSize = deck.Len()
	s.discardsSize = discards.Len()
	return s
}

// Discards returns the discard pile.
func (s CardState) Discards() Bag[Card] { return s.discards }

// Public drops the hidden piles.
func (s CardState) Public() PublicCardState { return s.PublicCardState }

// WithDrawnFaceUpCard replaces the face-up card in slot with the top deck card.
func (s CardState) WithDrawnFaceUpCard(slot int) (CardState, error) {
	if err := checkSlot(slot); err != nil {
		return s, err
	}
	top, err := s.deck.TopCard()
	if err != nil {
		return s, err
	}
	rest, _ := s.deck.WithoutTopCard()
	faceUp := s.FaceUpCards()
	faceUp[slot] = top
	return newCardState(faceUp, rest, s.discards), nil
}

// TopDeckCard returns the top card of the deck.
func (s CardState) TopDeckCard() (Card, error) {
	return s.deck.TopCard()
}

// WithoutTopDeckCard removes the top card of the deck.
func (s CardState) WithoutTopDeckCard() (CardState, error) {
	rest, err := s.deck.WithoutTopCard()
	if err != nil {
		return s, err
	}
	return newCardState(s.faceUp[:], rest, s.discards), nil
}

// WithDeckRecreatedFromDiscards shuffles the discards into a new deck. The deck must be empty.
func (s CardState) WithDeckRecreatedFromDiscards(rng *rand.Rand) (CardState, error) {
	if err := check(s.IsDeckEmpty(), "deck still holds %d cards", s.deckSize); err != nil {
		return s, err
	}
	return newCardState(s.faceUp[:], NewDeck(s.discards, rng), Bag[Card]{}), nil
}

// WithMoreDiscardedCards adds cards to the discards. Planes leave the game instead.
func (s CardState) WithMoreDiscardedCards(cards Bag[Card]) CardState {
	kept := cards.Difference(BagOf(cards.CountOf(Plane), Plane))
	return newCardState(s.faceUp[:], s.deck, s.discards.Union(kept))
}

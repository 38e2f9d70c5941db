package domain

import (
	"math/rand"
	"slices"
)

// PublicGameState is the game as both players see it.
type PublicGameState struct {
	ticketsCount int
	cardState    PublicCardState
	current      PlayerID
	players      [PlayerCount]PublicPlayerState
	lastPlayer   PlayerID
}

// NewPublicGameState validates and builds a public game state. lastPlayer may be NoPlayer.
func NewPublicGameState(ticketsCount int, cards PublicCardState, current PlayerID, players map[PlayerID]PublicPlayerState, lastPlayer PlayerID) (PublicGameState, error) {
	if err := check(ticketsCount >= 0, "negative ticket count %d", ticketsCount); err != nil {
		return PublicGameState{}, err
	}
	if err := check(current.Valid(), "current player %s", current); err != nil {
		return PublicGameState{}, err
	}
	if err := check(len(players) == PlayerCount, "%d player states", len(players)); err != nil {
		return PublicGameState{}, err
	}
	s := PublicGameState{ticketsCount: ticketsCount, cardState: cards, current: current, lastPlayer: lastPlayer}
	for _, id := range PlayerIDs {
		ps, ok := players[id]
		if !ok {
			return PublicGameState{}, invalidf("missing state for %s", id)
		}
		s.players[id.index()] = ps
	}
	return s, nil
}

func (s PublicGameState) TicketsCount() int          { return s.ticketsCount }
func (s PublicGameState) CanDrawTickets() bool       { return s.ticketsCount > 0 }
func (s PublicGameState) CardState() PublicCardState { return s.cardState }
func (s PublicGameState) CurrentPlayerID() PlayerID  { return s.current }
func (s PublicGameState) LastPlayer() PlayerID       { return s.lastPlayer }

// CanDrawCards reports whether deck and discards together hold enough cards for a draw turn.
func (s PublicGameState) CanDrawCards() bool {
	return s.cardState.deckSize+s.cardState.discardsSize >= FaceUpCardsCount
}

// PlayerState returns the public state of id.
func (s PublicGameState) PlayerState(id PlayerID) PublicPlayerState {
	return s.players[id.index()]
}

func (s PublicGameState) CurrentPlayerState() PublicPlayerState {
	return s.PlayerState(s.current)
}

// ClaimedRoutes lists the routes of both players, player 1 first.
func (s PublicGameState) ClaimedRoutes() []Route {
	var out []Route
	for _, ps := range s.players {
		out = append(out, ps.routes...)
	}
	return out
}

// GameState is the complete state of a game between two turns.
type GameState struct {
	ticketsCount int
	current      PlayerID
	lastPlayer   PlayerID
	tickets      Deck[Ticket]
	cards        CardState
	players      [PlayerCount]PlayerState
}

// InitialGameState shuffles the tickets and the cards, deals the initial hands and picks
// the first player.
func InitialGameState(tickets Bag[Ticket], rng *rand.Rand) (GameState, error) {
	deck := NewDeck(AllCardsBag(), rng)
	var players [PlayerCount]PlayerState
	for i := range players {
		hand, err := deck.TopCards(InitialCardsCount)
		if err != nil {
			return GameState{}, err
		}
		deck, _ = deck.WithoutTopCards(InitialCardsCount)
		if players[i], err = InitialPlayerState(hand); err != nil {
			return GameState{}, err
		}
	}
	first := PlayerIDs[rng.Intn(PlayerCount)]
	cards, err := NewCardState(deck)
	if err != nil {
		return GameState{}, err
	}
	return newGameState(NewDeck(tickets, rng), first, NoPlayer, players, cards), nil
}

// NewGameState validates and builds a game state from its parts. lastPlayer may be NoPlayer.
func NewGameState(tickets Deck[Ticket], cards CardState, current PlayerID, players map[PlayerID]PlayerState, lastPlayer PlayerID) (GameState, error) {
	if err := check(current.Valid(), "current player %s", current); err != nil {
		return GameState{}, err
	}
	if err := check(lastPlayer == NoPlayer || lastPlayer.Valid(), "last player %s", lastPlayer); err != nil {
		return GameState{}, err
	}
	var states [PlayerCount]PlayerState
	for _, id := range PlayerIDs {
		ps, ok := players[id]
		if !ok {
			return GameState{}, invalidf("missing state for %s", id)
		}
		states[id.index()] = ps
	}
	return newGameState(tickets, current, lastPlayer, states, cards), nil
}

func newGameState(tickets Deck[Ticket], current, last PlayerID, players [PlayerCount]PlayerState, cards CardState) GameState {
	return GameState{
		ticketsCount: tickets.Len(),
		current:      current,
		lastPlayer:   last,
		tickets:      tickets,
		cards:        cards,
		players:      players,
	}
}

// Public projects the state onto what both players can see.
func (s GameState) Public() PublicGameState {
	p := PublicGameState{
		ticketsCount: s.ticketsCount,
		cardState:    s.cards.Public(),
		current:      s.current,
		lastPlayer:   s.lastPlayer,
	}
	for i, ps := range s.players {
		p.players[i] = ps.Public()
	}
	return p
}

func (s GameState) TicketsCount() int         { return s.ticketsCount }
func (s GameState) CurrentPlayerID() PlayerID { return s.current }
func (s GameState) LastPlayer() PlayerID      { return s.lastPlayer }
func (s GameState) CardState() CardState      { return s.cards }

func (s GameState) PlayerState(id PlayerID) PlayerState {
	return s.players[id.index()]
}

func (s GameState) CurrentPlayerState() PlayerState {
	return s.PlayerState(s.current)
}

func (s GameState) with(ps PlayerState) [PlayerCount]PlayerState {
	players := s.players
	players[s.current.index()] = ps
	return players
}

// TopTickets returns the n tickets on top of the ticket deck.
func (s GameState) TopTickets(n int) (Bag[Ticket], error) {
	return s.tickets.TopCards(n)
}

// WithoutTopTickets removes n tickets from the ticket deck.
func (s GameState) WithoutTopTickets(n int) (GameState, error) {
	rest, err := s.tickets.WithoutTopCards(n)
	if err != nil {
		return s, err
	}
	return newGameState(rest, s.current, s.lastPlayer, s.players, s.cards), nil
}

// TopCard returns the top card of the draw pile.
func (s GameState) TopCard() (Card, error) {
	return s.cards.TopDeckCard()
}

// WithoutTopCard removes the top card of the draw pile.
func (s GameState) WithoutTopCard() (GameState, error) {
	cards, err := s.cards.WithoutTopDeckCard()
	if err != nil {
		return s, err
	}
	return newGameState(s.tickets, s.current, s.lastPlayer, s.players, cards), nil
}

// WithMoreDiscardedCards adds cards to the discards, dropping planes.
func (s GameState) WithMoreDiscardedCards(cards Bag[Card]) GameState {
	return newGameState(s.tickets, s.current, s.lastPlayer, s.players, s.cards.WithMoreDiscardedCards(cards))
}

// WithCardsDeckRecreatedIfNeeded reshuffles the discards into the deck when the deck is empty.
func (s GameState) WithCardsDeckRecreatedIfNeeded(rng *rand.Rand) GameState {
	if !s.cards.IsDeckEmpty() {
		return s
	}
	cards, _ := s.cards.WithDeckRecreatedFromDiscards(rng)
	return newGameState(s.tickets, s.current, s.lastPlayer, s.players, cards)
}

// WithInitiallyChosenTickets gives id its initial tickets. It fails when id already holds tickets.
func (s GameState) WithInitiallyChosenTickets(id PlayerID, chosen Bag[Ticket]) (GameState, error) {
	if err := check(id.Valid(), "player %s", id); err != nil {
		return s, err
	}
	ps := s.PlayerState(id)
	if err := check(ps.tickets.IsEmpty(), "%s already chose initial tickets", id); err != nil {
		return s, err
	}
	players := s.players
	players[id.index()] = ps.WithAddedTickets(chosen)
	return newGameState(s.tickets, s.current, s.lastPlayer, players, s.cards), nil
}

// WithChosenAdditionalTickets removes the drawn tickets from the deck and gives the chosen
// ones to the current player.
func (s GameState) WithChosenAdditionalTickets(drawn, chosen Bag[Ticket]) (GameState, error) {
	if err := check(drawn.Contains(chosen), "chosen tickets %s not among %s", chosen, drawn); err != nil {
		return s, err
	}
	rest, err := s.tickets.WithoutTopCards(drawn.Len())
	if err != nil {
		return s, err
	}
	players := s.with(s.CurrentPlayerState().WithAddedTickets(chosen))
	return newGameState(rest, s.current, s.lastPlayer, players, s.cards), nil
}

// WithDrawnFaceUpCard gives the current player the face-up card in slot and refills the slot.
func (s GameState) WithDrawnFaceUpCard(slot int) (GameState, error) {
	card, err := s.cards.FaceUpCard(slot)
	if err != nil {
		return s, err
	}
	cards, err := s.cards.WithDrawnFaceUpCard(slot)
	if err != nil {
		return s, err
	}
	players := s.with(s.CurrentPlayerState().WithAddedCard(card))
	return newGameState(s.tickets, s.current, s.lastPlayer, players, cards), nil
}

// WithBlindlyDrawnCard gives the current player the top card of the deck.
func (s GameState) WithBlindlyDrawnCard() (GameState, error) {
	card, err := s.cards.TopDeckCard()
	if err != nil {
		return s, err
	}
	cards, _ := s.cards.WithoutTopDeckCard()
	players := s.with(s.CurrentPlayerState().WithAddedCard(card))
	return newGameState(s.tickets, s.current, s.lastPlayer, players, cards), nil
}

// WithClaimedRoute gives the route to the current player and discards the spent cards.
func (s GameState) WithClaimedRoute(r Route, cards Bag[Card]) (GameState, error) {
	if err := check(!slices.ContainsFunc(s.Public().ClaimedRoutes(), func(o Route) bool { return o.id == r.id }), "route %s already claimed", r.id); err != nil {
		return s, err
	}
	ps, err := s.CurrentPlayerState().WithClaimedRoute(r, cards)
	if err != nil {
		return s, err
	}
	return newGameState(s.tickets, s.current, s.lastPlayer, s.with(ps), s.cards.WithMoreDiscardedCards(cards)), nil
}

// LastTurnBegins reports whether the current player just triggered the final lap.
func (s GameState) LastTurnBegins() bool {
	return s.lastPlayer == NoPlayer && s.CurrentPlayerState().CarCount() <= FinalLapCarCount
}

// ForNextTurn hands the turn over. When the final lap begins, the current player becomes the last one.
func (s GameState) ForNextTurn() GameState {
	last := s.lastPlayer
	if s.LastTurnBegins() {
		last = s.current
	}
	return newGameState(s.tickets, s.current.Next(), last, s.players, s.cards)
}

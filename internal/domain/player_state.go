package domain

import (
	"slices"
)

// PublicPlayerState is what the opponent knows about a player.
type PublicPlayerState struct {
	ticketCount int
	cardCount   int
	routes      []Route
}

// NewPublicPlayerState validates and builds a public player state.
func NewPublicPlayerState(ticketCount, cardCount int, routes []Route) (PublicPlayerState, error) {
	if err := check(ticketCount >= 0 && cardCount >= 0, "negative ticket or card count"); err != nil {
		return PublicPlayerState{}, err
	}
	return PublicPlayerState{ticketCount: ticketCount, cardCount: cardCount, routes: slices.Clip(slices.Clone(routes))}, nil
}

func (s PublicPlayerState) TicketCount() int { return s.ticketCount }
func (s PublicPlayerState) CardCount() int   { return s.cardCount }
func (s PublicPlayerState) Routes() []Route  { return slices.Clone(s.routes) }

// CarCount returns the cars left to place.
func (s PublicPlayerState) CarCount() int {
	n := InitialCarCount
	for _, r := range s.routes {
		n -= r.length
	}
	return n
}

// ClaimPoints sums the points of the claimed routes.
func (s PublicPlayerState) ClaimPoints() int {
	n := 0
	for _, r := range s.routes {
		n += r.ClaimPoints()
	}
	return n
}

// PlayerState is the full state of one player, hand and tickets included.
type PlayerState struct {
	PublicPlayerState
	tickets Bag[Ticket]
	cards   Bag[Card]
}

// NewPlayerState builds a player state.
func NewPlayerState(tickets Bag[Ticket], cards Bag[Card], routes []Route) PlayerState {
	return PlayerState{
		PublicPlayerState: PublicPlayerState{
			ticketCount: tickets.Len(),
			cardCount:   cards.Len(),
			routes:      slices.Clip(slices.Clone(routes)),
		},
		tickets: tickets,
		cards:   cards,
	}
}

// InitialPlayerState returns the state of a player holding only the initial cards.
func InitialPlayerState(cards Bag[Card]) (PlayerState, error) {
	if err := check(cards.Len() == InitialCardsCount, "%d initial cards", cards.Len()); err != nil {
		return PlayerState{}, err
	}
	return NewPlayerState(Bag[Ticket]{}, cards, nil), nil
}

func (s PlayerState) Tickets() Bag[Ticket] { return s.tickets }
func (s PlayerState) Cards() Bag[Card]     { return s.cards }

// Public drops the hand and tickets.
func (s PlayerState) Public() PublicPlayerState { return s.PublicPlayerState }

func (s PlayerState) WithAddedTickets(tickets Bag[Ticket]) PlayerState {
	return NewPlayerState(s.tickets.Union(tickets), s.cards, s.routes)
}

func (s PlayerState) WithAddedCard(c Card) PlayerState {
	return s.WithAddedCards(NewBag(c))
}

func (s PlayerState) WithAddedCards(cards Bag[Card]) PlayerState {
	return NewPlayerState(s.tickets, s.cards.Union(cards), s.routes)
}

// CanClaimRoute reports whether the player has the cars and one of the card bags the route accepts.
func (s PlayerState) CanClaimRoute(r Route) bool {
	if s.CarCount() < r.length {
		return false
	}
	for _, claim := range r.PossibleClaimCards() {
		if s.cards.Contains(claim) {
			return true
		}
	}
	return false
}

// PossibleClaimCards lists the route's claim bags the player holds, fewest locomotives first.
func (s PlayerState) PossibleClaimCards(r Route) ([]Bag[Card], error) {
	if err := check(s.CarCount() >= r.length, "%d cars left for a route of %d", s.CarCount(), r.length); err != nil {
		return nil, err
	}
	var out []Bag[Card]
	for _, claim := range r.PossibleClaimCards() {
		if !s.cards.Contains(claim) {
			continue
		}
		if slices.ContainsFunc(out, claim.Equal) {
			continue
		}
		out = append(out, claim)
	}
	slices.SortStableFunc(out, func(a, b Bag[Card]) int {
		return a.CountOf(Locomotive) - b.CountOf(Locomotive)
	})
	return out, nil
}

// PossibleAdditionalCards lists the bags of need cards the player can add to a tunnel or sky
// claim started with initial after drawn was revealed. The bags are taken from the hand
// minus initial.
func (s PlayerState) PossibleAdditionalCards(need int, initial, drawn Bag[Card]) ([]Bag[Card], error) {
	if err := check(need >= 1 && need <= AdditionalTunnelCardsCount, "%d additional cards", need); err != nil {
		return nil, err
	}
	if err := check(drawn.Len() <= AdditionalTunnelCardsCount, "%d drawn cards", drawn.Len()); err != nil {
		return nil, err
	}
	if err := check(!initial.IsEmpty() && len(initial.Set()) <= 2, "initial claim cards %s", initial); err != nil {
		return nil, err
	}

	left := s.cards.Difference(initial)
	locos := BagOf(need, Locomotive)
	if initial.CountOf(Plane) > 0 {
		if left.Contains(locos) {
			return []Bag[Card]{locos}, nil
		}
		return nil, nil
	}

	color := NoColor
	for _, c := range initial.Set() {
		if c.Color() != NoColor {
			color = c.Color()
			break
		}
	}

	var options []Bag[Card]
	if color == NoColor {
		options = []Bag[Card]{locos}
	} else {
		for i := 0; i <= need; i++ {
			var b BagBuilder[Card]
			b.Add(need-i, CarCard(color)).Add(i, Locomotive)
			options = append(options, b.Build())
		}
	}

	var out []Bag[Card]
	for _, opt := range options {
		if left.Contains(opt) {
			out = append(out, opt)
		}
	}
	return out, nil
}

// WithClaimedRoute adds the route and removes the claim cards from the hand.
func (s PlayerState) WithClaimedRoute(r Route, cards Bag[Card]) (PlayerState, error) {
	if err := check(s.cards.Contains(cards), "hand %s does not hold %s", s.cards, cards); err != nil {
		return s, err
	}
	return NewPlayerState(s.tickets, s.cards.Difference(cards), append(slices.Clip(s.routes), r)), nil
}

// Partition connects the stations of every claimed route.
func (s PlayerState) Partition() StationPartition {
	maxID := 0
	for _, r := range s.routes {
		maxID = max(maxID, r.station1.ID, r.station2.ID)
	}
	b, _ := NewPartitionBuilder(maxID + 1)
	for _, r := range s.routes {
		b.Connect(r.station1, r.station2)
	}
	return b.Build()
}

// TicketPoints sums the value of every ticket against the player's network.
func (s PlayerState) TicketPoints() int {
	p := s.Partition()
	n := 0
	for t := range s.tickets.All {
		n += t.Points(p)
	}
	return n
}

// FinalPoints is claim points plus ticket points, without any trail bonus.
func (s PlayerState) FinalPoints() int {
	return s.ClaimPoints() + s.TicketPoints()
}

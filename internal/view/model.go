package view

import (
	"tchu/internal/domain"
)

// PlayerCounts is what everybody can see about one player.
type PlayerCounts struct {
	Tickets     int
	Cards       int
	Cars        int
	ClaimPoints int
}

// Model is everything a frontend displays for one player. It is recomputed from scratch on
// every state update and never mutated afterwards.
type Model struct {
	Owner domain.PlayerID

	// Percentages of the initial ticket and card piles still left to draw.
	TicketsPercent int
	CardsPercent   int

	FaceUp     []domain.Card
	Current    domain.PlayerID
	LastPlayer domain.PlayerID

	// RouteOwners maps a claimed route id to its owner.
	RouteOwners map[string]domain.PlayerID
	Players     map[domain.PlayerID]PlayerCounts

	Tickets []domain.Ticket
	Cards   map[domain.Card]int

	// Claimable holds the routes the owner may claim right now.
	Claimable map[string]bool
}

var ticketTotal = len(domain.Tickets())

// Project builds the view-model of owner from a public state and its private state.
func Project(owner domain.PlayerID, state domain.PublicGameState, own domain.PlayerState) Model {
	cs := state.CardState()
	m := Model{
		Owner:          owner,
		TicketsPercent: percent(state.TicketsCount(), ticketTotal),
		CardsPercent:   percent(cs.DeckSize(), domain.TotalCardsCount),
		FaceUp:         cs.FaceUpCards(),
		Current:        state.CurrentPlayerID(),
		LastPlayer:     state.LastPlayer(),
		RouteOwners:    make(map[string]domain.PlayerID),
		Players:        make(map[domain.PlayerID]PlayerCounts, domain.PlayerCount),
		Tickets:        own.Tickets().Items(),
		Cards:          make(map[domain.Card]int),
		Claimable:      make(map[string]bool),
	}

	takenPairs := make(map[[2]int]bool)
	for _, id := range domain.PlayerIDs {
		ps := state.PlayerState(id)
		m.Players[id] = PlayerCounts{
			Tickets:     ps.TicketCount(),
			Cards:       ps.CardCount(),
			Cars:        ps.CarCount(),
			ClaimPoints: ps.ClaimPoints(),
		}
		for _, r := range ps.Routes() {
			m.RouteOwners[r.ID()] = id
			takenPairs[stationPair(r)] = true
		}
	}
	for _, c := range own.Cards().Set() {
		m.Cards[c] = own.Cards().CountOf(c)
	}

	if owner == state.CurrentPlayerID() {
		for _, r := range domain.Routes() {
			// A double route is closed once either of its twins is taken.
			if takenPairs[stationPair(r)] || !own.CanClaimRoute(r) {
				continue
			}
			m.Claimable[r.ID()] = true
		}
	}
	return m
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return n * 100 / total
}

func stationPair(r domain.Route) [2]int {
	a, b := r.Station1().ID, r.Station2().ID
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

package view

import (
	"maps"
	"slices"

	"tchu/internal/domain"
)

// EventKind identifies a change between two consecutive view-models.
type EventKind string

const (
	EventGaugesChanged    EventKind = "gauges_changed"
	EventFaceUpChanged    EventKind = "face_up_changed"
	EventTurnChanged      EventKind = "turn_changed"
	EventLastTurnBegan    EventKind = "last_turn_began"
	EventRouteClaimed     EventKind = "route_claimed"
	EventCountsChanged    EventKind = "counts_changed"
	EventTicketsChanged   EventKind = "tickets_changed"
	EventCardsChanged     EventKind = "cards_changed"
	EventClaimableChanged EventKind = "claimable_changed"
)

// Event is one view change with its kind-specific payload.
type Event struct {
	Kind    EventKind `json:"kind"`
	Payload any       `json:"payload"`
}

type GaugesPayload struct {
	TicketsPercent int `json:"tickets_percent"`
	CardsPercent   int `json:"cards_percent"`
}

type FaceUpPayload struct {
	Slots []int    `json:"slots"`
	Cards []string `json:"cards"`
}

type TurnPayload struct {
	Current string `json:"current"`
}

type LastTurnPayload struct {
	LastPlayer string `json:"last_player"`
}

type RouteClaimedPayload struct {
	RouteID string `json:"route_id"`
	Owner   string `json:"owner"`
}

type CountsPayload struct {
	Player      string `json:"player"`
	Tickets     int    `json:"tickets"`
	Cards       int    `json:"cards"`
	Cars        int    `json:"cars"`
	ClaimPoints int    `json:"claim_points"`
}

type TicketsPayload struct {
	Tickets []string `json:"tickets"`
}

type CardsPayload struct {
	Cards map[string]int `json:"cards"`
}

type ClaimablePayload struct {
	Routes []string `json:"routes"`
}

// Diff lists the changes from old to next in a stable order. Diffing against the zero
// Model reports everything next shows.
func Diff(old, next Model) []Event {
	var events []Event
	add := func(kind EventKind, payload any) {
		events = append(events, Event{Kind: kind, Payload: payload})
	}

	if old.TicketsPercent != next.TicketsPercent || old.CardsPercent != next.CardsPercent {
		add(EventGaugesChanged, GaugesPayload{TicketsPercent: next.TicketsPercent, CardsPercent: next.CardsPercent})
	}

	var changed FaceUpPayload
	for i, c := range next.FaceUp {
		if i >= len(old.FaceUp) || old.FaceUp[i] != c {
			changed.Slots = append(changed.Slots, i)
			changed.Cards = append(changed.Cards, c.String())
		}
	}
	if len(changed.Slots) > 0 {
		add(EventFaceUpChanged, changed)
	}

	if old.Current != next.Current {
		add(EventTurnChanged, TurnPayload{Current: next.Current.String()})
	}
	if old.LastPlayer == domain.NoPlayer && next.LastPlayer != domain.NoPlayer {
		add(EventLastTurnBegan, LastTurnPayload{LastPlayer: next.LastPlayer.String()})
	}

	for _, r := range domain.Routes() {
		owner, ok := next.RouteOwners[r.ID()]
		if !ok {
			continue
		}
		if _, had := old.RouteOwners[r.ID()]; !had {
			add(EventRouteClaimed, RouteClaimedPayload{RouteID: r.ID(), Owner: owner.String()})
		}
	}

	for _, id := range domain.PlayerIDs {
		if c, ok := next.Players[id]; ok && c != old.Players[id] {
			add(EventCountsChanged, CountsPayload{
				Player: id.String(), Tickets: c.Tickets, Cards: c.Cards, Cars: c.Cars, ClaimPoints: c.ClaimPoints,
			})
		}
	}

	if !slices.EqualFunc(old.Tickets, next.Tickets, func(a, b domain.Ticket) bool { return a.Compare(b) == 0 }) {
		p := TicketsPayload{Tickets: make([]string, len(next.Tickets))}
		for i, t := range next.Tickets {
			p.Tickets[i] = t.Text()
		}
		add(EventTicketsChanged, p)
	}

	if !maps.Equal(old.Cards, next.Cards) {
		p := CardsPayload{Cards: make(map[string]int, len(next.Cards))}
		for c, n := range next.Cards {
			p.Cards[c.String()] = n
		}
		add(EventCardsChanged, p)
	}

	if !maps.Equal(old.Claimable, next.Claimable) {
		var p ClaimablePayload
		for _, r := range domain.Routes() {
			if next.Claimable[r.ID()] {
				p.Routes = append(p.Routes, r.ID())
			}
		}
		add(EventClaimableChanged, p)
	}
	return events
}

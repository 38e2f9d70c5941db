package internal

import (
	"math"
	"slices"

	"tchu/internal/domain"
)

// Board classifies every route from one player's point of view.
type Board struct {
	Mine  map[string]bool
	Taken map[string]bool
}

func pairKey(r domain.Route) [2]int {
	a, b := r.Station1().ID, r.Station2().ID
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// NewBoard marks own routes as mine, and routes claimed by the opponent, or whose twin is
// already claimed, as taken.
func NewBoard(own domain.PlayerID, state domain.PublicGameState) Board {
	b := Board{Mine: make(map[string]bool), Taken: make(map[string]bool)}
	claimedPairs := make(map[[2]int]bool)
	for _, id := range domain.PlayerIDs {
		for _, r := range state.PlayerState(id).Routes() {
			claimedPairs[pairKey(r)] = true
			if id == own {
				b.Mine[r.ID()] = true
			} else {
				b.Taken[r.ID()] = true
			}
		}
	}
	for _, r := range domain.Routes() {
		if !b.Mine[r.ID()] && claimedPairs[pairKey(r)] {
			b.Taken[r.ID()] = true
		}
	}
	return b
}

// Free reports whether r can still be claimed by the board's owner.
func (b Board) Free(r domain.Route) bool {
	return !b.Mine[r.ID()] && !b.Taken[r.ID()]
}

// Plan is a set of routes still to claim to complete a trip.
type Plan struct {
	From, To domain.Station
	Routes   []domain.Route
	Cost     int
	Points   int
}

// Done reports whether the trip is already connected.
func (p Plan) Done() bool { return p.Cost == 0 }

// Planner finds the cheapest way to connect stations over the map.
type Planner struct {
	routes   []domain.Route
	adj      map[int][]int
	stations int
}

func NewPlanner(routes []domain.Route) *Planner {
	p := &Planner{routes: routes, adj: make(map[int][]int)}
	for i, r := range routes {
		s1, s2 := r.Station1().ID, r.Station2().ID
		p.adj[s1] = append(p.adj[s1], i)
		p.adj[s2] = append(p.adj[s2], i)
		p.stations = max(p.stations, s1+1, s2+1)
	}
	return p
}

// Path returns the routes the owner still has to claim to connect from and to, and their
// total length. Owned routes cost nothing; taken routes are impassable.
func (p *Planner) Path(b Board, from, to domain.Station) ([]domain.Route, int, bool) {
	if from.ID == to.ID {
		return nil, 0, true
	}
	n := max(p.stations, from.ID+1, to.ID+1)
	dist := make([]int, n)
	via := make([]int, n)
	seen := make([]bool, n)
	for i := range dist {
		dist[i], via[i] = math.MaxInt, -1
	}
	dist[from.ID] = 0

	for {
		u := -1
		for i := range n {
			if !seen[i] && dist[i] != math.MaxInt && (u < 0 || dist[i] < dist[u]) {
				u = i
			}
		}
		if u < 0 || u == to.ID {
			break
		}
		seen[u] = true
		for _, ri := range p.adj[u] {
			r := p.routes[ri]
			if b.Taken[r.ID()] {
				continue
			}
			cost := r.Length()
			if b.Mine[r.ID()] {
				cost = 0
			}
			v := r.Station1().ID
			if v == u {
				v = r.Station2().ID
			}
			if d := dist[u] + cost; d < dist[v] {
				dist[v], via[v] = d, ri
			}
		}
	}
	if dist[to.ID] == math.MaxInt {
		return nil, 0, false
	}

	var path []domain.Route
	for at := to.ID; at != from.ID; {
		r := p.routes[via[at]]
		if !b.Mine[r.ID()] {
			path = append(path, r)
		}
		if r.Station1().ID == at {
			at = r.Station2().ID
		} else {
			at = r.Station1().ID
		}
	}
	slices.Reverse(path)
	return path, dist[to.ID], true
}

// TicketPlan picks the trip of t worth the most points net of its remaining cost.
func (p *Planner) TicketPlan(b Board, t domain.Ticket) (Plan, bool) {
	var best Plan
	found := false
	for _, trip := range t.Trips() {
		routes, cost, ok := p.Path(b, trip.From, trip.To)
		if !ok {
			continue
		}
		cand := Plan{From: trip.From, To: trip.To, Routes: routes, Cost: cost, Points: trip.Points}
		if !found || cand.Points-cand.Cost > best.Points-best.Cost ||
			(cand.Points-cand.Cost == best.Points-best.Cost && cand.Cost < best.Cost) {
			best, found = cand, true
		}
	}
	return best, found
}

// ColorDemand counts, per colour, the cars of the given routes that require that colour.
// Colourless routes are counted under domain.NoColor.
func ColorDemand(routes []domain.Route) map[domain.Color]int {
	demand := make(map[domain.Color]int)
	for _, r := range routes {
		if r.Level() == domain.Sky {
			continue
		}
		demand[r.Color()] += r.Length()
	}
	return demand
}

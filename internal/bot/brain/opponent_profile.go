package brain

import (
	"tchu/internal/domain"
)

// OpponentProfile tracks where an opponent's network is growing.
type OpponentProfile struct {
	// Degree counts the opponent's routes ending at each station.
	Degree map[int]int
	// Recent holds the stations of the routes claimed since the previous observation.
	Recent map[int]bool
	seen   map[string]bool
}

// NewOpponentProfile initializes an empty profile.
func NewOpponentProfile() *OpponentProfile {
	return &OpponentProfile{
		Degree: make(map[int]int),
		Recent: make(map[int]bool),
		seen:   make(map[string]bool),
	}
}

// Observe records the opponent's current routes. Routes already known are ignored.
func (p *OpponentProfile) Observe(routes []domain.Route) {
	fresh := false
	for _, r := range routes {
		if p.seen[r.ID()] {
			continue
		}
		if !fresh {
			clear(p.Recent)
			fresh = true
		}
		p.seen[r.ID()] = true
		for _, s := range r.Stations() {
			p.Degree[s.ID]++
			p.Recent[s.ID] = true
		}
	}
}

// Threat rates how likely r is to be the opponent's next step: one point per endpoint
// touching its network, one more per endpoint it just extended to.
func (p *OpponentProfile) Threat(r domain.Route) int {
	threat := 0
	for _, s := range r.Stations() {
		if p.Degree[s.ID] > 0 {
			threat++
		}
		if p.Recent[s.ID] {
			threat++
		}
	}
	return threat
}

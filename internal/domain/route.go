package domain

import "fmt"

// Level is the kind of terrain a route crosses.
type Level int

const (
	Surface Level = iota
	Tunnel
	Sky
)

func (l Level) String() string {
	switch l {
	case Surface:
		return "surface"
	case Tunnel:
		return "tunnel"
	case Sky:
		return "sky"
	}
	return "unknown"
}

// Route links two distinct stations. A NoColor route accepts any single colour.
type Route struct {
	id       string
	station1 Station
	station2 Station
	length   int
	level    Level
	color    Color
}

// NewRoute validates and builds a route.
func NewRoute(id string, s1, s2 Station, length int, level Level, color Color) (Route, error) {
	if err := check(s1.ID != s2.ID, "route %s links %s to itself", id, s1.Name); err != nil {
		return Route{}, err
	}
	if err := check(length >= MinRouteLength && length <= MaxRouteLength, "route %s has length %d", id, length); err != nil {
		return Route{}, err
	}
	if err := check(id != "", "route without id"); err != nil {
		return Route{}, err
	}
	return Route{id: id, station1: s1, station2: s2, length: length, level: level, color: color}, nil
}

func (r Route) ID() string          { return r.id }
func (r Route) Station1() Station   { return r.station1 }
func (r Route) Station2() Station   { return r.station2 }
func (r Route) Length() int         { return r.length }
func (r Route) Level() Level        { return r.level }
func (r Route) Color() Color        { return r.color }
func (r Route) IsZero() bool        { return r.id == "" }
func (r Route) Stations() []Station { return []Station{r.station1, r.station2} }

// Compare orders routes by id.
func (r Route) Compare(o Route) int {
	switch {
	case r.id < o.id:
		return -1
	case r.id > o.id:
		return 1
	}
	return 0
}

func (r Route) String() string {
	return fmt.Sprintf("%s - %s", r.station1.Name, r.station2.Name)
}

// Opposite returns the station at the other end of the route.
func (r Route) Opposite(s Station) (Station, error) {
	switch s.ID {
	case r.station1.ID:
		return r.station2, nil
	case r.station2.ID:
		return r.station1, nil
	}
	return Station{}, invalidf("station %s is not on route %s", s.Name, r.id)
}

// ClaimPoints returns the points earned by claiming the route.
func (r Route) ClaimPoints() int {
	return routeClaimPoints[r.length]
}

// PossibleClaimCards lists every card bag that may be laid down to claim the route,
// fewest locomotives first.
func (r Route) PossibleClaimCards() []Bag[Card] {
	if r.level == Sky {
		return []Bag[Card]{BagOf(r.length, Plane)}
	}

	colors := Cars
	if r.color != NoColor {
		colors = []Card{CarCard(r.color)}
	}
	if r.level == Surface {
		out := make([]Bag[Card], 0, len(colors))
		for _, c := range colors {
			out = append(out, BagOf(r.length, c))
		}
		return out
	}

	maxLocos := r.length - 1
	if r.color != NoColor {
		maxLocos = r.length
	}
	var out []Bag[Card]
	for locos := 0; locos <= maxLocos; locos++ {
		for _, c := range colors {
			var b BagBuilder[Card]
			b.Add(r.length-locos, c).Add(locos, Locomotive)
			out = append(out, b.Build())
			if locos == r.length {
				break
			}
		}
	}
	if r.color == NoColor {
		out = append(out, BagOf(r.length, Locomotive))
	}
	return out
}

// AdditionalClaimCardsCount returns how many extra cards a tunnel claim costs given the
// cards drawn from the deck. A drawn card matches when it is a wildcard or shares the
// colour of a laid card.
func (r Route) AdditionalClaimCardsCount(claimCards, drawnCards Bag[Card]) (int, error) {
	if err := check(r.level == Tunnel, "route %s is not a tunnel", r.id); err != nil {
		return 0, err
	}
	if err := check(drawnCards.Len() <= AdditionalTunnelCardsCount, "%d cards drawn for tunnel", drawnCards.Len()); err != nil {
		return 0, err
	}
	n := 0
	for drawn := range drawnCards.All {
		if drawn.IsWildcard() {
			n++
			continue
		}
		for claim := range claimCards.All {
			if claim.Color() == drawn.Color() {
				n++
				break
			}
		}
	}
	return n, nil
}

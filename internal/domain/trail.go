package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Trail is a simple path over claimed routes, oriented from Station1 to Station2.
type Trail struct {
	length   int
	station1 Station
	station2 Station
	routes   []Route
}

func (t Trail) Length() int     { return t.length }
func (t Trail) Routes() []Route { return slices.Clone(t.routes) }
func (t Trail) IsEmpty() bool   { return t.length == 0 }

// Station1 returns the trail's origin, or nil for the empty trail.
func (t Trail) Station1() *Station {
	if t.IsEmpty() {
		return nil
	}
	s := t.station1
	return &s
}

// Station2 returns the trail's end, or nil for the empty trail.
func (t Trail) Station2() *Station {
	if t.IsEmpty() {
		return nil
	}
	s := t.station2
	return &s
}

// LongestTrail returns a longest trail made of the given routes. Routes are scanned in id
// order and the first trail reaching the maximum length wins.
func LongestTrail(routes []Route) Trail {
	if len(routes) == 0 {
		return Trail{}
	}
	routes = slices.Clone(routes)
	slices.SortFunc(routes, Route.Compare)

	var best Trail
	frontier := make([]Trail, 0, 2*len(routes))
	for _, r := range routes {
		forward := Trail{length: r.length, station1: r.station1, station2: r.station2, routes: []Route{r}}
		backward := Trail{length: r.length, station1: r.station2, station2: r.station1, routes: []Route{r}}
		if forward.length > best.length {
			best = forward
		}
		frontier = append(frontier, forward, backward)
	}

	for len(frontier) > 0 {
		var next []Trail
		for _, tr := range frontier {
			for _, r := range routes {
				if tr.uses(r) {
					continue
				}
				end, err := r.Opposite(tr.station2)
				if err != nil {
					continue
				}
				ext := Trail{
					length:   tr.length + r.length,
					station1: tr.station1,
					station2: end,
					routes:   append(slices.Clip(tr.routes), r),
				}
				if ext.length > best.length {
					best = ext
				}
				next = append(next, ext)
			}
		}
		frontier = next
	}
	return best
}

func (t Trail) uses(r Route) bool {
	for _, own := range t.routes {
		if own.id == r.id {
			return true
		}
	}
	return false
}

func (t Trail) String() string {
	if t.IsEmpty() {
		return "(empty trail)"
	}
	var sb strings.Builder
	at := t.station1
	sb.WriteString(at.Name)
	for _, r := range t.routes {
		at, _ = r.Opposite(at)
		sb.WriteString(" - ")
		sb.WriteString(at.Name)
	}
	fmt.Fprintf(&sb, " (%d)", t.length)
	return sb.String()
}

package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Trip is one destination option of a ticket.
type Trip struct {
	From   Station
	To     Station
	Points int
}

// NewTrip validates and builds a trip.
func NewTrip(from, to Station, points int) (Trip, error) {
	if err := check(points > 0, "trip %s - %s worth %d points", from.Name, to.Name, points); err != nil {
		return Trip{}, err
	}
	return Trip{From: from, To: to, Points: points}, nil
}

// AllTrips returns the trips from every station of from to every station of to.
func AllTrips(from, to []Station, points int) ([]Trip, error) {
	if err := check(len(from) > 0 && len(to) > 0, "trips need both origins and destinations"); err != nil {
		return nil, err
	}
	out := make([]Trip, 0, len(from)*len(to))
	for _, f := range from {
		for _, t := range to {
			trip, err := NewTrip(f, t, points)
			if err != nil {
				return nil, err
			}
			out = append(out, trip)
		}
	}
	return out, nil
}

// PointsFor returns the trip's points when its stations are connected, their negation otherwise.
func (t Trip) PointsFor(conn StationConnectivity) int {
	if conn.Connected(t.From, t.To) {
		return t.Points
	}
	return -t.Points
}

// Ticket groups trips sharing the same origin. Tickets are ordered by their text.
type Ticket struct {
	trips []Trip
	text  string
}

// NewTicket builds a ticket from one or more trips with a common origin name.
func NewTicket(trips ...Trip) (Ticket, error) {
	if err := check(len(trips) > 0, "ticket without trips"); err != nil {
		return Ticket{}, err
	}
	from := trips[0].From.Name
	for _, tr := range trips {
		if err := check(tr.From.Name == from, "ticket mixes origins %s and %s", from, tr.From.Name); err != nil {
			return Ticket{}, err
		}
	}
	return Ticket{trips: slices.Clone(trips), text: ticketText(trips)}, nil
}

func ticketText(trips []Trip) string {
	dest := make([]string, 0, len(trips))
	for _, tr := range trips {
		dest = append(dest, fmt.Sprintf("%s (%d)", tr.To.Name, tr.Points))
	}
	slices.Sort(dest)
	dest = slices.Compact(dest)
	if len(dest) == 1 {
		return fmt.Sprintf("%s - %s", trips[0].From.Name, dest[0])
	}
	return fmt.Sprintf("%s - {%s}", trips[0].From.Name, strings.Join(dest, ", "))
}

func (t Ticket) Trips() []Trip  { return slices.Clone(t.trips) }
func (t Ticket) Text() string   { return t.text }
func (t Ticket) String() string { return t.text }
func (t Ticket) IsZero() bool   { return t.text == "" }

// Compare orders tickets by text.
func (t Ticket) Compare(o Ticket) int {
	return strings.Compare(t.text, o.text)
}

// Points returns the best connected trip value, or minus the cheapest trip when none is connected.
func (t Ticket) Points(conn StationConnectivity) int {
	best, cheapest := 0, t.trips[0].Points
	for _, tr := range t.trips {
		cheapest = min(cheapest, tr.Points)
		best = max(best, tr.PointsFor(conn))
	}
	if best == 0 {
		return -cheapest
	}
	return best
}

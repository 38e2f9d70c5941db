package domain

// Station is a map node. IDs are dense and start at 0.
type Station struct {
	ID   int
	Name string
}

func (s Station) String() string { return s.Name }

// StationConnectivity answers whether two stations are linked by a player's routes.
type StationConnectivity interface {
	Connected(s1, s2 Station) bool
}

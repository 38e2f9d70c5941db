package domain

// StationPartition is a flattened union-find over station ids.
type StationPartition struct {
	links []int
}

var _ StationConnectivity = StationPartition{}

// Connected reports whether both stations share a class. Stations outside the
// partition are only connected to themselves.
func (p StationPartition) Connected(s1, s2 Station) bool {
	if s1.ID < 0 || s2.ID < 0 || s1.ID >= len(p.links) || s2.ID >= len(p.links) {
		return s1.ID == s2.ID
	}
	return p.links[s1.ID] == p.links[s2.ID]
}

// PartitionBuilder accumulates connections before building a StationPartition.
type PartitionBuilder struct {
	links []int
}

// NewPartitionBuilder returns a builder with one class per station id in [0, stationCount).
func NewPartitionBuilder(stationCount int) (*PartitionBuilder, error) {
	if err := check(stationCount >= 0, "negative station count %d", stationCount); err != nil {
		return nil, err
	}
	links := make([]int, stationCount)
	for i := range links {
		links[i] = i
	}
	return &PartitionBuilder{links: links}, nil
}

// Connect merges the classes of s1 and s2.
func (b *PartitionBuilder) Connect(s1, s2 Station) *PartitionBuilder {
	r1, r2 := b.representative(s1.ID), b.representative(s2.ID)
	switch {
	case r1 == r2:
	case b.links[s1.ID] == s1.ID:
		b.links[s1.ID] = r2
	case b.links[s2.ID] == s2.ID:
		b.links[s2.ID] = r1
	default:
		b.links[r1] = r2
	}
	return b
}

// Build flattens every entry to its root.
func (b *PartitionBuilder) Build() StationPartition {
	out := make([]int, len(b.links))
	for i := range b.links {
		out[i] = b.representative(i)
	}
	return StationPartition{links: out}
}

func (b *PartitionBuilder) representative(id int) int {
	for b.links[id] != id {
		id = b.links[id]
	}
	return id
}

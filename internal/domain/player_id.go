package domain

// PlayerID identifies one of the two seats. The zero value NoPlayer means "nobody".
type PlayerID int

const (
	NoPlayer PlayerID = iota
	Player1
	Player2
)

// PlayerIDs lists both seats in order.
var PlayerIDs = []PlayerID{Player1, Player2}

// Next returns the other player.
func (id PlayerID) Next() PlayerID {
	if id == Player1 {
		return Player2
	}
	return Player1
}

func (id PlayerID) index() int { return int(id) - 1 }

// Valid reports whether id names a seat.
func (id PlayerID) Valid() bool { return id == Player1 || id == Player2 }

func (id PlayerID) String() string {
	switch id {
	case Player1:
		return "PLAYER_1"
	case Player2:
		return "PLAYER_2"
	}
	return "NONE"
}

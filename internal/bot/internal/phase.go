package internal

import "tchu/internal/domain"

// GamePhase describes the current strategic stage of a match.
type GamePhase int

const (
	// PhaseOpening indicates nobody has laid a single car yet.
	PhaseOpening GamePhase = iota
	// PhaseMid indicates no one has reached the endgame threshold yet.
	PhaseMid
	// PhaseEnd indicates some player is down to EndgameCars cars or the last lap started.
	PhaseEnd
)

// EndgameCars is the car count at which a bot starts playing for the end.
const EndgameCars = 12

func (p GamePhase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseEnd:
		return "end"
	}
	return "mid"
}

// DetectPhase infers the phase from the players' remaining cars.
func DetectPhase(state domain.PublicGameState) GamePhase {
	if state.LastPlayer() != domain.NoPlayer {
		return PhaseEnd
	}
	opening := true
	for _, id := range domain.PlayerIDs {
		cars := state.PlayerState(id).CarCount()
		if cars <= EndgameCars {
			return PhaseEnd
		}
		if cars != domain.InitialCarCount {
			opening = false
		}
	}
	if opening {
		return PhaseOpening
	}
	return PhaseMid
}

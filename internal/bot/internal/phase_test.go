package internal

import (
	"testing"

	"tchu/internal/domain"
)

func publicState(t *testing.T, routes1, routes2 []domain.Route, last domain.PlayerID) domain.PublicGameState {
	t.Helper()
	faceUp := []domain.Card{domain.Red, domain.Red, domain.Blue, domain.Blue, domain.Locomotive}
	cs, err := domain.NewPublicCardState(faceUp, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	p1, err := domain.NewPublicPlayerState(3, 4, routes1)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := domain.NewPublicPlayerState(3, 4, routes2)
	if err != nil {
		t.Fatal(err)
	}
	players := map[domain.PlayerID]domain.PublicPlayerState{domain.Player1: p1, domain.Player2: p2}
	s, err := domain.NewPublicGameState(30, cs, domain.Player1, players, last)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// longRoutes returns routes totalling at least cars cars.
func longRoutes(cars int) []domain.Route {
	var out []domain.Route
	total := 0
	for _, r := range domain.Routes() {
		if total >= cars {
			break
		}
		out = append(out, r)
		total += r.Length()
	}
	return out
}

func TestDetectPhase(t *testing.T) {
	tests := []struct {
		name    string
		routes1 []domain.Route
		last    domain.PlayerID
		want    GamePhase
	}{
		{"opening", nil, domain.NoPlayer, PhaseOpening},
		{"mid", domain.Routes()[:1], domain.NoPlayer, PhaseMid},
		{"end by cars", longRoutes(domain.InitialCarCount - EndgameCars), domain.NoPlayer, PhaseEnd},
		{"end by last lap", nil, domain.Player2, PhaseEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPhase(publicState(t, tt.routes1, nil, tt.last)); got != tt.want {
				t.Fatalf("DetectPhase = %v, want %v", got, tt.want)
			}
		})
	}
}

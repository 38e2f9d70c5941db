package nakama

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"tchu/internal/app"
	"tchu/internal/domain"
	"tchu/internal/view"
)

// matchLabel renders the label used by match listings, e.g.
// {"game":"tchu","open":1,"phase":"lobby"}.
func matchLabel(open int, phase string) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"open":  open,
		"game":  gameName,
		"phase": phase,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SeatView describes one seat in the OpMatchState snapshot.
type SeatView struct {
	Seat   int    `json:"seat"`
	Player string `json:"player"`
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	IsBot  bool   `json:"is_bot"`
}

type matchSnapshot struct {
	Phase string     `json:"phase"`
	Seats []SeatView `json:"seats"`
	Tick  int64      `json:"tick"`
}

// GameOver is the OpGameOver payload.
type GameOver struct {
	Winners []string       `json:"winners"`
	Points  map[string]int `json:"points"`
	Error   string         `json:"error,omitempty"`
}

func gameOverPayload(names [domain.PlayerCount]string, out app.Outcome, err error) ([]byte, error) {
	g := GameOver{Points: make(map[string]int)}
	if err != nil {
		g.Error = err.Error()
	}
	for _, id := range out.Winners {
		g.Winners = append(g.Winners, names[int(id)-1])
	}
	for id, p := range out.Points {
		g.Points[names[int(id)-1]] = p
	}
	return json.Marshal(g)
}

func viewEventsPayload(events []view.Event) ([]byte, error) {
	return json.Marshal(events)
}

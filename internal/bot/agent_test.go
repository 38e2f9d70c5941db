package bot

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/app"
	"tchu/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

func newTestAgent(t *testing.T, difficulty string, seed int64) *Agent {
	t.Helper()
	identity := BotIdentity{UserID: "bot-" + difficulty, DisplayName: difficulty, Difficulty: difficulty}
	a, err := NewAgent(identity, app.DefaultRules(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewAgent(%s): %v", difficulty, err)
	}
	return a
}

func TestBotsPlayFullGames(t *testing.T) {
	pairs := [][2]string{
		{"easy", "medium"},
		{"hard", "god"},
		{"medium", "hard"},
		{"god", "god"},
	}
	for i, pair := range pairs {
		t.Run(pair[0]+"_vs_"+pair[1], func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			seed := int64(i + 1)
			players := map[domain.PlayerID]app.Player{
				domain.Player1: newTestAgent(t, pair[0], seed),
				domain.Player2: newTestAgent(t, pair[1], seed+100),
			}
			names := map[domain.PlayerID]string{domain.Player1: pair[0], domain.Player2: pair[1]}
			svc := app.NewService(rand.New(rand.NewSource(seed)), noopLogger{}, app.DefaultRules())

			out, err := svc.Play(ctx, players, names, domain.AllTicketsBag())
			if err != nil {
				t.Fatalf("Play: %v", err)
			}
			if len(out.Winners) == 0 {
				t.Fatal("no winner")
			}
			if out.Final.LastPlayer() == domain.NoPlayer {
				t.Error("game ended without a last lap")
			}
		})
	}
}

func TestAgentDrawSlotOrder(t *testing.T) {
	a := newTestAgent(t, "medium", 1)
	a.move = Move{Kind: app.DrawCards, Slot: 2}
	ctx := context.Background()
	if slot, _ := a.DrawSlot(ctx); slot != 2 {
		t.Errorf("first slot = %d, want the planned 2", slot)
	}
	if slot, _ := a.DrawSlot(ctx); slot < domain.DeckSlot || slot >= domain.FaceUpCardsCount {
		t.Errorf("second slot = %d out of range", slot)
	}
}

func TestAgentThinkStopsOnCancel(t *testing.T) {
	a := newTestAgent(t, "easy", 1)
	a.MinDelay, a.MaxDelay = time.Hour, 2*time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.NextTurn(ctx); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    BotLevel
		wantErr bool
	}{
		{"easy", BotLevelEasy, false},
		{"Medium", BotLevelGood, false},
		{"hard", BotLevelSmart, false},
		{"", BotLevelSmart, false},
		{"god", BotLevelGod, false},
		{"impossible", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

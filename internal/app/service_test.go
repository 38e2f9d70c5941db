package app

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/domain"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
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

// greedyPlayer claims the first route it can afford, otherwise draws blind.
type greedyPlayer struct {
	id       domain.PlayerID
	state    domain.PublicGameState
	own      domain.PlayerState
	offer    domain.Bag[domain.Ticket]
	infos    []string
	updates  int
	turns    int
	maxTurns int

	route domain.Route
	cards domain.Bag[domain.Card]
}

func (p *greedyPlayer) InitPlayers(_ context.Context, own domain.PlayerID, _ map[domain.PlayerID]string) error {
	p.id = own
	return nil
}

func (p *greedyPlayer) ReceiveInfo(_ context.Context, info string) error {
	p.infos = append(p.infos, info)
	return nil
}

func (p *greedyPlayer) UpdateState(_ context.Context, state domain.PublicGameState, own domain.PlayerState) error {
	p.state, p.own = state, own
	p.updates++
	return nil
}

func (p *greedyPlayer) SetInitialTicketChoice(_ context.Context, tickets domain.Bag[domain.Ticket]) error {
	p.offer = tickets
	return nil
}

func (p *greedyPlayer) ChooseInitialTickets(context.Context) (domain.Bag[domain.Ticket], error) {
	return domain.NewBag(p.offer.Items()[:domain.MinInitialTicketsKept]...), nil
}

func (p *greedyPlayer) NextTurn(context.Context) (TurnKind, error) {
	p.turns++
	if p.maxTurns > 0 && p.turns > p.maxTurns {
		return NoTurn, errors.New("game did not end")
	}
	claimed := make(map[string]bool)
	for _, r := range p.state.ClaimedRoutes() {
		claimed[r.ID()] = true
	}
	for _, r := range domain.Routes() {
		if claimed[r.ID()] || !p.own.CanClaimRoute(r) {
			continue
		}
		if r.Level() == domain.Sky && p.own.Cards().CountOf(domain.Locomotive) < domain.DefaultSkySurcharge {
			continue
		}
		options, err := p.own.PossibleClaimCards(r)
		if err != nil || len(options) == 0 {
			continue
		}
		p.route, p.cards = r, options[0]
		return ClaimRoute, nil
	}
	if p.state.CanDrawCards() {
		return DrawCards, nil
	}
	return DrawTickets, nil
}

func (p *greedyPlayer) ChooseTickets(_ context.Context, options domain.Bag[domain.Ticket]) (domain.Bag[domain.Ticket], error) {
	return domain.NewBag(options.Get(0)), nil
}

func (p *greedyPlayer) DrawSlot(context.Context) (int, error) { return domain.DeckSlot, nil }

func (p *greedyPlayer) ClaimedRoute(context.Context) (domain.Route, error) { return p.route, nil }

func (p *greedyPlayer) InitialClaimCards(context.Context) (domain.Bag[domain.Card], error) {
	return p.cards, nil
}

func (p *greedyPlayer) ChooseAdditionalCards(_ context.Context, options []domain.Bag[domain.Card]) (domain.Bag[domain.Card], error) {
	return options[0], nil
}

func newTestService(seed int64) *Service {
	return NewService(rand.New(rand.NewSource(seed)), noopLogger{}, DefaultRules())
}

func TestPlayRunsToCompletion(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		p1 := &greedyPlayer{maxTurns: 2000}
		p2 := &greedyPlayer{maxTurns: 2000}
		players := map[domain.PlayerID]Player{domain.Player1: p1, domain.Player2: p2}
		names := map[domain.PlayerID]string{domain.Player1: "Ada", domain.Player2: "Charles"}

		out, err := newTestService(seed).Play(context.Background(), players, names, domain.AllTicketsBag())
		if err != nil {
			t.Fatalf("seed %d: Play: %v", seed, err)
		}
		if len(out.Winners) == 0 {
			t.Fatalf("seed %d: no winner", seed)
		}
		if out.Final.LastPlayer() == domain.NoPlayer {
			t.Errorf("seed %d: game ended without a final lap", seed)
		}
		for _, id := range domain.PlayerIDs {
			ps := out.Final.PlayerState(id)
			want := ps.FinalPoints()
			if out.Trails[id].Length() == max(out.Trails[domain.Player1].Length(), out.Trails[domain.Player2].Length()) {
				want += domain.LongestTrailBonusPoints
			}
			if out.Points[id] != want {
				t.Errorf("seed %d: %s points = %d, want %d", seed, id, out.Points[id], want)
			}
		}
		if p1.infos[len(p1.infos)-1] != p2.infos[len(p2.infos)-1] {
			t.Errorf("players saw different final messages")
		}
		last := p1.infos[len(p1.infos)-1]
		if !strings.Contains(last, "wins") && !strings.Contains(last, "tied") {
			t.Errorf("final message = %q", last)
		}
		if p1.updates == 0 || p1.updates != p2.updates {
			t.Errorf("updates = %d / %d", p1.updates, p2.updates)
		}
	}
}

func TestPlayRejectsBadTicketChoice(t *testing.T) {
	p1 := &greedyPlayer{}
	p2 := &cheatingPlayer{greedyPlayer: &greedyPlayer{}}
	players := map[domain.PlayerID]Player{domain.Player1: p1, domain.Player2: p2}
	names := map[domain.PlayerID]string{domain.Player1: "Ada", domain.Player2: "Charles"}

	_, err := newTestService(1).Play(context.Background(), players, names, domain.AllTicketsBag())
	if !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("err = %v, want ErrInvalidChoice", err)
	}
}

type cheatingPlayer struct {
	*greedyPlayer
}

func (p *cheatingPlayer) ChooseInitialTickets(context.Context) (domain.Bag[domain.Ticket], error) {
	return domain.NewBag(p.offer.Get(0)), nil
}

func TestPlayNeedsTwoPlayers(t *testing.T) {
	players := map[domain.PlayerID]Player{domain.Player1: &greedyPlayer{}}
	names := map[domain.PlayerID]string{domain.Player1: "Ada"}
	if _, err := newTestService(1).Play(context.Background(), players, names, domain.AllTicketsBag()); !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("err = %v, want ErrTooFewPlayers", err)
	}
}

func TestPlayStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	players := map[domain.PlayerID]Player{domain.Player1: &greedyPlayer{}, domain.Player2: &greedyPlayer{}}
	names := map[domain.PlayerID]string{domain.Player1: "Ada", domain.Player2: "Charles"}
	if _, err := newTestService(1).Play(ctx, players, names, domain.AllTicketsBag()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewServiceClampsSkySurcharge(t *testing.T) {
	if s := NewService(nil, noopLogger{}, Rules{SkySurcharge: 9}); s.rules.SkySurcharge != domain.AdditionalTunnelCardsCount {
		t.Errorf("surcharge = %d", s.rules.SkySurcharge)
	}
	if s := NewService(nil, noopLogger{}, Rules{SkySurcharge: -1}); s.rules.SkySurcharge != 0 {
		t.Errorf("surcharge = %d", s.rules.SkySurcharge)
	}
}

package bot

import (
	"context"
	"math/rand"
	"time"

	"tchu/internal/app"
	"tchu/internal/domain"
)

// Agent represents an autonomous bot player. It implements app.Player on top of a Brain.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
	// MinDelay and MaxDelay bound the pause before each turn decision.
	MinDelay time.Duration
	MaxDelay time.Duration

	rules app.Rules
	rng   *rand.Rand
	snap  Snapshot
	offer domain.Bag[domain.Ticket]
	move  Move
	drawn int
}

var _ app.Player = (*Agent)(nil)

// NewAgent builds an agent for identity playing at the identity's difficulty.
func NewAgent(identity BotIdentity, rules app.Rules, rng *rand.Rand) (*Agent, error) {
	level, err := ParseLevel(identity.Difficulty)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	brain, err := NewBrain(level, rng)
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:       identity.UserID,
		Name:     identity.DisplayName,
		Strategy: brain,
		rules:    rules,
		rng:      rng,
	}, nil
}

// think waits a random time between MinDelay and MaxDelay, or until ctx ends.
func (a *Agent) think(ctx context.Context) error {
	if a.MaxDelay <= 0 {
		return ctx.Err()
	}
	d := a.MinDelay
	if span := a.MaxDelay - a.MinDelay; span > 0 {
		d += time.Duration(a.rng.Int63n(int64(span)))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Agent) InitPlayers(_ context.Context, own domain.PlayerID, _ map[domain.PlayerID]string) error {
	a.snap.Own = own
	a.snap.Rules = a.rules
	return nil
}

func (a *Agent) ReceiveInfo(context.Context, string) error { return nil }

func (a *Agent) UpdateState(_ context.Context, state domain.PublicGameState, own domain.PlayerState) error {
	a.snap.State, a.snap.Mine = state, own
	return nil
}

func (a *Agent) SetInitialTicketChoice(_ context.Context, tickets domain.Bag[domain.Ticket]) error {
	a.offer = tickets
	return nil
}

func (a *Agent) ChooseInitialTickets(ctx context.Context) (domain.Bag[domain.Ticket], error) {
	if err := a.think(ctx); err != nil {
		return domain.Bag[domain.Ticket]{}, err
	}
	return a.Strategy.ChooseTickets(a.snap, a.offer, domain.MinInitialTicketsKept), nil
}

// NextTurn asks the strategy for a move and remembers it for the follow-up questions.
func (a *Agent) NextTurn(ctx context.Context) (app.TurnKind, error) {
	if err := a.think(ctx); err != nil {
		return app.NoTurn, err
	}
	move, err := a.Strategy.CalculateMove(a.snap)
	if err != nil {
		return app.NoTurn, err
	}
	a.move, a.drawn = move, 0
	return move.Kind, nil
}

func (a *Agent) ChooseTickets(_ context.Context, options domain.Bag[domain.Ticket]) (domain.Bag[domain.Ticket], error) {
	return a.Strategy.ChooseTickets(a.snap, options, min(domain.MinInGameTicketsKept, options.Len())), nil
}

func (a *Agent) DrawSlot(context.Context) (int, error) {
	a.drawn++
	if a.drawn == 1 {
		return a.move.Slot, nil
	}
	return a.Strategy.DrawSlot(a.snap), nil
}

func (a *Agent) ClaimedRoute(context.Context) (domain.Route, error) { return a.move.Route, nil }

func (a *Agent) InitialClaimCards(context.Context) (domain.Bag[domain.Card], error) {
	return a.move.Cards, nil
}

func (a *Agent) ChooseAdditionalCards(_ context.Context, options []domain.Bag[domain.Card]) (domain.Bag[domain.Card], error) {
	return a.Strategy.ChooseAdditionalCards(a.snap, options), nil
}

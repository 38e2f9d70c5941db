package view

import (
	"context"
	"sync"

	"tchu/internal/app"
	"tchu/internal/domain"
)

// Subscriber receives the events of one state update, in Diff order.
type Subscriber func(events []Event)

// Notifier decorates a Player: every state update is projected, diffed against the
// previous model and published before being passed on.
type Notifier struct {
	app.Player

	mu    sync.Mutex
	owner domain.PlayerID
	model Model
	subs  []Subscriber
}

func NewNotifier(p app.Player) *Notifier {
	return &Notifier{Player: p}
}

// Subscribe registers s for all later updates.
func (n *Notifier) Subscribe(s Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, s)
}

// Model returns the latest projection.
func (n *Notifier) Model() Model {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.model
}

func (n *Notifier) InitPlayers(ctx context.Context, own domain.PlayerID, names map[domain.PlayerID]string) error {
	n.mu.Lock()
	n.owner = own
	n.mu.Unlock()
	return n.Player.InitPlayers(ctx, own, names)
}

func (n *Notifier) UpdateState(ctx context.Context, state domain.PublicGameState, own domain.PlayerState) error {
	n.mu.Lock()
	next := Project(n.owner, state, own)
	events := Diff(n.model, next)
	n.model = next
	subs := append([]Subscriber(nil), n.subs...)
	n.mu.Unlock()

	if len(events) > 0 {
		for _, s := range subs {
			s(events)
		}
	}
	return n.Player.UpdateState(ctx, state, own)
}

package app

import (
	"context"
	"errors"
	"sync"

	"tchu/internal/domain"
)

// TurnHandlers are the actions a Frontend may take once a turn starts. Only the first call
// counts; later calls are ignored.
type TurnHandlers struct {
	DrawTickets func()
	DrawCard    func(slot int)
	ClaimRoute  func(route domain.Route, cards domain.Bag[domain.Card])
}

// Frontend is an event-driven player interface, such as a terminal or a UI. Its methods run
// on the goroutine calling AsyncPlayer.Run and must not block; answers are given later
// through the supplied callbacks.
type Frontend interface {
	InitPlayers(own domain.PlayerID, names map[domain.PlayerID]string)
	ShowInfo(text string)
	ShowState(state domain.PublicGameState, own domain.PlayerState)
	ChooseTickets(options domain.Bag[domain.Ticket], minKept int, reply func(domain.Bag[domain.Ticket]))
	StartTurn(h TurnHandlers)
	DrawCard(reply func(slot int))
	ChooseAdditionalCards(options []domain.Bag[domain.Card], reply func(domain.Bag[domain.Card]))
}

// ErrFrontendClosed is returned when the frontend loop stopped before answering.
var ErrFrontendClosed = errors.New("frontend closed")

// AsyncPlayer adapts a Frontend to the blocking Player interface. Frontend calls are queued
// to the frontend goroutine; each decision comes back through its own single-slot channel.
type AsyncPlayer struct {
	frontend Frontend
	tasks    chan func()
	done     chan struct{}

	initialTickets chan domain.Bag[domain.Ticket]
	tickets        chan domain.Bag[domain.Ticket]
	turns          chan TurnKind
	slots          chan int
	routes         chan domain.Route
	claimCards     chan domain.Bag[domain.Card]
	additional     chan domain.Bag[domain.Card]
}

var _ Player = (*AsyncPlayer)(nil)

const asyncTaskQueue = 256

func NewAsyncPlayer(f Frontend) *AsyncPlayer {
	return &AsyncPlayer{
		frontend:       f,
		tasks:          make(chan func(), asyncTaskQueue),
		done:           make(chan struct{}),
		initialTickets: make(chan domain.Bag[domain.Ticket], 1),
		tickets:        make(chan domain.Bag[domain.Ticket], 1),
		turns:          make(chan TurnKind, 1),
		slots:          make(chan int, 1),
		routes:         make(chan domain.Route, 1),
		claimCards:     make(chan domain.Bag[domain.Card], 1),
		additional:     make(chan domain.Bag[domain.Card], 1),
	}
}

// Run executes frontend calls until ctx ends. It must run on its own goroutine.
func (a *AsyncPlayer) Run(ctx context.Context) {
	defer close(a.done)
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-a.tasks:
			task()
		}
	}
}

func (a *AsyncPlayer) later(ctx context.Context, task func()) error {
	select {
	case a.tasks <- task:
		return nil
	case <-a.done:
		return ErrFrontendClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func take[T any](ctx context.Context, a *AsyncPlayer, ch <-chan T) (T, error) {
	var zero T
	select {
	case v := <-ch:
		return v, nil
	case <-a.done:
		return zero, ErrFrontendClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// offer fills a slot unless it already holds an answer.
func offer[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}

// drain empties a slot.
func drain[T any](ch <-chan T) {
	select {
	case <-ch:
	default:
	}
}

func (a *AsyncPlayer) InitPlayers(ctx context.Context, own domain.PlayerID, names map[domain.PlayerID]string) error {
	return a.later(ctx, func() { a.frontend.InitPlayers(own, names) })
}

func (a *AsyncPlayer) ReceiveInfo(ctx context.Context, info string) error {
	return a.later(ctx, func() { a.frontend.ShowInfo(info) })
}

func (a *AsyncPlayer) UpdateState(ctx context.Context, state domain.PublicGameState, own domain.PlayerState) error {
	return a.later(ctx, func() { a.frontend.ShowState(state, own) })
}

func (a *AsyncPlayer) SetInitialTicketChoice(ctx context.Context, tickets domain.Bag[domain.Ticket]) error {
	return a.later(ctx, func() {
		a.frontend.ChooseTickets(tickets, domain.MinInitialTicketsKept, func(b domain.Bag[domain.Ticket]) {
			offer(a.initialTickets, b)
		})
	})
}

func (a *AsyncPlayer) ChooseInitialTickets(ctx context.Context) (domain.Bag[domain.Ticket], error) {
	return take(ctx, a, a.initialTickets)
}

func (a *AsyncPlayer) NextTurn(ctx context.Context) (TurnKind, error) {
	drain(a.turns)
	drain(a.slots)
	drain(a.routes)
	drain(a.claimCards)

	var once sync.Once
	h := TurnHandlers{
		DrawTickets: func() { once.Do(func() { offer(a.turns, DrawTickets) }) },
		DrawCard: func(slot int) {
			once.Do(func() {
				offer(a.slots, slot)
				offer(a.turns, DrawCards)
			})
		},
		ClaimRoute: func(r domain.Route, cards domain.Bag[domain.Card]) {
			once.Do(func() {
				offer(a.routes, r)
				offer(a.claimCards, cards)
				offer(a.turns, ClaimRoute)
			})
		},
	}
	if err := a.later(ctx, func() { a.frontend.StartTurn(h) }); err != nil {
		return NoTurn, err
	}
	return take(ctx, a, a.turns)
}

func (a *AsyncPlayer) ChooseTickets(ctx context.Context, options domain.Bag[domain.Ticket]) (domain.Bag[domain.Ticket], error) {
	minKept := min(domain.MinInGameTicketsKept, options.Len())
	err := a.later(ctx, func() {
		a.frontend.ChooseTickets(options, minKept, func(b domain.Bag[domain.Ticket]) { offer(a.tickets, b) })
	})
	if err != nil {
		return domain.Bag[domain.Ticket]{}, err
	}
	return take(ctx, a, a.tickets)
}

// DrawSlot returns the slot picked when the turn started, or asks for the second card.
func (a *AsyncPlayer) DrawSlot(ctx context.Context) (int, error) {
	select {
	case slot := <-a.slots:
		return slot, nil
	default:
	}
	if err := a.later(ctx, func() { a.frontend.DrawCard(func(slot int) { offer(a.slots, slot) }) }); err != nil {
		return 0, err
	}
	return take(ctx, a, a.slots)
}

func (a *AsyncPlayer) ClaimedRoute(ctx context.Context) (domain.Route, error) {
	return take(ctx, a, a.routes)
}

func (a *AsyncPlayer) InitialClaimCards(ctx context.Context) (domain.Bag[domain.Card], error) {
	return take(ctx, a, a.claimCards)
}

func (a *AsyncPlayer) ChooseAdditionalCards(ctx context.Context, options []domain.Bag[domain.Card]) (domain.Bag[domain.Card], error) {
	err := a.later(ctx, func() {
		a.frontend.ChooseAdditionalCards(options, func(b domain.Bag[domain.Card]) { offer(a.additional, b) })
	})
	if err != nil {
		return domain.Bag[domain.Card]{}, err
	}
	return take(ctx, a, a.additional)
}

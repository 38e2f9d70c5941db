package protocol

import (
	"context"
	"net"
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

// recordingPlayer remembers what it was told and answers queries from fixed values.
type recordingPlayer struct {
	own     domain.PlayerID
	names   map[domain.PlayerID]string
	infos   []string
	state   domain.PublicGameState
	mine    domain.PlayerState
	offer   domain.Bag[domain.Ticket]
	options []domain.Bag[domain.Card]

	route domain.Route
	cards domain.Bag[domain.Card]
}

func (p *recordingPlayer) InitPlayers(_ context.Context, own domain.PlayerID, names map[domain.PlayerID]string) error {
	p.own, p.names = own, names
	return nil
}

func (p *recordingPlayer) ReceiveInfo(_ context.Context, info string) error {
	p.infos = append(p.infos, info)
	return nil
}

func (p *recordingPlayer) UpdateState(_ context.Context, state domain.PublicGameState, own domain.PlayerState) error {
	p.state, p.mine = state, own
	return nil
}

func (p *recordingPlayer) SetInitialTicketChoice(_ context.Context, tickets domain.Bag[domain.Ticket]) error {
	p.offer = tickets
	return nil
}

func (p *recordingPlayer) ChooseInitialTickets(context.Context) (domain.Bag[domain.Ticket], error) {
	return domain.NewBag(p.offer.Items()[:domain.MinInitialTicketsKept]...), nil
}

func (p *recordingPlayer) NextTurn(context.Context) (app.TurnKind, error) { return app.DrawCards, nil }

func (p *recordingPlayer) ChooseTickets(_ context.Context, options domain.Bag[domain.Ticket]) (domain.Bag[domain.Ticket], error) {
	return options, nil
}

func (p *recordingPlayer) DrawSlot(context.Context) (int, error) { return domain.DeckSlot, nil }

func (p *recordingPlayer) ClaimedRoute(context.Context) (domain.Route, error) { return p.route, nil }

func (p *recordingPlayer) InitialClaimCards(context.Context) (domain.Bag[domain.Card], error) {
	return p.cards, nil
}

func (p *recordingPlayer) ChooseAdditionalCards(_ context.Context, options []domain.Bag[domain.Card]) (domain.Bag[domain.Card], error) {
	p.options = options
	return options[len(options)-1], nil
}

func TestProxyClientRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	engineSide, playerSide := net.Pipe()
	proxy := NewProxy(NewStreamConn(engineSide))
	remote := &recordingPlayer{route: domain.Routes()[5], cards: domain.NewBag(domain.Red, domain.Locomotive)}
	client := NewClient(NewStreamConn(playerSide), remote, noopLogger{})

	done := make(chan error, 1)
	go func() { done <- client.Run(ctx) }()

	names := map[domain.PlayerID]string{domain.Player1: "Ada", domain.Player2: "Charles Babbage"}
	if err := proxy.InitPlayers(ctx, domain.Player2, names); err != nil {
		t.Fatal(err)
	}
	if err := proxy.ReceiveInfo(ctx, "Ada will play first."); err != nil {
		t.Fatal(err)
	}
	gs := playedState(t)
	if err := proxy.UpdateState(ctx, gs.Public(), gs.PlayerState(domain.Player2)); err != nil {
		t.Fatal(err)
	}
	offer := domain.NewBag(domain.Tickets()[:domain.InitialTicketsCount]...)
	if err := proxy.SetInitialTicketChoice(ctx, offer); err != nil {
		t.Fatal(err)
	}
	kept, err := proxy.ChooseInitialTickets(ctx)
	if err != nil || kept.Len() != domain.MinInitialTicketsKept || !offer.Contains(kept) {
		t.Fatalf("ChooseInitialTickets = %s, %v", kept, err)
	}
	if kind, err := proxy.NextTurn(ctx); err != nil || kind != app.DrawCards {
		t.Fatalf("NextTurn = %v, %v", kind, err)
	}
	if slot, err := proxy.DrawSlot(ctx); err != nil || slot != domain.DeckSlot {
		t.Fatalf("DrawSlot = %d, %v", slot, err)
	}
	some := domain.NewBag(domain.Tickets()[7:10]...)
	if chosen, err := proxy.ChooseTickets(ctx, some); err != nil || !chosen.Equal(some) {
		t.Fatalf("ChooseTickets = %s, %v", chosen, err)
	}
	if r, err := proxy.ClaimedRoute(ctx); err != nil || r.ID() != remote.route.ID() {
		t.Fatalf("ClaimedRoute = %s, %v", r.ID(), err)
	}
	if c, err := proxy.InitialClaimCards(ctx); err != nil || !c.Equal(remote.cards) {
		t.Fatalf("InitialClaimCards = %s, %v", c, err)
	}
	options := []domain.Bag[domain.Card]{domain.NewBag(domain.Red), domain.NewBag(domain.Locomotive)}
	if c, err := proxy.ChooseAdditionalCards(ctx, options); err != nil || !c.Equal(options[1]) {
		t.Fatalf("ChooseAdditionalCards = %s, %v", c, err)
	}

	if err := proxy.Close(); err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Fatalf("client: %v", err)
	}

	if remote.own != domain.Player2 || remote.names[domain.Player2] != "Charles Babbage" {
		t.Errorf("init = %v %v", remote.own, remote.names)
	}
	if len(remote.infos) != 1 || remote.infos[0] != "Ada will play first." {
		t.Errorf("infos = %q", remote.infos)
	}
	if !remote.mine.Cards().Equal(gs.PlayerState(domain.Player2).Cards()) {
		t.Errorf("own cards = %s", remote.mine.Cards())
	}
	if remote.state.CurrentPlayerID() != gs.CurrentPlayerID() {
		t.Errorf("current player = %s", remote.state.CurrentPlayerID())
	}
	if len(remote.options) != 2 {
		t.Errorf("options = %v", remote.options)
	}
}

func TestClientRejectsUnknownMessage(t *testing.T) {
	engineSide, playerSide := net.Pipe()
	client := NewClient(NewStreamConn(playerSide), &recordingPlayer{}, noopLogger{})
	done := make(chan error, 1)
	go func() { done <- client.Run(context.Background()) }()

	if err := NewStreamConn(engineSide).WriteLine("HELLO"); err != nil {
		t.Fatal(err)
	}
	if err := <-done; err == nil {
		t.Fatal("client accepted an unknown message")
	}
	engineSide.Close()
}

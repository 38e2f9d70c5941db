package view

import (
	"context"
	"math/rand"
	"testing"

	"tchu/internal/app"
	"tchu/internal/domain"
)

// startedGame deals the initial tickets so that both players are ready to play.
func startedGame(t *testing.T) domain.GameState {
	t.Helper()
	gs, err := domain.InitialGameState(domain.AllTicketsBag(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range domain.PlayerIDs {
		offer, _ := gs.TopTickets(domain.InitialTicketsCount)
		if gs, err = gs.WithoutTopTickets(domain.InitialTicketsCount); err != nil {
			t.Fatal(err)
		}
		if gs, err = gs.WithInitiallyChosenTickets(id, offer); err != nil {
			t.Fatal(err)
		}
	}
	return gs
}

func kinds(events []Event) map[EventKind]int {
	m := make(map[EventKind]int)
	for _, e := range events {
		m[e.Kind]++
	}
	return m
}

func TestProject(t *testing.T) {
	gs := startedGame(t)
	current := gs.CurrentPlayerID()
	m := Project(current, gs.Public(), gs.CurrentPlayerState())

	wantTickets := (len(domain.Tickets()) - 2*domain.InitialTicketsCount) * 100 / len(domain.Tickets())
	if m.TicketsPercent != wantTickets {
		t.Errorf("TicketsPercent = %d, want %d", m.TicketsPercent, wantTickets)
	}
	if want := gs.CardState().DeckSize() * 100 / domain.TotalCardsCount; m.CardsPercent != want {
		t.Errorf("CardsPercent = %d, want %d", m.CardsPercent, want)
	}
	if len(m.FaceUp) != domain.FaceUpCardsCount || len(m.RouteOwners) != 0 {
		t.Errorf("face up %v, owners %v", m.FaceUp, m.RouteOwners)
	}
	if len(m.Tickets) != domain.InitialTicketsCount {
		t.Errorf("tickets = %d", len(m.Tickets))
	}
	total := 0
	for _, n := range m.Cards {
		total += n
	}
	if total != domain.InitialCardsCount {
		t.Errorf("cards = %v", m.Cards)
	}
	for id := range m.Claimable {
		found := false
		for _, r := range domain.Routes() {
			if r.ID() == id {
				found = gs.CurrentPlayerState().CanClaimRoute(r)
			}
		}
		if !found {
			t.Errorf("route %s marked claimable", id)
		}
	}

	other := Project(current.Next(), gs.Public(), gs.PlayerState(current.Next()))
	if len(other.Claimable) != 0 {
		t.Errorf("waiting player has claimable routes %v", other.Claimable)
	}
}

func TestDiff(t *testing.T) {
	gs := startedGame(t)
	owner := gs.CurrentPlayerID()
	before := Project(owner, gs.Public(), gs.CurrentPlayerState())

	t.Run("from zero", func(t *testing.T) {
		got := kinds(Diff(Model{}, before))
		for _, k := range []EventKind{EventGaugesChanged, EventFaceUpChanged, EventTurnChanged, EventCountsChanged, EventTicketsChanged, EventCardsChanged} {
			if got[k] == 0 {
				t.Errorf("missing %s", k)
			}
		}
		if got[EventCountsChanged] != domain.PlayerCount {
			t.Errorf("counts events = %d", got[EventCountsChanged])
		}
	})

	t.Run("no change", func(t *testing.T) {
		if events := Diff(before, before); len(events) != 0 {
			t.Errorf("events = %v", events)
		}
	})

	t.Run("claim", func(t *testing.T) {
		own := gs.CurrentPlayerState()
		var claimed domain.Route
		next := gs
		for _, r := range domain.Routes() {
			options, err := own.PossibleClaimCards(r)
			if err != nil || len(options) == 0 {
				continue
			}
			if next, err = gs.WithClaimedRoute(r, options[0]); err != nil {
				t.Fatal(err)
			}
			claimed = r
			break
		}
		if claimed.IsZero() {
			t.Skip("no affordable route for this deal")
		}
		after := Project(owner, next.Public(), next.PlayerState(owner))
		events := Diff(before, after)
		got := kinds(events)
		if got[EventRouteClaimed] != 1 || got[EventCardsChanged] != 1 || got[EventCountsChanged] != 1 {
			t.Fatalf("events = %v", got)
		}
		for _, e := range events {
			if p, ok := e.Payload.(RouteClaimedPayload); ok && (p.RouteID != claimed.ID() || p.Owner != owner.String()) {
				t.Errorf("claimed payload = %+v", p)
			}
		}
		if after.Claimable[claimed.ID()] {
			t.Errorf("claimed route still claimable")
		}
	})
}

type stubPlayer struct {
	app.Player
	updates int
	own     domain.PlayerID
}

func (p *stubPlayer) InitPlayers(_ context.Context, own domain.PlayerID, _ map[domain.PlayerID]string) error {
	p.own = own
	return nil
}

func (p *stubPlayer) UpdateState(context.Context, domain.PublicGameState, domain.PlayerState) error {
	p.updates++
	return nil
}

func TestNotifier(t *testing.T) {
	gs := startedGame(t)
	inner := &stubPlayer{}
	n := NewNotifier(inner)
	var batches [][]Event
	n.Subscribe(func(events []Event) { batches = append(batches, events) })

	ctx := context.Background()
	owner := gs.CurrentPlayerID()
	if err := n.InitPlayers(ctx, owner, nil); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if err := n.UpdateState(ctx, gs.Public(), gs.PlayerState(owner)); err != nil {
			t.Fatal(err)
		}
	}
	if inner.own != owner || inner.updates != 2 {
		t.Errorf("delegate saw own=%s updates=%d", inner.own, inner.updates)
	}
	if len(batches) != 1 {
		t.Fatalf("published %d batches, want 1 (second update changes nothing)", len(batches))
	}
	if m := n.Model(); m.Owner != owner || m.Current != gs.CurrentPlayerID() {
		t.Errorf("model = %+v", m)
	}
}

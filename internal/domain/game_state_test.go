package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestGame(t *testing.T, seed int64) GameState {
	t.Helper()
	gs, err := InitialGameState(AllTicketsBag(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("InitialGameState: %v", err)
	}
	return gs
}

func TestInitialGameState(t *testing.T) {
	gs := newTestGame(t, 3)
	if gs.TicketsCount() != len(Tickets()) {
		t.Errorf("tickets = %d, want %d", gs.TicketsCount(), len(Tickets()))
	}
	for _, id := range PlayerIDs {
		ps := gs.PlayerState(id)
		if ps.Cards().Len() != InitialCardsCount || ps.CarCount() != InitialCarCount {
			t.Errorf("%s starts with %d cards and %d cars", id, ps.Cards().Len(), ps.CarCount())
		}
	}
	cs := gs.CardState()
	if got := cs.TotalSize() + 2*InitialCardsCount; got != TotalCardsCount {
		t.Errorf("card total = %d, want %d", got, TotalCardsCount)
	}
	if gs.LastPlayer() != NoPlayer || !gs.CurrentPlayerID().Valid() {
		t.Errorf("current = %s, last = %s", gs.CurrentPlayerID(), gs.LastPlayer())
	}
}

func TestClaimLengthOneRoute(t *testing.T) {
	var (
		gs    GameState
		hand  Bag[Card]
		route Route
		card  Card
	)
	for seed := int64(1); route.IsZero() && seed < 100; seed++ {
		gs = newTestGame(t, seed)
		if gs.CurrentPlayerID() != Player1 {
			gs = gs.ForNextTurn()
		}
		hand = gs.CurrentPlayerState().Cards()
		for _, r := range Routes() {
			if r.Level() != Surface || r.Length() != 1 || r.Color() == NoColor {
				continue
			}
			if c := CarCard(r.Color()); hand.CountOf(c) > 0 {
				route, card = r, c
				break
			}
		}
	}
	if route.IsZero() {
		t.Fatal("no seed dealt a card matching a coloured length-1 route")
	}

	before := gs.CardState().DiscardsSize()
	next, err := gs.WithClaimedRoute(route, NewBag(card))
	if err != nil {
		t.Fatalf("WithClaimedRoute: %v", err)
	}
	pub := next.Public().PlayerState(Player1)
	if len(pub.Routes()) != 1 || pub.Routes()[0].ID() != route.ID() {
		t.Errorf("routes = %v, want [%s]", pub.Routes(), route.ID())
	}
	if got := next.PlayerState(Player1).Cards().CountOf(card); got != hand.CountOf(card)-1 {
		t.Errorf("%s count = %d, want %d", card, got, hand.CountOf(card)-1)
	}
	if next.Public().CardState().DiscardsSize() != before+1 {
		t.Errorf("discards = %d, want %d", next.Public().CardState().DiscardsSize(), before+1)
	}
	if _, err := next.WithClaimedRoute(route, Bag[Card]{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("claiming twice err = %v", err)
	}
}

func TestTicketTransitions(t *testing.T) {
	gs := newTestGame(t, 5)
	offer, err := gs.TopTickets(InitialTicketsCount)
	if err != nil {
		t.Fatal(err)
	}
	gs, err = gs.WithoutTopTickets(InitialTicketsCount)
	if err != nil {
		t.Fatal(err)
	}
	kept := NewBag(offer.Items()[:3]...)
	gs, err = gs.WithInitiallyChosenTickets(Player1, kept)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gs.WithInitiallyChosenTickets(Player1, kept); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("second initial choice err = %v", err)
	}
	if got := gs.PlayerState(Player1).Tickets(); !got.Equal(kept) {
		t.Errorf("tickets = %s", got)
	}

	drawn, _ := gs.TopTickets(InGameTicketsCount)
	outsider := NewBag(offer.Items()[4])
	if _, err := gs.WithChosenAdditionalTickets(drawn, outsider); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("choosing outside the offer err = %v", err)
	}
	count := gs.TicketsCount()
	gs, err = gs.WithChosenAdditionalTickets(drawn, NewBag(drawn.Get(0)))
	if err != nil {
		t.Fatal(err)
	}
	if gs.TicketsCount() != count-InGameTicketsCount {
		t.Errorf("tickets left = %d, want %d", gs.TicketsCount(), count-InGameTicketsCount)
	}
}

func TestCardDraws(t *testing.T) {
	gs := newTestGame(t, 9)
	slot0, _ := gs.CardState().FaceUpCard(0)
	top, _ := gs.TopCard()
	before := gs.CurrentPlayerState().Cards()

	gs, err := gs.WithDrawnFaceUpCard(0)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := gs.CardState().FaceUpCard(0); got != top {
		t.Errorf("slot 0 refilled with %s, want %s", got, top)
	}
	if !gs.CurrentPlayerState().Cards().Equal(before.Union(NewBag(slot0))) {
		t.Errorf("hand did not gain %s", slot0)
	}
	if _, err := gs.WithDrawnFaceUpCard(FaceUpCardsCount); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad slot err = %v", err)
	}

	deckSize := gs.CardState().DeckSize()
	gs, err = gs.WithBlindlyDrawnCard()
	if err != nil {
		t.Fatal(err)
	}
	if gs.CardState().DeckSize() != deckSize-1 {
		t.Errorf("deck size = %d, want %d", gs.CardState().DeckSize(), deckSize-1)
	}
}

func TestDeckRecycling(t *testing.T) {
	gs := newTestGame(t, 21)
	rng := rand.New(rand.NewSource(1))
	if same := gs.WithCardsDeckRecreatedIfNeeded(rng); same.CardState().DeckSize() != gs.CardState().DeckSize() {
		t.Errorf("recycling a non-empty deck changed it")
	}
	for !gs.CardState().IsDeckEmpty() {
		var err error
		if gs, err = gs.WithoutTopCard(); err != nil {
			t.Fatal(err)
		}
	}
	gs = gs.WithMoreDiscardedCards(NewBag(Red, Red, Plane, Locomotive))
	if gs.CardState().DiscardsSize() != 3 {
		t.Fatalf("discards = %d, want 3 (planes leave the game)", gs.CardState().DiscardsSize())
	}
	gs = gs.WithCardsDeckRecreatedIfNeeded(rng)
	if gs.CardState().DeckSize() != 3 || gs.CardState().DiscardsSize() != 0 {
		t.Errorf("deck = %d, discards = %d", gs.CardState().DeckSize(), gs.CardState().DiscardsSize())
	}
}

func TestFinalLap(t *testing.T) {
	gs := newTestGame(t, 2)
	first := gs.CurrentPlayerID()

	var long []Route
	cars := 0
	for _, r := range Routes() {
		if cars+r.Length() > InitialCarCount-FinalLapCarCount {
			continue
		}
		long = append(long, r)
		cars += r.Length()
	}
	ps := NewPlayerState(Bag[Ticket]{}, Bag[Card]{}, long)
	gs.players[first.index()] = ps

	if !gs.LastTurnBegins() {
		t.Fatalf("car count %d should begin the last turn", ps.CarCount())
	}
	gs = gs.ForNextTurn()
	if gs.LastPlayer() != first || gs.CurrentPlayerID() != first.Next() {
		t.Errorf("last = %s, current = %s", gs.LastPlayer(), gs.CurrentPlayerID())
	}
	gs = gs.ForNextTurn()
	if gs.LastPlayer() != first {
		t.Errorf("last player changed to %s", gs.LastPlayer())
	}
}

func TestPossibleClaimAndAdditionalCards(t *testing.T) {
	st := Stations()
	tunnel, _ := NewRoute("T", st[stBER], st[stLUC], 2, Tunnel, ColorRed)
	ps := NewPlayerState(Bag[Ticket]{}, cards(Red, Red, Locomotive, Locomotive, Blue), nil)

	claims, err := ps.PossibleClaimCards(tunnel)
	if err != nil {
		t.Fatal(err)
	}
	want := []Bag[Card]{cards(Red, Red), cards(Red, Locomotive), cards(Locomotive, Locomotive)}
	if len(claims) != len(want) {
		t.Fatalf("claims = %v", claims)
	}
	for i := range want {
		if !claims[i].Equal(want[i]) {
			t.Errorf("claim %d = %s, want %s", i, claims[i], want[i])
		}
	}
	if !ps.CanClaimRoute(tunnel) {
		t.Errorf("cannot claim a route the hand covers")
	}

	extra, err := ps.PossibleAdditionalCards(1, cards(Red, Red), cards(Red, Blue, Green))
	if err != nil {
		t.Fatal(err)
	}
	if len(extra) != 1 || !extra[0].Equal(cards(Locomotive)) {
		t.Errorf("additional = %v, want [{LOCOMOTIVE}]", extra)
	}

	extra, _ = ps.PossibleAdditionalCards(2, cards(Red, Locomotive), cards(Red, Red, Green))
	if len(extra) != 1 || !extra[0].Equal(cards(Red, Locomotive)) {
		t.Errorf("additional = %v, want [{RED, LOCOMOTIVE}]", extra)
	}

	sky := NewPlayerState(Bag[Ticket]{}, cards(Plane, Plane, Locomotive), nil)
	extra, _ = sky.PossibleAdditionalCards(1, cards(Plane, Plane), Bag[Card]{})
	if len(extra) != 1 || !extra[0].Equal(cards(Locomotive)) {
		t.Errorf("sky additional = %v", extra)
	}

	if _, err := ps.PossibleAdditionalCards(4, cards(Red), Bag[Card]{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("need 4 err = %v", err)
	}
}

func TestPublicProjection(t *testing.T) {
	gs := newTestGame(t, 4)
	pub := gs.Public()
	if pub.TicketsCount() != gs.TicketsCount() || pub.CurrentPlayerID() != gs.CurrentPlayerID() {
		t.Errorf("projection lost counters")
	}
	for _, id := range PlayerIDs {
		if pub.PlayerState(id).CardCount() != gs.PlayerState(id).Cards().Len() {
			t.Errorf("%s card count mismatch", id)
		}
	}
	if !pub.CanDrawCards() || !pub.CanDrawTickets() {
		t.Errorf("fresh game should allow drawing")
	}
}

func TestNewGameState(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cards, err := NewCardState(NewDeck(BagOf(8, Blue), rng))
	if err != nil {
		t.Fatal(err)
	}
	tickets := NewDeck(AllTicketsBag(), rng)
	hand := BagOf(2, Red)
	players := map[PlayerID]PlayerState{
		Player1: NewPlayerState(Bag[Ticket]{}, hand, nil),
		Player2: NewPlayerState(Bag[Ticket]{}, Bag[Card]{}, nil),
	}

	gs, err := NewGameState(tickets, cards, Player2, players, NoPlayer)
	if err != nil {
		t.Fatal(err)
	}
	if gs.CurrentPlayerID() != Player2 || !gs.PlayerState(Player1).Cards().Equal(hand) {
		t.Errorf("current = %s, hand = %s", gs.CurrentPlayerID(), gs.PlayerState(Player1).Cards())
	}
	if gs.TicketsCount() != len(Tickets()) || gs.CardState().DeckSize() != 3 {
		t.Errorf("tickets = %d, deck = %d", gs.TicketsCount(), gs.CardState().DeckSize())
	}

	tests := []struct {
		name    string
		current PlayerID
		last    PlayerID
		players map[PlayerID]PlayerState
	}{
		{"no current player", NoPlayer, NoPlayer, players},
		{"bad last player", Player1, PlayerID(7), players},
		{"missing player", Player1, NoPlayer, map[PlayerID]PlayerState{Player1: players[Player1]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGameState(tickets, cards, tt.current, tt.players, tt.last); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

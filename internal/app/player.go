package app

import (
	"context"

	"tchu/internal/domain"
)

// TurnKind is the action a player takes on its turn. The zero value NoTurn means "none".
type TurnKind int

const (
	NoTurn TurnKind = iota
	DrawTickets
	DrawCards
	ClaimRoute
)

// TurnKinds lists the three turn kinds in order.
var TurnKinds = []TurnKind{DrawTickets, DrawCards, ClaimRoute}

func (k TurnKind) String() string {
	switch k {
	case DrawTickets:
		return "DRAW_TICKETS"
	case DrawCards:
		return "DRAW_CARDS"
	case ClaimRoute:
		return "CLAIM_ROUTE"
	}
	return "NONE"
}

// Player is a participant driven by the game loop. Notifications flow in through
// InitPlayers, ReceiveInfo and UpdateState; the other methods are decisions the loop
// blocks on. An error aborts the game.
type Player interface {
	InitPlayers(ctx context.Context, own domain.PlayerID, names map[domain.PlayerID]string) error
	ReceiveInfo(ctx context.Context, info string) error
	UpdateState(ctx context.Context, state domain.PublicGameState, own domain.PlayerState) error
	SetInitialTicketChoice(ctx context.Context, tickets domain.Bag[domain.Ticket]) error
	ChooseInitialTickets(ctx context.Context) (domain.Bag[domain.Ticket], error)
	NextTurn(ctx context.Context) (TurnKind, error)
	ChooseTickets(ctx context.Context, options domain.Bag[domain.Ticket]) (domain.Bag[domain.Ticket], error)
	// DrawSlot returns a face-up slot or domain.DeckSlot.
	DrawSlot(ctx context.Context) (int, error)
	ClaimedRoute(ctx context.Context) (domain.Route, error)
	InitialClaimCards(ctx context.Context) (domain.Bag[domain.Card], error)
	// ChooseAdditionalCards returns one of options, or an empty bag to give up the claim.
	ChooseAdditionalCards(ctx context.Context, options []domain.Bag[domain.Card]) (domain.Bag[domain.Card], error)
}

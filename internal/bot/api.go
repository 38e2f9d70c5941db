package bot

import (
	"tchu/internal/app"
	"tchu/internal/domain"
)

// Move represents the turn decision made by the AI.
type Move struct {
	Kind app.TurnKind
	// Slot is the first card to draw when Kind is app.DrawCards.
	Slot  int
	Route domain.Route
	Cards domain.Bag[domain.Card]
}

// Snapshot is what a bot knows when it has to decide.
type Snapshot struct {
	Own   domain.PlayerID
	State domain.PublicGameState
	Mine  domain.PlayerState
	Rules app.Rules
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	ChooseTickets(s Snapshot, options domain.Bag[domain.Ticket], minKept int) domain.Bag[domain.Ticket]
	CalculateMove(s Snapshot) (Move, error)
	// DrawSlot picks the second card of a draw-cards turn.
	DrawSlot(s Snapshot) int
	ChooseAdditionalCards(s Snapshot, options []domain.Bag[domain.Card]) domain.Bag[domain.Card]
}

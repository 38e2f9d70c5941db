package bot

import (
	"tchu/internal/app"
	"tchu/internal/bot/internal"
	"tchu/internal/domain"
)

// GoodBot claims the most valuable route it can afford and otherwise draws cards. It keeps
// the cheapest tickets and never plans for them.
type GoodBot struct {
	planner *internal.Planner
}

func (b *GoodBot) ChooseTickets(s Snapshot, options domain.Bag[domain.Ticket], minKept int) domain.Bag[domain.Ticket] {
	return keepCheapest(s, b.planner, options, minKept)
}

func (b *GoodBot) CalculateMove(s Snapshot) (Move, error) {
	board := internal.NewBoard(s.Own, s.State)
	claims := affordableClaims(s, board)

	// Wait for a few cards before claiming short routes.
	if len(claims) > 0 && (s.Mine.Cards().Len() >= 6 || !s.State.CanDrawCards()) {
		best := claims[0]
		for _, c := range claims[1:] {
			if c.Route.ClaimPoints() > best.Route.ClaimPoints() ||
				(c.Route.ClaimPoints() == best.Route.ClaimPoints() &&
					c.Cards.CountOf(domain.Locomotive) < best.Cards.CountOf(domain.Locomotive)) {
				best = c
			}
		}
		return claimMove(best), nil
	}
	if s.State.CanDrawCards() {
		return Move{Kind: app.DrawCards, Slot: b.DrawSlot(s)}, nil
	}
	return fallbackMove(s, board)
}

// DrawSlot takes a visible locomotive, otherwise draws blind.
func (b *GoodBot) DrawSlot(s Snapshot) int {
	for slot, c := range s.State.CardState().FaceUpCards() {
		if c == domain.Locomotive {
			return slot
		}
	}
	return domain.DeckSlot
}

func (b *GoodBot) ChooseAdditionalCards(_ Snapshot, options []domain.Bag[domain.Card]) domain.Bag[domain.Card] {
	return cheapestAdditional(options, 1)
}

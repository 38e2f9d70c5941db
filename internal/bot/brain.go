package bot

import (
	"errors"

	"tchu/internal/app"
	"tchu/internal/bot/internal"
	"tchu/internal/domain"
)

// ErrNoLegalMove is returned when a bot can neither draw nor claim anything.
var ErrNoLegalMove = errors.New("bot: no legal move")

// affordableClaims lists every route the player may claim now, each with its cheapest
// card set (fewest locomotives first).
func affordableClaims(s Snapshot, board internal.Board) []internal.ClaimOption {
	var out []internal.ClaimOption
	for _, r := range domain.Routes() {
		if !board.Free(r) || !s.Mine.CanClaimRoute(r) {
			continue
		}
		// The sky surcharge is paid in locomotives on top of the planes.
		if r.Level() == domain.Sky && s.Mine.Cards().CountOf(domain.Locomotive) < s.Rules.SkySurcharge {
			continue
		}
		options, err := s.Mine.PossibleClaimCards(r)
		if err != nil || len(options) == 0 {
			continue
		}
		out = append(out, internal.ClaimOption{Route: r, Cards: options[0]})
	}
	return out
}

// fallbackMove draws blind when possible, then tickets, then claims anything affordable.
func fallbackMove(s Snapshot, board internal.Board) (Move, error) {
	if s.State.CanDrawCards() {
		return Move{Kind: app.DrawCards, Slot: domain.DeckSlot}, nil
	}
	if s.State.CanDrawTickets() {
		return Move{Kind: app.DrawTickets}, nil
	}
	if claims := affordableClaims(s, board); len(claims) > 0 {
		return claimMove(claims[0]), nil
	}
	return Move{}, ErrNoLegalMove
}

func claimMove(c internal.ClaimOption) Move {
	return Move{Kind: app.ClaimRoute, Route: c.Route, Cards: c.Cards}
}

// cheapestAdditional picks the option with the fewest locomotives, or gives up when even
// that costs more locomotives than maxLocos.
func cheapestAdditional(options []domain.Bag[domain.Card], maxLocos int) domain.Bag[domain.Card] {
	if len(options) == 0 {
		return domain.Bag[domain.Card]{}
	}
	best := options[0]
	for _, o := range options[1:] {
		if o.CountOf(domain.Locomotive) < best.CountOf(domain.Locomotive) {
			best = o
		}
	}
	if best.CountOf(domain.Locomotive) > maxLocos {
		return domain.Bag[domain.Card]{}
	}
	return best
}

// keepCheapest keeps the minKept tickets whose best trip needs the fewest cars.
func keepCheapest(s Snapshot, planner *internal.Planner, options domain.Bag[domain.Ticket], minKept int) domain.Bag[domain.Ticket] {
	ctx := newSelectionContext(s, planner, options)
	(&FavorCheapTicketsRule{}).Apply(ctx)
	return ctx.Select(minKept, false)
}

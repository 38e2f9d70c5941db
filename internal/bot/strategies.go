package bot

import (
	"math/rand"

	"tchu/internal/app"
	"tchu/internal/bot/internal"
	"tchu/internal/domain"
)

// EasyBot plays random legal moves.
type EasyBot struct {
	rng *rand.Rand
}

func (b *EasyBot) ChooseTickets(_ Snapshot, options domain.Bag[domain.Ticket], minKept int) domain.Bag[domain.Ticket] {
	items := options.Items()
	b.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	n := minKept + b.rng.Intn(len(items)-minKept+1)
	return domain.NewBag(items[:n]...)
}

func (b *EasyBot) CalculateMove(s Snapshot) (Move, error) {
	board := internal.NewBoard(s.Own, s.State)
	claims := affordableClaims(s, board)
	if len(claims) > 0 && (b.rng.Intn(2) == 0 || !s.State.CanDrawCards()) {
		return claimMove(claims[b.rng.Intn(len(claims))]), nil
	}
	if s.State.CanDrawCards() {
		return Move{Kind: app.DrawCards, Slot: b.DrawSlot(s)}, nil
	}
	return fallbackMove(s, board)
}

func (b *EasyBot) DrawSlot(Snapshot) int {
	return b.rng.Intn(domain.FaceUpCardsCount+1) - 1
}

func (b *EasyBot) ChooseAdditionalCards(_ Snapshot, options []domain.Bag[domain.Card]) domain.Bag[domain.Card] {
	if len(options) == 0 {
		return domain.Bag[domain.Card]{}
	}
	return options[b.rng.Intn(len(options))]
}

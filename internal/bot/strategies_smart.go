package bot

import (
	"math"

	"tchu/internal/app"
	"tchu/internal/bot/internal"
	"tchu/internal/domain"
)

// handLimit is the hand size at which a planning bot stops drawing and claims anything.
const handLimit = 14

// SmartBot plans the cheapest paths for its tickets, collects the colours they need and
// claims planned routes first.
type SmartBot struct {
	planner *internal.Planner
	tuning  internal.BotTuning
	rules   []SelectionRule
	// blocks is consulted for every candidate claim; nil means no blocking.
	blocks func(s Snapshot, r domain.Route) bool
}

func newSmartBot(tuning internal.BotTuning) *SmartBot {
	return &SmartBot{
		planner: internal.NewPlanner(domain.Routes()),
		tuning:  tuning,
		rules:   DefaultSelectionRules(tuning),
	}
}

func (b *SmartBot) ChooseTickets(s Snapshot, options domain.Bag[domain.Ticket], minKept int) domain.Bag[domain.Ticket] {
	ctx := newSelectionContext(s, b.planner, options)
	for _, rule := range b.rules {
		rule.Apply(ctx)
	}
	return ctx.Select(minKept, true)
}

// openPlans returns the plans of unfinished but still reachable tickets.
func (b *SmartBot) openPlans(s Snapshot, board internal.Board) []internal.Plan {
	var plans []internal.Plan
	for _, t := range s.Mine.Tickets().Items() {
		plan, ok := b.planner.TicketPlan(board, t)
		if ok && !plan.Done() {
			plans = append(plans, plan)
		}
	}
	return plans
}

func (b *SmartBot) CalculateMove(s Snapshot) (Move, error) {
	// 1. Identify Context
	phase := internal.DetectPhase(s.State)
	weights := b.tuning.ForPhase(phase)
	board := internal.NewBoard(s.Own, s.State)
	plans := b.openPlans(s, board)
	planned := make(map[string]bool)
	for _, p := range plans {
		for _, r := range p.Routes {
			planned[r.ID()] = true
		}
	}

	// 2. Score every affordable claim
	trail := domain.LongestTrail(s.Mine.Routes())
	best, bestScore, bestOnPlan := internal.ClaimOption{}, math.Inf(-1), false
	for _, c := range affordableClaims(s, board) {
		onPlan := planned[c.Route.ID()]
		score := internal.ScoreClaim(c, weights, onPlan, extendsTrail(trail, c.Route), b.blocks != nil && b.blocks(s, c.Route))
		if score > bestScore {
			best, bestScore, bestOnPlan = c, score, onPlan
		}
	}
	canClaim := !best.Route.IsZero()

	// 3. Decide
	switch {
	case canClaim && bestOnPlan:
		return claimMove(best), nil
	case canClaim && phase == internal.PhaseEnd:
		return claimMove(best), nil
	case len(plans) == 0 && s.State.CanDrawTickets() && s.Mine.CarCount() > weights.DrawTicketsMinCars:
		return Move{Kind: app.DrawTickets}, nil
	case canClaim && (len(plans) == 0 || s.Mine.Cards().Len() >= handLimit || !s.State.CanDrawCards()):
		return claimMove(best), nil
	case s.State.CanDrawCards():
		return Move{Kind: app.DrawCards, Slot: b.pickSlot(s, plans)}, nil
	}
	return fallbackMove(s, board)
}

func (b *SmartBot) DrawSlot(s Snapshot) int {
	return b.pickSlot(s, b.openPlans(s, internal.NewBoard(s.Own, s.State)))
}

// pickSlot takes the visible card that best covers the colours still missing for the
// plans, a visible locomotive otherwise, else draws blind.
func (b *SmartBot) pickSlot(s Snapshot, plans []internal.Plan) int {
	var routes []domain.Route
	for _, p := range plans {
		routes = append(routes, p.Routes...)
	}
	demand := internal.ColorDemand(routes)
	hand := s.Mine.Cards()

	bestSlot, bestGap := domain.DeckSlot, 0
	for slot, c := range s.State.CardState().FaceUpCards() {
		if c == domain.Locomotive {
			if bestGap == 0 {
				bestSlot = slot
			}
			continue
		}
		if c.IsWildcard() {
			continue
		}
		gap := demand[c.Color()] - hand.CountOf(c)
		if gap > bestGap {
			bestSlot, bestGap = slot, gap
		}
	}
	return bestSlot
}

func (b *SmartBot) ChooseAdditionalCards(_ Snapshot, options []domain.Bag[domain.Card]) domain.Bag[domain.Card] {
	return cheapestAdditional(options, 2)
}

func extendsTrail(t domain.Trail, r domain.Route) bool {
	s1, s2 := t.Station1(), t.Station2()
	if s1 == nil || s2 == nil {
		return false
	}
	for _, s := range r.Stations() {
		if s.ID == s1.ID || s.ID == s2.ID {
			return true
		}
	}
	return false
}

package internal

import "tchu/internal/domain"

// PhaseWeights holds tunable scoring parameters for a specific game phase.
type PhaseWeights struct {
	ClaimPointsWeight float64
	PlanRouteBonus    float64
	TrailRouteBonus   float64
	LocomotivePenalty float64
	TunnelPenalty     float64
	BlockBonus        float64
	// DrawTicketsMinCars is the car count below which no new tickets are taken.
	DrawTicketsMinCars int
}

// BotTuning groups phase weights with ticket selection thresholds.
type BotTuning struct {
	Opening PhaseWeights
	Mid     PhaseWeights
	End     PhaseWeights
	// MaxTicketCostRatio drops tickets whose remaining cars exceed points times this ratio.
	MaxTicketCostRatio float64
}

// ForPhase returns the weights that match the supplied phase.
func (t BotTuning) ForPhase(phase GamePhase) PhaseWeights {
	switch phase {
	case PhaseOpening:
		return t.Opening
	case PhaseEnd:
		return t.End
	default:
		return t.Mid
	}
}

// ClaimOption is an affordable claim with the cheapest card set for it.
type ClaimOption struct {
	Route domain.Route
	Cards domain.Bag[domain.Card]
}

// ScoredClaim holds a claim with its computed score.
type ScoredClaim struct {
	ClaimOption
	Score float64
}

// ScoreClaim rates a claim. onPlan and onTrail tell whether the route advances a ticket or
// extends the longest trail; blocks tells whether it cuts an opponent's likely path.
func ScoreClaim(c ClaimOption, w PhaseWeights, onPlan, onTrail, blocks bool) float64 {
	score := float64(c.Route.ClaimPoints()) * w.ClaimPointsWeight
	if onPlan {
		score += w.PlanRouteBonus * float64(c.Route.Length())
	}
	if onTrail {
		score += w.TrailRouteBonus
	}
	if blocks {
		score += w.BlockBonus
	}
	score -= w.LocomotivePenalty * float64(c.Cards.CountOf(domain.Locomotive))
	if c.Route.Level() == domain.Tunnel {
		score -= w.TunnelPenalty
	}
	return score
}

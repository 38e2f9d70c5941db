package bot

import botinternal "tchu/internal/bot/internal"

// DefaultTuning balances ticket completion and raw route points by phase.
var DefaultTuning = botinternal.BotTuning{
	Opening: botinternal.PhaseWeights{
		ClaimPointsWeight:  0.5,
		PlanRouteBonus:     3.0,
		TrailRouteBonus:    0.5,
		LocomotivePenalty:  1.5,
		TunnelPenalty:      2.0,
		BlockBonus:         0.0,
		DrawTicketsMinCars: 30,
	},
	Mid: botinternal.PhaseWeights{
		ClaimPointsWeight:  0.8,
		PlanRouteBonus:     3.0,
		TrailRouteBonus:    1.0,
		LocomotivePenalty:  1.0,
		TunnelPenalty:      1.5,
		BlockBonus:         1.0,
		DrawTicketsMinCars: 20,
	},
	End: botinternal.PhaseWeights{
		ClaimPointsWeight:  1.5,
		PlanRouteBonus:     4.0,
		TrailRouteBonus:    2.0,
		LocomotivePenalty:  0.2,
		TunnelPenalty:      0.5,
		BlockBonus:         2.0,
		DrawTicketsMinCars: 99,
	},
	MaxTicketCostRatio: 1.5,
}

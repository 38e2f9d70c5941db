package bot

import (
	"math"
	"sort"

	"tchu/internal/bot/internal"
	"tchu/internal/domain"
)

// SelectionContext holds the state for the ticket selection pipeline.
type SelectionContext struct {
	Candidates []domain.Ticket
	Plans      []internal.Plan
	Reachable  []bool
	Scores     []float64
	// Committed holds the routes already planned for the tickets in hand.
	Committed map[string]bool
	Cars      int
}

func newSelectionContext(s Snapshot, planner *internal.Planner, options domain.Bag[domain.Ticket]) *SelectionContext {
	board := internal.NewBoard(s.Own, s.State)
	ctx := &SelectionContext{
		Candidates: options.Items(),
		Committed:  make(map[string]bool),
		Cars:       s.Mine.CarCount(),
	}
	for _, t := range s.Mine.Tickets().Items() {
		if plan, ok := planner.TicketPlan(board, t); ok {
			for _, r := range plan.Routes {
				ctx.Committed[r.ID()] = true
			}
		}
	}
	for _, t := range ctx.Candidates {
		plan, ok := planner.TicketPlan(board, t)
		ctx.Plans = append(ctx.Plans, plan)
		ctx.Reachable = append(ctx.Reachable, ok)
		ctx.Scores = append(ctx.Scores, 0)
	}
	return ctx
}

// Select returns the best scored tickets: all those with a positive score when
// positiveOnly is set, and never fewer than minKept.
func (ctx *SelectionContext) Select(minKept int, positiveOnly bool) domain.Bag[domain.Ticket] {
	order := make([]int, len(ctx.Candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ctx.Scores[order[a]] > ctx.Scores[order[b]]
	})
	var kept []domain.Ticket
	for n, i := range order {
		if n >= minKept && (!positiveOnly || ctx.Scores[i] <= 0) {
			break
		}
		kept = append(kept, ctx.Candidates[i])
	}
	return domain.NewBag(kept...)
}

// SelectionRule represents a logic unit that adjusts ticket scores.
type SelectionRule interface {
	Name() string
	Apply(ctx *SelectionContext)
}

// FavorCheapTicketsRule prefers tickets needing fewer cars.
type FavorCheapTicketsRule struct{}

func (r *FavorCheapTicketsRule) Name() string { return "FavorCheapTickets" }

func (r *FavorCheapTicketsRule) Apply(ctx *SelectionContext) {
	for i, plan := range ctx.Plans {
		if ctx.Reachable[i] {
			ctx.Scores[i] -= float64(plan.Cost)
		}
	}
}

// FavorValueRule scores tickets by points won net of the cars they cost. Tickets costing
// more than maxRatio cars per point, or more cars than are left, lose their points.
type FavorValueRule struct {
	MaxRatio float64
}

func (r *FavorValueRule) Name() string { return "FavorValue" }

func (r *FavorValueRule) Apply(ctx *SelectionContext) {
	for i, plan := range ctx.Plans {
		if !ctx.Reachable[i] {
			continue
		}
		if plan.Cost > ctx.Cars || (plan.Points > 0 && float64(plan.Cost) > float64(plan.Points)*r.MaxRatio) {
			ctx.Scores[i] -= float64(plan.Points)
			continue
		}
		ctx.Scores[i] += float64(plan.Points) - float64(plan.Cost)/2
	}
}

// FavorOverlapRule rewards tickets whose routes are already planned for other tickets.
type FavorOverlapRule struct{}

func (r *FavorOverlapRule) Name() string { return "FavorOverlap" }

func (r *FavorOverlapRule) Apply(ctx *SelectionContext) {
	for i, plan := range ctx.Plans {
		for _, route := range plan.Routes {
			if ctx.Committed[route.ID()] {
				ctx.Scores[i] += float64(route.Length())
			}
		}
	}
}

// DropUnreachableRule sinks tickets that can no longer be completed.
type DropUnreachableRule struct{}

func (r *DropUnreachableRule) Name() string { return "DropUnreachable" }

func (r *DropUnreachableRule) Apply(ctx *SelectionContext) {
	for i, ok := range ctx.Reachable {
		if !ok {
			ctx.Scores[i] = math.Inf(-1)
		}
	}
}

// DefaultSelectionRules is the pipeline used by planning bots.
func DefaultSelectionRules(tuning internal.BotTuning) []SelectionRule {
	return []SelectionRule{
		&FavorValueRule{MaxRatio: tuning.MaxTicketCostRatio},
		&FavorOverlapRule{},
		&DropUnreachableRule{},
	}
}

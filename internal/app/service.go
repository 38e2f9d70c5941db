package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/domain"
)

// Rules holds the tunable parts of the rules.
type Rules struct {
	// SkySurcharge is the number of locomotives owed on top of the planes of a sky claim, 0 to 3.
	SkySurcharge int
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{SkySurcharge: domain.DefaultSkySurcharge}
}

// Service runs tCHu games between two players.
type Service struct {
	rng    *rand.Rand
	logger runtime.Logger
	rules  Rules
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, logger runtime.Logger, rules Rules) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rules.SkySurcharge = min(max(rules.SkySurcharge, 0), domain.AdditionalTunnelCardsCount)
	return &Service{rng: rng, logger: logger, rules: rules}
}

var (
	ErrTooFewPlayers  = errors.New("a game needs exactly two players")
	ErrInvalidChoice  = errors.New("invalid player choice")
	ErrTurnNotAllowed = errors.New("turn kind not allowed")
)

// Outcome summarizes a finished game.
type Outcome struct {
	Points  map[domain.PlayerID]int
	Trails  map[domain.PlayerID]domain.Trail
	Winners []domain.PlayerID
	Final   domain.GameState
}

// Play runs a whole game and returns its outcome. It stops at the first error a player returns.
func (s *Service) Play(ctx context.Context, players map[domain.PlayerID]Player, names map[domain.PlayerID]string, tickets domain.Bag[domain.Ticket]) (Outcome, error) {
	if len(players) != domain.PlayerCount || len(names) != domain.PlayerCount {
		return Outcome{}, ErrTooFewPlayers
	}
	for _, id := range domain.PlayerIDs {
		if players[id] == nil {
			return Outcome{}, fmt.Errorf("%w: no player for %s", ErrTooFewPlayers, id)
		}
	}

	g := &game{svc: s, players: players, infos: make(map[domain.PlayerID]Info)}
	for _, id := range domain.PlayerIDs {
		g.infos[id] = NewInfo(names[id])
	}
	if err := g.setup(ctx, names, tickets); err != nil {
		return Outcome{}, err
	}
	if err := g.loop(ctx); err != nil {
		return Outcome{}, err
	}
	return g.finish(ctx)
}

type game struct {
	svc     *Service
	players map[domain.PlayerID]Player
	infos   map[domain.PlayerID]Info
	state   domain.GameState
}

func playerErr(id domain.PlayerID, op string, err error) error {
	return fmt.Errorf("%s %s: %w", id, op, err)
}

func (g *game) info(ctx context.Context, text string) error {
	for _, id := range domain.PlayerIDs {
		if err := g.players[id].ReceiveInfo(ctx, text); err != nil {
			return playerErr(id, "receive info", err)
		}
	}
	return nil
}

func (g *game) sync(ctx context.Context) error {
	pub := g.state.Public()
	for _, id := range domain.PlayerIDs {
		if err := g.players[id].UpdateState(ctx, pub, g.state.PlayerState(id)); err != nil {
			return playerErr(id, "update state", err)
		}
	}
	return nil
}

func (g *game) setup(ctx context.Context, names map[domain.PlayerID]string, tickets domain.Bag[domain.Ticket]) error {
	for _, id := range domain.PlayerIDs {
		if err := g.players[id].InitPlayers(ctx, id, names); err != nil {
			return playerErr(id, "init players", err)
		}
	}

	var err error
	if g.state, err = domain.InitialGameState(tickets, g.svc.rng); err != nil {
		return err
	}
	if err := g.sync(ctx); err != nil {
		return err
	}
	if err := g.info(ctx, g.infos[g.state.CurrentPlayerID()].WillPlayFirst()); err != nil {
		return err
	}

	offers := make(map[domain.PlayerID]domain.Bag[domain.Ticket])
	for _, id := range domain.PlayerIDs {
		offer, err := g.state.TopTickets(domain.InitialTicketsCount)
		if err != nil {
			return err
		}
		offers[id] = offer
		if err := g.players[id].SetInitialTicketChoice(ctx, offer); err != nil {
			return playerErr(id, "set initial tickets", err)
		}
		if g.state, err = g.state.WithoutTopTickets(domain.InitialTicketsCount); err != nil {
			return err
		}
		if err := g.sync(ctx); err != nil {
			return err
		}
	}

	for _, id := range domain.PlayerIDs {
		chosen, err := g.players[id].ChooseInitialTickets(ctx)
		if err != nil {
			return playerErr(id, "choose initial tickets", err)
		}
		if err := checkTickets(offers[id], chosen, domain.MinInitialTicketsKept); err != nil {
			return playerErr(id, "choose initial tickets", err)
		}
		if g.state, err = g.state.WithInitiallyChosenTickets(id, chosen); err != nil {
			return err
		}
	}
	for _, id := range domain.PlayerIDs {
		if err := g.info(ctx, g.infos[id].KeptTickets(g.state.PlayerState(id).Tickets().Len())); err != nil {
			return err
		}
	}
	g.svc.logger.Debug("Game: setup done, %s plays first", g.state.CurrentPlayerID())
	return g.sync(ctx)
}

func checkTickets(offer, chosen domain.Bag[domain.Ticket], minKept int) error {
	if chosen.Len() < minKept || !offer.Contains(chosen) {
		return fmt.Errorf("%w: kept %s out of %s", ErrInvalidChoice, chosen, offer)
	}
	return nil
}

func (g *game) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := g.state.CurrentPlayerID()
		if err := g.info(ctx, g.infos[id].CanPlay()); err != nil {
			return err
		}
		if err := g.sync(ctx); err != nil {
			return err
		}

		kind, err := g.players[id].NextTurn(ctx)
		if err != nil {
			return playerErr(id, "next turn", err)
		}
		g.svc.logger.Debug("Game: %s plays %s", id, kind)
		switch kind {
		case DrawTickets:
			err = g.drawTickets(ctx, id)
		case DrawCards:
			err = g.drawCards(ctx, id)
		case ClaimRoute:
			err = g.claimRoute(ctx, id)
		default:
			err = fmt.Errorf("%w: %v", ErrInvalidChoice, kind)
		}
		if err != nil {
			return playerErr(id, kind.String(), err)
		}

		if g.state.LastTurnBegins() {
			if err := g.info(ctx, g.infos[id].LastTurnBegins(g.state.CurrentPlayerState().CarCount())); err != nil {
				return err
			}
		}
		done := g.state.LastPlayer() == id
		g.state = g.state.ForNextTurn()
		if done {
			return nil
		}
	}
}

func (g *game) drawTickets(ctx context.Context, id domain.PlayerID) error {
	if !g.state.Public().CanDrawTickets() {
		return ErrTurnNotAllowed
	}
	count := min(domain.InGameTicketsCount, g.state.TicketsCount())
	offer, err := g.state.TopTickets(count)
	if err != nil {
		return err
	}
	chosen, err := g.players[id].ChooseTickets(ctx, offer)
	if err != nil {
		return err
	}
	if err := checkTickets(offer, chosen, min(domain.MinInGameTicketsKept, count)); err != nil {
		return err
	}
	if err := g.info(ctx, g.infos[id].DrewTickets(count)); err != nil {
		return err
	}
	if err := g.info(ctx, g.infos[id].KeptTickets(chosen.Len())); err != nil {
		return err
	}
	g.state, err = g.state.WithChosenAdditionalTickets(offer, chosen)
	return err
}

func (g *game) drawCards(ctx context.Context, id domain.PlayerID) error {
	if !g.state.Public().CanDrawCards() {
		return ErrTurnNotAllowed
	}
	for i := range 2 {
		g.state = g.state.WithCardsDeckRecreatedIfNeeded(g.svc.rng)
		if g.state.CardState().IsDeckEmpty() {
			// Nothing left to refill a slot or draw blind.
			return nil
		}
		if i == 1 {
			if err := g.sync(ctx); err != nil {
				return err
			}
		}
		slot, err := g.players[id].DrawSlot(ctx)
		if err != nil {
			return err
		}
		if slot == domain.DeckSlot {
			if g.state, err = g.state.WithBlindlyDrawnCard(); err != nil {
				return err
			}
			if err := g.info(ctx, g.infos[id].DrewBlindCard()); err != nil {
				return err
			}
			continue
		}
		card, err := g.state.CardState().FaceUpCard(slot)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidChoice, err)
		}
		if err := g.info(ctx, g.infos[id].DrewVisibleCard(card)); err != nil {
			return err
		}
		if g.state, err = g.state.WithDrawnFaceUpCard(slot); err != nil {
			return err
		}
	}
	return nil
}

func (g *game) claimRoute(ctx context.Context, id domain.PlayerID) error {
	p := g.players[id]
	route, err := p.ClaimedRoute(ctx)
	if err != nil {
		return err
	}
	initial, err := p.InitialClaimCards(ctx)
	if err != nil {
		return err
	}
	if err := g.checkClaim(route, initial); err != nil {
		return err
	}

	info := g.infos[id]
	switch route.Level() {
	case domain.Tunnel:
		if err := g.info(ctx, info.AttemptsTunnelClaim(route, initial)); err != nil {
			return err
		}
		drawn := g.drawTunnelCards()
		g.state = g.state.WithMoreDiscardedCards(drawn)
		need, err := route.AdditionalClaimCardsCount(initial, drawn)
		if err != nil {
			return err
		}
		if err := g.info(ctx, info.DrewAdditionalCards(drawn, need)); err != nil {
			return err
		}
		return g.completeClaim(ctx, id, route, initial, drawn, need)

	case domain.Sky:
		if err := g.info(ctx, info.AttemptsSkyClaim(route, initial)); err != nil {
			return err
		}
		need := g.svc.rules.SkySurcharge
		text := info.SkySurcharge(route, need)
		if need == 0 {
			text = info.NoSkySurcharge(route)
		}
		if err := g.info(ctx, text); err != nil {
			return err
		}
		return g.completeClaim(ctx, id, route, initial, domain.Bag[domain.Card]{}, need)
	}
	return g.claim(ctx, id, route, initial)
}

func (g *game) checkClaim(route domain.Route, initial domain.Bag[domain.Card]) error {
	if route.IsZero() {
		return fmt.Errorf("%w: no route", ErrInvalidChoice)
	}
	for _, r := range g.state.Public().ClaimedRoutes() {
		if r.ID() == route.ID() {
			return fmt.Errorf("%w: route %s already claimed", ErrInvalidChoice, route.ID())
		}
	}
	ps := g.state.CurrentPlayerState()
	if !ps.CanClaimRoute(route) {
		return fmt.Errorf("%w: cannot claim %s", ErrInvalidChoice, route.ID())
	}
	options, err := ps.PossibleClaimCards(route)
	if err != nil {
		return err
	}
	for _, o := range options {
		if o.Equal(initial) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot claim %s", ErrInvalidChoice, initial, route.ID())
}

// drawTunnelCards takes up to three cards off the deck, recycling the discards when needed.
func (g *game) drawTunnelCards() domain.Bag[domain.Card] {
	var drawn domain.BagBuilder[domain.Card]
	for range domain.AdditionalTunnelCardsCount {
		g.state = g.state.WithCardsDeckRecreatedIfNeeded(g.svc.rng)
		c, err := g.state.TopCard()
		if err != nil {
			break
		}
		g.state, _ = g.state.WithoutTopCard()
		drawn.Add(1, c)
	}
	return drawn.Build()
}

func (g *game) completeClaim(ctx context.Context, id domain.PlayerID, route domain.Route, initial, drawn domain.Bag[domain.Card], need int) error {
	if need == 0 {
		return g.claim(ctx, id, route, initial)
	}
	options, err := g.state.CurrentPlayerState().PossibleAdditionalCards(need, initial, drawn)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		return g.info(ctx, g.infos[id].DidNotClaimRoute(route))
	}
	extra, err := g.players[id].ChooseAdditionalCards(ctx, options)
	if err != nil {
		return err
	}
	if extra.IsEmpty() {
		return g.info(ctx, g.infos[id].DidNotClaimRoute(route))
	}
	for _, o := range options {
		if o.Equal(extra) {
			return g.claim(ctx, id, route, initial.Union(extra))
		}
	}
	return fmt.Errorf("%w: additional cards %s not offered", ErrInvalidChoice, extra)
}

func (g *game) claim(ctx context.Context, id domain.PlayerID, route domain.Route, cards domain.Bag[domain.Card]) error {
	next, err := g.state.WithClaimedRoute(route, cards)
	if err != nil {
		return err
	}
	g.state = next
	return g.info(ctx, g.infos[id].ClaimedRoute(route, cards))
}

func (g *game) finish(ctx context.Context) (Outcome, error) {
	out := Outcome{
		Points: make(map[domain.PlayerID]int),
		Trails: make(map[domain.PlayerID]domain.Trail),
		Final:  g.state,
	}
	longest := 0
	for _, id := range domain.PlayerIDs {
		ps := g.state.PlayerState(id)
		out.Points[id] = ps.FinalPoints()
		out.Trails[id] = domain.LongestTrail(ps.Routes())
		longest = max(longest, out.Trails[id].Length())
	}
	for _, id := range domain.PlayerIDs {
		if out.Trails[id].Length() != longest {
			continue
		}
		out.Points[id] += domain.LongestTrailBonusPoints
		if err := g.info(ctx, g.infos[id].GetsLongestTrailBonus(out.Trails[id])); err != nil {
			return Outcome{}, err
		}
	}
	if err := g.sync(ctx); err != nil {
		return Outcome{}, err
	}

	p1, p2 := out.Points[domain.Player1], out.Points[domain.Player2]
	var text string
	switch {
	case p1 == p2:
		out.Winners = []domain.PlayerID{domain.Player1, domain.Player2}
		text = Draw([]string{g.infos[domain.Player1].name, g.infos[domain.Player2].name}, p1)
	case p1 > p2:
		out.Winners = []domain.PlayerID{domain.Player1}
		text = g.infos[domain.Player1].Won(p1, p2)
	default:
		out.Winners = []domain.PlayerID{domain.Player2}
		text = g.infos[domain.Player2].Won(p2, p1)
	}
	g.svc.logger.Info("Game: finished %d - %d", p1, p2)
	return out, g.info(ctx, text)
}

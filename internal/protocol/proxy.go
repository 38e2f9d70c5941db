package protocol

import (
	"context"
	"fmt"
	"strings"

	"tchu/internal/app"
	"tchu/internal/domain"
)

// Proxy is the engine-side stand-in for a remote player. Each call becomes one line on the
// connection; queries then block for the single reply line.
type Proxy struct {
	conn LineConn
}

var _ app.Player = (*Proxy)(nil)

func NewProxy(conn LineConn) *Proxy {
	return &Proxy{conn: conn}
}

func (p *Proxy) Close() error { return p.conn.Close() }

func (p *Proxy) send(ctx context.Context, id MessageID, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line := string(id)
	if len(args) > 0 {
		line += fieldSep + strings.Join(args, fieldSep)
	}
	if err := p.conn.WriteLine(line); err != nil {
		return fmt.Errorf("protocol: %s: %w", id, err)
	}
	return nil
}

func ask[T any](ctx context.Context, p *Proxy, s Serde[T], id MessageID, args ...string) (T, error) {
	var zero T
	if err := p.send(ctx, id, args...); err != nil {
		return zero, err
	}
	line, err := p.conn.ReadLine()
	if err != nil {
		return zero, fmt.Errorf("protocol: %s: %w", id, err)
	}
	v, err := s.Deserialize(line)
	if err != nil {
		return zero, fmt.Errorf("protocol: %s: %w", id, err)
	}
	return v, nil
}

func (p *Proxy) InitPlayers(ctx context.Context, own domain.PlayerID, names map[domain.PlayerID]string) error {
	list := make([]string, 0, len(domain.PlayerIDs))
	for _, id := range domain.PlayerIDs {
		list = append(list, names[id])
	}
	return p.send(ctx, MsgInitPlayers, PlayerID.Serialize(own), Strings.Serialize(list))
}

func (p *Proxy) ReceiveInfo(ctx context.Context, info string) error {
	return p.send(ctx, MsgReceiveInfo, String.Serialize(info))
}

func (p *Proxy) UpdateState(ctx context.Context, state domain.PublicGameState, own domain.PlayerState) error {
	return p.send(ctx, MsgUpdateState, PublicGameState.Serialize(state), PlayerState.Serialize(own))
}

func (p *Proxy) SetInitialTicketChoice(ctx context.Context, tickets domain.Bag[domain.Ticket]) error {
	return p.send(ctx, MsgSetInitialTickets, TicketBag.Serialize(tickets))
}

func (p *Proxy) ChooseInitialTickets(ctx context.Context) (domain.Bag[domain.Ticket], error) {
	return ask(ctx, p, TicketBag, MsgChooseInitialTickets)
}

func (p *Proxy) NextTurn(ctx context.Context) (app.TurnKind, error) {
	return ask(ctx, p, TurnKind, MsgNextTurn)
}

func (p *Proxy) ChooseTickets(ctx context.Context, options domain.Bag[domain.Ticket]) (domain.Bag[domain.Ticket], error) {
	return ask(ctx, p, TicketBag, MsgChooseTickets, TicketBag.Serialize(options))
}

func (p *Proxy) DrawSlot(ctx context.Context) (int, error) {
	return ask(ctx, p, Int, MsgDrawSlot)
}

func (p *Proxy) ClaimedRoute(ctx context.Context) (domain.Route, error) {
	return ask(ctx, p, Route, MsgRoute)
}

func (p *Proxy) InitialClaimCards(ctx context.Context) (domain.Bag[domain.Card], error) {
	return ask(ctx, p, CardBag, MsgCards)
}

func (p *Proxy) ChooseAdditionalCards(ctx context.Context, options []domain.Bag[domain.Card]) (domain.Bag[domain.Card], error) {
	return ask(ctx, p, CardBag, MsgChooseAdditionalCards, CardBagSet.Serialize(options))
}

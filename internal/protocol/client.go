package protocol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/app"
	"tchu/internal/domain"
)

// Client is the player-side end of the protocol. It decodes each line from the engine,
// forwards it to a local Player and writes back the answer to queries.
type Client struct {
	conn   LineConn
	player app.Player
	logger runtime.Logger
}

func NewClient(conn LineConn, player app.Player, logger runtime.Logger) *Client {
	return &Client{conn: conn, player: player, logger: logger}
}

// Run dispatches lines until the engine closes the connection or ctx ends.
func (c *Client) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	defer stop()
	for {
		line, err := c.conn.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				c.logger.Debug("Client: connection closed by server")
				return nil
			}
			return fmt.Errorf("protocol: read: %w", err)
		}
		if err := c.dispatch(ctx, line); err != nil {
			return err
		}
	}
}

func (c *Client) dispatch(ctx context.Context, line string) error {
	parts := strings.Split(line, fieldSep)
	id := MessageID(parts[0])
	args := parts[1:]
	if !id.Valid() {
		return fmt.Errorf("protocol: %w: unknown message %q", ErrMalformed, parts[0])
	}
	if len(args) < argCount(id) {
		return fmt.Errorf("protocol: %s: %w: want %d arguments, got %d", id, ErrMalformed, argCount(id), len(args))
	}

	reply, err := c.handle(ctx, id, args)
	if err != nil {
		return fmt.Errorf("protocol: %s: %w", id, err)
	}
	if !id.IsQuery() {
		return nil
	}
	if err := c.conn.WriteLine(reply); err != nil {
		return fmt.Errorf("protocol: %s: %w", id, err)
	}
	return nil
}

func argCount(id MessageID) int {
	switch id {
	case MsgInitPlayers, MsgUpdateState:
		return 2
	case MsgReceiveInfo, MsgSetInitialTickets, MsgChooseTickets, MsgChooseAdditionalCards:
		return 1
	}
	return 0
}

func (c *Client) handle(ctx context.Context, id MessageID, args []string) (string, error) {
	switch id {
	case MsgInitPlayers:
		own, err := PlayerID.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		list, err := Strings.Deserialize(args[1])
		if err != nil {
			return "", err
		}
		if len(list) != domain.PlayerCount {
			return "", malformed("want %d names, got %d", domain.PlayerCount, len(list))
		}
		names := make(map[domain.PlayerID]string, len(list))
		for i, pid := range domain.PlayerIDs {
			names[pid] = list[i]
		}
		return "", c.player.InitPlayers(ctx, own, names)

	case MsgReceiveInfo:
		info, err := String.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		return "", c.player.ReceiveInfo(ctx, info)

	case MsgUpdateState:
		state, err := PublicGameState.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		own, err := PlayerState.Deserialize(args[1])
		if err != nil {
			return "", err
		}
		return "", c.player.UpdateState(ctx, state, own)

	case MsgSetInitialTickets:
		tickets, err := TicketBag.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		return "", c.player.SetInitialTicketChoice(ctx, tickets)

	case MsgChooseInitialTickets:
		chosen, err := c.player.ChooseInitialTickets(ctx)
		return TicketBag.Serialize(chosen), err

	case MsgNextTurn:
		kind, err := c.player.NextTurn(ctx)
		return TurnKind.Serialize(kind), err

	case MsgChooseTickets:
		options, err := TicketBag.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		chosen, err := c.player.ChooseTickets(ctx, options)
		return TicketBag.Serialize(chosen), err

	case MsgDrawSlot:
		slot, err := c.player.DrawSlot(ctx)
		return Int.Serialize(slot), err

	case MsgRoute:
		r, err := c.player.ClaimedRoute(ctx)
		return Route.Serialize(r), err

	case MsgCards:
		cards, err := c.player.InitialClaimCards(ctx)
		return CardBag.Serialize(cards), err

	case MsgChooseAdditionalCards:
		options, err := CardBagSet.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		chosen, err := c.player.ChooseAdditionalCards(ctx, options)
		return CardBag.Serialize(chosen), err
	}
	return "", malformed("unhandled message %s", id)
}

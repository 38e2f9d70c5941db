package protocol

import (
	"encoding/base64"
	"strconv"
	"strings"

	"tchu/internal/app"
	"tchu/internal/domain"
)

func parseInt(text string) (int, error) {
	i, err := strconv.Atoi(text)
	if err != nil {
		return 0, malformed("integer %q", text)
	}
	return i, nil
}

var (
	Int = Of(strconv.Itoa, parseInt)

	// String carries free text as Base64 of its UTF-8 bytes.
	String = Of(
		func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) },
		func(text string) (string, error) {
			b, err := base64.StdEncoding.DecodeString(text)
			if err != nil {
				return "", malformed("base64 %q", text)
			}
			return string(b), nil
		},
	)

	PlayerID = OneOf(domain.PlayerIDs, domain.PlayerID.String)
	TurnKind = OneOf(app.TurnKinds, app.TurnKind.String)
	Card     = OneOf(domain.AllCards, domain.Card.String)
	Route    = OneOf(domain.Routes(), domain.Route.ID)
	Ticket   = OneOf(domain.Tickets(), domain.Ticket.Text)

	Strings    = ListOf(String, listSep)
	CardList   = ListOf(Card, listSep)
	RouteList  = ListOf(Route, listSep)
	CardBag    = BagOf(Card, listSep)
	TicketBag  = BagOf(Ticket, listSep)
	CardBagSet = ListOf(CardBag, groupSep)

	PublicCardState   = Of(encodePublicCardState, decodePublicCardState)
	PublicPlayerState = Of(encodePublicPlayerState, decodePublicPlayerState)
	PlayerState       = Of(encodePlayerState, decodePlayerState)
	PublicGameState   = Of(encodePublicGameState, decodePublicGameState)
)

func encodePublicCardState(s domain.PublicCardState) string {
	return strings.Join([]string{
		CardList.Serialize(s.FaceUpCards()),
		Int.Serialize(s.DeckSize()),
		Int.Serialize(s.DiscardsSize()),
	}, groupSep)
}

func decodePublicCardState(text string) (domain.PublicCardState, error) {
	f, err := fields(text, groupSep, 3)
	if err != nil {
		return domain.PublicCardState{}, err
	}
	faceUp, err := CardList.Deserialize(f[0])
	if err != nil {
		return domain.PublicCardState{}, err
	}
	deck, err := Int.Deserialize(f[1])
	if err != nil {
		return domain.PublicCardState{}, err
	}
	discards, err := Int.Deserialize(f[2])
	if err != nil {
		return domain.PublicCardState{}, err
	}
	return domain.NewPublicCardState(faceUp, deck, discards)
}

func encodePublicPlayerState(s domain.PublicPlayerState) string {
	return strings.Join([]string{
		Int.Serialize(s.TicketCount()),
		Int.Serialize(s.CardCount()),
		RouteList.Serialize(s.Routes()),
	}, groupSep)
}

func decodePublicPlayerState(text string) (domain.PublicPlayerState, error) {
	f, err := fields(text, groupSep, 3)
	if err != nil {
		return domain.PublicPlayerState{}, err
	}
	tickets, err := Int.Deserialize(f[0])
	if err != nil {
		return domain.PublicPlayerState{}, err
	}
	cards, err := Int.Deserialize(f[1])
	if err != nil {
		return domain.PublicPlayerState{}, err
	}
	routes, err := RouteList.Deserialize(f[2])
	if err != nil {
		return domain.PublicPlayerState{}, err
	}
	return domain.NewPublicPlayerState(tickets, cards, routes)
}

func encodePlayerState(s domain.PlayerState) string {
	return strings.Join([]string{
		TicketBag.Serialize(s.Tickets()),
		CardBag.Serialize(s.Cards()),
		RouteList.Serialize(s.Routes()),
	}, groupSep)
}

func decodePlayerState(text string) (domain.PlayerState, error) {
	f, err := fields(text, groupSep, 3)
	if err != nil {
		return domain.PlayerState{}, err
	}
	tickets, err := TicketBag.Deserialize(f[0])
	if err != nil {
		return domain.PlayerState{}, err
	}
	cards, err := CardBag.Deserialize(f[1])
	if err != nil {
		return domain.PlayerState{}, err
	}
	routes, err := RouteList.Deserialize(f[2])
	if err != nil {
		return domain.PlayerState{}, err
	}
	return domain.NewPlayerState(tickets, cards, routes), nil
}

func encodePublicGameState(s domain.PublicGameState) string {
	return strings.Join([]string{
		Int.Serialize(s.TicketsCount()),
		PublicCardState.Serialize(s.CardState()),
		PlayerID.Serialize(s.CurrentPlayerID()),
		PublicPlayerState.Serialize(s.PlayerState(domain.Player1)),
		PublicPlayerState.Serialize(s.PlayerState(domain.Player2)),
		PlayerID.Serialize(s.LastPlayer()),
	}, stateSep)
}

func decodePublicGameState(text string) (domain.PublicGameState, error) {
	var zero domain.PublicGameState
	f, err := fields(text, stateSep, 6)
	if err != nil {
		return zero, err
	}
	tickets, err := Int.Deserialize(f[0])
	if err != nil {
		return zero, err
	}
	cards, err := PublicCardState.Deserialize(f[1])
	if err != nil {
		return zero, err
	}
	current, err := PlayerID.Deserialize(f[2])
	if err != nil {
		return zero, err
	}
	players := make(map[domain.PlayerID]domain.PublicPlayerState, domain.PlayerCount)
	for i, id := range domain.PlayerIDs {
		ps, err := PublicPlayerState.Deserialize(f[3+i])
		if err != nil {
			return zero, err
		}
		players[id] = ps
	}
	last, err := PlayerID.Deserialize(f[5])
	if err != nil {
		return zero, err
	}
	return domain.NewPublicGameState(tickets, cards, current, players, last)
}

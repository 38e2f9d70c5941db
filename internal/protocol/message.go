package protocol

// MessageID names the kind of a protocol line. It is always the first field.
type MessageID string

const (
	MsgInitPlayers           MessageID = "INIT_PLAYERS"
	MsgReceiveInfo           MessageID = "RECEIVE_INFO"
	MsgUpdateState           MessageID = "UPDATE_STATE"
	MsgSetInitialTickets     MessageID = "SET_INITIAL_TICKETS"
	MsgChooseInitialTickets  MessageID = "CHOOSE_INITIAL_TICKETS"
	MsgNextTurn              MessageID = "NEXT_TURN"
	MsgChooseTickets         MessageID = "CHOOSE_TICKETS"
	MsgDrawSlot              MessageID = "DRAW_SLOT"
	MsgRoute                 MessageID = "ROUTE"
	MsgCards                 MessageID = "CARDS"
	MsgChooseAdditionalCards MessageID = "CHOOSE_ADDITIONAL_CARDS"
)

// MessageIDs lists the whole vocabulary in protocol order.
var MessageIDs = []MessageID{
	MsgInitPlayers, MsgReceiveInfo, MsgUpdateState, MsgSetInitialTickets, MsgChooseInitialTickets,
	MsgNextTurn, MsgChooseTickets, MsgDrawSlot, MsgRoute, MsgCards, MsgChooseAdditionalCards,
}

var knownIDs = func() map[MessageID]bool {
	m := make(map[MessageID]bool, len(MessageIDs))
	for _, id := range MessageIDs {
		m[id] = true
	}
	return m
}()

// Valid reports whether id belongs to the vocabulary.
func (id MessageID) Valid() bool { return knownIDs[id] }

// IsQuery reports whether the receiver of id must answer with one line.
func (id MessageID) IsQuery() bool {
	switch id {
	case MsgChooseInitialTickets, MsgNextTurn, MsgChooseTickets, MsgDrawSlot, MsgRoute, MsgCards, MsgChooseAdditionalCards:
		return true
	}
	return false
}

const (
	fieldSep = " "
	listSep  = ","
	groupSep = ";"
	stateSep = ":"
)

package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a match with a free seat.
	RpcQuickMatch = "quick_match"
	// RpcListMatches lists the tCHu matches waiting for players.
	RpcListMatches = "list_matches"

	// MatchNameTchu is the authoritative match handler name registered with Nakama.
	MatchNameTchu = "tchu_match"

	gameName = "tchu"
	// tickRate is the number of match loop ticks per second.
	tickRate = 5
)

// Match phases, advertised in the label.
const (
	PhaseLobby    = "lobby"
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// Op codes for client messages and server events.
const (
	// Client -> Server: one protocol reply line.
	OpPlayerReply int64 = 1

	// Server -> Client
	OpEngineLine int64 = 101 // one protocol line, sent privately
	OpViewEvent  int64 = 102 // JSON list of view events, sent privately
	OpMatchState int64 = 103 // JSON seat snapshot
	OpGameOver   int64 = 104 // JSON game result
)

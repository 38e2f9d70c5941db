package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/app"
	"tchu/internal/bot"
	"tchu/internal/config"
	"tchu/internal/domain"
	"tchu/internal/protocol"
	"tchu/internal/view"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                [domain.PlayerCount]string  `json:"seats"`                   // User ids by seat, empty string means seat is empty
	Names                [domain.PlayerCount]string  `json:"names"`                   // Display names by seat
	Phase                string                      `json:"phase"`                   // lobby, playing or finished
	Tick                 int64                       `json:"tick"`                    // Current tick of the match
	Env                  config.MatchEnv             `json:"env"`                     // Runtime settings read at init
	Rules                app.Rules                   `json:"-"`                       // Rules the engine plays by
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"` // Tick when a single player started waiting
	Presences            map[string]runtime.Presence `json:"-"`                       // Map UserId -> Presence for targeted messaging
	Conns                map[string]*presenceConn    `json:"-"`                       // Protocol pipes of seated humans
	Bots                 map[string]*bot.Agent       `json:"-"`                       // Active bot agents

	game *runningGame
}

type gameResult struct {
	outcome app.Outcome
	err     error
}

// runningGame is the engine goroutine of a match.
type runningGame struct {
	cancel context.CancelFunc
	done   chan gameResult
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// shouldTerminateNoHumans returns true when no human is connected to the match.
func shouldTerminateNoHumans(state *MatchState) bool {
	for userID := range state.Presences {
		if !isBotUserId(userID) {
			return false
		}
	}
	return true
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	vars, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	env, err := config.DecodeMatchEnv(vars)
	if err != nil {
		logger.Warn("MatchInit: Invalid runtime env, using defaults: %v", err)
	}

	state := &MatchState{
		Phase:     PhaseLobby,
		Env:       env,
		Rules:     config.GameConfig{SkySurcharge: env.SkySurcharge}.Rules(),
		Presences: make(map[string]runtime.Presence),
		Conns:     make(map[string]*presenceConn),
		Bots:      make(map[string]*bot.Agent),
	}

	label, err := matchLabel(state.GetOpenSeatsCount(), state.Phase)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if matchState.Phase != PhaseLobby {
		return state, false, "match_in_progress"
	}
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, false, "already_seated"
	}
	if matchState.GetOpenSeatsCount() == 0 {
		return state, false, "match_full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		seat := matchState.seatOf("")
		if seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
			continue
		}
		matchState.Presences[p.GetUserId()] = p
		matchState.Seats[seat] = p.GetUserId()
		matchState.Names[seat] = p.GetUsername()
		matchState.Conns[p.GetUserId()] = newPresenceConn()
		logger.Debug("MatchJoin: User %s took seat %d.", p.GetUserId(), seat)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		if conn, ok := matchState.Conns[userID]; ok {
			// A running engine reads EOF from this seat and ends the game.
			conn.Close()
			delete(matchState.Conns, userID)
		}
		if matchState.Phase == PhaseLobby {
			if seat := matchState.seatOf(userID); seat >= 0 {
				matchState.Seats[seat], matchState.Names[seat] = "", ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
			}
		}
	}

	if shouldTerminateNoHumans(matchState) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		mh.stopGame(matchState)
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpPlayerReply:
			conn, ok := matchState.Conns[msg.GetUserId()]
			if !ok || matchState.Phase != PhasePlaying {
				logger.Warn("MatchLoop: Unexpected reply from %s", msg.GetUserId())
				continue
			}
			if !conn.deliver(string(msg.GetData())) {
				logger.Warn("MatchLoop: Dropped reply from %s", msg.GetUserId())
			}
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.Phase == PhaseLobby {
		if matchState.Env.BotsEnabled {
			mh.processBots(matchState, dispatcher, logger)
		}
		if matchState.GetOpenSeatsCount() == 0 {
			mh.startGame(matchState, dispatcher, logger)
		}
	}

	mh.flush(matchState, dispatcher, logger)

	if matchState.game != nil {
		select {
		case res := <-matchState.game.done:
			mh.finishGame(matchState, dispatcher, logger, res)
		default:
		}
	}
	return matchState
}

// processBots fills the empty seats with bots once a single human has waited long enough.
func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.GetHumanPlayerCount() != 1 || state.GetOpenSeatsCount() == 0 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("processBots: Single player detected, starting auto-fill timer.")
	}
	if state.Tick-state.LastSinglePlayerTick < int64(state.Env.BotAutoFillDelaySec*tickRate) {
		return
	}

	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		if state.Env.BotDifficulty != "" {
			identity.Difficulty = state.Env.BotDifficulty
		}
		agent, err := bot.NewAgent(identity, state.Rules, nil)
		if err != nil {
			logger.Error("processBots: Failed to create bot agent for %s: %v", identity.UserID, err)
			continue
		}
		agent.MinDelay = time.Duration(state.Env.BotMinDelaySec) * time.Second
		agent.MaxDelay = time.Duration(state.Env.BotMaxDelaySec) * time.Second
		state.Seats[i] = identity.UserID
		state.Names[i] = identity.DisplayName
		state.Bots[identity.UserID] = agent
		logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
	}
	state.LastSinglePlayerTick = 0
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
}

// startGame runs the engine on its own goroutine. Humans play through a protocol proxy
// decorated with a view notifier; bots play directly.
func (mh *matchHandler) startGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	players := make(map[domain.PlayerID]app.Player, domain.PlayerCount)
	names := make(map[domain.PlayerID]string, domain.PlayerCount)
	for i, userID := range state.Seats {
		id := domain.PlayerIDs[i]
		names[id] = state.Names[i]
		if agent, ok := state.Bots[userID]; ok {
			players[id] = agent
			continue
		}
		conn, ok := state.Conns[userID]
		if !ok {
			logger.Error("StartGame: No connection for seat %d (%s)", i, userID)
			return
		}
		notifier := view.NewNotifier(protocol.NewProxy(conn))
		notifier.Subscribe(func(events []view.Event) {
			data, err := viewEventsPayload(events)
			if err != nil {
				logger.Error("StartGame: Failed to marshal view events: %v", err)
				return
			}
			_ = conn.push(OpViewEvent, data)
		})
		players[id] = notifier
	}

	seed := config.GetGameConfig().Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	svc := app.NewService(rand.New(rand.NewSource(seed)), logger, state.Rules)
	ctx, cancel := context.WithCancel(context.Background())
	game := &runningGame{cancel: cancel, done: make(chan gameResult, 1)}
	go func() {
		out, err := svc.Play(ctx, players, names, domain.AllTicketsBag())
		game.done <- gameResult{outcome: out, err: err}
	}()

	state.game = game
	state.Phase = PhasePlaying
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
	logger.Info("StartGame: Game started, %s vs %s.", state.Names[0], state.Names[1])
}

func (mh *matchHandler) finishGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, res gameResult) {
	state.game.cancel()
	state.game = nil
	state.Phase = PhaseFinished
	if res.err != nil {
		logger.Warn("FinishGame: Game aborted: %v", res.err)
	} else {
		logger.Info("FinishGame: Game over, points %v", res.outcome.Points)
	}

	// Lines written by the engine before it returned.
	mh.flush(state, dispatcher, logger)

	data, err := gameOverPayload(state.Names, res.outcome, res.err)
	if err != nil {
		logger.Error("FinishGame: Failed to marshal result: %v", err)
	} else if err := dispatcher.BroadcastMessage(OpGameOver, data, nil, nil, true); err != nil {
		logger.Error("FinishGame: Failed to broadcast result: %v", err)
	}
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) stopGame(state *MatchState) {
	if state.game != nil {
		state.game.cancel()
	}
	for _, conn := range state.Conns {
		conn.Close()
	}
}

// flush sends every line and event the engine produced since the last tick.
func (mh *matchHandler) flush(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for userID, conn := range state.Conns {
		msgs := conn.drain()
		if len(msgs) == 0 {
			continue
		}
		presence, ok := state.Presences[userID]
		if !ok {
			continue
		}
		for _, m := range msgs {
			if err := dispatcher.BroadcastMessage(m.op, m.data, []runtime.Presence{presence}, nil, true); err != nil {
				logger.Error("Flush: Failed to send op %d to %s: %v", m.op, userID, err)
			}
		}
	}
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snapshot := matchSnapshot{Phase: state.Phase, Tick: state.Tick}
	for i, userID := range state.Seats {
		snapshot.Seats = append(snapshot.Seats, SeatView{
			Seat:   i,
			Player: domain.PlayerIDs[i].String(),
			UserID: userID,
			Name:   state.Names[i],
			IsBot:  userID != "" && isBotUserId(userID),
		})
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("BroadcastMatchState: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, data, nil, nil, true); err != nil {
		logger.Error("BroadcastMatchState: Failed to broadcast: %v", err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state.GetOpenSeatsCount(), state.Phase)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	if matchState, ok := state.(*MatchState); ok {
		mh.stopGame(matchState)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

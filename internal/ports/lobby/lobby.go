// Package lobby pairs connected players into sessions and runs one game per session.
package lobby

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/app"
	"tchu/internal/bot"
	"tchu/internal/domain"
)

// ErrClosed is returned by Join once the lobby is shut down.
var ErrClosed = errors.New("lobby closed")

type Status string

const (
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
	StatusFailed   Status = "failed"
)

// Options configures a Lobby.
type Options struct {
	Rules app.Rules
	// BotFillDelay is how long a lone player waits before a bot takes the second seat.
	// Zero disables bots.
	BotFillDelay  time.Duration
	BotDifficulty string
	BotMinDelay   time.Duration
	BotMaxDelay   time.Duration
	// Seed fixes the game shuffles when non-zero.
	Seed int64
}

// Session is one game between two seats.
type Session struct {
	ID        string
	Names     map[domain.PlayerID]string
	StartedAt time.Time

	done    chan struct{}
	mu      sync.Mutex
	status  Status
	endedAt time.Time
	winners []string
	err     error
}

// Done is closed when the game is over.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err returns the error that ended the game, if any. Valid after Done.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// SessionInfo is the JSON view of a session.
type SessionInfo struct {
	ID        string     `json:"id"`
	Players   []string   `json:"players"`
	Status    Status     `json:"status"`
	Winners   []string   `json:"winners,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := SessionInfo{
		ID:        s.ID,
		Status:    s.status,
		Winners:   s.winners,
		StartedAt: s.StartedAt,
	}
	for _, id := range domain.PlayerIDs {
		info.Players = append(info.Players, s.Names[id])
	}
	if !s.endedAt.IsZero() {
		t := s.endedAt
		info.EndedAt = &t
	}
	if s.err != nil {
		info.Error = s.err.Error()
	}
	return info
}

type seat struct {
	name   string
	player app.Player
	ready  chan *Session
}

// Lobby seats players in join order: the first waiting player plays PLAYER_1.
type Lobby struct {
	opts   Options
	logger runtime.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	rng      *rand.Rand
	waiting  *seat
	sessions map[string]*Session
	bots     int
	wg       sync.WaitGroup
}

func New(opts Options, logger runtime.Logger) *Lobby {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Lobby{
		opts:     opts,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		rng:      rand.New(rand.NewSource(seed)),
		sessions: make(map[string]*Session),
	}
}

// Join seats player and returns its session once a second seat is filled. The game runs
// on its own goroutine; callers wait on Session.Done before releasing the player.
func (l *Lobby) Join(ctx context.Context, name string, player app.Player) (*Session, error) {
	me := &seat{name: name, player: player, ready: make(chan *Session, 1)}

	l.mu.Lock()
	if l.ctx.Err() != nil {
		l.mu.Unlock()
		return nil, ErrClosed
	}
	if other := l.waiting; other != nil {
		l.waiting = nil
		s := l.startLocked(other, me)
		other.ready <- s
		l.mu.Unlock()
		return s, nil
	}
	l.waiting = me
	l.mu.Unlock()
	l.logger.Info("Lobby: %s is waiting for an opponent", name)

	var fill <-chan time.Time
	if l.opts.BotFillDelay > 0 {
		t := time.NewTimer(l.opts.BotFillDelay)
		defer t.Stop()
		fill = t.C
	}

	select {
	case s := <-me.ready:
		return s, nil
	case <-fill:
		return l.fillWithBot(me)
	case <-ctx.Done():
		return l.leave(me, ctx.Err())
	case <-l.ctx.Done():
		return l.leave(me, ErrClosed)
	}
}

// leave withdraws a waiting seat unless it was paired in the meantime.
func (l *Lobby) leave(me *seat, err error) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.waiting == me {
		l.waiting = nil
		return nil, err
	}
	return <-me.ready, nil
}

func (l *Lobby) fillWithBot(me *seat) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.waiting != me {
		return <-me.ready, nil
	}
	identity := bot.GetBotIdentity(l.bots)
	l.bots++
	if l.opts.BotDifficulty != "" {
		identity.Difficulty = l.opts.BotDifficulty
	}
	agent, err := bot.NewAgent(identity, l.opts.Rules, rand.New(rand.NewSource(l.rng.Int63())))
	if err != nil {
		return nil, err
	}
	agent.MinDelay, agent.MaxDelay = l.opts.BotMinDelay, l.opts.BotMaxDelay
	l.waiting = nil
	l.logger.Info("Lobby: filling seat of %s's game with bot %s (%s)", me.name, identity.DisplayName, identity.Difficulty)
	return l.startLocked(me, &seat{name: agent.Name, player: agent}), nil
}

func (l *Lobby) startLocked(first, second *seat) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Names:     map[domain.PlayerID]string{domain.Player1: first.name, domain.Player2: second.name},
		StartedAt: time.Now(),
		done:      make(chan struct{}),
		status:    StatusRunning,
	}
	l.sessions[s.ID] = s
	players := map[domain.PlayerID]app.Player{domain.Player1: first.player, domain.Player2: second.player}
	rng := rand.New(rand.NewSource(l.rng.Int63()))
	logger := l.logger.WithField("session", s.ID)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer close(s.done)
		logger.Info("Lobby: session started, %s vs %s", first.name, second.name)
		out, err := app.NewService(rng, logger, l.opts.Rules).Play(l.ctx, players, s.Names, domain.AllTicketsBag())

		s.mu.Lock()
		defer s.mu.Unlock()
		s.endedAt = time.Now()
		if err != nil {
			s.status, s.err = StatusFailed, err
			logger.Warn("Lobby: session failed: %v", err)
			return
		}
		s.status = StatusFinished
		for _, id := range out.Winners {
			s.winners = append(s.winners, s.Names[id])
		}
		logger.Info("Lobby: session finished, winners %v", s.winners)
	}()
	return s
}

// Sessions lists every session, most recent first.
func (l *Lobby) Sessions() []SessionInfo {
	l.mu.Lock()
	all := make([]*Session, 0, len(l.sessions))
	for _, s := range l.sessions {
		all = append(all, s)
	}
	l.mu.Unlock()

	out := make([]SessionInfo, 0, len(all))
	for _, s := range all {
		out = append(out, s.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out
}

// Waiting returns the name of the player waiting for an opponent, if any.
func (l *Lobby) Waiting() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.waiting == nil {
		return "", false
	}
	return l.waiting.name, true
}

// Shutdown stops accepting players, cancels running games and waits for them to end.
func (l *Lobby) Shutdown() {
	l.mu.Lock()
	l.cancel()
	l.mu.Unlock()
	l.wg.Wait()
}

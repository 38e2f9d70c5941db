// Package terminal is a line-oriented interactive frontend for human players.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"tchu/internal/app"
	"tchu/internal/domain"
	"tchu/internal/view"
)

// Frontend prints the game to out and reads decisions from lines passed to Input. Only one
// prompt is pending at a time; lines arriving without a prompt are ignored.
type Frontend struct {
	mu      sync.Mutex
	out     io.Writer
	own     domain.PlayerID
	names   map[domain.PlayerID]string
	state   domain.PublicGameState
	mine    domain.PlayerState
	model   view.Model
	pending func(line string) bool
	seq     int
}

var _ app.Frontend = (*Frontend)(nil)

func New(out io.Writer) *Frontend {
	return &Frontend{out: out, names: map[domain.PlayerID]string{}}
}

// ReadInput feeds every line of in to the frontend until in ends or ctx is done.
func (f *Frontend) ReadInput(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.Input(sc.Text())
	}
	return sc.Err()
}

// Input answers the pending prompt. An invalid answer reprints the prompt hint.
func (f *Frontend) Input(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return
	}
	// A handler may install a follow-up prompt, which must survive.
	seq := f.seq
	if f.pending(strings.TrimSpace(line)) && f.seq == seq {
		f.pending = nil
	}
}

func (f *Frontend) printf(format string, args ...any) {
	fmt.Fprintf(f.out, format, args...)
}

func (f *Frontend) prompt(text string, handle func(line string) bool) {
	f.printf("%s\n> ", text)
	f.pending = handle
	f.seq++
}

func (f *Frontend) InitPlayers(own domain.PlayerID, names map[domain.PlayerID]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.own = own
	for id, n := range names {
		f.names[id] = n
	}
	f.printf("You are %s, playing against %s.\n", names[own], names[own.Next()])
}

func (f *Frontend) ShowInfo(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.printf("%s\n", text)
}

func (f *Frontend) ShowState(state domain.PublicGameState, own domain.PlayerState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state, f.mine = state, own
	f.model = view.Project(f.own, state, own)
	m := f.model

	f.printf("-- tickets %d%% | cards %d%% | face-up:", m.TicketsPercent, m.CardsPercent)
	for slot, c := range m.FaceUp {
		f.printf(" [%d] %s", slot, strings.ToLower(c.String()))
	}
	f.printf("\n")
	for _, id := range domain.PlayerIDs {
		pc := m.Players[id]
		f.printf("   %-12s %2d tickets %3d cards %2d cars %3d points\n", f.names[id], pc.Tickets, pc.Cards, pc.Cars, pc.ClaimPoints)
	}
	if own.Cards().Len() > 0 {
		f.printf("   hand: %s\n", app.BagName(own.Cards()))
	}
	for _, t := range m.Tickets {
		f.printf("   ticket: %s\n", t.Text())
	}
}

// parseIndices reads space separated 1-based indices into distinct 0-based ones.
func parseIndices(line string, n int) ([]int, bool) {
	seen := make(map[int]bool)
	var out []int
	for _, field := range strings.Fields(line) {
		i, err := strconv.Atoi(field)
		if err != nil || i < 1 || i > n || seen[i-1] {
			return nil, false
		}
		seen[i-1] = true
		out = append(out, i-1)
	}
	return out, true
}

func (f *Frontend) ChooseTickets(options domain.Bag[domain.Ticket], minKept int, reply func(domain.Bag[domain.Ticket])) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := options.Items()
	for i, t := range items {
		f.printf("  %d) %s\n", i+1, t.Text())
	}
	f.prompt(fmt.Sprintf("Keep at least %d tickets (numbers separated by spaces):", minKept), func(line string) bool {
		idx, ok := parseIndices(line, len(items))
		if !ok || len(idx) < minKept {
			f.printf("Pick %d to %d different tickets.\n> ", minKept, len(items))
			return false
		}
		kept := make([]domain.Ticket, 0, len(idx))
		for _, i := range idx {
			kept = append(kept, items[i])
		}
		reply(domain.NewBag(kept...))
		return true
	})
}

const turnHelp = "Your turn: t (draw tickets), d <slot 0-4|deck> (draw cards), c <route id> (claim), r (list claimable routes)"

func (f *Frontend) StartTurn(h app.TurnHandlers) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompt(turnHelp, func(line string) bool { return f.turn(line, h) })
}

func (f *Frontend) turn(line string, h app.TurnHandlers) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		f.printf("%s\n> ", turnHelp)
		return false
	}
	switch fields[0] {
	case "t":
		if !f.state.CanDrawTickets() {
			f.printf("No tickets left.\n> ")
			return false
		}
		h.DrawTickets()
		return true
	case "d":
		if !f.state.CanDrawCards() {
			f.printf("Not enough cards left to draw.\n> ")
			return false
		}
		slot, ok := parseSlot(fields[1:])
		if !ok {
			f.printf("Draw from a slot 0-4 or the deck.\n> ")
			return false
		}
		h.DrawCard(slot)
		return true
	case "r":
		f.printClaimable()
		f.printf("> ")
		return false
	case "c":
		if len(fields) < 2 || !f.model.Claimable[fields[1]] {
			f.printf("That route cannot be claimed now.\n> ")
			return false
		}
		return f.claim(routeByID(fields[1]), h)
	}
	f.printf("%s\n> ", turnHelp)
	return false
}

func (f *Frontend) claim(r domain.Route, h app.TurnHandlers) bool {
	options, err := f.mine.PossibleClaimCards(r)
	if err != nil || len(options) == 0 {
		f.printf("You cannot pay for %s.\n> ", r)
		return false
	}
	if len(options) == 1 {
		h.ClaimRoute(r, options[0])
		return true
	}
	for i, o := range options {
		f.printf("  %d) %s\n", i+1, app.BagName(o))
	}
	f.prompt(fmt.Sprintf("Pay %s with which cards?", r), func(line string) bool {
		idx, ok := parseIndices(line, len(options))
		if !ok || len(idx) != 1 {
			f.printf("Pick one option.\n> ")
			return false
		}
		h.ClaimRoute(r, options[idx[0]])
		return true
	})
	return true
}

func (f *Frontend) printClaimable() {
	ids := make([]string, 0, len(f.model.Claimable))
	for id := range f.model.Claimable {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		r := routeByID(id)
		f.printf("  %s  %s (%d, %s)\n", id, r, r.Length(), strings.ToLower(r.Level().String()))
	}
	if len(ids) == 0 {
		f.printf("  no claimable route\n")
	}
}

func routeByID(id string) domain.Route {
	for _, r := range domain.Routes() {
		if r.ID() == id {
			return r
		}
	}
	return domain.Route{}
}

func parseSlot(args []string) (int, bool) {
	if len(args) == 0 || args[0] == "deck" {
		return domain.DeckSlot, true
	}
	slot, err := strconv.Atoi(args[0])
	if err != nil || slot < 0 || slot >= domain.FaceUpCardsCount {
		return 0, false
	}
	return slot, true
}

func (f *Frontend) DrawCard(reply func(slot int)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompt("Second card: slot 0-4 or deck", func(line string) bool {
		slot, ok := parseSlot(strings.Fields(line))
		if !ok {
			f.printf("Draw from a slot 0-4 or the deck.\n> ")
			return false
		}
		reply(slot)
		return true
	})
}

func (f *Frontend) ChooseAdditionalCards(options []domain.Bag[domain.Card], reply func(domain.Bag[domain.Card])) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.printf("  0) give up the route\n")
	for i, o := range options {
		f.printf("  %d) %s\n", i+1, app.BagName(o))
	}
	f.prompt("Which additional cards do you play?", func(line string) bool {
		if line == "0" {
			reply(domain.Bag[domain.Card]{})
			return true
		}
		idx, ok := parseIndices(line, len(options))
		if !ok || len(idx) != 1 {
			f.printf("Pick one option, or 0.\n> ")
			return false
		}
		reply(options[idx[0]])
		return true
	})
}

// Start runs a frontend reading decisions from in and returns the Player it drives. Both
// loops stop when ctx ends.
func Start(ctx context.Context, in io.Reader, out io.Writer) (*Frontend, *app.AsyncPlayer) {
	f := New(out)
	p := app.NewAsyncPlayer(f)
	go p.Run(ctx)
	go func() { _ = f.ReadInput(ctx, in) }()
	return f, p
}

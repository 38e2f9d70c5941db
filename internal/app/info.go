package app

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tchu/internal/domain"
)

const (
	msgWillPlayFirst   = "%s will play first."
	msgKeptTickets     = "%s kept %d tickets."
	msgCanPlay         = "It is %s's turn."
	msgDrewTickets     = "%s drew %d tickets..."
	msgDrewBlindCard   = "%s drew a card from the deck."
	msgDrewVisibleCard = "%s drew %s from the face-up cards."
	msgClaimedRoute    = "%s claimed the route %s with %s."
	msgAttemptsTunnel  = "%s attempts to claim the tunnel %s with %s!"
	msgAttemptsSky     = "%s attempts to claim the sky route %s with %s!"
	msgAdditionalCards = "The additional cards are %s. "
	msgNoAdditional    = "They add no cost."
	msgSomeAdditional  = "They add a cost of %d cards."
	msgSkySurcharge    = "%s must add %s to fly %s."
	msgNoSkySurcharge  = "%s flies %s without surcharge."
	msgDidNotClaim     = "%s did not claim the route %s."
	msgLastTurnBegins  = "%s has only %d cars left, the last turn begins!"
	msgLongestTrail    = "%s gets the bonus for the longest trail (%s)."
	msgWon             = "%s wins with %d points against %d points!"
	msgDraw            = "%s are tied with %d points each!"
	msgColorCards      = "%d %s cards"
	msgWildcards       = "%d %ss"
)

var printer = newPrinter()

func newPrinter() *message.Printer {
	tag := language.English
	set := func(key string, cases ...any) {
		if err := message.Set(tag, key, plural.Selectf(cases[0].(int), "%d", cases[1:]...)); err != nil {
			panic(err)
		}
	}
	set(msgKeptTickets, 2, "=1", "%[1]s kept %[2]d ticket.", "other", "%[1]s kept %[2]d tickets.")
	set(msgDrewTickets, 2, "=1", "%[1]s drew %[2]d ticket...", "other", "%[1]s drew %[2]d tickets...")
	set(msgSomeAdditional, 1, "=1", "They add a cost of %[1]d card.", "other", "They add a cost of %[1]d cards.")
	set(msgLastTurnBegins, 2, "=0", "%[1]s has no cars left, the last turn begins!",
		"=1", "%[1]s has only %[2]d car left, the last turn begins!",
		"other", "%[1]s has only %[2]d cars left, the last turn begins!")
	set(msgWon, 2, "=1", "%[1]s wins with %[2]d point against %[3]d points!", "other", "%[1]s wins with %[2]d points against %[3]d points!")
	set(msgColorCards, 1, "=1", "%[1]d %[2]s card", "other", "%[1]d %[2]s cards")
	set(msgWildcards, 1, "=1", "%[1]d %[2]s", "other", "%[1]d %[2]ss")
	return message.NewPrinter(tag)
}

// CardName names count cards of the given kind, e.g. "2 red cards" or "1 locomotive".
func CardName(c domain.Card, count int) string {
	if c.IsWildcard() {
		return printer.Sprintf(msgWildcards, count, strings.ToLower(c.String()))
	}
	return printer.Sprintf(msgColorCards, count, strings.ToLower(c.String()))
}

// BagName lists the cards of a bag grouped by kind, e.g. "2 red cards and 1 locomotive".
func BagName(cards domain.Bag[domain.Card]) string {
	var parts []string
	for _, c := range cards.Set() {
		parts = append(parts, CardName(c, cards.CountOf(c)))
	}
	switch len(parts) {
	case 0:
		return "no cards"
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func routeName(r domain.Route) string {
	return r.String()
}

// Draw announces a tie between the named players.
func Draw(names []string, points int) string {
	return printer.Sprintf(msgDraw, strings.Join(names, " and "), points)
}

// Info builds the narrative messages about one player.
type Info struct {
	name string
}

func NewInfo(playerName string) Info {
	return Info{name: playerName}
}

func (i Info) WillPlayFirst() string {
	return printer.Sprintf(msgWillPlayFirst, i.name)
}

func (i Info) KeptTickets(count int) string {
	return printer.Sprintf(msgKeptTickets, i.name, count)
}

func (i Info) CanPlay() string {
	return printer.Sprintf(msgCanPlay, i.name)
}

func (i Info) DrewTickets(count int) string {
	return printer.Sprintf(msgDrewTickets, i.name, count)
}

func (i Info) DrewBlindCard() string {
	return printer.Sprintf(msgDrewBlindCard, i.name)
}

func (i Info) DrewVisibleCard(c domain.Card) string {
	return printer.Sprintf(msgDrewVisibleCard, i.name, CardName(c, 1))
}

func (i Info) ClaimedRoute(r domain.Route, cards domain.Bag[domain.Card]) string {
	return printer.Sprintf(msgClaimedRoute, i.name, routeName(r), BagName(cards))
}

func (i Info) AttemptsTunnelClaim(r domain.Route, initial domain.Bag[domain.Card]) string {
	return printer.Sprintf(msgAttemptsTunnel, i.name, routeName(r), BagName(initial))
}

func (i Info) AttemptsSkyClaim(r domain.Route, initial domain.Bag[domain.Card]) string {
	return printer.Sprintf(msgAttemptsSky, i.name, routeName(r), BagName(initial))
}

// DrewAdditionalCards reports the tunnel cards and the extra cost they impose.
func (i Info) DrewAdditionalCards(drawn domain.Bag[domain.Card], cost int) string {
	s := printer.Sprintf(msgAdditionalCards, BagName(drawn))
	if cost == 0 {
		return s + printer.Sprintf(msgNoAdditional)
	}
	return s + printer.Sprintf(msgSomeAdditional, cost)
}

func (i Info) SkySurcharge(r domain.Route, count int) string {
	return printer.Sprintf(msgSkySurcharge, i.name, CardName(domain.Locomotive, count), routeName(r))
}

func (i Info) NoSkySurcharge(r domain.Route) string {
	return printer.Sprintf(msgNoSkySurcharge, i.name, routeName(r))
}

func (i Info) DidNotClaimRoute(r domain.Route) string {
	return printer.Sprintf(msgDidNotClaim, i.name, routeName(r))
}

func (i Info) LastTurnBegins(carCount int) string {
	return printer.Sprintf(msgLastTurnBegins, i.name, carCount)
}

func (i Info) GetsLongestTrailBonus(t domain.Trail) string {
	trail := "no route"
	if s1, s2 := t.Station1(), t.Station2(); s1 != nil && s2 != nil {
		trail = s1.Name + " - " + s2.Name
	}
	return printer.Sprintf(msgLongestTrail, i.name, trail)
}

func (i Info) Won(points, loserPoints int) string {
	return printer.Sprintf(msgWon, i.name, points, loserPoints)
}

package bot

import (
	"tchu/internal/bot/brain"
	"tchu/internal/bot/internal"
	"tchu/internal/domain"
)

// GodBot is a SmartBot that also watches where the opponent is heading and favours claims
// that cut its network off.
type GodBot struct {
	*SmartBot
	profile *brain.OpponentProfile
}

func newGodBot(tuning internal.BotTuning) *GodBot {
	b := &GodBot{SmartBot: newSmartBot(tuning), profile: brain.NewOpponentProfile()}
	b.SmartBot.blocks = b.cutsOff
	return b
}

func (b *GodBot) CalculateMove(s Snapshot) (Move, error) {
	b.profile.Observe(s.State.PlayerState(s.Own.Next()).Routes())
	return b.SmartBot.CalculateMove(s)
}

func (b *GodBot) cutsOff(_ Snapshot, r domain.Route) bool {
	return b.profile.Threat(r) >= 2
}

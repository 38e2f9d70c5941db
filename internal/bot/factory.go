package bot

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tchu/internal/bot/internal"
	"tchu/internal/domain"
)

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelGood
	BotLevelSmart
	BotLevelGod
)

// ParseLevel maps a difficulty name ("easy", "medium", "hard", "god") to a level.
func ParseLevel(name string) (BotLevel, error) {
	switch strings.ToLower(name) {
	case "easy":
		return BotLevelEasy, nil
	case "medium", "good":
		return BotLevelGood, nil
	case "hard", "smart", "":
		return BotLevelSmart, nil
	case "god":
		return BotLevelGod, nil
	}
	return 0, fmt.Errorf("unknown bot difficulty: %q", name)
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch level {
	case BotLevelEasy:
		return &EasyBot{rng: rng}, nil
	case BotLevelGood:
		return &GoodBot{planner: internal.NewPlanner(domain.Routes())}, nil
	case BotLevelSmart:
		return newSmartBot(DefaultTuning), nil
	case BotLevelGod:
		return newGodBot(DefaultTuning), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

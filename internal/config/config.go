package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"tchu/internal/app"
	"tchu/internal/domain"
)

// BotConfig tunes the bots filling empty seats.
type BotConfig struct {
	Enabled    bool   `json:"enabled"`
	Difficulty string `json:"difficulty"`
	// MinDelayMillis and MaxDelayMillis bound the pause before each bot decision.
	MinDelayMillis int `json:"min_delay_ms"`
	MaxDelayMillis int `json:"max_delay_ms"`
}

type GameConfig struct {
	// SkySurcharge is the number of locomotives owed on top of the planes of a sky route.
	SkySurcharge int `json:"sky_surcharge"`
	// Seed fixes the shuffles when non-zero.
	Seed int64     `json:"seed"`
	Bots BotConfig `json:"bots"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := DefaultGameConfig()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// DefaultGameConfig is used for every field the file leaves out.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		SkySurcharge: domain.DefaultSkySurcharge,
		Bots: BotConfig{
			Enabled:        true,
			Difficulty:     "hard",
			MinDelayMillis: 500,
			MaxDelayMillis: 1500,
		},
		BotAutoFillDelaySeconds: 15,
	}
}

// GetGameConfig returns the global game configuration, or the defaults when none was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return DefaultGameConfig()
	}
	return *cfg
}

// GetRules returns the rules of the loaded configuration.
func GetRules() app.Rules {
	return GetGameConfig().Rules()
}

// Rules converts the configuration into engine rules, clamping the surcharge.
func (c GameConfig) Rules() app.Rules {
	return app.Rules{SkySurcharge: min(max(c.SkySurcharge, 0), domain.AdditionalTunnelCardsCount)}
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// ServerConfig configures the standalone server.
type ServerConfig struct {
	TCPAddr    string `env:"TCHU_TCP_ADDR" envDefault:":5108"`
	HTTPAddr   string `env:"TCHU_HTTP_ADDR" envDefault:":8080"`
	ConfigPath string `env:"TCHU_CONFIG" envDefault:"data/game_config.json"`
	BotsPath   string `env:"TCHU_BOTS" envDefault:"data/bot_identities.json"`
	LogLevel   string `env:"TCHU_LOG_LEVEL" envDefault:"info"`
	// BotFillDelay is how long a lone player waits before a bot takes the other seat; zero disables bots.
	BotFillDelay time.Duration `env:"TCHU_BOT_FILL_DELAY" envDefault:"15s"`
}

// ClientConfig configures the standalone client.
type ClientConfig struct {
	Addr     string `env:"TCHU_ADDR" envDefault:"localhost:5108"`
	Name     string `env:"TCHU_NAME" envDefault:"Player"`
	Bot      string `env:"TCHU_BOT"`
	LogLevel string `env:"TCHU_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// loadDotEnv reads an optional .env file; a missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

func LoadServerConfig() (ServerConfig, error) {
	loadDotEnv()
	var c ServerConfig
	return c, ParseEnv(&c)
}

func LoadClientConfig() (ClientConfig, error) {
	loadDotEnv()
	var c ClientConfig
	return c, ParseEnv(&c)
}

// MatchEnv holds the runtime env settings of the Nakama module.
type MatchEnv struct {
	BotsEnabled bool `mapstructure:"tchu_bots_enabled"`
	// BotDifficulty overrides the difficulty of every bot when set.
	BotDifficulty       string `mapstructure:"tchu_bot_difficulty"`
	BotMinDelaySec      int    `mapstructure:"bot_min_delay_sec"`
	BotMaxDelaySec      int    `mapstructure:"bot_max_delay_sec"`
	BotAutoFillDelaySec int    `mapstructure:"bot_auto_fill_delay_sec"`
	SkySurcharge        int    `mapstructure:"tchu_sky_surcharge"`
}

// DefaultMatchEnv mirrors the game config defaults. BotDifficulty stays empty so that each
// bot plays at its identity's difficulty.
func DefaultMatchEnv() MatchEnv {
	c := GetGameConfig()
	return MatchEnv{
		BotsEnabled:         c.Bots.Enabled,
		BotMinDelaySec:      c.Bots.MinDelayMillis / 1000,
		BotMaxDelaySec:      c.Bots.MaxDelayMillis / 1000,
		BotAutoFillDelaySec: c.BotAutoFillDelaySeconds,
		SkySurcharge:        c.SkySurcharge,
	}
}

// DecodeMatchEnv overlays the Nakama runtime env on the defaults. Values are strings and
// are converted to the field types.
func DecodeMatchEnv(vars map[string]string) (MatchEnv, error) {
	out := DefaultMatchEnv()
	if len(vars) == 0 {
		return out, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(vars); err != nil {
		return DefaultMatchEnv(), fmt.Errorf("decode match env: %w", err)
	}
	if out.BotMaxDelaySec < out.BotMinDelaySec {
		out.BotMaxDelaySec = out.BotMinDelaySec
	}
	return out, nil
}

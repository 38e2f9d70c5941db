package config

import (
	"testing"
	"time"
)

func TestGameConfigRules(t *testing.T) {
	tests := []struct {
		name      string
		surcharge int
		want      int
	}{
		{"default", 1, 1},
		{"free sky", 0, 0},
		{"too high", 7, 3},
		{"negative", -2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := GameConfig{SkySurcharge: tt.surcharge}
			if got := c.Rules().SkySurcharge; got != tt.want {
				t.Errorf("SkySurcharge = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecodeMatchEnv(t *testing.T) {
	t.Run("empty keeps defaults", func(t *testing.T) {
		got, err := DecodeMatchEnv(nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != DefaultMatchEnv() {
			t.Errorf("got %+v", got)
		}
	})
	t.Run("strings are converted", func(t *testing.T) {
		got, err := DecodeMatchEnv(map[string]string{
			"tchu_bots_enabled":       "false",
			"tchu_bot_difficulty":     "god",
			"bot_min_delay_sec":       "2",
			"bot_max_delay_sec":       "1",
			"bot_auto_fill_delay_sec": "30",
			"tchu_sky_surcharge":      "2",
			"unrelated":               "x",
		})
		if err != nil {
			t.Fatal(err)
		}
		want := MatchEnv{
			BotsEnabled:         false,
			BotDifficulty:       "god",
			BotMinDelaySec:      2,
			BotMaxDelaySec:      2,
			BotAutoFillDelaySec: 30,
			SkySurcharge:        2,
		}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})
	t.Run("bad number", func(t *testing.T) {
		if _, err := DecodeMatchEnv(map[string]string{"bot_min_delay_sec": "soon"}); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("TCHU_TCP_ADDR", ":9000")
	t.Setenv("TCHU_BOT_FILL_DELAY", "2s")
	c, err := LoadServerConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c.TCPAddr != ":9000" || c.BotFillDelay != 2*time.Second || c.HTTPAddr != ":8080" {
		t.Errorf("got %+v", c)
	}
}

func TestLoadGameConfig(t *testing.T) {
	if err := LoadGameConfig("../../data/game_config.json"); err != nil {
		t.Fatal(err)
	}
	c := GetGameConfig()
	if c.SkySurcharge != 1 || !c.Bots.Enabled || c.Bots.Difficulty != "hard" {
		t.Errorf("got %+v", c)
	}
	if GetRules().SkySurcharge != 1 {
		t.Errorf("rules = %+v", GetRules())
	}
}

package bot

import (
	"testing"
)

func TestIdentities(t *testing.T) {
	if err := LoadIdentities("../../data/bot_identities.json"); err != nil {
		t.Fatalf("LoadIdentities: %v", err)
	}
	first := GetBotIdentity(0)
	if first.UserID == "" || first.DisplayName == "" {
		t.Fatalf("identity = %+v", first)
	}
	if !IsBot(first.UserID) {
		t.Errorf("IsBot(%q) = false", first.UserID)
	}
	if IsBot("a1b2c3") {
		t.Error("human id reported as bot")
	}
	if GetBotDisplayName(first.UserID) != first.DisplayName {
		t.Errorf("display name = %q", GetBotDisplayName(first.UserID))
	}
	if GetBotIdentity(4) != first {
		t.Error("identity pool does not wrap around")
	}
	for i := range 4 {
		if _, err := ParseLevel(GetBotIdentity(i).Difficulty); err != nil {
			t.Errorf("identity %d: %v", i, err)
		}
	}
}

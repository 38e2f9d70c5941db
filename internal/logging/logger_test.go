package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFormatsAndCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core))

	l.WithField("session", "abc").WithFields(map[string]interface{}{"player": "PLAYER_1"}).
		Info("Lobby: %s joined", "Ada")
	l.Debug("plain")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Message != "Lobby: Ada joined" {
		t.Errorf("message = %q", entries[0].Message)
	}
	ctx := entries[0].ContextMap()
	if ctx["session"] != "abc" || ctx["player"] != "PLAYER_1" {
		t.Errorf("fields = %v", ctx)
	}
	if len(entries[1].ContextMap()) != 0 {
		t.Errorf("parent logger gained fields: %v", entries[1].ContextMap())
	}
}

func TestFieldsAreCopied(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core)).WithField("a", 1)
	f := l.Fields()
	f["b"] = 2
	if _, ok := l.Fields()["b"]; ok {
		t.Error("Fields exposed internal map")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	l, err := New("verbose")
	if err != nil {
		t.Fatal(err)
	}
	if l.zl.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug enabled for an unknown level")
	}
	if !l.zl.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info disabled")
	}
}

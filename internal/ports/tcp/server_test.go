package tcp

import (
	"context"
	"math/rand"
	"net"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/app"
	"tchu/internal/bot"
	"tchu/internal/ports/lobby"
	"tchu/internal/protocol"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

func TestServePlaysAgainstBot(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	l := lobby.New(lobby.Options{Rules: app.DefaultRules(), BotFillDelay: 10 * time.Millisecond, Seed: 4}, noopLogger{})
	defer l.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- Serve(ctx, ln, l, noopLogger{}) }()

	conn, err := Dial(ctx, ln.Addr().String(), "Ada")
	if err != nil {
		t.Fatal(err)
	}
	player, err := bot.NewAgent(bot.BotIdentity{DisplayName: "Ada", Difficulty: "hard"}, app.DefaultRules(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if err := protocol.NewClient(conn, player, noopLogger{}).Run(ctx); err != nil {
		t.Fatalf("client: %v", err)
	}

	sessions := l.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("sessions = %+v", sessions)
	}
	if s := sessions[0]; s.Status != lobby.StatusFinished || s.Players[0] != "Ada" {
		t.Errorf("session = %+v", s)
	}

	cancel()
	if err := <-served; err != nil {
		t.Errorf("Serve: %v", err)
	}
}

func TestServeDropsNamelessClient(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	l := lobby.New(lobby.Options{}, noopLogger{})
	defer l.Shutdown()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Serve(ctx, ln, l, noopLogger{})

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("not base64!\n")); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, err := conn.Read(make([]byte, 1)); err == nil {
		t.Error("server kept the connection open")
	}
	if _, ok := l.Waiting(); ok {
		t.Error("nameless client was seated")
	}
}

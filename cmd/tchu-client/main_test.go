package main

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

func TestRunReturnsDialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()
	t.Setenv("TCHU_ADDR", addr)
	t.Setenv("TCHU_BOT", "easy")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := run(ctx, strings.NewReader(""), io.Discard); err == nil {
		t.Fatal("run succeeded without a server")
	}
}

func TestRunRejectsUnknownBotLevel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			defer conn.Close()
			_, _ = io.Copy(io.Discard, conn)
		}
	}()
	t.Setenv("TCHU_ADDR", ln.Addr().String())
	t.Setenv("TCHU_BOT", "impossible")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := run(ctx, strings.NewReader(""), io.Discard); err == nil {
		t.Fatal("run accepted an unknown bot level")
	}
}

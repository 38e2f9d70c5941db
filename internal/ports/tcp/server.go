// Package tcp serves the line protocol over raw TCP connections.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/app"
	"tchu/internal/ports/lobby"
	"tchu/internal/protocol"
)

// Seater seats a remote player in a game.
type Seater interface {
	Join(ctx context.Context, name string, player app.Player) (*lobby.Session, error)
}

// Serve accepts connections until ctx ends or the listener fails. Each client first sends
// its name as a Base64 line, then plays through a protocol.Proxy.
func Serve(ctx context.Context, ln net.Listener, seats Seater, logger runtime.Logger) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	logger.Info("TCP: listening on %s", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("tcp: accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			handle(ctx, conn, seats, logger.WithField("remote", conn.RemoteAddr().String()))
		}()
	}
}

func handle(ctx context.Context, conn net.Conn, seats Seater, logger runtime.Logger) {
	lc := protocol.NewStreamConn(conn)
	defer lc.Close()

	line, err := lc.ReadLine()
	if err != nil {
		logger.Warn("TCP: no name received: %v", err)
		return
	}
	name, err := protocol.String.Deserialize(line)
	if err != nil || name == "" {
		logger.Warn("TCP: bad name line %q", line)
		return
	}

	session, err := seats.Join(ctx, name, protocol.NewProxy(lc))
	if err != nil {
		logger.Warn("TCP: %s could not join: %v", name, err)
		return
	}
	logger.Info("TCP: %s seated in session %s", name, session.ID)
	select {
	case <-session.Done():
	case <-ctx.Done():
	}
}

// Dial connects to a server and announces name.
func Dial(ctx context.Context, addr, name string) (protocol.LineConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcp: dial %s: %w", addr, err)
	}
	lc := protocol.NewStreamConn(conn)
	if err := lc.WriteLine(protocol.String.Serialize(name)); err != nil {
		lc.Close()
		return nil, fmt.Errorf("tcp: hello: %w", err)
	}
	return lc, nil
}

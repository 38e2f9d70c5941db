// Command tchu-server hosts tCHu games over TCP and websockets.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tchu/internal/bot"
	"tchu/internal/config"
	"tchu/internal/logging"
	"tchu/internal/ports/lobby"
	"tchu/internal/ports/tcp"
	"tchu/internal/ports/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatalf("tchu-server: %v", err)
	}
}

// run serves until ctx ends or a listener fails.
func run(ctx context.Context) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	if err := config.LoadGameConfig(cfg.ConfigPath); err != nil {
		logger.Warn("Server: Using default game config: %v", err)
	}
	if err := bot.LoadIdentities(cfg.BotsPath); err != nil {
		logger.Warn("Server: Using fallback bot identities: %v", err)
	}

	game := config.GetGameConfig()
	opts := lobby.Options{
		Rules:         game.Rules(),
		BotDifficulty: game.Bots.Difficulty,
		BotMinDelay:   time.Duration(game.Bots.MinDelayMillis) * time.Millisecond,
		BotMaxDelay:   time.Duration(game.Bots.MaxDelayMillis) * time.Millisecond,
		Seed:          game.Seed,
	}
	if game.Bots.Enabled {
		opts.BotFillDelay = cfg.BotFillDelay
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := lobby.New(opts, logger)
	defer l.Shutdown()

	ln, err := net.Listen("tcp", cfg.TCPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.TCPAddr, err)
	}
	tcpDone := make(chan error, 1)
	go func() {
		err := tcp.Serve(ctx, ln, l, logger)
		if err != nil {
			cancel()
		}
		tcpDone <- err
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           web.NewRouter(l, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Server: Listening on tcp %s and http %s", cfg.TCPAddr, cfg.HTTPAddr)
	httpErr := srv.ListenAndServe()
	cancel()
	tcpErr := <-tcpDone
	if httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
		return fmt.Errorf("http: %w", httpErr)
	}
	return tcpErr
}

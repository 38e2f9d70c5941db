// Command tchu-client plays a tCHu game on a server, from the terminal or as a bot.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tchu/internal/app"
	"tchu/internal/bot"
	"tchu/internal/config"
	"tchu/internal/logging"
	"tchu/internal/ports/tcp"
	"tchu/internal/ports/terminal"
	"tchu/internal/protocol"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdin, os.Stdout)
	stop()
	if err != nil {
		log.Fatalf("tchu-client: %v", err)
	}
}

// run plays one game and returns once the server closes the connection.
func run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	conn, err := tcp.Dial(ctx, cfg.Addr, cfg.Name)
	if err != nil {
		return err
	}
	defer conn.Close()

	var player app.Player
	if cfg.Bot != "" {
		agent, err := bot.NewAgent(bot.BotIdentity{DisplayName: cfg.Name, Difficulty: cfg.Bot}, config.GetRules(), nil)
		if err != nil {
			return err
		}
		player = agent
	} else {
		_, player = terminal.Start(ctx, in, out)
	}

	if err := protocol.NewClient(conn, player, logger).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

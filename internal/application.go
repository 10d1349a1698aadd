package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/llm-tictactoe/internal/agent"
	"github.com/rocketscienceinc/llm-tictactoe/internal/config"
	"github.com/rocketscienceinc/llm-tictactoe/internal/render"
	"github.com/rocketscienceinc/llm-tictactoe/internal/repository"
	"github.com/rocketscienceinc/llm-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/llm-tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/llm-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/llm-tictactoe/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - plays the configured match; SIGINT or SIGTERM stops it between turns.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, stopping the game", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	seats, err := newSeats(logger, conf)
	if err != nil {
		return err
	}

	sinks := tictactoe.Sinks{}
	if !conf.Console.Quiet {
		sinks = append(sinks, render.NewConsole(os.Stdout, !conf.Console.NoColor))
	} else {
		sinks = append(sinks, render.NewLog(logger))
	}

	var handlers *rest.Handlers
	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		snapshotRepo := repository.NewSnapshotRepository(redisStorage.Connection, conf.Redis.SnapshotTTL)
		sinks = append(sinks, render.NewStore(snapshotRepo))
		handlers = rest.NewHandlers(logger, snapshotRepo)
	}

	// run HTTP server
	httpCtx, stopHTTP := context.WithCancel(context.Background())
	defer stopHTTP()

	httpErrCh := make(chan error, 1)
	if conf.HTTP.Enabled {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTP.Port)
			if httpErr := rest.Start(httpCtx, conf.HTTP.Port, rest.NewRouter(handlers)); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
				cancel()
			}
		}()
	}

	engine := tictactoe.NewEngine(logger, seats, sinks, tictactoe.Options{
		MaxAttempts:   conf.Game.MaxAttempts,
		RetryBackoff:  conf.Game.RetryBackoff,
		MoveDelay:     conf.Game.MoveDelay,
		NotifyTimeout: conf.Game.NotifyTimeout,
	})

	tally, err := usecase.NewMatch(logger, engine, conf.Game.Rounds).Run(ctx)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\nGames: %d  X wins: %d  O wins: %d  Draws: %d  Aborted: %d\n",
		tally.Played, tally.XWins, tally.OWins, tally.Draws, tally.Aborted)

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	default:
	}

	if conf.HTTP.Enabled && ctx.Err() == nil {
		log.Info("Match over, spectator server keeps running until interrupted")
		<-ctx.Done()
	}

	return nil
}

func newSeats(logger *slog.Logger, conf *config.Config) (tictactoe.Seats, error) {
	x, err := agent.New(logger, conf.PlayerX)
	if err != nil {
		return tictactoe.Seats{}, fmt.Errorf("failed to create player X: %w", err)
	}

	o, err := agent.New(logger, conf.PlayerO)
	if err != nil {
		return tictactoe.Seats{}, fmt.Errorf("failed to create player O: %w", err)
	}

	return tictactoe.Seats{
		X: tictactoe.Seat{Label: agent.Label(conf.PlayerX), Source: x},
		O: tictactoe.Seat{Label: agent.Label(conf.PlayerO), Source: o},
	}, nil
}

package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/llm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
	"github.com/rocketscienceinc/llm-tictactoe/internal/metrics"
)

const defaultNotifyTimeout = 2 * time.Second

// Sink receives a snapshot after the game starts, after every applied move and when it ends.
type Sink interface {
	Notify(ctx context.Context, snapshot entity.Snapshot) error
}

type SinkFunc func(ctx context.Context, snapshot entity.Snapshot) error

func (f SinkFunc) Notify(ctx context.Context, snapshot entity.Snapshot) error {
	return f(ctx, snapshot)
}

// Sinks notifies every sink in order and joins their errors.
type Sinks []Sink

func (that Sinks) Notify(ctx context.Context, snapshot entity.Snapshot) error {
	var errs []error
	for _, sink := range that {
		if err := sink.Notify(ctx, snapshot); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Seat binds a move source to a player for the whole game.
type Seat struct {
	Label  string
	Source MoveSource
}

type Seats struct {
	X Seat
	O Seat
}

func (that Seats) Seat(mark entity.Mark) Seat {
	if mark == entity.PlayerX {
		return that.X
	}
	return that.O
}

func (that Seats) Labels() entity.Labels {
	return entity.Labels{
		entity.PlayerX: that.X.Label,
		entity.PlayerO: that.O.Label,
	}
}

type Options struct {
	MaxAttempts   int
	RetryBackoff  time.Duration
	MoveDelay     time.Duration
	NotifyTimeout time.Duration
}

// Engine runs one game at a time. It owns the game state; nothing else mutates it.
type Engine struct {
	logger   *slog.Logger
	seats    Seats
	sink     Sink
	acquirer *Acquirer
	options  Options
}

func NewEngine(logger *slog.Logger, seats Seats, sink Sink, options Options) *Engine {
	if options.NotifyTimeout <= 0 {
		options.NotifyTimeout = defaultNotifyTimeout
	}

	if sink == nil {
		sink = Sinks{}
	}

	return &Engine{
		logger:   logger.With("component", "engine"),
		seats:    seats,
		sink:     sink,
		acquirer: NewAcquirer(logger, options.MaxAttempts, options.RetryBackoff),
		options:  options,
	}
}

// Play - plays a game to a terminal state. Cancelling ctx stops the game between turns.
// The returned error is only set when the board rejected a move the protocol accepted.
func (that *Engine) Play(ctx context.Context, gameID string) (*entity.Game, error) {
	log := that.logger.With("method", "Play", "game", gameID)

	game := entity.NewGame(gameID)
	labels := that.seats.Labels()

	log.Info("game started", "x", labels[entity.PlayerX], "o", labels[entity.PlayerO])
	that.notify(ctx, game, labels)

	for !game.IsFinished() {
		if ctx.Err() != nil {
			that.abort(game, entity.ReasonStopped)
			break
		}

		if err := that.turn(ctx, game); err != nil {
			return game, err
		}

		if !game.IsFinished() {
			that.notify(ctx, game, labels)
			that.pace(ctx)
		}
	}

	that.notify(ctx, game, labels)

	metrics.GamesFinished.WithLabelValues(string(game.Status)).Inc()
	log.Info("game finished",
		"status", game.Status,
		"winner", game.Winner,
		"aborted_by", game.AbortedBy,
		"reason", game.Reason,
		"moves", game.Moves,
	)

	return game, nil
}

// turn - acquires and applies the current player's move, or aborts the game.
func (that *Engine) turn(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "turn", "game", game.ID, "player", game.Turn)

	seat := that.seats.Seat(game.Turn)

	acquisition, err := that.acquirer.Acquire(ctx, seat.Source, game, seat.Label)
	switch {
	case errors.Is(err, apperror.ErrMoveAcquisitionFailed):
		log.Error("player failed to make a move, aborting game", "error", err)
		that.abort(game, entity.ReasonMoveAcquisitionFailed)
		return nil
	case err != nil:
		log.Info("game stopped while waiting for a move", "error", err)
		that.abort(game, entity.ReasonStopped)
		return nil
	}

	mover := game.Turn
	if err = game.Record(acquisition.Cell); err != nil {
		return fmt.Errorf("failed to record accepted move %d: %w", acquisition.Cell, err)
	}

	metrics.MovesApplied.WithLabelValues(string(mover)).Inc()
	log.Info("move applied", "cell", acquisition.Cell, "attempts", acquisition.Attempts, "retries", len(acquisition.Retries))

	return nil
}

func (that *Engine) abort(game *entity.Game, reason entity.AbortReason) {
	if err := game.Abort(reason); err != nil {
		that.logger.Error("failed to abort game", "game", game.ID, "error", err)
	}
}

// notify - hands a snapshot to the sink without letting it hold up the game.
func (that *Engine) notify(ctx context.Context, game *entity.Game, labels entity.Labels) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.options.NotifyTimeout)
	defer cancel()

	if err := that.sink.Notify(notifyCtx, game.Snapshot(labels)); err != nil {
		that.logger.Warn("failed to notify sink", "game", game.ID, "error", err)
	}
}

// pace - waits MoveDelay so a human can follow the game; returns early on cancel.
func (that *Engine) pace(ctx context.Context) {
	if that.options.MoveDelay <= 0 {
		return
	}

	timer := time.NewTimer(that.options.MoveDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

package tictactoe

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rocketscienceinc/llm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
	"github.com/rocketscienceinc/llm-tictactoe/internal/metrics"
)

// MaxAttempts is the default number of proposals asked for per turn.
const MaxAttempts = 3

// MoveSource proposes a cell for the player named in the request. Its answer is untrusted.
type MoveSource interface {
	Propose(ctx context.Context, req entity.MoveRequest) (int, error)
}

type MoveSourceFunc func(ctx context.Context, req entity.MoveRequest) (int, error)

func (f MoveSourceFunc) Propose(ctx context.Context, req entity.MoveRequest) (int, error) {
	return f(ctx, req)
}

// RetryEvent describes one rejected proposal.
type RetryEvent struct {
	Attempt  int
	Proposed *int
	Err      error
}

// Acquisition is the outcome of one turn's proposals.
type Acquisition struct {
	Cell     int
	Attempts int
	Retries  []RetryEvent
}

// Acquirer asks a move source for a legal cell, retrying a bounded number of times.
type Acquirer struct {
	logger      *slog.Logger
	maxAttempts int
	backoff     time.Duration
}

func NewAcquirer(logger *slog.Logger, maxAttempts int, pause time.Duration) *Acquirer {
	if maxAttempts < 1 {
		maxAttempts = MaxAttempts
	}

	return &Acquirer{
		logger:      logger,
		maxAttempts: maxAttempts,
		backoff:     pause,
	}
}

// Acquire - returns a cell that was free on game's board when the call started.
// After maxAttempts rejected proposals it returns *apperror.MoveAcquisitionError.
// A canceled context is returned as is.
func (that *Acquirer) Acquire(ctx context.Context, source MoveSource, game *entity.Game, label string) (Acquisition, error) {
	log := that.logger.With("method", "Acquire", "game", game.ID, "player", game.Turn)

	player := game.Turn
	board := game.Board.Symbols()
	available := game.Board.AvailableMoves()

	var (
		acquisition Acquisition
		lastErr     error
	)

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(that.backoff), uint64(that.maxAttempts-1)),
		ctx,
	)

	cell, err := backoff.RetryWithData[int](func() (int, error) {
		acquisition.Attempts++

		proposed, err := that.propose(ctx, source, entity.MoveRequest{
			GameID:    game.ID,
			Board:     board,
			Player:    player,
			Available: slices.Clone(available),
			Label:     label,
		})
		if err == nil && slices.Contains(available, proposed) {
			return proposed, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, backoff.Permanent(ctxErr)
		}

		event := RetryEvent{Attempt: acquisition.Attempts, Err: err}
		if err == nil {
			event.Proposed = &proposed
			event.Err = rejectCell(game.Board, proposed)
		}

		acquisition.Retries = append(acquisition.Retries, event)
		lastErr = event.Err

		metrics.ProposalRetries.WithLabelValues(string(player)).Inc()
		log.Warn("move proposal rejected", "attempt", event.Attempt, "proposed", event.Proposed, "error", event.Err)

		return 0, event.Err
	}, policy)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return acquisition, ctxErr
		}

		metrics.AcquisitionFailures.WithLabelValues(string(player)).Inc()

		return acquisition, &apperror.MoveAcquisitionError{
			Player:   string(player),
			Attempts: acquisition.Attempts,
			Last:     lastErr,
		}
	}

	acquisition.Cell = cell
	log.Debug("move accepted", "cell", cell, "attempts", acquisition.Attempts)

	return acquisition, nil
}

// propose - calls the source, turning a panic into a proposal failure.
func (that *Acquirer) propose(ctx context.Context, source MoveSource, req entity.MoveRequest) (cell int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("move source panicked: %v", r)
		}
	}()

	cell, err = source.Propose(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("proposal failed: %w", err)
	}

	return cell, nil
}

// rejectCell - explains why a proposed cell is not playable.
func rejectCell(board entity.Board, cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return fmt.Errorf("%w: cell %d", apperror.ErrIllegalMove, cell)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

type gameEngine interface {
	Play(ctx context.Context, gameID string) (*entity.Game, error)
}

// Tally counts the results of a match.
type Tally struct {
	Played  int `json:"played"`
	XWins   int `json:"x_wins"`
	OWins   int `json:"o_wins"`
	Draws   int `json:"draws"`
	Aborted int `json:"aborted"`
}

func (that *Tally) Record(game *entity.Game) {
	that.Played++

	switch game.Status {
	case entity.StatusWon:
		if game.Winner == entity.PlayerX {
			that.XWins++
		} else {
			that.OWins++
		}
	case entity.StatusDraw:
		that.Draws++
	case entity.StatusAborted:
		that.Aborted++
	}
}

// Match plays a number of independent games one after the other.
type Match struct {
	logger *slog.Logger
	engine gameEngine
	rounds int
	newID  func() string
}

func NewMatch(logger *slog.Logger, engine gameEngine, rounds int) *Match {
	if rounds < 1 {
		rounds = 1
	}

	return &Match{
		logger: logger.With("component", "match"),
		engine: engine,
		rounds: rounds,
		newID:  uuid.NewString,
	}
}

// Run - plays every round unless ctx is cancelled; a stopped game ends the match.
func (that *Match) Run(ctx context.Context) (Tally, error) {
	log := that.logger.With("method", "Run")

	var tally Tally

	for round := 1; round <= that.rounds; round++ {
		gameID := that.newID()

		game, err := that.engine.Play(ctx, gameID)
		if err != nil {
			return tally, fmt.Errorf("failed to play round %d: %w", round, err)
		}

		tally.Record(game)
		log.Info("round finished", "round", round, "game", gameID, "status", game.Status, "winner", game.Winner)

		if game.Reason == entity.ReasonStopped || ctx.Err() != nil {
			log.Info("match stopped", "rounds_played", tally.Played)
			break
		}
	}

	log.Info("match finished",
		"played", tally.Played,
		"x_wins", tally.XWins,
		"o_wins", tally.OWins,
		"draws", tally.Draws,
		"aborted", tally.Aborted,
	)

	return tally, nil
}

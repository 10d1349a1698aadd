package agent

import (
	"context"
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Random picks a uniformly random free cell.
type Random struct{}

func NewRandom() *Random {
	return &Random{}
}

func (that *Random) Propose(_ context.Context, req entity.MoveRequest) (int, error) {
	if len(req.Available) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return req.Available[rand.Intn(len(req.Available))], nil //nolint: gosec // it's ok
}

// First always picks the lowest free cell.
type First struct{}

func (that First) Propose(_ context.Context, req entity.MoveRequest) (int, error) {
	if len(req.Available) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return req.Available[0], nil
}

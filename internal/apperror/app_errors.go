package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell is already occupied")

	ErrMalformedProposal     = errors.New("malformed move proposal")
	ErrMoveAcquisitionFailed = errors.New("move acquisition failed")
	ErrNotFound              = errors.New("not found")
)

// MoveAcquisitionError is returned when a move source used up every attempt of a turn
// without proposing a legal cell.
type MoveAcquisitionError struct {
	Player   string
	Attempts int
	Last     error
}

func (that *MoveAcquisitionError) Error() string {
	return fmt.Sprintf("%s: player %s gave no legal move in %d attempts: %v",
		ErrMoveAcquisitionFailed, that.Player, that.Attempts, that.Last)
}

func (that *MoveAcquisitionError) Unwrap() error {
	return ErrMoveAcquisitionFailed
}

package entity

import (
	"fmt"

	"github.com/rocketscienceinc/llm-tictactoe/internal/apperror"
)

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusDraw    Status = "draw"
	StatusAborted Status = "aborted"
)

type AbortReason string

const (
	ReasonMoveAcquisitionFailed AbortReason = "move_acquisition_failed"
	ReasonStopped               AbortReason = "stopped"
)

// Game is the state owned by the turn engine for one game.
type Game struct {
	ID          string      `json:"id"`
	Board       Board       `json:"board"`
	Turn        Mark        `json:"turn"`
	Status      Status      `json:"status"`
	Winner      Mark        `json:"winner,omitempty"`
	WinningLine *Line       `json:"winning_line,omitempty"`
	AbortedBy   Mark        `json:"aborted_by,omitempty"`
	Reason      AbortReason `json:"reason,omitempty"`
	Moves       []int       `json:"moves"`
}

// Labels are the player names used in status texts.
type Labels map[Mark]string

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Turn:   PlayerX,
		Status: StatusOngoing,
		Moves:  []int{},
	}
}

func (that *Game) IsFinished() bool {
	return that.Status != StatusOngoing
}

// Record - places the current player's mark on cell and evaluates the result.
// Only the player who just moved can have completed a line, so only that mark is checked.
func (that *Game) Record(cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	board, err := that.Board.Apply(cell, that.Turn)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Board = board
	that.Moves = append(that.Moves, cell)

	if won, line := board.Winner(that.Turn); won {
		that.Status = StatusWon
		that.Winner = that.Turn
		that.WinningLine = &line
		return nil
	}

	if board.IsFull() {
		that.Status = StatusDraw
		return nil
	}

	that.Turn = Opponent(that.Turn)

	return nil
}

// Abort - freezes the game, blaming the player whose turn it is.
func (that *Game) Abort(reason AbortReason) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	that.Status = StatusAborted
	that.AbortedBy = that.Turn
	that.Reason = reason

	return nil
}

func (that *Game) StatusText(labels Labels) string {
	switch that.Status {
	case StatusWon:
		return fmt.Sprintf("Player %s (%s) wins!", that.Winner, labels[that.Winner])
	case StatusDraw:
		return "It's a draw!"
	case StatusAborted:
		if that.Reason == ReasonStopped {
			return "Game stopped."
		}
		return fmt.Sprintf("Player %s (%s) failed to make a move. Game aborted.", that.AbortedBy, labels[that.AbortedBy])
	default:
		return fmt.Sprintf("Player %s (%s) to move", that.Turn, labels[that.Turn])
	}
}

// Snapshot is what presentation sinks receive after every change.
type Snapshot struct {
	GameID      string            `json:"game_id"`
	Board       [BoardSize]string `json:"board"`
	Turn        Mark              `json:"turn,omitempty"`
	Status      Status            `json:"status"`
	StatusText  string            `json:"status_text,omitempty"`
	WinningLine []int             `json:"winning_line,omitempty"`
	LastMove    *int              `json:"last_move,omitempty"`
	MoveNumber  int               `json:"move_number"`
	Labels      Labels            `json:"labels,omitempty"`
}

func (that *Game) Snapshot(labels Labels) Snapshot {
	snapshot := Snapshot{
		GameID:     that.ID,
		Board:      that.Board.Symbols(),
		Status:     that.Status,
		StatusText: that.StatusText(labels),
		MoveNumber: len(that.Moves),
		Labels:     labels,
	}

	if !that.IsFinished() {
		snapshot.Turn = that.Turn
	}

	if that.Status == StatusWon && that.WinningLine != nil {
		line := *that.WinningLine
		snapshot.WinningLine = line[:]
	}

	if n := len(that.Moves); n > 0 {
		last := that.Moves[n-1]
		snapshot.LastMove = &last
	}

	return snapshot
}

// MoveRequest is everything a move source is told about the position.
type MoveRequest struct {
	GameID    string
	Board     [BoardSize]string
	Player    Mark
	Available []int
	Label     string
}

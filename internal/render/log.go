package render

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

// Log writes one structured line per snapshot, for runs without a terminal.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("component", "board")}
}

func (that *Log) Notify(ctx context.Context, snapshot entity.Snapshot) error {
	attrs := []any{
		"game", snapshot.GameID,
		"move", snapshot.MoveNumber,
		"status", snapshot.Status,
		"board", entity.FormatSymbols(snapshot.Board),
	}

	if snapshot.LastMove != nil {
		attrs = append(attrs, "last_move", *snapshot.LastMove)
	}

	if snapshot.WinningLine != nil {
		attrs = append(attrs, "winning_line", snapshot.WinningLine)
	}

	that.logger.InfoContext(ctx, snapshot.StatusText, attrs...)

	return nil
}

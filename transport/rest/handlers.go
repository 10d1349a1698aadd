package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/llm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

type snapshotReader interface {
	GetByID(ctx context.Context, id string) (entity.Snapshot, error)
	Latest(ctx context.Context) (entity.Snapshot, error)
}

type Handlers struct {
	logger    *slog.Logger
	snapshots snapshotReader
}

func NewHandlers(logger *slog.Logger, snapshots snapshotReader) *Handlers {
	return &Handlers{
		logger:    logger.With("component", "rest"),
		snapshots: snapshots,
	}
}

// GetGame - the latest snapshot of one game.
func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.snapshots.GetByID(r.Context(), r.PathValue("id"))
	that.writeSnapshot(w, snapshot, err)
}

// LatestGame - the latest snapshot of the game played most recently.
func (that *Handlers) LatestGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.snapshots.Latest(r.Context())
	that.writeSnapshot(w, snapshot, err)
}

func (that *Handlers) writeSnapshot(w http.ResponseWriter, snapshot entity.Snapshot, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		that.logger.Error("failed to read snapshot", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(snapshot); err != nil {
		that.logger.Error("failed to write snapshot", "error", err)
	}
}

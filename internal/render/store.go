package render

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

type SnapshotSaver interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
}

// Store publishes every snapshot to the snapshot repository so spectators can poll it.
type Store struct {
	repo SnapshotSaver
}

func NewStore(repo SnapshotSaver) *Store {
	return &Store{repo: repo}
}

func (that *Store) Notify(ctx context.Context, snapshot entity.Snapshot) error {
	if err := that.repo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to publish snapshot of game %s: %w", snapshot.GameID, err)
	}

	return nil
}

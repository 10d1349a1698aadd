package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/llm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

const (
	gameKeyPrefix = "game:"
	latestGameKey = "game:latest"
)

// SnapshotRepository keeps the latest snapshot of each game for spectators.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
	GetByID(ctx context.Context, id string) (entity.Snapshot, error)
	Latest(ctx context.Context) (entity.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSnapshot struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotRepository - a ttl of zero keeps snapshots forever.
func NewSnapshotRepository(client *redis.Client, ttl time.Duration) SnapshotRepository {
	return &dbSnapshot{
		client: client,
		ttl:    ttl,
	}
}

// Save - overwrites the game's snapshot and marks the game as the latest one.
func (that *dbSnapshot) Save(ctx context.Context, snapshot entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKeyPrefix+snapshot.GameID, snapshotJSON, that.ttl)
		pipe.Set(ctx, latestGameKey, snapshot.GameID, that.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) GetByID(ctx context.Context, id string) (entity.Snapshot, error) {
	response, err := that.client.Get(ctx, gameKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return entity.Snapshot{}, apperror.ErrNotFound
	}

	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to get snapshot by id: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snapshot, nil
}

func (that *dbSnapshot) Latest(ctx context.Context) (entity.Snapshot, error) {
	id, err := that.client.Get(ctx, latestGameKey).Result()
	if errors.Is(err, redis.Nil) {
		return entity.Snapshot{}, apperror.ErrNotFound
	}

	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to get latest game id: %w", err)
	}

	return that.GetByID(ctx, id)
}

func (that *dbSnapshot) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

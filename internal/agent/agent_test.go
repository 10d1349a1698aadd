package agent

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/llm-tictactoe/internal/config"
	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

func TestNew(t *testing.T) {
	tests := []struct {
		kind string
		want any
	}{
		{kind: KindOpenAI, want: &OpenAI{}},
		{kind: KindOllama, want: &Ollama{}},
		{kind: KindRandom, want: &Random{}},
		{kind: KindFirst, want: First{}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			source, err := New(discardLogger(), config.Player{Kind: tt.kind, Model: "gemma3:1b"})

			require.NoError(t, err)
			assert.IsType(t, tt.want, source)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := New(discardLogger(), config.Player{Kind: "human"})

		require.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Gemma3:1b", Label(config.Player{Label: "Gemma3:1b", Model: "gemma3:1b"}))
	assert.Equal(t, "gemma3:1b", Label(config.Player{Model: "gemma3:1b", Kind: KindOllama}))
	assert.Equal(t, "random", Label(config.Player{Kind: KindRandom}))
}

func TestRandom_Propose(t *testing.T) {
	// Given: three free cells
	req := entity.MoveRequest{Available: []int{2, 5, 7}}
	source := NewRandom()
	seen := map[int]bool{}

	// When: many moves are proposed
	for range 200 {
		cell, err := source.Propose(context.Background(), req)
		require.NoError(t, err)
		require.True(t, slices.Contains(req.Available, cell))
		seen[cell] = true
	}

	// Then: every free cell was picked at least once
	assert.Len(t, seen, 3)
}

func TestRandom_NoMoves(t *testing.T) {
	_, err := NewRandom().Propose(context.Background(), entity.MoveRequest{})

	require.ErrorIs(t, err, ErrNoAvailableMoves)
}

func TestFirst_Propose(t *testing.T) {
	cell, err := First{}.Propose(context.Background(), entity.MoveRequest{Available: []int{3, 4}})

	require.NoError(t, err)
	assert.Equal(t, 3, cell)

	_, err = First{}.Propose(context.Background(), entity.MoveRequest{})
	require.ErrorIs(t, err, ErrNoAvailableMoves)
}

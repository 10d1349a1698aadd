package tictactoe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

var errSinkDown = errors.New("sink is down")

type recordingSink struct {
	snapshots []entity.Snapshot
}

func (that *recordingSink) Notify(_ context.Context, snapshot entity.Snapshot) error {
	that.snapshots = append(that.snapshots, snapshot)
	return nil
}

func (that *recordingSink) last() entity.Snapshot {
	return that.snapshots[len(that.snapshots)-1]
}

func newTestEngine(x, o MoveSource, sink Sink) *Engine {
	return NewEngine(discardLogger(), Seats{
		X: Seat{Label: "Gemma3:1b", Source: x},
		O: Seat{Label: "LLaMA3.2:1b", Source: o},
	}, sink, Options{MaxAttempts: MaxAttempts})
}

func TestEngine_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("X wins on the top row after five moves", func(t *testing.T) {
		// Given: X plays 0, 1, 2 and O plays 3, 4
		sink := &recordingSink{}
		engine := newTestEngine(scripted(0, 1, 2), scripted(3, 4), sink)

		// When: the game is played
		game, err := engine.Play(ctx, "g1")

		// Then: X has won on line 0,1,2 after five moves
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon, game.Status)
		assert.Equal(t, entity.PlayerX, game.Winner)
		require.NotNil(t, game.WinningLine)
		assert.Equal(t, entity.Line{0, 1, 2}, *game.WinningLine)
		assert.Equal(t, []int{0, 3, 1, 4, 2}, game.Moves)

		// And: the sink saw the start and every move, the last one with the result
		require.Len(t, sink.snapshots, 6)
		assert.Equal(t, 0, sink.snapshots[0].MoveNumber)
		assert.Equal(t, []int{0, 1, 2}, sink.last().WinningLine)
		assert.Equal(t, "Player X (Gemma3:1b) wins!", sink.last().StatusText)
	})

	t.Run("O can win too", func(t *testing.T) {
		// Given: O builds the middle column while X scatters
		engine := newTestEngine(scripted(0, 2, 6), scripted(1, 4, 7), nil)

		// When: the game is played
		game, err := engine.Play(ctx, "g2")

		// Then: O wins with 1,4,7
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon, game.Status)
		assert.Equal(t, entity.PlayerO, game.Winner)
		assert.Equal(t, entity.Line{1, 4, 7}, *game.WinningLine)
	})

	t.Run("Lowest available cell for both players gives X the anti diagonal", func(t *testing.T) {
		// Given: both sources pick the lowest free cell
		sink := &recordingSink{}
		engine := newTestEngine(firstAvailable(), firstAvailable(), sink)

		// When: the game is played
		game, err := engine.Play(ctx, "g3")

		// Then: X wins on the diagonal 2,4,6 at move seven
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon, game.Status)
		assert.Equal(t, entity.Line{2, 4, 6}, *game.WinningLine)
		assert.Len(t, game.Moves, 7)
	})

	t.Run("Nine moves without a line is a draw", func(t *testing.T) {
		// Given: a move order that fills the board without a line
		sink := &recordingSink{}
		engine := newTestEngine(scripted(0, 2, 3, 7, 8), scripted(1, 4, 5, 6), sink)

		// When: the game is played
		game, err := engine.Play(ctx, "g4")

		// Then: the game is a draw on a full board
		require.NoError(t, err)
		assert.Equal(t, entity.StatusDraw, game.Status)
		assert.True(t, game.Board.IsFull())
		assert.Equal(t, entity.EmptyCell, game.Winner)
		assert.Len(t, game.Moves, 9)

		for _, mark := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
			won, _ := game.Board.Winner(mark)
			assert.False(t, won)
		}

		require.Len(t, sink.snapshots, 10)
		assert.Equal(t, "It's a draw!", sink.last().StatusText)
		assert.Nil(t, sink.last().WinningLine)
	})

	t.Run("X failing three times aborts the game before any move", func(t *testing.T) {
		// Given: X's source always fails
		sink := &recordingSink{}
		calls := 0
		oCalls := 0
		engine := newTestEngine(failing(&calls), failing(&oCalls), sink)

		// When: the game is played
		game, err := engine.Play(ctx, "g5")

		// Then: the game is aborted by X with an untouched board
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAborted, game.Status)
		assert.Equal(t, entity.PlayerX, game.AbortedBy)
		assert.Equal(t, entity.ReasonMoveAcquisitionFailed, game.Reason)
		assert.Equal(t, entity.Board{}, game.Board)
		assert.Empty(t, game.Moves)
		assert.Equal(t, MaxAttempts, calls)
		assert.Zero(t, oCalls)

		// And: the final snapshot is neither a win nor a draw
		require.Len(t, sink.snapshots, 2)
		assert.Equal(t, entity.StatusAborted, sink.last().Status)
		assert.Equal(t, "Player X (Gemma3:1b) failed to make a move. Game aborted.", sink.last().StatusText)
		assert.Nil(t, sink.last().WinningLine)
	})

	t.Run("O failing mid game keeps the moves already played", func(t *testing.T) {
		// Given: O answers once, then only proposes the occupied centre
		engine := newTestEngine(scripted(4, 0), scripted(8, 4), nil)

		// When: the game is played
		game, err := engine.Play(ctx, "g6")

		// Then: O is blamed and the three applied moves stay on the board
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAborted, game.Status)
		assert.Equal(t, entity.PlayerO, game.AbortedBy)
		assert.Equal(t, []int{4, 8, 0}, game.Moves)
	})

	t.Run("Recovered proposals do not abort the game", func(t *testing.T) {
		// Given: X proposes an occupied cell twice before a free one on its second turn
		engine := newTestEngine(scripted(0, 0, 0, 1, 2), scripted(3, 4), nil)

		// When: the game is played
		game, err := engine.Play(ctx, "g7")

		// Then: the game still ends with X's win
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon, game.Status)
		assert.Equal(t, []int{0, 3, 1, 4, 2}, game.Moves)
	})

	t.Run("A cancelled context stops the game between turns", func(t *testing.T) {
		// Given: X's source cancels the game after answering
		cancelCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		sink := &recordingSink{}
		x := MoveSourceFunc(func(context.Context, entity.MoveRequest) (int, error) {
			cancel()
			return 4, nil
		})
		oCalls := 0
		engine := newTestEngine(x, failing(&oCalls), sink)

		// When: the game is played
		game, err := engine.Play(cancelCtx, "g8")

		// Then: X's move stands and the game is stopped before O is asked
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAborted, game.Status)
		assert.Equal(t, entity.ReasonStopped, game.Reason)
		assert.Equal(t, []int{4}, game.Moves)
		assert.Zero(t, oCalls)
		assert.Equal(t, "Game stopped.", sink.last().StatusText)
	})

	t.Run("Sink errors do not stop the game", func(t *testing.T) {
		// Given: a sink that always fails
		sink := SinkFunc(func(context.Context, entity.Snapshot) error { return errSinkDown })
		engine := newTestEngine(scripted(0, 1, 2), scripted(3, 4), sink)

		// When: the game is played
		game, err := engine.Play(ctx, "g9")

		// Then: the game completes
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon, game.Status)
	})

	t.Run("Sinks are notified even after cancellation", func(t *testing.T) {
		// Given: a sink that reports whether its context was already done
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		var done []bool
		sink := SinkFunc(func(ctx context.Context, _ entity.Snapshot) error {
			done = append(done, ctx.Err() != nil)
			return nil
		})
		engine := newTestEngine(firstAvailable(), firstAvailable(), sink)

		// When: the game is played with a cancelled context
		game, err := engine.Play(cancelCtx, "g10")

		// Then: the game stops immediately but both snapshots got a live context
		require.NoError(t, err)
		assert.Equal(t, entity.ReasonStopped, game.Reason)
		assert.Equal(t, []bool{false, false}, done)
	})

	t.Run("Move delay paces the game", func(t *testing.T) {
		// Given: a 10ms pacing delay
		engine := NewEngine(discardLogger(), Seats{
			X: Seat{Label: "X", Source: scripted(0, 1, 2)},
			O: Seat{Label: "O", Source: scripted(3, 4)},
		}, nil, Options{MoveDelay: 10 * time.Millisecond})
		started := time.Now()

		// When: the game is played
		_, err := engine.Play(ctx, "g11")

		// Then: four non final moves were each followed by a pause
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(started), 40*time.Millisecond)
	})
}

func TestSinks_Notify(t *testing.T) {
	// Given: two recording sinks and a failing one
	first, second := &recordingSink{}, &recordingSink{}
	sinks := Sinks{first, SinkFunc(func(context.Context, entity.Snapshot) error { return errSinkDown }), second}

	// When: a snapshot is sent
	err := sinks.Notify(context.Background(), entity.Snapshot{GameID: "g"})

	// Then: every sink got it and the failure is reported
	require.ErrorIs(t, err, errSinkDown)
	assert.Len(t, first.snapshots, 1)
	assert.Len(t, second.snapshots, 1)
}

func TestSeats(t *testing.T) {
	seats := Seats{X: Seat{Label: "a"}, O: Seat{Label: "b"}}

	assert.Equal(t, "a", seats.Seat(entity.PlayerX).Label)
	assert.Equal(t, "b", seats.Seat(entity.PlayerO).Label)
	assert.Equal(t, entity.Labels{entity.PlayerX: "a", entity.PlayerO: "b"}, seats.Labels())
}

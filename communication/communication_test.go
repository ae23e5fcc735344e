package communication

import (
	"context"
	"homeworlds/game"
	"homeworlds/gamemaster"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalCommunicator(t *testing.T) {
	master, err := gamemaster.NewGameMaster(2)
	require.NoError(t, err)
	var c Communicator = NewLocal(master)

	require.Equal(t, game.CodeUnrecognizedCommand, game.CodeOf(c.Probe(context.Background(), "jump")))

	entry, err := c.Play(context.Background(), game.North, "homeworld g3 b2 y3")
	require.NoError(t, err)
	require.Equal(t, game.South, entry.Next)
	moves, err := c.Moves(context.Background())
	require.NoError(t, err)
	require.Equal(t, game.South, moves.Seat)
	snap, err := c.State(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.History, 2)
}

func TestMovesOfRestoredGame(t *testing.T) {
	master, err := gamemaster.Restore(game.Snapshot{SeatCount: 2})
	require.NoError(t, err)
	resp := Moves(master)
	require.Equal(t, game.North, resp.Seat)
	require.NotNil(t, resp.Moves)
}

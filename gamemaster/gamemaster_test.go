package gamemaster

import (
	"homeworlds/game"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func piece(c game.Colour, z game.Size) game.Piece {
	return game.Piece{Colour: c, Size: z}
}

func ship(c game.Colour, z game.Size, owner game.Seat) game.Ship {
	return game.Ship{Colour: c, Size: z, Owner: owner}
}

// endgame is a position where North wins by attacking South's last ship
func endgame(t *testing.T) game.Snapshot {
	gs := game.NewGameState(2)
	gs.Systems = []game.System{
		{Name: "north", Owner: game.North, Stars: []game.Piece{piece(game.Green, 1), piece(game.Blue, 2)}, Ships: []game.Ship{ship(game.Green, 3, game.North)}},
		{Name: "south", Owner: game.South, Stars: []game.Piece{piece(game.Yellow, 2), piece(game.Blue, 1)}, Ships: []game.Ship{ship(game.Green, 1, game.South), ship(game.Red, 3, game.North)}},
	}
	for _, sys := range gs.Systems {
		for _, p := range sys.Stars {
			require.NoError(t, gs.Stash.Remove(p))
		}
		for _, s := range sys.Ships {
			require.NoError(t, gs.Stash.Remove(piece(s.Colour, s.Size)))
		}
	}
	return game.Snapshot{GameID: "endgame", SeatCount: 2, History: []game.Entry{gs.Entry()}}
}

func TestNewGameMaster(t *testing.T) {
	t.Run("rejects unsupported player counts", func(t *testing.T) {
		for _, players := range []int{0, 1, 5} {
			_, err := NewGameMaster(players)
			require.Error(t, err)
		}
	})

	t.Run("starts an empty game", func(t *testing.T) {
		gm, err := NewGameMaster(3)
		require.NoError(t, err)

		_, err = uuid.Parse(gm.ID())
		require.NoError(t, err, "Game id should be a uuid")
		require.Equal(t, game.North, gm.State().Current)
		require.Len(t, gm.LegalMoves(), 36)

		snap := gm.Snapshot()
		require.Equal(t, gm.ID(), snap.GameID)
		require.Equal(t, 3, snap.SeatCount)
		require.Len(t, snap.History, 1, "History starts with the empty board")

		_, ok := gm.NextUpdate()
		require.False(t, ok, "No updates before the first move")
	})
}

func TestGameMasterPlay(t *testing.T) {
	t.Run("valid move", func(t *testing.T) {
		gm, err := NewGameMaster(2)
		require.NoError(t, err)

		next, err := gm.Play(game.North, "homeworld g3 b2 y3")
		require.NoError(t, err)
		require.Equal(t, game.South, next.Current)
		require.Equal(t, next.Hash(), gm.State().Hash())
		require.Len(t, gm.Snapshot().History, 2)

		u, ok := gm.NextUpdate()
		require.True(t, ok)
		require.Equal(t, game.North, u.Seat)
		require.Equal(t, game.Move("homeworld g3 b2 y3"), u.Move)
		require.Equal(t, next.Hash(), u.Hash)
		require.Equal(t, game.South, u.Entry.Next)
	})

	t.Run("wrong seat", func(t *testing.T) {
		gm, err := NewGameMaster(2)
		require.NoError(t, err)

		_, err = gm.Play(game.South, "homeworld g3 b2 y3")
		require.ErrorIs(t, err, ErrNotYourTurn)
		require.Len(t, gm.Snapshot().History, 1, "Rejected moves leave no trace")
	})

	t.Run("illegal move keeps its rule code", func(t *testing.T) {
		gm, err := NewGameMaster(2)
		require.NoError(t, err)

		_, err = gm.Play(game.North, "jump g1 north alpha")
		require.Equal(t, game.CodeUnrecognizedCommand, game.CodeOf(err))
		_, err = gm.Play(game.North, "move g1 north alpha")
		require.Equal(t, game.CodeNoHomeworld, game.CodeOf(err))
	})

	t.Run("probe does not play", func(t *testing.T) {
		gm, err := NewGameMaster(2)
		require.NoError(t, err)
		before := gm.State().Hash()

		require.NoError(t, gm.Probe("homeworld g3 b2 y3"))
		require.Error(t, gm.Probe("homeworld g3 b3 y3"))
		require.Equal(t, before, gm.State().Hash())
	})

	t.Run("concurrent submissions for the same seat", func(t *testing.T) {
		gm, err := NewGameMaster(2)
		require.NoError(t, err)

		var accepted atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := gm.Play(game.North, "homeworld g3 b2 y3"); err == nil {
					accepted.Add(1)
				}
			}()
		}
		wg.Wait()

		require.Equal(t, int32(1), accepted.Load(), "Only one move per turn is accepted")
		require.Len(t, gm.Snapshot().History, 2)
	})
}

func TestGameMasterGameOver(t *testing.T) {
	gm, err := Restore(endgame(t))
	require.NoError(t, err)
	require.Equal(t, "endgame", gm.ID())

	next, err := gm.Play(game.North, "attack g1 south")
	require.NoError(t, err)
	require.True(t, next.Over)
	require.Equal(t, "N", next.Winner())

	u, ok := <-gm.Updates()
	require.True(t, ok, "The winning move is published")
	require.Equal(t, []game.Seat{game.South}, u.Entry.Out)
	_, ok = <-gm.Updates()
	require.False(t, ok, "Updates close once the game is over")

	_, err = gm.Play(game.South, "pass")
	require.ErrorIs(t, err, game.ErrMoveOnGameOver)

	snap := gm.Snapshot()
	require.True(t, snap.Over)
	require.Equal(t, []game.Seat{game.North}, snap.Won)

	t.Run("restoring a finished game", func(t *testing.T) {
		restored, err := Restore(snap)
		require.NoError(t, err)
		require.True(t, restored.State().Over)
		_, ok := restored.NextUpdate()
		require.False(t, ok)
	})
}

func TestRestore(t *testing.T) {
	gm, err := NewGameMaster(2)
	require.NoError(t, err)
	_, err = gm.Play(game.North, "homeworld g3 b2 y3")
	require.NoError(t, err)

	restored, err := Restore(gm.Snapshot())
	require.NoError(t, err)
	require.Equal(t, gm.ID(), restored.ID())
	require.Equal(t, gm.State().Hash(), restored.State().Hash())
	require.Equal(t, gm.Snapshot().History, restored.Snapshot().History)

	_, err = Restore(game.Snapshot{SeatCount: 9})
	require.Error(t, err)

	fresh, err := Restore(game.Snapshot{SeatCount: 2})
	require.NoError(t, err)
	require.NotEmpty(t, fresh.ID(), "Snapshots without an id get a new one")
	require.Len(t, fresh.Snapshot().History, 1)
}

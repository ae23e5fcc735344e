package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("material favours the larger fleet", func(t *testing.T) {
		gs := standard(t)
		// North: G3 Y3 R1 G1 G2 = 10 pips, South: B1 G3 = 4 pips.
		require.InDelta(t, (10.0-4.0)/14.0, EvaluateMaterial(gs), 1e-9)

		gs.Current = South
		require.InDelta(t, (4.0-10.0)/14.0, EvaluateMaterial(gs), 1e-9)
	})

	t.Run("empty board is even", func(t *testing.T) {
		gs := NewGameState(2)
		require.Equal(t, 0.0, EvaluateMaterial(gs))
		require.Equal(t, 0.0, EvaluateHomeDefence(gs))
	})

	t.Run("home defence stays in range", func(t *testing.T) {
		gs := setup(t, 2, North,
			sys("north", North, "g1 b2", "g3n y3s"),
			sys("south", South, "r3 b1", "g3s y2s"),
		)
		score := EvaluateHomeDefence(gs)
		require.Less(t, score, 0.0, "a large enemy ship sits in the north home")
		require.GreaterOrEqual(t, score, -1.0)
	})

	t.Run("only opponents in the game count", func(t *testing.T) {
		gs := setup(t, 3, North,
			sys("north", North, "g1 b2", "g3n"),
			sys("east", East, "y3 b1", "g1e"),
			sys("alpha", NoSeat, "r3", "b3s y3s"),
		)
		gs.Out = []Seat{South}
		require.InDelta(t, (3.0-1.0)/4.0, EvaluateMaterial(gs), 1e-9)
	})

	t.Run("rejects foreign states", func(t *testing.T) {
		require.Panics(t, func() { EvaluateMaterial(nil) })
	})
}

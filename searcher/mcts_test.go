package searcher

import (
	"homeworlds/experiments/metrics"
	"homeworlds/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMCTS(t *testing.T) {
	require.Panics(t, func() { NewMCTS(1) }, "Search needs episodes or a duration")
	require.NotPanics(t, func() { NewMCTS(0, WithEpisodes(1)) })
}

func TestRollout(t *testing.T) {
	t.Run("terminal state reports the winner", func(t *testing.T) {
		player, score := rollout(mockState{player: "S", winner: "N"}, MaxCutoff, nil, metrics.NewDummyCollector())

		require.Equal(t, "N", player)
		require.Equal(t, Win, score)
	})

	t.Run("cutoff evaluates from the player to move", func(t *testing.T) {
		state := mockState{player: "N", moves: []game.Move{"m0"}}
		evaluate := func(s game.State) float64 {
			require.Len(t, s.(mockState).played, 3, "Rollout should stop at the cutoff")
			return 0.5
		}

		player, score := rollout(state, 3, evaluate, metrics.NewDummyCollector())

		require.Equal(t, "N", player)
		require.Equal(t, 0.5, score)
	})
}

func TestSimulate(t *testing.T) {
	t.Run("policy covers legal moves", func(t *testing.T) {
		state := game.NewGameState(2)
		mcts := NewMCTS(4, WithEpisodes(60), WithCutoff(4), WithMetrics())

		policy, metric := mcts.Simulate(state, nil)

		legal := state.LegalMoves()
		total := 0.0
		for move, share := range policy {
			require.Contains(t, legal, move)
			total += share
		}
		require.InDelta(t, 1.0, total, 1e-9)
		require.Len(t, policy, len(legal), "Every setup move should be expanded")
		require.Equal(t, 60, metric.Episodes)
		require.Equal(t, 4, metric.Goroutines)
		require.True(t, metric.IsTreeReset, "First search starts a new tree")
	})

	t.Run("reuses the subtree of the played move", func(t *testing.T) {
		state := game.NewGameState(2)
		mcts := NewMCTS(2, WithEpisodes(60), WithCutoff(4), WithMetrics())
		policy, _ := mcts.Simulate(state, nil)

		var move game.Move
		for m := range policy {
			move = m
			break
		}
		next := state.Play(move)
		_, metric := mcts.Simulate(next, []Segment{{Move: move, StateHash: next.Hash()}})
		require.False(t, metric.IsTreeReset)
		require.Nil(t, mcts.root.parent, "Reused root is detached")

		// A lineage that disagrees with the tree starts over
		_, metric = mcts.Simulate(next, []Segment{{Move: "pass", StateHash: 1}})
		require.True(t, metric.IsTreeReset)
	})

	t.Run("duration budget", func(t *testing.T) {
		mcts := NewMCTS(2, WithDuration(20*time.Millisecond), WithCutoff(2), WithMetrics())

		policy, metric := mcts.Simulate(game.NewGameState(2), nil)

		require.NotEmpty(t, policy)
		require.Positive(t, metric.Episodes)
		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
	})
}

func TestTraverse(t *testing.T) {
	grandChild := &decision{hash: 2}
	child := &decision{hash: 1, moves: []game.Move{"b"}, children: []*decision{grandChild}}
	root := &decision{moves: []game.Move{"a"}, children: []*decision{child}}

	require.Equal(t, grandChild, traverse(root, []Segment{{"a", 1}, {"b", 2}}))
	require.Equal(t, root, traverse(root, nil))
	require.Nil(t, traverse(root, []Segment{{"a", 9}}), "Hash mismatch")
	require.Nil(t, traverse(root, []Segment{{"c", 1}}), "Unexpanded move")
	require.Nil(t, traverse(nil, []Segment{{"a", 1}}))
}

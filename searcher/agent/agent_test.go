package agent

import (
	"homeworlds/game"
	"homeworlds/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindMax(t *testing.T) {
	require.Equal(t, game.Move("b"), findMax(map[game.Move]float64{"a": 0.2, "b": 0.5, "c": 0.3}))
	require.Equal(t, game.Move("a"), findMax(map[game.Move]float64{"c": 0.5, "a": 0.5}), "Ties go to the smaller move")
	require.Equal(t, game.Move(""), findMax(nil))
}

func TestAdjustTemperature(t *testing.T) {
	policy := map[game.Move]float64{"a": 0.25, "b": 0.75}

	require.InDeltaMapValues(t, policy, adjustTemperature(policy, 1.0), 1e-9, "Temperature 1 keeps the distribution")

	sharp := adjustTemperature(policy, 0.5)
	require.InDelta(t, 0.1, sharp["a"], 1e-9, "Low temperature favours the most visited move")
	require.InDelta(t, 0.9, sharp["b"], 1e-9)
}

func TestSample(t *testing.T) {
	policy := map[game.Move]float64{"b": 0.5, "a": 0.25, "c": 0.25}

	require.Equal(t, game.Move("a"), sample(policy, 0.1))
	require.Equal(t, game.Move("b"), sample(policy, 0.3))
	require.Equal(t, game.Move("c"), sample(policy, 0.9))
	require.Equal(t, game.Move("c"), sample(policy, 1.0), "Rounding falls back to the last move")
}

func TestAgents(t *testing.T) {
	state := game.NewGameState(2)
	legal := state.LegalMoves()

	t.Run("random agent plays a legal move", func(t *testing.T) {
		move, _ := NewRandomAgent().FindMove(state, nil)
		require.Contains(t, legal, move)

		over := &game.GameState{Over: true}
		move, _ = NewRandomAgent().FindMove(over, nil)
		require.Empty(t, move)
	})

	t.Run("search agents play legal moves", func(t *testing.T) {
		for _, a := range []Agent{
			NewEvaluationAgent(searcher.NewMCTS(2, searcher.WithEpisodes(40), searcher.WithCutoff(2), searcher.WithMetrics())),
			NewTrainingAgent(searcher.NewMCTS(2, searcher.WithEpisodes(40), searcher.WithCutoff(2), searcher.WithMetrics()), 1.0),
		} {
			move, metric := a.FindMove(state, nil)
			require.Contains(t, legal, move)
			require.Equal(t, 40, metric.Episodes)
		}
	})
}

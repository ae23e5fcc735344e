package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts episodes and playouts per search", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 10, nil)
		c.SetTreeReset(true)
		c.AddEpisode()
		c.AddEpisode()
		c.AddFullPlayout()

		got := c.Complete()
		require.Equal(t, 4, got.Goroutines)
		require.Equal(t, 10, got.Cutoff)
		require.Equal(t, 2, got.Episodes)
		require.Equal(t, 1, got.FullPlayouts)
		require.True(t, got.IsTreeReset)

		c.Start(4, 10, nil)
		require.Zero(t, c.Complete().Episodes, "a new search starts from zero")
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(4, 10, nil)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "cutoff")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Goroutines: 8, Duration: time.Second, Evaluation: "material"}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{Index: 1, Agent1: 0, Agent2: 1, GameMetric: GameMetric{ID: "g", Players: 2, StartingPlayer: "N", Winner: "S"}}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: "N", Move: "homeworld g3 b2 y3"}}}))

	f, err := os.Open(filepath.Join(w.Dir(), "move_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "homeworld g3 b2 y3", rows[1][3])

	for _, name := range []string{"agent_configs.csv", "game_records.csv"} {
		_, err := os.Stat(filepath.Join(w.Dir(), name))
		require.NoError(t, err, name)
	}
}

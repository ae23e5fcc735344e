package experiments

import (
	"encoding/csv"
	"homeworlds/experiments/metrics"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	require.Equal(t, []string{"baseline", "cutoff", "evaluation", "parallelization", "throughput"}, Names())
	_, ok := Lookup("cutoff")
	require.True(t, ok)
	_, ok = Lookup("nope")
	require.False(t, ok)
}

func TestRunExperiment(t *testing.T) {
	root := t.TempDir()
	random := metrics.AgentConfig{ID: 0, Random: true}
	search := metrics.AgentConfig{ID: 1, Goroutines: 2, Episodes: 20, Cutoff: 2}
	cfg := Config{Games: 2, MaxTurns: 4, OutDir: root}

	require.NoError(t, runExperiment("smoke", cfg, []metrics.AgentConfig{random, search}, [][]metrics.AgentConfig{{random, search}}))

	runs, err := os.ReadDir(filepath.Join(root, "smoke"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	dir := filepath.Join(root, "smoke", runs[0].Name())

	f, err := os.Open(filepath.Join(dir, "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "Header and one row per game")
	require.Equal(t, "0", rows[1][2], "Agent 0 starts the first game")
	require.Equal(t, "1", rows[2][2], "Starting agents alternate")

	f, err = os.Open(filepath.Join(dir, "move_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err = csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+2*4)
}

func TestCreateAgent(t *testing.T) {
	require.NotPanics(t, func() {
		createAgent(metrics.AgentConfig{Random: true})
		createAgent(metrics.AgentConfig{Goroutines: 1, Episodes: 1})
	})
	require.Panics(t, func() { createAgent(metrics.AgentConfig{Goroutines: 1}) }, "Search agents need a budget")
}

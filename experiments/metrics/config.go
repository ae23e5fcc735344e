package metrics

import (
	"homeworlds/game"
	"time"
)

// AgentConfig describes one agent in an experiment matchup
type AgentConfig struct {
	ID         int
	Random     bool // Plays uniformly random legal moves, ignores the search fields
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Cutoff     int
	Evaluate   game.Evaluate
	Evaluation string // Name of Evaluate for the records
}

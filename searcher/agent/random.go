package agent

import (
	"homeworlds/experiments/metrics"
	"homeworlds/game"
	"homeworlds/searcher"
	"math/rand"
)

type randomAgent struct{}

// NewRandomAgent returns a baseline agent that plays a uniformly random legal move.
func NewRandomAgent() Agent {
	return randomAgent{}
}

func (randomAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return "", metrics.SearchMetric{}
	}
	return moves[rand.Intn(len(moves))], metrics.SearchMetric{}
}

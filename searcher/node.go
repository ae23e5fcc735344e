package searcher

import "homeworlds/game"

// Node is a node of the search tree. Its statistics are kept from the
// perspective of the seat that played the move leading into it.
type Node interface {
	// SelectOrExpand descends one level: it either expands a new child or
	// selects the best existing one by UCT. A terminal node returns itself.
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	// Backup records an outcome (a score for player) and returns the parent,
	// nil at the root.
	Backup(player string, score float64) Node
	// Policy is the visit distribution over the expanded moves.
	Policy() map[game.Move]float64
	applyLoss()
	stats() (rewards float64, visits float64)
}

// computeReward converts a score for player into a reward for mover.
func computeReward(player string, score float64, mover string) float64 {
	if player == mover {
		return score
	}
	return -score
}

package searcher

import (
	"homeworlds/game"
	"math"
	"math/rand"
	"sync"
)

type decision struct {
	sync.RWMutex
	parent   *decision
	mover    string // Seat that played into this node, empty at the root
	player   string // Seat to move
	hash     game.StateHash
	moves    []game.Move
	children []*decision // children[i] is reached by moves[i]
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, state game.State) *decision {
	moves := append([]game.Move(nil), state.LegalMoves()...)
	rand.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })

	d := &decision{
		parent:   parent,
		player:   state.Player(),
		hash:     state.Hash(),
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
	if parent != nil {
		d.mover = parent.player
	}
	return d
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.children) < len(d.moves) { // Expandable node
		move := d.moves[len(d.children)]
		childState := state.Play(move)
		child := newDecision(d, childState)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	i := d.pickChild()
	child := d.children[i]
	child.applyLoss()
	return child, state.Play(d.moves[i]), true
}

// pickChild returns the index of the child with the highest UCT value.
// Callers hold the lock.
func (d *decision) pickChild() int {
	// Children carry at least one visit each, in flight or backed up
	policy := newUCT(CSquared, math.Max(d.visits, float64(len(d.children))))
	best, bestScore := 0, math.Inf(-1)
	for i, child := range d.children {
		rewards, visits := child.stats()
		if score := policy.evaluate(rewards, visits); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (d *decision) Backup(player string, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Reverse the virtual loss applied on the way down
		d.rewards -= Loss
		d.visits--
	}
	d.rewards += computeReward(player, score, d.mover)
	d.visits++

	if d.parent == nil {
		return nil
	}
	return d.parent
}

func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.children))
	total := 0.0
	for i, child := range d.children {
		_, visits := child.stats()
		policy[d.moves[i]] = visits
		total += visits
	}
	if total > 0 {
		for move := range policy {
			policy[move] /= total
		}
	}
	return policy
}

// child returns the expanded child reached by move, or nil.
func (d *decision) child(move game.Move) *decision {
	d.RLock()
	defer d.RUnlock()

	for i, child := range d.children {
		if d.moves[i] == move {
			return child
		}
	}
	return nil
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) stats() (float64, float64) {
	d.RLock()
	defer d.RUnlock()

	return d.rewards, d.visits
}

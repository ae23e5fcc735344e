package searcher

import (
	"hash/fnv"
	"homeworlds/game"
)

// mockState offers the same moves at every depth and records what was played
type mockState struct {
	player string
	winner string
	moves  []game.Move
	played []game.Move
}

func (s mockState) Player() string {
	return s.player
}

func (s mockState) LegalMoves() []game.Move {
	return s.moves
}

func (s mockState) Play(move game.Move) game.State {
	played := append(append([]game.Move(nil), s.played...), move)
	return mockState{player: s.player, winner: s.winner, moves: s.moves, played: played}
}

func (s mockState) Hash() game.StateHash {
	h := fnv.New64a()
	for _, move := range s.played {
		h.Write([]byte(move))
		h.Write([]byte{0})
	}
	return game.StateHash(h.Sum64())
}

func (s mockState) Winner() string {
	return s.winner
}

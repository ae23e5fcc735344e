package gamemaster

import (
	"errors"
	"fmt"
	"homeworlds/game"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// UpdateBuffer is the number of unread updates kept before new ones are dropped
const UpdateBuffer = 64

var ErrNotYourTurn = errors.New("not your turn")

// Update is published after every accepted move
type Update struct {
	Seat  game.Seat
	Move  game.Move
	Entry game.Entry
	Hash  game.StateHash
}

// GameMaster owns the authoritative state of one game and resolves moves
// submitted for it. It is safe for concurrent use.
type GameMaster struct {
	mu      sync.RWMutex
	id      string
	state   *game.GameState
	history []game.Entry
	updates chan Update
}

// NewGameMaster starts a new game for 2 to 4 players.
func NewGameMaster(players int, variants ...string) (*GameMaster, error) {
	if players < 2 || players > 4 {
		return nil, fmt.Errorf("unsupported number of players: %d", players)
	}
	state := game.NewGameState(players, variants...)
	gm := &GameMaster{
		id:      uuid.NewString(),
		state:   state,
		history: []game.Entry{state.Entry()},
		updates: make(chan Update, UpdateBuffer),
	}
	log.Info().Msgf("game %s created for %d players", gm.id, players)
	return gm, nil
}

// Restore resumes a game from its snapshot.
func Restore(snap game.Snapshot) (*GameMaster, error) {
	state, err := game.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", snap.GameID, err)
	}

	id := snap.GameID
	if id == "" {
		id = uuid.NewString()
	}
	history := slices.Clone(snap.History)
	if len(history) == 0 {
		history = []game.Entry{state.Entry()}
	}

	gm := &GameMaster{
		id:      id,
		state:   state,
		history: history,
		updates: make(chan Update, UpdateBuffer),
	}
	if state.Over {
		close(gm.updates)
	}
	log.Info().Msgf("game %s restored at turn %d", gm.id, len(history)-1)
	return gm, nil
}

func (gm *GameMaster) ID() string {
	return gm.id
}

// State returns a copy of the current position.
func (gm *GameMaster) State() *game.GameState {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return gm.state.Copy()
}

func (gm *GameMaster) LegalMoves() []game.Move {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return gm.state.LegalMoves()
}

// Probe reports whether move would be accepted for the seat to move, without
// playing it.
func (gm *GameMaster) Probe(move string) error {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return gm.state.Validate(move)
}

// Play applies move for seat and returns the new position.
func (gm *GameMaster) Play(seat game.Seat, move string) (*game.GameState, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if !gm.state.Over && seat != gm.state.Current {
		return nil, fmt.Errorf("seat %s cannot play while %s is to move: %w", seat, gm.state.Current, ErrNotYourTurn)
	}
	next, err := gm.state.Apply(move)
	if err != nil {
		return nil, fmt.Errorf("failed to play %q: %w", move, err)
	}

	gm.state = next
	entry := next.Entry()
	gm.history = append(gm.history, entry)
	log.Debug().Msgf("game %s turn %d: %s played %q", gm.id, len(gm.history)-1, seat, move)

	for _, out := range next.Eliminated {
		log.Info().Msgf("game %s: seat %s is out", gm.id, out)
	}

	gm.publish(Update{Seat: seat, Move: game.Move(move), Entry: entry, Hash: next.Hash()})
	if next.Over {
		log.Info().Msgf("game %s over, won by %v", gm.id, next.Won)
		close(gm.updates)
	}
	return next.Copy(), nil
}

func (gm *GameMaster) publish(u Update) {
	select {
	case gm.updates <- u:
	default:
		log.Warn().Msgf("game %s: update buffer full, dropping turn %d", gm.id, len(gm.history)-1)
	}
}

// Updates delivers accepted moves in order and is closed once the game is over.
func (gm *GameMaster) Updates() <-chan Update {
	return gm.updates
}

// NextUpdate returns the oldest unread update without blocking.
func (gm *GameMaster) NextUpdate() (Update, bool) {
	select {
	case u, ok := <-gm.updates:
		return u, ok
	default:
		return Update{}, false
	}
}

// Snapshot returns the serializable form of the game.
func (gm *GameMaster) Snapshot() game.Snapshot {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	history := make([]game.Entry, len(gm.history))
	copy(history, gm.history)
	return game.Snapshot{
		GameID:    gm.id,
		SeatCount: len(gm.state.Seats),
		Variants:  slices.Clone(gm.state.Variants),
		Over:      gm.state.Over,
		Won:       slices.Clone(gm.state.Won),
		History:   history,
	}
}

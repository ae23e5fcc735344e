package player

import (
	"context"
	"fmt"
	"homeworlds/communication"
	"homeworlds/game"
	"homeworlds/searcher"
	"homeworlds/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

// Player sits at one seat of a game behind a Communicator and lets an agent
// choose its moves.
type Player struct {
	Seat  game.Seat
	comm  communication.Communicator
	agent agent.Agent
	poll  time.Duration
	turns int // Stop after this many own moves, 0 plays to the end

	last *game.GameState // Position after our last move
	seen int             // History length at that position
}

// NewPlayer creates a player that checks for its turn every poll.
func NewPlayer(seat game.Seat, comm communication.Communicator, a agent.Agent, poll time.Duration, turns int) *Player {
	return &Player{
		Seat:  seat,
		comm:  comm,
		agent: a,
		poll:  poll,
		turns: turns,
	}
}

// Run plays until the game is over, the turn limit is reached or ctx is done.
func (p *Player) Run(ctx context.Context) error {
	played := 0
	for p.turns == 0 || played < p.turns {
		moves, err := p.comm.Moves(ctx)
		if err != nil {
			return fmt.Errorf("failed to get moves: %w", err)
		}
		if moves.Seat == game.NoSeat {
			log.Info().Msgf("seat %s: game over", p.Seat)
			return nil
		}
		if moves.Seat != p.Seat {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.poll):
			}
			continue
		}

		if err := p.TakeTurn(ctx); err != nil {
			return err
		}
		played++
	}
	return nil
}

// TakeTurn syncs the game, asks the agent for a move and submits it.
func (p *Player) TakeTurn(ctx context.Context) error {
	state, history, err := p.SyncGameState(ctx)
	if err != nil {
		return err
	}

	move, metric := p.agent.FindMove(state, p.lineage(history))
	log.Debug().Msgf("seat %s chose %q after %d episodes", p.Seat, move, metric.Episodes)

	if _, err := p.comm.Play(ctx, p.Seat, string(move)); err != nil {
		return fmt.Errorf("seat %s failed to play %q: %w", p.Seat, move, err)
	}
	next, err := state.Apply(string(move))
	if err != nil {
		return fmt.Errorf("seat %s cannot replay its own move %q: %w", p.Seat, move, err)
	}
	p.last = next
	p.seen = len(history) + 1
	return nil
}

// SyncGameState fetches the game and rebuilds the current position.
func (p *Player) SyncGameState(ctx context.Context) (*game.GameState, []game.Entry, error) {
	snap, err := p.comm.State(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game state: %w", err)
	}
	state, err := game.Restore(snap)
	if err != nil {
		return nil, nil, err
	}
	return state, snap.History, nil
}

// lineage replays the moves played since our last move, so the agent can
// keep its search tree. A history that cannot be replayed gives no lineage.
func (p *Player) lineage(history []game.Entry) []searcher.Segment {
	if p.last == nil || p.seen > len(history) {
		return nil
	}
	// Our own move leads the lineage
	segments := []searcher.Segment{{Move: game.Move(history[p.seen-1].Move), StateHash: p.last.Hash()}}
	state := p.last
	for _, entry := range history[p.seen:] {
		next, err := state.Apply(entry.Move)
		if err != nil {
			log.Warn().Err(err).Msgf("seat %s cannot replay %q", p.Seat, entry.Move)
			return nil
		}
		state = next
		segments = append(segments, searcher.Segment{Move: game.Move(entry.Move), StateHash: state.Hash()})
	}
	return segments
}

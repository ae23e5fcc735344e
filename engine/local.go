package engine

import (
	"homeworlds/experiments/metrics"
	"homeworlds/gamemaster"
	"homeworlds/searcher"
	"homeworlds/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// LocalEngine drives one game between in-process agents through a game
// master. Agents are matched to seats in turn order.
type LocalEngine struct {
	master   *gamemaster.GameMaster
	agents   []agent.Agent
	maxTurns int
}

func NewLocalEngine(master *gamemaster.GameMaster, agents []agent.Agent, maxTurns int) *LocalEngine {
	seats := master.State().Seats
	if len(agents) != len(seats) {
		panic("number of agents does not match number of seats")
	}
	return &LocalEngine{
		master:   master,
		agents:   agents,
		maxTurns: maxTurns,
	}
}

// Run executes the game loop until the game is over or maxTurns moves were played.
func (e *LocalEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	state := e.master.State()
	gameMetric := metrics.GameMetric{
		ID:             e.master.ID(),
		Players:        len(state.Seats),
		StartingPlayer: state.Player(),
		StartTime:      time.Now(),
	}
	// Moves played since each agent's last search, fed from the master's updates
	lineages := make([][]searcher.Segment, len(e.agents))
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s: seat %s is starting", e.master.ID(), state.Current)

	turn := 1
	for !state.Over && turn <= e.maxTurns {
		seat := state.Current
		i := slices.Index(state.Seats, seat)

		move, metric := e.agents[i].FindMove(state, lineages[i])
		lineages[i] = nil

		next, err := e.master.Play(seat, string(move))
		if err != nil {
			log.Error().Err(err).Msgf("game %s: seat %s chose an illegal move, playing the first legal move instead", e.master.ID(), seat)
			moves := state.LegalMoves()
			if len(moves) == 0 {
				panic("no legal moves in a running game")
			}
			move = moves[0]
			next, err = e.master.Play(seat, string(move))
			if err != nil {
				panic(err)
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       string(seat),
			Move:         move,
			SearchMetric: metric,
		})
		for u, ok := e.master.NextUpdate(); ok; u, ok = e.master.NextUpdate() {
			segment := searcher.Segment{Move: u.Move, StateHash: u.Hash}
			for j := range lineages {
				lineages[j] = append(lineages[j], segment)
			}
		}

		log.Debug().Msgf("game %s turn %d: %s played %q", e.master.ID(), turn, seat, move)
		state = next
		turn++
	}

	if state.Over {
		log.Info().Msgf("game %s ended after %d turns, winner: %s", e.master.ID(), turn-1, state.Winner())
	} else {
		log.Info().Msgf("game %s stopped after %d turns without a winner", e.master.ID(), e.maxTurns)
	}

	gameMetric.Winner = state.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turn - 1
	return state.Winner(), gameMetric, moveMetrics
}

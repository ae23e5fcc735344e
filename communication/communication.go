package communication

import (
	"context"
	"homeworlds/game"
	"homeworlds/gamemaster"
)

// Communicator is what a player needs from a game master, whether it runs
// in process or behind the HTTP server.
type Communicator interface {
	State(ctx context.Context) (game.Snapshot, error)
	Moves(ctx context.Context) (MovesResponse, error)
	Probe(ctx context.Context, move string) error
	Play(ctx context.Context, seat game.Seat, move string) (game.Entry, error)
}

// MoveRequest is the body of /probe and /play. Probing ignores the seat.
type MoveRequest struct {
	Seat game.Seat `json:"seat,omitempty"`
	Move string    `json:"move"`
}

// MovesResponse lists the legal moves of the seat to move. Seat is empty
// once the game is over.
type MovesResponse struct {
	Seat  game.Seat   `json:"seat,omitempty"`
	Moves []game.Move `json:"moves"`
}

// ErrorResponse carries a rule error's code and context, or a plain message
// for other failures.
type ErrorResponse struct {
	Code    game.Code `json:"code,omitempty"`
	Context []string  `json:"context,omitempty"`
	Message string    `json:"message,omitempty"`
}

type local struct {
	master *gamemaster.GameMaster
}

// NewLocal serves a game master in process.
func NewLocal(master *gamemaster.GameMaster) Communicator {
	return local{master: master}
}

func (l local) State(context.Context) (game.Snapshot, error) {
	return l.master.Snapshot(), nil
}

func (l local) Moves(context.Context) (MovesResponse, error) {
	return Moves(l.master), nil
}

func (l local) Probe(_ context.Context, move string) error {
	return l.master.Probe(move)
}

func (l local) Play(_ context.Context, seat game.Seat, move string) (game.Entry, error) {
	next, err := l.master.Play(seat, move)
	if err != nil {
		return game.Entry{}, err
	}
	return next.Entry(), nil
}

// Moves describes the legal moves of the master's seat to move.
func Moves(master *gamemaster.GameMaster) MovesResponse {
	state := master.State()
	resp := MovesResponse{Moves: state.LegalMoves()}
	if !state.Over {
		resp.Seat = state.Current
	}
	if resp.Moves == nil {
		resp.Moves = []game.Move{}
	}
	return resp
}

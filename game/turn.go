package game

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// Validate reports whether move is a legal turn for the seat to move. The
// state is left untouched.
func (gs *GameState) Validate(move string) error {
	_, err := gs.Apply(move)
	return err
}

// Apply plays move for the seat to move and returns the resulting state.
// On error the returned state is nil; gs is never modified.
func (gs *GameState) Apply(move string) (*GameState, error) {
	if gs.Over {
		return nil, newError(CodeMoveOnGameOver)
	}
	cmds, err := parseMove(move)
	if err != nil {
		return nil, err
	}
	t := newTurn(gs.Copy())
	if err := t.execute(cmds); err != nil {
		return nil, err
	}
	if err := t.finish(gs, move); err != nil {
		return nil, err
	}
	return t.gs, nil
}

// Play implements State. Only legal moves may be played.
func (gs *GameState) Play(move Move) State {
	next, err := gs.Apply(string(move))
	if err != nil {
		panic(err)
	}
	return next
}

// simulate executes move without the end of turn checks and returns the
// turn, for move generation.
func (gs *GameState) simulate(move string) (*turn, error) {
	cmds, err := parseMove(move)
	if err != nil {
		return nil, err
	}
	t := newTurn(gs.Copy())
	if err := t.execute(cmds); err != nil {
		return nil, err
	}
	return t, nil
}

// finish runs the end of turn checks: the action budget, the self
// elimination guard, opponent eliminations, the win condition and rotation.
// before is the state the turn started from.
func (t *turn) finish(before *GameState, move string) error {
	gs := t.gs
	if !t.actions.Spent() {
		return newError(CodeActionsRemaining,
			"free", strconv.Itoa(t.actions.Free), "pending", strconv.Itoa(t.actions.Pending()))
	}
	home := gs.Home(t.seat)
	if home == nil || len(home.Stars) == 0 || home.ShipCount(t.seat) == 0 {
		return newError(CodeSelfElimination, "seat", string(t.seat))
	}

	lho := before.LHO(t.seat)
	var eliminated []Seat
	for _, seat := range gs.Seats {
		if seat == t.seat || !before.hasHome(seat) {
			continue
		}
		home := gs.Home(seat)
		if home != nil && home.ShipCount(seat) > 0 {
			continue
		}
		eliminated = append(eliminated, seat)
		if home != nil {
			name := home.Name
			home.Owner = NoSeat
			t.cleanup(name)
		}
	}

	gs.Mover = t.seat
	gs.LastMove = move
	gs.Eliminated = eliminated
	gs.Out = append(gs.Out, eliminated...)
	if len(eliminated) > 0 {
		t.results = append(t.results, Result{Type: ResultEliminated, Seat: t.seat, Seats: slices.Clone(eliminated)})
	}

	if lho != NoSeat && slices.Contains(eliminated, lho) {
		gs.Over = true
		gs.Won = []Seat{t.seat}
		t.results = append(t.results,
			Result{Type: ResultEndOfGame},
			Result{Type: ResultWinners, Seats: []Seat{t.seat}})
	} else {
		next := gs.nextSeat(t.seat)
		if next == NoSeat {
			panic("winner could not be determined")
		}
		gs.Current = next
	}
	gs.Results = t.results
	return nil
}

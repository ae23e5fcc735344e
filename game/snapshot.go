package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Entry is one turn of a game's history: the position after the move, the
// move itself and its results log. The first entry of a history is the empty
// board with no move.
type Entry struct {
	Systems []System `json:"systems"`
	Stash   Stash    `json:"stash"`
	Mover   Seat     `json:"mover,omitempty"`
	Move    string   `json:"move,omitempty"`
	Results []Result `json:"results,omitempty"`
	Next    Seat     `json:"next,omitempty"`
	Out     []Seat   `json:"out,omitempty"`
}

// Snapshot is the plain, serializable form of a game.
type Snapshot struct {
	GameID    string   `json:"gameId"`
	SeatCount int      `json:"seatCount"`
	Variants  []string `json:"variantFlags"`
	Over      bool     `json:"isOver"`
	Won       []Seat   `json:"winningSeats"`
	History   []Entry  `json:"turnHistory"`
}

// Entry records the state as a history entry.
func (gs *GameState) Entry() Entry {
	systems := make([]System, len(gs.Systems))
	for i, sys := range gs.Systems {
		systems[i] = sys.clone()
	}
	e := Entry{
		Systems: systems,
		Stash:   gs.Stash,
		Mover:   gs.Mover,
		Move:    gs.LastMove,
		Results: slices.Clone(gs.Results),
		Out:     slices.Clone(gs.Out),
	}
	if !gs.Over {
		e.Next = gs.Current
	}
	return e
}

// Last returns the latest history entry.
func (s *Snapshot) Last() (Entry, bool) {
	if len(s.History) == 0 {
		return Entry{}, false
	}
	return s.History[len(s.History)-1], true
}

// Restore rebuilds the current position from a snapshot's latest entry. An
// empty history yields a new game. Snapshots whose pieces do not add up are
// rejected.
func Restore(s Snapshot) (*GameState, error) {
	if s.SeatCount < 2 || s.SeatCount > 4 {
		return nil, fmt.Errorf("unsupported seat count %d", s.SeatCount)
	}
	gs := NewGameState(s.SeatCount, s.Variants...)
	last, ok := s.Last()
	if !ok {
		return gs, nil
	}

	for _, seat := range append(slices.Clone(last.Out), last.Next, last.Mover) {
		if seat != NoSeat && !slices.Contains(gs.Seats, seat) {
			return nil, fmt.Errorf("unknown seat %q in snapshot", seat)
		}
	}
	gs.Systems = make([]System, len(last.Systems))
	for i, sys := range last.Systems {
		gs.Systems[i] = sys.clone()
	}
	gs.Stash = last.Stash
	gs.Mover = last.Mover
	gs.LastMove = last.Move
	gs.Results = slices.Clone(last.Results)
	gs.Out = slices.Clone(last.Out)
	gs.Over = s.Over
	gs.Won = slices.Clone(s.Won)
	if len(s.History) > 1 {
		prev := s.History[len(s.History)-2]
		for _, seat := range last.Out {
			if !slices.Contains(prev.Out, seat) {
				gs.Eliminated = append(gs.Eliminated, seat)
			}
		}
	}
	if !gs.Over {
		if last.Next == NoSeat {
			return nil, fmt.Errorf("snapshot of a running game has no seat to move")
		}
		gs.Current = last.Next
	} else {
		gs.Current = last.Mover
	}

	if err := gs.checkConservation(); err != nil {
		return nil, err
	}
	return gs, nil
}

// checkConservation verifies that every piece kind adds up to the stash
// maximum across the board and the stash.
func (gs *GameState) checkConservation() error {
	if gs.Stash.Max != len(gs.Seats)+1 {
		return fmt.Errorf("stash maximum %d does not match %d seats", gs.Stash.Max, len(gs.Seats))
	}
	for _, sys := range gs.Systems {
		for _, p := range sys.pieces() {
			if p.Colour < Red || p.Colour > Yellow || p.Size < Small || p.Size > Large {
				return fmt.Errorf("invalid piece %s in system %s", p, sys.Name)
			}
		}
	}
	for _, c := range Colours {
		for _, z := range Sizes {
			p := Piece{Colour: c, Size: z}
			if n := gs.PieceCount(p) + gs.Stash.Count(p); n != gs.Stash.Max {
				return fmt.Errorf("piece %s counted %d times, want %d", p, n, gs.Stash.Max)
			}
		}
	}
	return nil
}

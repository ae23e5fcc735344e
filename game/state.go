package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/slices"
)

// GameState is a complete position between turns. States are never mutated
// once returned to a caller: Apply and Play work on a copy.
type GameState struct {
	Seats    []Seat   // Seats in clockwise turn order
	Current  Seat     // The seat to move
	Systems  []System // Live systems, in creation order
	Stash    Stash    // Unclaimed pieces
	Variants []string // Variant flags, carried for snapshots
	Out      []Seat   // Seats eliminated so far

	Mover      Seat     // The seat that played LastMove
	LastMove   string   // The last move played
	Results    []Result // Effects of the last move
	Eliminated []Seat   // Seats eliminated by the last move

	Over bool   // Whether the game has ended
	Won  []Seat // Winning seats once Over
}

// NewGameState returns the empty position of a new game.
func NewGameState(players int, variants ...string) *GameState {
	seats := SeatsFor(players)
	return &GameState{
		Seats:    seats,
		Current:  seats[0],
		Stash:    NewStash(players),
		Variants: variants,
	}
}

// Copy returns a deep copy of the state.
func (gs *GameState) Copy() *GameState {
	systems := make([]System, len(gs.Systems))
	for i, sys := range gs.Systems {
		systems[i] = sys.clone()
	}
	return &GameState{
		Seats:      slices.Clone(gs.Seats),
		Current:    gs.Current,
		Systems:    systems,
		Stash:      gs.Stash,
		Variants:   slices.Clone(gs.Variants),
		Out:        slices.Clone(gs.Out),
		Mover:      gs.Mover,
		LastMove:   gs.LastMove,
		Results:    slices.Clone(gs.Results),
		Eliminated: slices.Clone(gs.Eliminated),
		Over:       gs.Over,
		Won:        slices.Clone(gs.Won),
	}
}

func (gs *GameState) systemIndex(name string) int {
	return slices.IndexFunc(gs.Systems, func(s System) bool { return s.Name == name })
}

// System returns the named system, or nil. The pointer is valid until the
// system list changes.
func (gs *GameState) System(name string) *System {
	i := gs.systemIndex(name)
	if i < 0 {
		return nil
	}
	return &gs.Systems[i]
}

// Home returns seat's home system, or nil.
func (gs *GameState) Home(seat Seat) *System {
	for i := range gs.Systems {
		if gs.Systems[i].Owner == seat && seat != NoSeat {
			return &gs.Systems[i]
		}
	}
	return nil
}

// IsOut reports whether seat has been eliminated.
func (gs *GameState) IsOut(seat Seat) bool {
	return slices.Contains(gs.Out, seat)
}

func (gs *GameState) seatIndex(seat Seat) int {
	i := slices.Index(gs.Seats, seat)
	if i < 0 {
		panic(fmt.Sprintf("unknown seat %q", seat))
	}
	return i
}

// neighbour walks the table from seat in direction step (+1 clockwise) and
// returns the first other seat satisfying ok.
func (gs *GameState) neighbour(seat Seat, step int, ok func(Seat) bool) Seat {
	n := len(gs.Seats)
	i := gs.seatIndex(seat)
	for k := 1; k < n; k++ {
		s := gs.Seats[((i+k*step)%n+n)%n]
		if ok(s) {
			return s
		}
	}
	return NoSeat
}

func (gs *GameState) hasHome(seat Seat) bool {
	return gs.Home(seat) != nil
}

// LHO is seat's left-hand opponent: the next seat clockwise with a home system.
func (gs *GameState) LHO(seat Seat) Seat {
	return gs.neighbour(seat, 1, gs.hasHome)
}

// rho is seat's right-hand opponent: the next seat counter-clockwise with a
// home system.
func (gs *GameState) rho(seat Seat) Seat {
	return gs.neighbour(seat, -1, gs.hasHome)
}

// opponent returns the other seat of a two-seat game.
func (gs *GameState) opponent(seat Seat) Seat {
	return gs.neighbour(seat, 1, func(Seat) bool { return true })
}

// nextSeat returns the seat to move after seat: the next one not out of the
// game. Seats still setting up are not skipped.
func (gs *GameState) nextSeat(seat Seat) Seat {
	return gs.neighbour(seat, 1, func(s Seat) bool { return !gs.IsOut(s) })
}

// Live returns the seats still in the game.
func (gs *GameState) Live() []Seat {
	var live []Seat
	for _, s := range gs.Seats {
		if !gs.IsOut(s) {
			live = append(live, s)
		}
	}
	return live
}

// Player returns the seat to move.
func (gs *GameState) Player() string {
	return string(gs.Current)
}

// Winner returns the sole winning seat, "" while the game is running.
func (gs *GameState) Winner() string {
	if len(gs.Won) != 1 {
		return ""
	}
	return string(gs.Won[0])
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	hasher.Write([]byte(gs.Current))
	for _, seat := range gs.Out {
		hasher.Write([]byte(seat))
	}

	for _, sys := range gs.Systems {
		hasher.Write([]byte(sys.Name))
		hasher.Write([]byte(sys.Owner))
		for _, star := range sys.Stars {
			binary.Write(hasher, binary.LittleEndian, int64(star.Colour))
			binary.Write(hasher, binary.LittleEndian, int64(star.Size))
		}
		for _, ship := range sys.Ships {
			hasher.Write([]byte(ship.ID()))
		}
		hasher.Write([]byte{0})
	}

	for _, row := range gs.Stash.Counts {
		for _, count := range row {
			binary.Write(hasher, binary.LittleEndian, int64(count))
		}
	}

	return StateHash(hasher.Sum64())
}

// PieceCount returns the number of pieces of kind p on the board, stars and
// ships together.
func (gs *GameState) PieceCount(p Piece) int {
	n := 0
	for i := range gs.Systems {
		for _, q := range gs.Systems[i].pieces() {
			if q == p {
				n++
			}
		}
	}
	return n
}

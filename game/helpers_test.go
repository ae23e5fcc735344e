package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pieces(s string) []Piece {
	var out []Piece
	for _, f := range strings.Fields(s) {
		tok, err := parsePiece(f)
		if err != nil {
			panic(err)
		}
		out = append(out, Piece{Colour: tok.colour, Size: tok.size})
	}
	return out
}

func ships(s string) []Ship {
	var out []Ship
	for _, f := range strings.Fields(s) {
		tok, err := parsePiece(f)
		if err != nil || tok.seat == NoSeat {
			panic("bad ship fixture " + f)
		}
		out = append(out, Ship{Colour: tok.colour, Size: tok.size, Owner: tok.seat})
	}
	return out
}

func sys(name string, owner Seat, stars, fleet string) System {
	return System{Name: name, Owner: owner, Stars: pieces(stars), Ships: ships(fleet)}
}

// setup builds a position directly, taking its pieces from a full stash.
func setup(t *testing.T, players int, current Seat, systems ...System) *GameState {
	t.Helper()
	gs := NewGameState(players)
	gs.Current = current
	for _, s := range systems {
		for _, p := range s.pieces() {
			require.NoError(t, gs.Stash.Remove(p), "fixture uses too many %s", p)
		}
		gs.Systems = append(gs.Systems, s)
	}
	return gs
}

// standard is a two-seat midgame with North to move.
//
//	north (N): stars G1 B2, ships G3N Y3N R1N G1N
//	alpha:     star Y3, ships G2N B1S
//	south (S): stars R3 B1, ships G3S
func standard(t *testing.T) *GameState {
	return setup(t, 2, North,
		sys("north", North, "g1 b2", "g3n y3n r1n g1n"),
		sys("alpha", NoSeat, "y3", "g2n b1s"),
		sys("south", South, "r3 b1", "g3s"),
	)
}

func requireCode(t *testing.T, code Code, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, CodeOf(err), "got %v", err)
}

func requireConserved(t *testing.T, gs *GameState) {
	t.Helper()
	require.NoError(t, gs.checkConservation())
}

func shipIDs(s *System) []string {
	ids := make([]string, len(s.Ships))
	for i, ship := range s.Ships {
		ids[i] = ship.ID()
	}
	return ids
}

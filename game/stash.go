package game

import "fmt"

// Stash is the pool of unclaimed pieces. It is a value type: assigning it
// copies every counter.
type Stash struct {
	Max    int                            `json:"max"`
	Counts [len(Colours)][len(Sizes)]int `json:"counts"`
}

// NewStash returns a full stash for the number of players.
func NewStash(players int) Stash {
	s := Stash{Max: players + 1}
	for c := range s.Counts {
		for z := range s.Counts[c] {
			s.Counts[c][z] = s.Max
		}
	}
	return s
}

func (s *Stash) Count(p Piece) int {
	return s.Counts[p.Colour][p.Size-1]
}

func (s *Stash) Has(p Piece) bool {
	return s.Count(p) > 0
}

// Add returns a piece to the stash. Exceeding the maximum means a piece was
// duplicated somewhere, which legal play cannot do.
func (s *Stash) Add(p Piece) {
	if s.Counts[p.Colour][p.Size-1] >= s.Max {
		panic(fmt.Sprintf("stash overflow for %s", p))
	}
	s.Counts[p.Colour][p.Size-1]++
}

func (s *Stash) Remove(p Piece) error {
	if s.Counts[p.Colour][p.Size-1] == 0 {
		return newError(CodeStashEmpty, "piece", p.String())
	}
	s.Counts[p.Colour][p.Size-1]--
	return nil
}

// TakeSmallest removes and returns the smallest available piece of a colour.
func (s *Stash) TakeSmallest(c Colour) (Piece, bool) {
	for _, z := range Sizes {
		p := Piece{Colour: c, Size: z}
		if s.Has(p) {
			s.Counts[c][z-1]--
			return p, true
		}
	}
	return Piece{}, false
}

// Pieces lists every available piece kind, smallest first within each colour.
func (s *Stash) Pieces() []Piece {
	var pieces []Piece
	for _, c := range Colours {
		for _, z := range Sizes {
			p := Piece{Colour: c, Size: z}
			if s.Has(p) {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

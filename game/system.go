package game

import (
	"regexp"

	"golang.org/x/exp/slices"
)

const (
	MaxHomeShips   = 16
	MaxSystemShips = 24
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,23}$`)

// validName reports whether name may label a system. Names that read as piece
// tokens are refused so command arguments stay unambiguous.
func validName(name string) bool {
	if !namePattern.MatchString(name) {
		return false
	}
	if _, err := parseToken(name); err == nil {
		return false
	}
	_, isColour := colourWords[name]
	return !isColour
}

// System is a star system: up to two stars and the ships orbiting them.
// Owner is set for home systems only.
type System struct {
	Name  string  `json:"name"`
	Owner Seat    `json:"owner,omitempty"`
	Stars []Piece `json:"stars"`
	Ships []Ship  `json:"ships"`
}

func (s System) clone() System {
	s.Stars = slices.Clone(s.Stars)
	s.Ships = slices.Clone(s.Ships)
	return s
}

func (s *System) IsHome() bool {
	return s.Owner != NoSeat
}

func (s *System) Capacity() int {
	if s.IsHome() {
		return MaxHomeShips
	}
	return MaxSystemShips
}

func (s *System) Dock(ship Ship) error {
	if len(s.Ships) >= s.Capacity() {
		return newError(CodeSystemFull, "system", s.Name)
	}
	s.Ships = append(s.Ships, ship)
	return nil
}

// Undock removes the first ship with the given identity.
func (s *System) Undock(id string) (Ship, error) {
	i := s.shipIndex(id)
	if i < 0 {
		return Ship{}, newError(CodeSystemNoShip, "ship", id, "system", s.Name)
	}
	ship := s.Ships[i]
	s.Ships = slices.Delete(s.Ships, i, i+1)
	return ship, nil
}

func (s *System) shipIndex(id string) int {
	return slices.IndexFunc(s.Ships, func(sh Ship) bool { return sh.ID() == id })
}

func (s *System) HasShip(id string) bool {
	return s.shipIndex(id) >= 0
}

// HasTech reports whether seat may use colour's technology here: a star of
// that colour, or one of seat's own ships of that colour.
func (s *System) HasTech(c Colour, seat Seat) bool {
	for _, star := range s.Stars {
		if star.Colour == c {
			return true
		}
	}
	return s.OwnsShipColour(c, seat)
}

func (s *System) OwnsShipColour(c Colour, seat Seat) bool {
	for _, ship := range s.Ships {
		if ship.Owner == seat && ship.Colour == c {
			return true
		}
	}
	return false
}

// LargestShip returns the size of seat's largest ship here, 0 if none.
func (s *System) LargestShip(seat Seat) Size {
	var largest Size
	for _, ship := range s.Ships {
		if ship.Owner == seat && ship.Size > largest {
			largest = ship.Size
		}
	}
	return largest
}

// ShipCount counts the ships owned by seat.
func (s *System) ShipCount(seat Seat) int {
	n := 0
	for _, ship := range s.Ships {
		if ship.Owner == seat {
			n++
		}
	}
	return n
}

// IsConnected reports whether the two systems share no star size.
func (s *System) IsConnected(other *System) bool {
	for _, a := range s.Stars {
		for _, b := range other.Stars {
			if a.Size == b.Size {
				return false
			}
		}
	}
	return true
}

func (s *System) connectsTo(star Piece) bool {
	for _, a := range s.Stars {
		if a.Size == star.Size {
			return false
		}
	}
	return true
}

func (s *System) colourCount(c Colour) int {
	n := 0
	for _, star := range s.Stars {
		if star.Colour == c {
			n++
		}
	}
	for _, ship := range s.Ships {
		if ship.Colour == c {
			n++
		}
	}
	return n
}

// CanCatastrophe reports whether colour is overpopulated: four or more pieces.
func (s *System) CanCatastrophe(c Colour) bool {
	return s.colourCount(c) >= 4
}

// Catastrophe removes every star and ship of the colour and returns them.
func (s *System) Catastrophe(c Colour) []Piece {
	var removed []Piece
	stars := s.Stars[:0]
	for _, star := range s.Stars {
		if star.Colour == c {
			removed = append(removed, star)
		} else {
			stars = append(stars, star)
		}
	}
	s.Stars = stars
	ships := s.Ships[:0]
	for _, ship := range s.Ships {
		if ship.Colour == c {
			removed = append(removed, ship.Piece())
		} else {
			ships = append(ships, ship)
		}
	}
	s.Ships = ships
	return removed
}

// pieces lists every star and ship as pieces.
func (s *System) pieces() []Piece {
	pieces := slices.Clone(s.Stars)
	for _, ship := range s.Ships {
		pieces = append(pieces, ship.Piece())
	}
	return pieces
}

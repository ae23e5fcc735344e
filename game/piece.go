package game

import (
	"fmt"
	"regexp"
	"strings"
)

// Colour of a piece. Each colour grants one technology.
type Colour int

const (
	Red    Colour = iota // attack
	Blue                 // trade
	Green                // build
	Yellow               // move and discover
)

// Colours in pass precedence order.
var Colours = [...]Colour{Red, Blue, Green, Yellow}

var colourLetters = [...]string{"R", "B", "G", "Y"}

var colourWords = map[string]Colour{
	"r": Red, "red": Red,
	"b": Blue, "blue": Blue,
	"g": Green, "green": Green,
	"y": Yellow, "yellow": Yellow,
}

func (c Colour) String() string {
	if c < Red || c > Yellow {
		return "?"
	}
	return colourLetters[c]
}

func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Colour) UnmarshalText(b []byte) error {
	v, ok := colourWords[strings.ToLower(string(b))]
	if !ok {
		return fmt.Errorf("unknown colour %q", b)
	}
	*c = v
	return nil
}

// Verb returns the command unlocked by the colour's technology.
func (c Colour) Verb() Verb {
	switch c {
	case Red:
		return VerbAttack
	case Blue:
		return VerbTrade
	case Green:
		return VerbBuild
	default:
		return VerbMove
	}
}

type Size int

const (
	Small  Size = 1
	Medium Size = 2
	Large  Size = 3
)

var Sizes = [...]Size{Small, Medium, Large}

// Piece is a (colour, size) pair. Stars are plain pieces.
type Piece struct {
	Colour Colour `json:"colour"`
	Size   Size   `json:"size"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s%d", p.Colour, p.Size)
}

// Seat is a fixed compass position around the table.
type Seat string

const (
	NoSeat Seat = ""
	North  Seat = "N"
	East   Seat = "E"
	South  Seat = "S"
	West   Seat = "W"
)

func (s Seat) String() string {
	return string(s)
}

// Name is the default home system name of the seat.
func (s Seat) Name() string {
	switch s {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return ""
}

// SeatsFor returns the seats in clockwise turn order for a player count.
func SeatsFor(players int) []Seat {
	switch players {
	case 2:
		return []Seat{North, South}
	case 3:
		return []Seat{North, East, South}
	case 4:
		return []Seat{North, East, South, West}
	}
	panic(fmt.Sprintf("unsupported number of players: %d", players))
}

func parseSeat(s string) (Seat, bool) {
	switch strings.ToUpper(s) {
	case "N":
		return North, true
	case "E":
		return East, true
	case "S":
		return South, true
	case "W":
		return West, true
	}
	return NoSeat, false
}

// Ship is a piece owned by a seat.
type Ship struct {
	Colour Colour `json:"colour"`
	Size   Size   `json:"size"`
	Owner  Seat   `json:"owner"`
}

// ID identifies the ship: colour, size and owner, e.g. "G3N".
func (s Ship) ID() string {
	return fmt.Sprintf("%s%d%s", s.Colour, s.Size, s.Owner)
}

func (s Ship) Piece() Piece {
	return Piece{Colour: s.Colour, Size: s.Size}
}

// token is a parsed piece token: colour letter, optional size, optional seat.
type token struct {
	colour Colour
	size   Size // 0 when omitted
	seat   Seat // NoSeat when omitted
}

var tokenPattern = regexp.MustCompile(`^([rgby])([1-3])?([nesw])?$`)

func parseToken(s string) (token, error) {
	m := tokenPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return token{}, newError(CodeBadToken, "token", s)
	}
	t := token{colour: colourWords[m[1]]}
	if m[2] != "" {
		t.size = Size(m[2][0] - '0')
	}
	if m[3] != "" {
		t.seat, _ = parseSeat(m[3])
	}
	return t, nil
}

// parsePiece parses a token that must carry a size.
func parsePiece(s string) (token, error) {
	t, err := parseToken(s)
	if err != nil {
		return t, err
	}
	if t.size == 0 {
		return t, newError(CodeBadToken, "token", s)
	}
	return t, nil
}

func parseColour(s string) (Colour, error) {
	if c, ok := colourWords[strings.ToLower(s)]; ok {
		return c, nil
	}
	t, err := parseToken(s)
	if err != nil {
		return 0, err
	}
	return t.colour, nil
}

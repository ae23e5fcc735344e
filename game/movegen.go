package game

import (
	"fmt"
	"strings"
)

// LegalMoves returns every legal move for the seat to move. Candidates are
// built per category without regard to technology and kept only when the
// whole move validates on a copy of the state. Moves that reach the same
// position by reordering the actions of a sacrifice are listed once.
func (gs *GameState) LegalMoves() []Move {
	if gs.Over {
		return nil
	}
	g := &generator{gs: gs, seat: gs.Current, seen: make(map[string]bool)}
	if gs.Home(gs.Current) == nil {
		g.homeworlds()
		return g.moves()
	}

	for _, verb := range []Verb{VerbMove, VerbTrade, VerbBuild, VerbAttack} {
		for _, cmd := range candidates(gs, verb) {
			g.try(cmd)
		}
	}
	g.sacrifices()
	g.catastrophes()
	return g.moves()
}

type generator struct {
	gs    *GameState
	seat  Seat
	seen  map[string]bool
	legal []string
}

func (g *generator) try(move string) bool {
	if g.seen[move] {
		return false
	}
	g.seen[move] = true
	if g.gs.Validate(move) != nil {
		return false
	}
	g.legal = append(g.legal, move)
	return true
}

func (g *generator) moves() []Move {
	moves := make([]Move, len(g.legal))
	for i, m := range g.legal {
		moves[i] = Move(m)
	}
	return moves
}

func (g *generator) homeworlds() {
	for _, big := range Sizes {
		for _, small := range Sizes {
			if small >= big {
				continue
			}
			for _, c1 := range Colours {
				for _, c2 := range Colours {
					for _, c3 := range Colours {
						g.try(fmt.Sprintf("homeworld %s %s %s",
							tokenOf(Piece{c1, big}), tokenOf(Piece{c2, small}), tokenOf(Piece{c3, Large})))
					}
				}
			}
		}
	}
}

// chain is a partial sacrifice move and the actions it has left.
type chain struct {
	cmds      []string
	colour    Colour
	remaining int
}

// sacrifices explores every sacrifice followed by up to size actions of the
// sacrificed colour. Depth is bounded by the ship size, so an explicit stack
// is used rather than recursion.
func (g *generator) sacrifices() {
	var stack []chain
	for _, sys := range g.gs.Systems {
		for _, ship := range ownShips(&sys, g.seat) {
			stack = append(stack, chain{
				cmds:      []string{fmt.Sprintf("sacrifice %s %s", tokenOf(ship.Piece()), sys.Name)},
				colour:    ship.Colour,
				remaining: int(ship.Size),
			})
		}
	}

	visited := make(map[string]bool)
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t, err := g.gs.simulate(joinCommands(c.cmds))
		if err != nil {
			continue
		}
		key := fmt.Sprintf("%d/%d", t.gs.Hash(), c.remaining)
		if visited[key] {
			continue
		}
		visited[key] = true

		if c.remaining == 0 {
			g.try(joinCommands(c.cmds))
			continue
		}
		g.try(joinCommands(append(c.cmds[:len(c.cmds):len(c.cmds)], passCommand(c.remaining))))
		for _, cmd := range candidates(t.gs, c.colour.Verb()) {
			next := make([]string, len(c.cmds), len(c.cmds)+1)
			copy(next, c.cmds)
			stack = append(stack, chain{cmds: append(next, cmd), colour: c.colour, remaining: c.remaining - 1})
		}
	}
}

func passCommand(n int) string {
	if n == 1 {
		return "pass"
	}
	return fmt.Sprintf("pass %d", n)
}

// catastrophes extends every legal move with each non-empty combination of
// the catastrophes available after it.
func (g *generator) catastrophes() {
	base := append([]string(nil), g.legal...)
	for _, move := range base {
		t, err := g.gs.simulate(move)
		if err != nil {
			continue
		}
		var options []string
		for _, sys := range t.gs.Systems {
			for _, c := range Colours {
				if sys.CanCatastrophe(c) {
					options = append(options, fmt.Sprintf("catastrophe %s %s", sys.Name, strings.ToLower(c.String())))
				}
			}
		}
		for mask := 1; mask < 1<<len(options); mask++ {
			cmds := []string{move}
			for i, opt := range options {
				if mask&(1<<i) != 0 {
					cmds = append(cmds, opt)
				}
			}
			g.try(joinCommands(cmds))
		}
	}
}

// candidates lists the single commands of a kind the seat to move could try
// in gs. Technology is not checked here.
func candidates(gs *GameState, verb Verb) []string {
	seat := gs.Current
	var cmds []string
	switch verb {
	case VerbMove:
		name := gs.freeName()
		stash := gs.Stash.Pieces()
		for i := range gs.Systems {
			from := &gs.Systems[i]
			for _, ship := range ownShips(from, seat) {
				tok := tokenOf(ship.Piece())
				for j := range gs.Systems {
					to := &gs.Systems[j]
					if i != j && from.IsConnected(to) {
						cmds = append(cmds, fmt.Sprintf("move %s %s %s", tok, from.Name, to.Name))
					}
				}
				for _, star := range stash {
					if from.connectsTo(star) {
						cmds = append(cmds, fmt.Sprintf("discover %s %s %s %s", tok, from.Name, tokenOf(star), name))
					}
				}
			}
		}
	case VerbTrade:
		for i := range gs.Systems {
			sys := &gs.Systems[i]
			for _, ship := range ownShips(sys, seat) {
				for _, c := range Colours {
					if c != ship.Colour && gs.Stash.Has(Piece{c, ship.Size}) {
						cmds = append(cmds, fmt.Sprintf("trade %s %s %s",
							tokenOf(ship.Piece()), strings.ToLower(c.String()), sys.Name))
					}
				}
			}
		}
	case VerbBuild:
		for i := range gs.Systems {
			sys := &gs.Systems[i]
			for _, c := range Colours {
				if sys.OwnsShipColour(c, seat) {
					cmds = append(cmds, fmt.Sprintf("build %s %s", strings.ToLower(c.String()), sys.Name))
				}
			}
		}
	case VerbAttack:
		for i := range gs.Systems {
			sys := &gs.Systems[i]
			largest := sys.LargestShip(seat)
			if largest == 0 {
				continue
			}
			seen := make(map[string]bool)
			for _, ship := range sys.Ships {
				id := ship.ID()
				if ship.Owner == seat || ship.Size > largest || seen[id] {
					continue
				}
				seen[id] = true
				cmds = append(cmds, fmt.Sprintf("attack %s %s", strings.ToLower(id), sys.Name))
			}
		}
	}
	return cmds
}

// ownShips returns one ship of each kind seat owns in sys.
func ownShips(sys *System, seat Seat) []Ship {
	var ships []Ship
	seen := make(map[string]bool)
	for _, ship := range sys.Ships {
		if ship.Owner != seat || seen[ship.ID()] {
			continue
		}
		seen[ship.ID()] = true
		ships = append(ships, ship)
	}
	return ships
}

func tokenOf(p Piece) string {
	return strings.ToLower(p.String())
}

// freeName returns an unused name for a discovered system.
func (gs *GameState) freeName() string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("sys%d", i)
		if gs.System(name) == nil {
			return name
		}
	}
}

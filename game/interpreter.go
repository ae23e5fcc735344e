package game

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// turn executes sub-commands for one seat against a working copy of the
// state. The action budget lives here and nowhere else.
type turn struct {
	gs      *GameState
	seat    Seat
	actions Actions
	results []Result
}

func newTurn(gs *GameState) *turn {
	return &turn{gs: gs, seat: gs.Current, actions: newActions()}
}

func (t *turn) execute(cmds []command) error {
	for _, cmd := range cmds {
		if err := t.do(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (t *turn) do(cmd command) error {
	if cmd.verb != VerbHomeworld && t.gs.Home(t.seat) == nil {
		return newError(CodeNoHomeworld, "command", string(cmd.verb))
	}
	switch cmd.verb {
	case VerbHomeworld:
		return t.homeworld(cmd.args)
	case VerbDiscover:
		return t.discover(cmd.args)
	case VerbMove:
		return t.move(cmd.args)
	case VerbBuild:
		return t.build(cmd.args)
	case VerbTrade:
		return t.trade(cmd.args)
	case VerbAttack:
		return t.attack(cmd.args)
	case VerbSacrifice:
		return t.sacrifice(cmd.args)
	case VerbCatastrophe:
		return t.catastrophe(cmd.args)
	case VerbPass:
		return t.pass(cmd.args)
	}
	return newError(CodeUnrecognizedCommand, "command", string(cmd.verb))
}

func arity(verb Verb, args []string, min, max int) error {
	if len(args) < min || len(args) > max {
		return newError(CodeBadArity, "command", string(verb), "args", strconv.Itoa(len(args)))
	}
	return nil
}

func (t *turn) system(name string) (*System, error) {
	sys := t.gs.System(name)
	if sys == nil {
		return nil, newError(CodeSystemUnknown, "system", name)
	}
	return sys, nil
}

// ownShip parses a token naming one of the mover's ships.
func (t *turn) ownShip(s string) (Ship, error) {
	tok, err := parsePiece(s)
	if err != nil {
		return Ship{}, err
	}
	if tok.seat != NoSeat && tok.seat != t.seat {
		return Ship{}, newError(CodeBadToken, "token", s)
	}
	return Ship{Colour: tok.colour, Size: tok.size, Owner: t.seat}, nil
}

func (t *turn) record(r Result) {
	r.Seat = t.seat
	t.results = append(t.results, r)
}

func (t *turn) homeworld(args []string) error {
	if t.gs.Home(t.seat) != nil {
		return newError(CodeHomeworldExists, "seat", string(t.seat))
	}
	if err := arity(VerbHomeworld, args, 3, 4); err != nil {
		return err
	}
	override := false
	if len(args) == 4 {
		if args[3] != "*" {
			return newError(CodeBadToken, "token", args[3])
		}
		override = true
	}

	var stars []Piece
	for _, arg := range args[:2] {
		if arg == "-" {
			continue
		}
		tok, err := parsePiece(arg)
		if err != nil {
			return err
		}
		if tok.seat != NoSeat {
			return newError(CodeBadToken, "token", arg)
		}
		stars = append(stars, Piece{Colour: tok.colour, Size: tok.size})
	}
	if len(stars) == 0 {
		return newError(CodeHomeworldSizes)
	}
	ship, err := t.ownShip(args[2])
	if err != nil {
		return err
	}

	if !override {
		if err := t.checkHomeworld(stars, ship); err != nil {
			return err
		}
	}

	if err := t.actions.spendFree(); err != nil {
		return err
	}
	for _, star := range stars {
		if err := t.gs.Stash.Remove(star); err != nil {
			return err
		}
	}
	if err := t.gs.Stash.Remove(ship.Piece()); err != nil {
		return err
	}
	name := t.seat.Name()
	if t.gs.System(name) != nil {
		return newError(CodeSystemBadName, "system", name)
	}
	t.gs.Systems = append(t.gs.Systems, System{
		Name:  name,
		Owner: t.seat,
		Stars: stars,
		Ships: []Ship{ship},
	})
	t.record(Result{Type: ResultHomeworld, System: name, Stars: slices.Clone(stars), Ship: ship.ID()})
	return nil
}

func (t *turn) checkHomeworld(stars []Piece, ship Ship) error {
	if len(stars) == 2 && stars[0].Size == stars[1].Size {
		return newError(CodeHomeworldSizes)
	}
	if ship.Size != Large {
		return newError(CodeHomeworldShip, "ship", ship.Piece().String())
	}
	var colours [len(Colours)]bool
	distinct := 0
	for _, p := range append(slices.Clone(stars), ship.Piece()) {
		if !colours[p.Colour] {
			colours[p.Colour] = true
			distinct++
		}
	}
	if distinct < 3 {
		return newError(CodeHomeworldColours)
	}
	if !colours[Blue] || !colours[Green] {
		return newError(CodeHomeworldBlueGreen)
	}
	if rho := t.gs.rho(t.seat); rho != NoSeat {
		if sameSizes(stars, t.gs.Home(rho).Stars) {
			return newError(CodeHomeworldNemesis, "seat", string(rho))
		}
	}
	return nil
}

func sameSizes(a, b []Piece) bool {
	if len(a) != len(b) {
		return false
	}
	sizes := func(ps []Piece) []Size {
		out := make([]Size, len(ps))
		for i, p := range ps {
			out[i] = p.Size
		}
		slices.Sort(out)
		return out
	}
	return slices.Equal(sizes(a), sizes(b))
}

func (t *turn) discover(args []string) error {
	if err := arity(VerbDiscover, args, 4, 4); err != nil {
		return err
	}
	ship, err := t.ownShip(args[0])
	if err != nil {
		return err
	}
	from, err := t.system(args[1])
	if err != nil {
		return err
	}
	tok, err := parsePiece(args[2])
	if err != nil {
		return err
	}
	if tok.seat != NoSeat {
		return newError(CodeBadToken, "token", args[2])
	}
	star := Piece{Colour: tok.colour, Size: tok.size}
	name := args[3]

	if err := t.actions.spend(Yellow, from, t.seat); err != nil {
		return err
	}
	if !validName(name) || t.gs.System(name) != nil {
		return newError(CodeSystemBadName, "system", name)
	}
	if !from.HasShip(ship.ID()) {
		return newError(CodeSystemNoShip, "ship", ship.ID(), "system", from.Name)
	}
	if !t.gs.Stash.Has(star) {
		return newError(CodeStashEmpty, "piece", star.String())
	}
	if !from.connectsTo(star) {
		return newError(CodeNoConnection, "from", from.Name, "to", name)
	}

	if _, err := from.Undock(ship.ID()); err != nil {
		return err
	}
	if err := t.gs.Stash.Remove(star); err != nil {
		return err
	}
	fromName := from.Name
	// from may be invalidated by the append below.
	t.gs.Systems = append(t.gs.Systems, System{
		Name:  name,
		Stars: []Piece{star},
		Ships: []Ship{ship},
	})
	t.record(Result{Type: ResultDiscover, Ship: ship.ID(), System: fromName, To: name, Stars: []Piece{star}})
	t.cleanup(fromName)
	return nil
}

func (t *turn) move(args []string) error {
	if err := arity(VerbMove, args, 3, 3); err != nil {
		return err
	}
	ship, err := t.ownShip(args[0])
	if err != nil {
		return err
	}
	from, err := t.system(args[1])
	if err != nil {
		return err
	}
	to, err := t.system(args[2])
	if err != nil {
		return err
	}
	if err := t.actions.spend(Yellow, from, t.seat); err != nil {
		return err
	}
	if from.Name == to.Name || !from.IsConnected(to) {
		return newError(CodeNoConnection, "from", from.Name, "to", to.Name)
	}
	if _, err := from.Undock(ship.ID()); err != nil {
		return err
	}
	if err := to.Dock(ship); err != nil {
		return err
	}
	t.record(Result{Type: ResultMove, Ship: ship.ID(), System: from.Name, To: to.Name})
	t.cleanup(from.Name)
	return nil
}

func (t *turn) build(args []string) error {
	if err := arity(VerbBuild, args, 2, 2); err != nil {
		return err
	}
	tok, err := parseToken(args[0])
	if err != nil {
		return err
	}
	if tok.seat != NoSeat && tok.seat != t.seat {
		return newError(CodeBadToken, "token", args[0])
	}
	sys, err := t.system(args[1])
	if err != nil {
		return err
	}
	if err := t.actions.spend(Green, sys, t.seat); err != nil {
		return err
	}
	if !sys.OwnsShipColour(tok.colour, t.seat) {
		return newError(CodeNoTemplate, "colour", tok.colour.String(), "system", sys.Name)
	}
	if len(sys.Ships) >= sys.Capacity() {
		return newError(CodeSystemFull, "system", sys.Name)
	}
	// The size hint, if any, is ignored: building always takes the smallest piece.
	piece, ok := t.gs.Stash.TakeSmallest(tok.colour)
	if !ok {
		return newError(CodeStashEmpty, "colour", tok.colour.String())
	}
	ship := Ship{Colour: piece.Colour, Size: piece.Size, Owner: t.seat}
	if err := sys.Dock(ship); err != nil {
		return err
	}
	t.record(Result{Type: ResultBuild, Ship: ship.ID(), System: sys.Name})
	return nil
}

func (t *turn) trade(args []string) error {
	if err := arity(VerbTrade, args, 3, 3); err != nil {
		return err
	}
	ship, err := t.ownShip(args[0])
	if err != nil {
		return err
	}
	colour, err := parseColour(args[1])
	if err != nil {
		return err
	}
	sys, err := t.system(args[2])
	if err != nil {
		return err
	}
	if err := t.actions.spend(Blue, sys, t.seat); err != nil {
		return err
	}
	if colour == ship.Colour {
		return newError(CodeTradeSameColour, "ship", ship.ID())
	}
	i := sys.shipIndex(ship.ID())
	if i < 0 {
		return newError(CodeSystemNoShip, "ship", ship.ID(), "system", sys.Name)
	}
	traded := Piece{Colour: colour, Size: ship.Size}
	if err := t.gs.Stash.Remove(traded); err != nil {
		return err
	}
	t.gs.Stash.Add(ship.Piece())
	sys.Ships[i].Colour = colour
	t.record(Result{Type: ResultConvert, Ship: ship.ID(), NewID: sys.Ships[i].ID(), System: sys.Name})
	return nil
}

func (t *turn) attack(args []string) error {
	if err := arity(VerbAttack, args, 2, 2); err != nil {
		return err
	}
	tok, err := parsePiece(args[0])
	if err != nil {
		return err
	}
	sys, err := t.system(args[1])
	if err != nil {
		return err
	}
	owner := tok.seat
	if owner == NoSeat {
		if len(t.gs.Seats) > 2 {
			return newError(CodeAttackAmbiguous, "ship", args[0])
		}
		owner = t.gs.opponent(t.seat)
	}
	if owner == t.seat {
		return newError(CodeAttackSelf, "ship", args[0])
	}
	if err := t.actions.spend(Red, sys, t.seat); err != nil {
		return err
	}
	target := Ship{Colour: tok.colour, Size: tok.size, Owner: owner}
	i := sys.shipIndex(target.ID())
	if i < 0 {
		return newError(CodeSystemNoShip, "ship", target.ID(), "system", sys.Name)
	}
	if sys.LargestShip(t.seat) < target.Size {
		return newError(CodeAttackTooSmall, "ship", target.ID(), "system", sys.Name)
	}
	sys.Ships[i].Owner = t.seat
	t.record(Result{Type: ResultCapture, Ship: target.ID(), NewID: sys.Ships[i].ID(), System: sys.Name})
	return nil
}

func (t *turn) sacrifice(args []string) error {
	if err := arity(VerbSacrifice, args, 2, 2); err != nil {
		return err
	}
	ship, err := t.ownShip(args[0])
	if err != nil {
		return err
	}
	sys, err := t.system(args[1])
	if err != nil {
		return err
	}
	if err := t.actions.spendFree(); err != nil {
		return err
	}
	if _, err := sys.Undock(ship.ID()); err != nil {
		return err
	}
	t.gs.Stash.Add(ship.Piece())
	t.actions.Bonus[ship.Colour] += int(ship.Size)
	t.record(Result{Type: ResultSacrifice, Ship: ship.ID(), System: sys.Name, Count: int(ship.Size)})
	t.cleanup(sys.Name)
	return nil
}

func (t *turn) catastrophe(args []string) error {
	if err := arity(VerbCatastrophe, args, 2, 2); err != nil {
		return err
	}
	sys, err := t.system(args[0])
	if err != nil {
		return err
	}
	colour, err := parseColour(args[1])
	if err != nil {
		return err
	}
	if !t.actions.Spent() {
		return newError(CodeCatastrophePending, "system", sys.Name)
	}
	if !sys.CanCatastrophe(colour) {
		return newError(CodeCatastropheNotTriggerable, "system", sys.Name, "colour", colour.String())
	}
	removed := sys.Catastrophe(colour)
	for _, p := range removed {
		t.gs.Stash.Add(p)
	}
	t.record(Result{Type: ResultCatastrophe, System: sys.Name, Colour: colour.String(), Pieces: removed})
	t.cleanup(sys.Name)
	return nil
}

func (t *turn) pass(args []string) error {
	if err := arity(VerbPass, args, 0, 1); err != nil {
		return err
	}
	n := 1
	if len(args) == 1 {
		if args[0] == "*" {
			n = t.actions.Pending()
		} else {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return newError(CodeBadToken, "token", args[0])
			}
			n = v
		}
	}
	if err := t.actions.pass(n); err != nil {
		return err
	}
	t.record(Result{Type: ResultPass, Count: n})
	return nil
}

// cleanup destroys the named system once it has no ships or no stars,
// returning its pieces to the stash. The mover's own home system is kept
// for the rest of the turn.
func (t *turn) cleanup(name string) {
	i := t.gs.systemIndex(name)
	if i < 0 {
		return
	}
	sys := &t.gs.Systems[i]
	if sys.Owner == t.seat {
		return
	}
	if len(sys.Ships) > 0 && len(sys.Stars) > 0 {
		return
	}
	for _, p := range sys.pieces() {
		t.gs.Stash.Add(p)
	}
	t.gs.Systems = slices.Delete(t.gs.Systems, i, i+1)
}

package game

// Actions is the budget of a single turn: one free action plus bonus actions
// per colour earned by sacrifice.
type Actions struct {
	Free  int
	Bonus [len(Colours)]int
}

func newActions() Actions {
	return Actions{Free: 1}
}

// Pending counts the unused bonus actions.
func (a *Actions) Pending() int {
	n := 0
	for _, b := range a.Bonus {
		n += b
	}
	return n
}

// Spent reports whether nothing remains, free action included.
func (a *Actions) Spent() bool {
	return a.Free == 0 && a.Pending() == 0
}

// spend uses an action of colour c in sys. A bonus action of the colour is
// used first. Otherwise the free action is used, which needs the technology
// to be present in the system.
func (a *Actions) spend(c Colour, sys *System, seat Seat) error {
	if a.Bonus[c] > 0 {
		a.Bonus[c]--
		return nil
	}
	if a.Free == 0 {
		return newError(CodeNoActions, "colour", c.String())
	}
	if !sys.HasTech(c, seat) {
		return newError(CodeNoTech, "colour", c.String(), "system", sys.Name)
	}
	a.Free--
	return nil
}

func (a *Actions) spendFree() error {
	if a.Free == 0 {
		return newError(CodeNoActions)
	}
	a.Free--
	return nil
}

// pass discards n bonus actions in colour precedence order.
func (a *Actions) pass(n int) error {
	if a.Free > 0 {
		return newError(CodePassFree)
	}
	if n > a.Pending() || n < 1 {
		return newError(CodePassTooMany)
	}
	for _, c := range Colours {
		for a.Bonus[c] > 0 && n > 0 {
			a.Bonus[c]--
			n--
		}
	}
	return nil
}

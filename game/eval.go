package game

// EvaluateMaterial tallies the pips of every seat's ships to produce a score
// between -1 and 1 from the current player's perspective, against the
// strongest opponent still in the game.
func EvaluateMaterial(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	pips := gs.pips()
	current := gs.Current
	return normalize(pips[current], strongest(gs, current, pips))
}

// EvaluateHomeDefence considers the safety of each home system and the spread
// of technologies owned, in addition to material, to produce a score between
// -1 and 1 from the current player's perspective.
func EvaluateHomeDefence(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Current
	pips := gs.pips()
	defence := gs.defenceScores()
	techs := gs.techScores()

	materialScore := normalize(pips[current], strongest(gs, current, pips))
	defenceScore := normalize(defence[current], strongest(gs, current, defence))
	techScore := normalize(techs[current], strongest(gs, current, techs))

	return (materialScore + defenceScore + techScore) / 3
}

// pips sums ship sizes by owner.
func (gs *GameState) pips() map[Seat]float64 {
	pips := make(map[Seat]float64)
	for _, sys := range gs.Systems {
		for _, ship := range sys.Ships {
			pips[ship.Owner] += float64(ship.Size)
		}
	}
	return pips
}

// defenceScores rates each home system by the owner's pips there less the
// largest hostile presence, plus the number of stars still standing.
func (gs *GameState) defenceScores() map[Seat]float64 {
	scores := make(map[Seat]float64)
	for _, seat := range gs.Live() {
		home := gs.Home(seat)
		if home == nil {
			continue
		}
		hostile := make(map[Seat]float64)
		own := 0.0
		for _, ship := range home.Ships {
			if ship.Owner == seat {
				own += float64(ship.Size)
			} else {
				hostile[ship.Owner] += float64(ship.Size)
			}
		}
		threat := 0.0
		for _, v := range hostile {
			threat = max(threat, v)
		}
		// Scores stay non-negative so normalize keeps its range.
		scores[seat] = max(0, own-threat) + float64(len(home.Stars))
	}
	return scores
}

// techScores counts the distinct colours each seat can use somewhere.
func (gs *GameState) techScores() map[Seat]float64 {
	owned := make(map[Seat]*[len(Colours)]bool)
	for _, sys := range gs.Systems {
		for _, ship := range sys.Ships {
			if owned[ship.Owner] == nil {
				owned[ship.Owner] = &[len(Colours)]bool{}
			}
			owned[ship.Owner][ship.Colour] = true
		}
	}
	scores := make(map[Seat]float64)
	for seat, colours := range owned {
		for _, ok := range colours {
			if ok {
				scores[seat]++
			}
		}
	}
	return scores
}

// strongest returns the best score among seat's live opponents.
func strongest(gs *GameState, seat Seat, scores map[Seat]float64) float64 {
	best := 0.0
	for _, other := range gs.Live() {
		if other != seat {
			best = max(best, scores[other])
		}
	}
	return best
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}

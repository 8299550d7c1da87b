package engine

// PlayerView returns the state as seat may see it: other seats' hand cards,
// including their pending exchange selections, become HiddenCard (hand sizes
// stay visible) and the RNG is zeroed. Marbles and both piles are public.
func (g *GameState) PlayerView(seat uint8) GameState {
	v := *g
	for p := uint8(0); p < NumSeats; p++ {
		if p == seat {
			continue
		}
		pl := &v.Players[p]
		for i := uint8(0); i < pl.HandLen; i++ {
			pl.Hand[i] = HiddenCard
		}
		if v.Exchange.Selected[p] != EmptyCard {
			v.Exchange.Selected[p] = HiddenCard
		}
	}
	v.RNG = 0
	return v
}

// Player chooses one of the legal actions for the seat it controls.
// Returning nil folds.
type Player interface {
	SelectAction(view GameState, actions []Action) *Action
}

// PlayTurn asks the active seat's player for a decision and applies it.
func (g *GameState) PlayTurn(players [NumSeats]Player) error {
	if g.Phase != PhaseRunning {
		return nil
	}
	seat := g.ActivePlayer
	actions := g.LegalActions()
	choice := players[seat].SelectAction(g.PlayerView(seat), actions)
	return g.ApplyAction(choice)
}

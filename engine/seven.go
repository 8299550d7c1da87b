package engine

// A split seven is a transaction over the marbles. beginTxn snapshots every
// marble before the first partial step; the sequence commits when all seven
// steps are spent and rolls back on a fold or an illegal follow-up, in which
// case the card is forfeited and the turn passes.

// beginSeven takes the seven from the hand and applies its first step.
func (g *GameState) beginSeven(seat uint8, act Action) error {
	if !g.Players[seat].removeCard(act.Card) {
		return invariantf("seven", "seat %d does not hold %s", seat, act.Card)
	}
	g.PlayedCard = act.Card
	g.ActiveCard = act.Card
	g.StepsRemaining = 7
	return g.sevenStep(seat, act)
}

func (g *GameState) beginTxn() {
	g.Seven.Active = true
	for p := range g.Players {
		g.Seven.Marbles[p] = g.Players[p].Marbles
	}
}

// sevenStep moves one marble part of the way. Every marble on the walked
// cells is sent home; blockers and finish cells make the step illegal.
func (g *GameState) sevenStep(seat uint8, act Action) error {
	if !g.Seven.Active {
		g.beginTxn()
	}

	steps, intoFinish, ok := sevenDistance(seat, act.From, act.To)
	if !ok || steps <= 0 || steps > int(g.StepsRemaining) {
		g.record(seat, &act, OutcomeRolledBack)
		return g.rollbackSeven()
	}

	idx, found := g.ownMarbleAt(seat, act.From)
	if !found {
		return invariantf("seven", "seat %d has no marble on %d", seat, act.From)
	}
	m := &g.Players[seat].Marbles[idx]

	p, ok := forwardPath(seat, *m, steps, intoFinish)
	if !ok || p.end() != act.To || !g.pathClear(seat, idx, &p) {
		g.record(seat, &act, OutcomeRolledBack)
		return g.rollbackSeven()
	}

	for _, c := range p.each() {
		g.sendHome(c, seat, idx)
	}
	m.Pos = act.To
	m.Safe = false
	g.StepsRemaining -= uint8(steps)
	g.record(seat, &act, OutcomeSevenStep)

	if g.checkWin() {
		g.commitSeven()
		return nil
	}
	if g.StepsRemaining > 0 {
		return nil
	}
	g.commitSeven()
	g.LastAction.Outcome = OutcomeApplied
	return g.advanceTurn()
}

// commitSeven closes the sequence and discards the card that paid for it.
func (g *GameState) commitSeven() {
	if g.PlayedCard != EmptyCard {
		g.pushDiscard(g.PlayedCard)
	}
	g.clearPlay()
}

// rollbackSeven restores the marbles from the open transaction, forfeits
// the card in play and passes the turn.
func (g *GameState) rollbackSeven() error {
	if g.Seven.Active {
		for p := range g.Players {
			g.Players[p].Marbles = g.Seven.Marbles[p]
		}
	}
	g.commitSeven()
	return g.advanceTurn()
}

package engine

// ApplyAction applies an action for the active player. A nil action folds.
//
// Illegal actions fail soft: the state is left untouched and
// LastAction.Outcome is OutcomeIgnored, except inside a split seven where any
// illegal step rolls the whole sequence back. The returned error is non-nil
// only for an *EngineError, after which the match must be abandoned.
func (g *GameState) ApplyAction(a *Action) error {
	if g.Phase != PhaseRunning {
		return nil
	}
	seat := g.ActivePlayer
	ctx := g.DecisionCtx()

	if a == nil {
		return g.fold(seat, ctx)
	}
	act := *a

	if !g.IsLegal(act) {
		if ctx == CtxSeven && g.Seven.Active {
			g.record(seat, &act, OutcomeRolledBack)
			return g.rollbackSeven()
		}
		g.record(seat, &act, OutcomeIgnored)
		return nil
	}

	switch {
	case ctx == CtxExchange:
		return g.selectExchange(seat, act.Card)
	case ctx == CtxSeven:
		return g.sevenStep(seat, act)
	case act.CardSwap != EmptyCard:
		return g.substitute(seat, act)
	}

	switch act.Card.Rank().Kind() {
	case KindSwap:
		return g.swap(seat, act)
	case KindSeven:
		return g.beginSeven(seat, act)
	default:
		return g.move(seat, act)
	}
}

func (g *GameState) record(seat uint8, a *Action, o Outcome) {
	g.LastAction = LastActionInfo{Seat: seat, Outcome: o}
	if a != nil {
		g.LastAction.Action = *a
		g.LastAction.HasAction = true
	}
}

// fold handles the nil action: it aborts a seven in progress, and otherwise
// discards the whole hand and passes the turn.
func (g *GameState) fold(seat uint8, ctx DecisionContext) error {
	switch ctx {
	case CtxExchange:
		g.record(seat, nil, OutcomeIgnored)
		return nil
	case CtxSeven:
		g.record(seat, nil, OutcomeRolledBack)
		return g.rollbackSeven()
	}

	pl := &g.Players[seat]
	for i := uint8(0); i < pl.HandLen; i++ {
		g.pushDiscard(pl.Hand[i])
		pl.Hand[i] = EmptyCard
	}
	pl.HandLen = 0
	if g.PlayedCard != EmptyCard {
		g.pushDiscard(g.PlayedCard)
		g.clearPlay()
	}

	g.record(seat, nil, OutcomeFolded)
	return g.advanceTurn()
}

// selectExchange buffers seat's card for its partner. The fourth selection
// performs all transfers at once and hands the turn to the starting player.
func (g *GameState) selectExchange(seat uint8, card Card) error {
	g.Exchange.Selected[seat] = card
	g.Exchange.Count++
	g.record(seat, &Action{Card: card, From: NoPos, To: NoPos, CardSwap: EmptyCard}, OutcomeExchanged)

	if g.Exchange.Count < NumSeats {
		g.ActivePlayer = (seat + 1) % NumSeats
		return nil
	}

	for p := uint8(0); p < NumSeats; p++ {
		if !g.Players[p].removeCard(g.Exchange.Selected[p]) {
			return invariantf("exchange", "seat %d no longer holds %s", p, g.Exchange.Selected[p])
		}
	}
	for p := uint8(0); p < NumSeats; p++ {
		if !g.Players[Partner(p)].addCard(g.Exchange.Selected[p]) {
			return invariantf("exchange", "hand of seat %d is full", Partner(p))
		}
	}
	g.resetExchange()
	g.CardExchanged = true
	g.ActivePlayer = g.StartingPlayer
	return nil
}

// substitute spends a Joker from hand and makes it act as act.CardSwap. The
// same player acts again with the substituted card.
func (g *GameState) substitute(seat uint8, act Action) error {
	if !g.Players[seat].removeCard(act.Card) {
		return invariantf("substitute", "seat %d does not hold %s", seat, act.Card)
	}
	g.PlayedCard = act.Card
	g.ActiveCard = act.CardSwap
	if act.CardSwap.Rank() == RankSeven {
		// The seven sequence takes over from the Joker sub-machine.
		g.Joker = JokerIdle
		g.StepsRemaining = 7
	} else {
		g.Joker = JokerActing
	}
	g.record(seat, &act, OutcomeSubstituted)
	return nil
}

// move applies a forward, backward or kennel-exit move.
func (g *GameState) move(seat uint8, act Action) error {
	idx, ok := g.ownMarbleAt(seat, act.From)
	if !ok {
		return invariantf("move", "seat %d has no marble on %d", seat, act.From)
	}
	m := &g.Players[seat].Marbles[idx]
	fromKennel := IsInKennel(seat, m.Pos)

	g.sendHome(act.To, seat, idx)
	m.Pos = act.To
	m.Safe = fromKennel

	if err := g.spendCard(seat, act.Card); err != nil {
		return err
	}
	g.record(seat, &act, OutcomeApplied)
	return g.endTurn()
}

// swap exchanges the positions of the marbles on act.From and act.To.
func (g *GameState) swap(seat uint8, act Action) error {
	sa, ia, okA := g.MarbleAt(act.From)
	sb, ib, okB := g.MarbleAt(act.To)
	if !okA || !okB {
		return invariantf("swap", "no marble on %d or %d", act.From, act.To)
	}
	a := &g.Players[sa].Marbles[ia]
	b := &g.Players[sb].Marbles[ib]
	a.Pos, b.Pos = b.Pos, a.Pos
	a.Safe, b.Safe = false, false

	if err := g.spendCard(seat, act.Card); err != nil {
		return err
	}
	g.record(seat, &act, OutcomeApplied)
	return g.endTurn()
}

// spendCard moves the card that paid for a finished action to the discard
// pile: the Joker in play if there is one, otherwise card from the hand.
func (g *GameState) spendCard(seat uint8, card Card) error {
	if g.PlayedCard != EmptyCard {
		g.pushDiscard(g.PlayedCard)
		g.clearPlay()
		return nil
	}
	if !g.Players[seat].removeCard(card) {
		return invariantf("discard", "seat %d does not hold %s", seat, card)
	}
	g.pushDiscard(card)
	return nil
}

// endTurn checks for a winner and otherwise passes the turn.
func (g *GameState) endTurn() error {
	if g.checkWin() {
		return nil
	}
	return g.advanceTurn()
}

// advanceTurn passes the turn to the next seat holding cards, starting a new
// round when every hand is empty. The current seat keeps the turn only if it
// is the last one with cards.
func (g *GameState) advanceTurn() error {
	for off := uint8(1); off <= NumSeats; off++ {
		next := (g.ActivePlayer + off) % NumSeats
		if g.Players[next].HandLen > 0 {
			g.ActivePlayer = next
			return nil
		}
	}
	return g.startNewRound()
}

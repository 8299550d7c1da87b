package engine

// DecisionContext describes what kind of decision the active player must make.
type DecisionContext uint8

const (
	CtxTerminal DecisionContext = iota // 0
	CtxSetup                           // 1
	CtxExchange                        // 2: pick a card for the partner
	CtxSeven                           // 3: continue a split seven
	CtxJoker                           // 4: act with the substituted card
	CtxPlay                            // 5: play any hand card
)

// DecisionCtx returns the current decision context for the active player.
// Exchange, seven and Joker contexts are mutually exclusive.
func (g *GameState) DecisionCtx() DecisionContext {
	switch g.Phase {
	case PhaseFinished:
		return CtxTerminal
	case PhaseSetup:
		return CtxSetup
	}
	if !g.CardExchanged {
		return CtxExchange
	}
	if g.SevenInProgress() {
		return CtxSeven
	}
	if g.Joker == JokerActing {
		return CtxJoker
	}
	return CtxPlay
}

// actionSet collects actions in generation order, dropping duplicates.
type actionSet struct {
	list []Action
	seen map[Action]struct{}
}

func newActionSet() *actionSet {
	return &actionSet{seen: make(map[Action]struct{})}
}

func (s *actionSet) add(a Action) {
	if _, dup := s.seen[a]; dup {
		return
	}
	s.seen[a] = struct{}{}
	s.list = append(s.list, a)
}

// LegalActions returns every legal action for the active player, in a
// deterministic order. An empty result outside PhaseFinished means the only
// legal move is the nil action (fold).
func (g *GameState) LegalActions() []Action {
	set := newActionSet()

	switch g.DecisionCtx() {
	case CtxTerminal, CtxSetup:
		// No legal actions.

	case CtxExchange:
		pl := g.Active()
		for i := uint8(0); i < pl.HandLen; i++ {
			set.add(ExchangeAction(pl.Hand[i]))
		}

	case CtxSeven:
		g.legalSevenSteps(set, g.ActiveCard, int(g.StepsRemaining))

	case CtxJoker:
		g.legalForCard(set, g.ActiveCard)

	case CtxPlay:
		pl := g.Active()
		for i := uint8(0); i < pl.HandLen; i++ {
			g.legalForCard(set, pl.Hand[i])
		}
	}

	return set.list
}

// IsLegal reports whether a is among LegalActions.
func (g *GameState) IsLegal(a Action) bool {
	for _, l := range g.LegalActions() {
		if l == a {
			return true
		}
	}
	return false
}

// legalForCard adds the actions card allows the active player.
func (g *GameState) legalForCard(set *actionSet, card Card) {
	rank := card.Rank()
	if rank.LeavesKennel() {
		g.legalKennelExit(set, card)
	}

	switch rank.Kind() {
	case KindSteps:
		for _, s := range rank.ForwardSteps() {
			g.legalForward(set, card, s)
		}

	case KindFour:
		g.legalForward(set, card, 4)
		g.legalBackward(set, card, 4)

	case KindSeven:
		g.legalSevenSteps(set, card, 7)

	case KindSwap:
		g.legalSwaps(set, card)

	case KindJoker:
		for suit := uint8(0); suit < NumSuits; suit++ {
			for r := RankTwo; r <= RankAce; r++ {
				set.add(SubstituteAction(card, NewCard(suit, r)))
			}
		}
	}
}

// legalKennelExit adds the kennel-to-start move for the lowest kennel marble,
// unless the seat's own safe marble holds the start cell.
func (g *GameState) legalKennelExit(set *actionSet, card Card) {
	seat := g.ActivePlayer
	pl := &g.Players[seat]

	from := NoPos
	for m := uint8(0); m < MarblesPerPlayer; m++ {
		pos := pl.Marbles[m].Pos
		if IsInKennel(seat, pos) && (from == NoPos || pos < from) {
			from = pos
		}
	}
	if from == NoPos {
		return
	}

	start := StartCell(seat)
	if idx, ok := g.ownMarbleAt(seat, start); ok && g.isBlocker(seat, idx) {
		return
	}
	set.add(MoveAction(card, from, start))
}

// legalForward adds every forward move of exactly steps cells, on the track
// and into the finish lane.
func (g *GameState) legalForward(set *actionSet, card Card, steps int) {
	seat := g.ActivePlayer
	for m := uint8(0); m < MarblesPerPlayer; m++ {
		marble := g.Players[seat].Marbles[m]
		if IsInKennel(seat, marble.Pos) {
			continue
		}
		for _, intoFinish := range [2]bool{false, true} {
			p, ok := forwardPath(seat, marble, steps, intoFinish)
			if ok && g.pathClear(seat, m, &p) {
				set.add(MoveAction(card, marble.Pos, p.end()))
			}
		}
	}
}

// legalBackward adds backward moves along the track.
func (g *GameState) legalBackward(set *actionSet, card Card, steps int) {
	seat := g.ActivePlayer
	for m := uint8(0); m < MarblesPerPlayer; m++ {
		marble := g.Players[seat].Marbles[m]
		p, ok := backwardPath(marble, steps)
		if ok && g.pathClear(seat, m, &p) {
			set.add(MoveAction(card, marble.Pos, p.end()))
		}
	}
}

// legalSevenSteps adds every partial seven step of 1..remaining cells.
func (g *GameState) legalSevenSteps(set *actionSet, card Card, remaining int) {
	for s := 1; s <= remaining; s++ {
		g.legalForward(set, card, s)
	}
}

// legalSwaps adds Jack swaps. Marbles on the track are eligible except an
// opponent's safe marble on its start. Swaps pair the active player's marbles
// with other seats' marbles in both directions; only when no other marble is
// eligible may the player swap two of their own.
func (g *GameState) legalSwaps(set *actionSet, card Card) {
	seat := g.ActivePlayer
	var own, other []Pos

	for p := uint8(0); p < NumSeats; p++ {
		for m := uint8(0); m < MarblesPerPlayer; m++ {
			pos := g.Players[p].Marbles[m].Pos
			if !IsOnTrack(pos) {
				continue
			}
			if p == seat {
				own = append(own, pos)
			} else if !g.isBlocker(p, m) {
				other = append(other, pos)
			}
		}
	}

	if len(other) > 0 {
		for _, a := range own {
			for _, b := range other {
				set.add(MoveAction(card, a, b))
				set.add(MoveAction(card, b, a))
			}
		}
		return
	}
	for i := 0; i < len(own); i++ {
		for j := i + 1; j < len(own); j++ {
			set.add(MoveAction(card, own[i], own[j]))
			set.add(MoveAction(card, own[j], own[i]))
		}
	}
}

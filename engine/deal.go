package engine

// dealRound deals the current round's hand size to every seat, one card at a
// time starting with the starting player. Cards still held are returned to
// the discard pile first so nothing leaves the 110-card pool.
func (g *GameState) dealRound() error {
	for p := range g.Players {
		pl := &g.Players[p]
		for i := uint8(0); i < pl.HandLen; i++ {
			g.pushDiscard(pl.Hand[i])
			pl.Hand[i] = EmptyCard
		}
		pl.HandLen = 0
	}

	size := g.Rules.HandSizeForRound(g.Round)
	for c := uint8(0); c < size; c++ {
		for off := uint8(0); off < NumSeats; off++ {
			seat := (g.StartingPlayer + off) % NumSeats
			card, err := g.drawCard()
			if err != nil {
				return err
			}
			if !g.Players[seat].addCard(card) {
				return invariantf("deal", "hand of seat %d is full", seat)
			}
		}
	}
	return nil
}

// drawCard pops the top of the draw pile, reshuffling the discard pile into
// it when empty.
func (g *GameState) drawCard() (Card, error) {
	if g.DrawLen == 0 {
		g.reshuffle()
	}
	if g.DrawLen == 0 {
		return EmptyCard, invariantf("deal", "draw and discard piles are both empty")
	}
	g.DrawLen--
	card := g.DrawPile[g.DrawLen]
	g.DrawPile[g.DrawLen] = EmptyCard
	return card, nil
}

// reshuffle moves the whole discard pile into the draw pile and shuffles it.
func (g *GameState) reshuffle() {
	if g.DiscardLen == 0 {
		return
	}
	for i := uint8(0); i < g.DiscardLen; i++ {
		g.DrawPile[g.DrawLen] = g.DiscardPile[i]
		g.DrawLen++
		g.DiscardPile[i] = EmptyCard
	}
	g.DiscardLen = 0
	g.shuffle(g.DrawPile[:g.DrawLen])
}

func (g *GameState) pushDiscard(c Card) {
	g.DiscardPile[g.DiscardLen] = c
	g.DiscardLen++
}

// DiscardTop returns the top card of the discard pile, or EmptyCard if empty.
func (g *GameState) DiscardTop() Card {
	if g.DiscardLen == 0 {
		return EmptyCard
	}
	return g.DiscardPile[g.DiscardLen-1]
}

// startNewRound begins the next round once every hand is empty.
func (g *GameState) startNewRound() error {
	if g.Rules.MaxRounds > 0 && g.Round >= g.Rules.MaxRounds {
		g.Phase = PhaseFinished
		return nil
	}
	g.Round++
	g.StartingPlayer = (g.StartingPlayer + 1) % NumSeats
	g.ActivePlayer = g.StartingPlayer
	g.CardExchanged = !g.Rules.CardExchange
	g.resetExchange()
	g.clearPlay()
	return g.dealRound()
}

// clearPlay forgets the card in play and any open seven or Joker state.
func (g *GameState) clearPlay() {
	g.ActiveCard = EmptyCard
	g.PlayedCard = EmptyCard
	g.StepsRemaining = 0
	g.Joker = JokerIdle
	g.Seven = SevenTxn{}
}

func (g *GameState) resetExchange() {
	for i := range g.Exchange.Selected {
		g.Exchange.Selected[i] = EmptyCard
	}
	g.Exchange.Count = 0
}

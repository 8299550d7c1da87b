package engine

import "testing"

func newJokerGame(t *testing.T) *GameState {
	t.Helper()
	g := newTestGame(t)
	clearBoard(g)
	place(g, 0, 0, 10, false)
	returnHands(g)
	giveHand(t, g, 0, Joker())
	giveAll(t, g)
	return g
}

func TestJokerActsAsSubstitute(t *testing.T) {
	g := newJokerGame(t)
	five := card(SuitHearts, RankFive)

	apply(t, g, SubstituteAction(Joker(), five))

	if g.LastAction.Outcome != OutcomeSubstituted {
		t.Fatalf("Outcome: want substituted, got %s", g.LastAction.Outcome)
	}
	if g.DecisionCtx() != CtxJoker || g.ActiveCard != five || g.PlayedCard != Joker() {
		t.Fatalf("want Joker acting as %s: ctx %d active %s played %s", five, g.DecisionCtx(), g.ActiveCard, g.PlayedCard)
	}
	if g.ActivePlayer != 0 || g.Players[0].HandLen != 0 {
		t.Fatalf("same seat acts again with the Joker out of hand")
	}
	if g.CardCount() != DeckSize {
		t.Errorf("CardCount: want %d, got %d", DeckSize, g.CardCount())
	}

	sameActions(t, g.LegalActions(), []Action{MoveAction(five, 10, 15)})

	apply(t, g, MoveAction(five, 10, 15))

	if g.Players[0].Marbles[0].Pos != 15 {
		t.Errorf("marble: want 15, got %d", g.Players[0].Marbles[0].Pos)
	}
	if g.DiscardTop() != Joker() {
		t.Errorf("the Joker is what gets discarded, top %s", g.DiscardTop())
	}
	if g.Joker != JokerIdle || g.ActiveCard != EmptyCard {
		t.Error("Joker state should be cleared")
	}
	if g.ActivePlayer != 1 {
		t.Errorf("ActivePlayer: want 1, got %d", g.ActivePlayer)
	}
	if g.CardCount() != DeckSize {
		t.Errorf("CardCount: want %d, got %d", DeckSize, g.CardCount())
	}
}

func TestJokerAsSeven(t *testing.T) {
	g := newJokerGame(t)
	seven := card(SuitDiamonds, RankSeven)

	apply(t, g, SubstituteAction(Joker(), seven))

	if g.DecisionCtx() != CtxSeven || g.StepsRemaining != 7 {
		t.Fatalf("want a seven sequence: ctx %d steps %d", g.DecisionCtx(), g.StepsRemaining)
	}
	if g.Joker != JokerIdle {
		t.Error("seven sequence replaces the Joker sub-state")
	}

	apply(t, g, MoveAction(seven, 10, 12))
	apply(t, g, MoveAction(seven, 12, 17))

	if g.Players[0].Marbles[0].Pos != 17 || g.ActivePlayer != 1 {
		t.Errorf("want marble on 17 and turn passed: pos %d active %d", g.Players[0].Marbles[0].Pos, g.ActivePlayer)
	}
	if g.DiscardTop() != Joker() {
		t.Errorf("DiscardTop: want JKR, got %s", g.DiscardTop())
	}
}

func TestJokerSevenRollbackForfeitsJoker(t *testing.T) {
	g := newJokerGame(t)
	seven := card(SuitDiamonds, RankSeven)

	apply(t, g, SubstituteAction(Joker(), seven))
	apply(t, g, MoveAction(seven, 10, 12))
	if err := g.ApplyAction(nil); err != nil {
		t.Fatal(err)
	}

	if g.Players[0].Marbles[0].Pos != 10 {
		t.Errorf("marble should be back on 10, got %d", g.Players[0].Marbles[0].Pos)
	}
	if g.DiscardTop() != Joker() {
		t.Errorf("DiscardTop: want JKR, got %s", g.DiscardTop())
	}
	if g.CardCount() != DeckSize {
		t.Errorf("CardCount: want %d, got %d", DeckSize, g.CardCount())
	}
}

func TestJokerFoldAfterSubstitution(t *testing.T) {
	g := newJokerGame(t)

	apply(t, g, SubstituteAction(Joker(), card(SuitSpades, RankJack)))
	if got := g.LegalActions(); len(got) != 0 {
		t.Fatalf("Jack has no partner marble here, got %v", got)
	}
	if err := g.ApplyAction(nil); err != nil {
		t.Fatal(err)
	}

	if g.LastAction.Outcome != OutcomeFolded {
		t.Errorf("Outcome: want folded, got %s", g.LastAction.Outcome)
	}
	if g.DiscardTop() != Joker() || g.PlayedCard != EmptyCard {
		t.Errorf("Joker should be discarded, top %s", g.DiscardTop())
	}
	if g.CardCount() != DeckSize {
		t.Errorf("CardCount: want %d, got %d", DeckSize, g.CardCount())
	}
}

func TestJokerLeavesKennelDirectly(t *testing.T) {
	g := newJokerGame(t)

	apply(t, g, MoveAction(Joker(), KennelCell(0, 1), 0))

	if m := g.Players[0].Marbles[1]; m.Pos != 0 || !m.Safe {
		t.Errorf("marble: want safe on 0, got %+v", m)
	}
	if g.DiscardTop() != Joker() {
		t.Errorf("DiscardTop: want JKR, got %s", g.DiscardTop())
	}
}

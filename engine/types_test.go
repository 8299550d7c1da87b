package engine

import "testing"

func TestCardPacking(t *testing.T) {
	for suit := uint8(0); suit < NumSuits; suit++ {
		for r := RankTwo; r <= RankAce; r++ {
			c := NewCard(suit, r)
			if c.Suit() != suit || c.Rank() != r {
				t.Errorf("NewCard(%d, %d): got suit %d rank %d", suit, r, c.Suit(), c.Rank())
			}
			if c.IsJoker() || c.IsEmpty() {
				t.Errorf("%s should be a plain card", c)
			}
		}
	}
	if !Joker().IsJoker() || Joker().Suit() != SuitNone {
		t.Error("Joker() should be a suitless joker")
	}
	if HiddenCard.IsJoker() || EmptyCard.IsJoker() {
		t.Error("sentinels are not jokers")
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(SuitSpades, RankAce), "A♠"},
		{NewCard(SuitHearts, RankTen), "10♥"},
		{NewCard(SuitDiamonds, RankQueen), "Q♦"},
		{NewCard(SuitClubs, RankTwo), "2♣"},
		{Joker(), "JKR"},
		{EmptyCard, "-"},
		{HiddenCard, "?"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String(): want %q, got %q", tt.want, got)
		}
	}
}

func TestRankTraits(t *testing.T) {
	tests := []struct {
		rank   Rank
		kind   MoveKind
		steps  []int
		kennel bool
	}{
		{RankTwo, KindSteps, []int{2}, false},
		{RankFour, KindFour, []int{4}, false},
		{RankSeven, KindSeven, []int{7}, false},
		{RankTen, KindSteps, []int{10}, false},
		{RankJack, KindSwap, nil, false},
		{RankQueen, KindSteps, []int{12}, false},
		{RankKing, KindSteps, []int{13}, true},
		{RankAce, KindSteps, []int{1, 11}, true},
		{RankJoker, KindJoker, nil, true},
	}
	for _, tt := range tests {
		if tt.rank.Kind() != tt.kind {
			t.Errorf("%s: kind want %d, got %d", tt.rank, tt.kind, tt.rank.Kind())
		}
		if tt.rank.LeavesKennel() != tt.kennel {
			t.Errorf("%s: LeavesKennel want %v", tt.rank, tt.kennel)
		}
		got := tt.rank.ForwardSteps()
		if len(got) != len(tt.steps) {
			t.Errorf("%s: steps want %v, got %v", tt.rank, tt.steps, got)
			continue
		}
		for i := range got {
			if got[i] != tt.steps[i] {
				t.Errorf("%s: steps want %v, got %v", tt.rank, tt.steps, got)
			}
		}
	}
	if HiddenCard.Rank().Kind() != KindSteps || HiddenCard.Rank().LeavesKennel() {
		t.Error("out-of-range rank should have no traits")
	}
}

func TestBuildDeck(t *testing.T) {
	deck := BuildDeck()

	counts := make(map[Card]int)
	for _, c := range deck {
		counts[c]++
	}
	if counts[Joker()] != NumJokers {
		t.Errorf("jokers: want %d, got %d", NumJokers, counts[Joker()])
	}
	for suit := uint8(0); suit < NumSuits; suit++ {
		for r := RankTwo; r <= RankAce; r++ {
			if n := counts[NewCard(suit, r)]; n != 2 {
				t.Errorf("%s: want 2 copies, got %d", NewCard(suit, r), n)
			}
		}
	}
	if len(counts) != NumSuits*NumPlainRanks+1 {
		t.Errorf("distinct cards: want %d, got %d", NumSuits*NumPlainRanks+1, len(counts))
	}

	deck[0] = EmptyCard
	if fresh := BuildDeck(); fresh[0] == EmptyCard {
		t.Error("BuildDeck must return a fresh deck")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{MoveAction(NewCard(SuitSpades, RankAce), 64, 0), "A♠ 64->0"},
		{ExchangeAction(NewCard(SuitHearts, RankFive)), "5♥"},
		{SubstituteAction(Joker(), NewCard(SuitClubs, RankSeven)), "JKR as 7♣"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("want %q, got %q", tt.want, got)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeRolledBack.String() != "rolled_back" {
		t.Errorf("got %q", OutcomeRolledBack.String())
	}
	if Outcome(200).String() != "unknown" {
		t.Errorf("got %q", Outcome(200).String())
	}
}

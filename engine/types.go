package engine

import "strconv"

// Suit constants, packed into upper 4 bits of Card.
const (
	SuitSpades   uint8 = 0
	SuitHearts   uint8 = 1
	SuitDiamonds uint8 = 2
	SuitClubs    uint8 = 3
	SuitNone     uint8 = 4 // jokers carry no suit
)

// NumSuits is the number of real suits in a deck.
const NumSuits = 4

// Rank is the closed set of card ranks. Movement semantics hang off the rank
// via rankTable rather than being derived from its printed form.
type Rank uint8

// Rank constants, packed into lower 4 bits of Card.
const (
	RankTwo Rank = iota
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
	RankJoker
)

// NumRanks counts every rank including the joker; NumPlainRanks excludes it.
const (
	NumRanks      = 14
	NumPlainRanks = 13
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

const (
	// EmptyCard represents the absence of a card.
	EmptyCard Card = 0xFF
	// HiddenCard replaces cards a viewer is not allowed to see.
	HiddenCard Card = 0xFE
)

// NewCard constructs a Card from suit and rank.
func NewCard(suit uint8, rank Rank) Card {
	return Card((suit << 4) | (uint8(rank) & 0x0F))
}

// Joker returns the suitless joker card.
func Joker() Card { return NewCard(SuitNone, RankJoker) }

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() Rank { return Rank(uint8(c) & 0x0F) }

// IsEmpty reports whether c is the EmptyCard sentinel.
func (c Card) IsEmpty() bool { return c == EmptyCard }

// IsJoker reports whether c is a joker.
func (c Card) IsJoker() bool { return c != EmptyCard && c != HiddenCard && c.Rank() == RankJoker }

var suitSymbols = [...]string{"♠", "♥", "♦", "♣", ""}

var rankNames = [NumRanks]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "JKR"}

// String renders a card as rank followed by suit symbol, e.g. "A♠" or "JKR".
func (c Card) String() string {
	switch c {
	case EmptyCard:
		return "-"
	case HiddenCard:
		return "?"
	}
	s := c.Suit()
	if s >= uint8(len(suitSymbols)) || c.Rank() >= NumRanks {
		return "Card(" + strconv.Itoa(int(c)) + ")"
	}
	return rankNames[c.Rank()] + suitSymbols[s]
}

// String returns the printed name of the rank.
func (r Rank) String() string {
	if r >= NumRanks {
		return "Rank(" + strconv.Itoa(int(r)) + ")"
	}
	return rankNames[r]
}

// MoveKind classifies what a rank does beyond plain forward steps.
type MoveKind uint8

const (
	KindSteps MoveKind = iota // forward only
	KindFour                  // forward or backward four
	KindSeven                 // split across marbles
	KindSwap                  // Jack: exchange two marbles
	KindJoker                 // substitutes for any other rank
)

type rankTraits struct {
	kind         MoveKind
	steps        [2]uint8 // forward step options; 0 = unused slot
	leavesKennel bool
}

var rankTable = [NumRanks]rankTraits{
	RankTwo:   {kind: KindSteps, steps: [2]uint8{2}},
	RankThree: {kind: KindSteps, steps: [2]uint8{3}},
	RankFour:  {kind: KindFour, steps: [2]uint8{4}},
	RankFive:  {kind: KindSteps, steps: [2]uint8{5}},
	RankSix:   {kind: KindSteps, steps: [2]uint8{6}},
	RankSeven: {kind: KindSeven, steps: [2]uint8{7}},
	RankEight: {kind: KindSteps, steps: [2]uint8{8}},
	RankNine:  {kind: KindSteps, steps: [2]uint8{9}},
	RankTen:   {kind: KindSteps, steps: [2]uint8{10}},
	RankJack:  {kind: KindSwap},
	RankQueen: {kind: KindSteps, steps: [2]uint8{12}},
	RankKing:  {kind: KindSteps, steps: [2]uint8{13}, leavesKennel: true},
	RankAce:   {kind: KindSteps, steps: [2]uint8{1, 11}, leavesKennel: true},
	RankJoker: {kind: KindJoker, leavesKennel: true},
}

// Kind returns the special behaviour of the rank.
func (r Rank) Kind() MoveKind { return r.traits().kind }

// LeavesKennel reports whether the rank may bring a marble onto its start cell.
func (r Rank) LeavesKennel() bool { return r.traits().leavesKennel }

func (r Rank) traits() rankTraits {
	if r >= NumRanks {
		return rankTraits{}
	}
	return rankTable[r]
}

// ForwardSteps returns the forward step options of the rank. Jack and Joker
// have none of their own.
func (r Rank) ForwardSteps() []int {
	t := r.traits()
	out := make([]int, 0, 2)
	for _, s := range t.steps {
		if s > 0 {
			out = append(out, int(s))
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

// Action is one player decision. From/To are NoPos for exchange selections and
// Joker substitutions; CardSwap is EmptyCard except for substitutions.
// Actions are comparable values and double as their own dedup key.
type Action struct {
	Card     Card
	From     Pos
	To       Pos
	CardSwap Card
}

// MoveAction builds a marble move (or a Jack swap between From and To).
func MoveAction(card Card, from, to Pos) Action {
	return Action{Card: card, From: from, To: to, CardSwap: EmptyCard}
}

// ExchangeAction selects card for the partner exchange.
func ExchangeAction(card Card) Action {
	return Action{Card: card, From: NoPos, To: NoPos, CardSwap: EmptyCard}
}

// SubstituteAction plays joker as the card sub.
func SubstituteAction(joker, sub Card) Action {
	return Action{Card: joker, From: NoPos, To: NoPos, CardSwap: sub}
}

// IsMove reports whether the action carries both positions.
func (a Action) IsMove() bool { return a.From != NoPos && a.To != NoPos }

func (a Action) String() string {
	switch {
	case a.CardSwap != EmptyCard:
		return a.Card.String() + " as " + a.CardSwap.String()
	case a.IsMove():
		return a.Card.String() + " " + strconv.Itoa(int(a.From)) + "->" + strconv.Itoa(int(a.To))
	}
	return a.Card.String()
}

// Outcome describes what ApplyAction did with the last action.
type Outcome uint8

const (
	OutcomeNone        Outcome = iota
	OutcomeApplied             // card spent, turn over
	OutcomeIgnored             // not a legal action; state untouched
	OutcomeFolded              // hand discarded
	OutcomeExchanged           // exchange selection buffered
	OutcomeSubstituted         // Joker now acts as another card
	OutcomeSevenStep           // partial seven applied
	OutcomeRolledBack          // seven sequence undone and forfeited
)

var outcomeNames = [...]string{"none", "applied", "ignored", "folded", "exchanged", "substituted", "seven_step", "rolled_back"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// LastActionInfo is a public summary of the most recent ApplyAction call.
type LastActionInfo struct {
	Seat      uint8
	Action    Action
	HasAction bool // false for a nil action
	Outcome   Outcome
}

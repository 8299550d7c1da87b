// Package engine implements the rules of Dog, the four-player marble race
// card game.
//
// GameState is a flat value type (fixed arrays, no pointers or slices), so a
// plain struct copy is a complete snapshot. Front-ends drive the engine by
// alternating LegalActions and ApplyAction.
package engine

import "strconv"

const (
	MaxHandSize = 6
	DeckSize    = 110
	NumJokers   = 6
	numDecks    = 2
)

// Phase is the lifecycle stage of a match.
type Phase uint8

const (
	PhaseSetup Phase = iota
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Marble is one playing piece. Safe is set while the marble sits on its start
// cell right after leaving the kennel and cleared by its next move.
type Marble struct {
	Pos  Pos
	Safe bool
}

// PlayerState holds one seat's hand and marbles.
type PlayerState struct {
	Name    string
	Hand    [MaxHandSize]Card
	HandLen uint8
	Marbles [MarblesPerPlayer]Marble
}

// Cards returns a copy of the hand as a slice.
func (p *PlayerState) Cards() []Card {
	out := make([]Card, p.HandLen)
	copy(out, p.Hand[:p.HandLen])
	return out
}

// HasCard reports whether the hand holds c.
func (p *PlayerState) HasCard(c Card) bool { return p.cardIndex(c) >= 0 }

func (p *PlayerState) cardIndex(c Card) int {
	for i := uint8(0); i < p.HandLen; i++ {
		if p.Hand[i] == c {
			return int(i)
		}
	}
	return -1
}

// removeCard takes the first copy of c out of the hand, keeping order.
func (p *PlayerState) removeCard(c Card) bool {
	idx := p.cardIndex(c)
	if idx < 0 {
		return false
	}
	copy(p.Hand[idx:p.HandLen], p.Hand[idx+1:p.HandLen])
	p.HandLen--
	p.Hand[p.HandLen] = EmptyCard
	return true
}

func (p *PlayerState) addCard(c Card) bool {
	if p.HandLen >= MaxHandSize {
		return false
	}
	p.Hand[p.HandLen] = c
	p.HandLen++
	return true
}

// JokerPhase is the Joker sub-machine. A Joker is played in two steps: the
// substitution picks the card it acts as, the follow-up action spends it.
type JokerPhase uint8

const (
	JokerIdle   JokerPhase = iota
	JokerActing            // ActiveCard holds the substituted card
)

// ExchangeState buffers the partner exchange selections of one round.
type ExchangeState struct {
	Selected [NumSeats]Card // EmptyCard until the seat has chosen
	Count    uint8
}

// SevenTxn is the open transaction of a split seven. Marbles holds every
// marble as it was before the first partial step.
type SevenTxn struct {
	Active  bool
	Marbles [NumSeats][MarblesPerPlayer]Marble
}

// GameState holds the complete, self-contained state of a Dog match.
type GameState struct {
	Phase          Phase
	Round          uint16
	ActivePlayer   uint8
	StartingPlayer uint8
	CardExchanged  bool
	Players        [NumSeats]PlayerState
	DrawPile       [DeckSize]Card
	DrawLen        uint8
	DiscardPile    [DeckSize]Card
	DiscardLen     uint8

	ActiveCard     Card // effective card of the play in progress
	PlayedCard     Card // physical card in play (a seven or a Joker)
	StepsRemaining uint8
	Joker          JokerPhase
	Exchange       ExchangeState
	Seven          SevenTxn

	WinningTeam int8 // -1 until a team has won
	LastAction  LastActionInfo
	RNG         uint64
	Rules       HouseRules
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// shuffle applies Fisher-Yates to cards using the state RNG.
func (g *GameState) shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// ---------------------------------------------------------------------------
// Deck, NewGame, Start
// ---------------------------------------------------------------------------

// BuildDeck returns the canonical 110-card deck in a fixed order: two decks
// of 4 suits × ranks 2..A, then six jokers. Each call returns a fresh array.
func BuildDeck() [DeckSize]Card {
	var deck [DeckSize]Card
	idx := 0
	for d := 0; d < numDecks; d++ {
		for suit := uint8(0); suit < NumSuits; suit++ {
			for rank := RankTwo; rank <= RankAce; rank++ {
				deck[idx] = NewCard(suit, rank)
				idx++
			}
		}
	}
	for j := 0; j < NumJokers; j++ {
		deck[idx] = Joker()
		idx++
	}
	return deck
}

// NewGame builds a match in PhaseSetup: full unshuffled draw pile, empty
// hands and every marble in its kennel. Call Start to shuffle and deal.
func NewGame(seed uint64, rules HouseRules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.Phase = PhaseSetup
	g.WinningTeam = -1
	g.ActiveCard = EmptyCard
	g.PlayedCard = EmptyCard
	g.resetExchange()

	g.DrawPile = BuildDeck()
	g.DrawLen = DeckSize
	for i := range g.DiscardPile {
		g.DiscardPile[i] = EmptyCard
	}

	for p := uint8(0); p < NumSeats; p++ {
		pl := &g.Players[p]
		pl.Name = "Player " + strconv.Itoa(int(p)+1)
		for i := range pl.Hand {
			pl.Hand[i] = EmptyCard
		}
		for m := uint8(0); m < MarblesPerPlayer; m++ {
			pl.Marbles[m] = Marble{Pos: KennelCell(p, m)}
		}
	}
	return g
}

// Start shuffles the deck, picks a random starting seat and deals round 1.
func (g *GameState) Start() error {
	if g.Phase != PhaseSetup {
		return invariantf("start", "game already started (phase %s)", g.Phase)
	}
	g.shuffle(g.DrawPile[:g.DrawLen])
	g.StartingPlayer = uint8(g.randN(NumSeats))
	g.ActivePlayer = g.StartingPlayer
	g.Round = 1
	g.Phase = PhaseRunning
	g.CardExchanged = !g.Rules.CardExchange
	return g.dealRound()
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsTerminal returns true when the match is over.
func (g *GameState) IsTerminal() bool { return g.Phase == PhaseFinished }

// Active returns the seat that must act next.
func (g *GameState) Active() *PlayerState { return &g.Players[g.ActivePlayer] }

// SevenInProgress reports whether a split seven awaits further steps.
func (g *GameState) SevenInProgress() bool {
	return g.ActiveCard != EmptyCard && g.ActiveCard.Rank() == RankSeven && g.StepsRemaining > 0
}

// CardCount returns every card the state accounts for: draw and discard
// piles, all hands and the card in play. It is DeckSize in every reachable
// state.
func (g *GameState) CardCount() int {
	n := int(g.DrawLen) + int(g.DiscardLen)
	for p := range g.Players {
		n += int(g.Players[p].HandLen)
	}
	if g.PlayedCard != EmptyCard {
		n++
	}
	return n
}

// MarbleAt returns the seat and marble index occupying pos.
func (g *GameState) MarbleAt(pos Pos) (seat, idx uint8, ok bool) {
	for p := uint8(0); p < NumSeats; p++ {
		for m := uint8(0); m < MarblesPerPlayer; m++ {
			if g.Players[p].Marbles[m].Pos == pos {
				return p, m, true
			}
		}
	}
	return 0, 0, false
}

// isBlocker reports whether the marble is a safe marble on its own start
// cell; nobody may pass or land on it.
func (g *GameState) isBlocker(seat, idx uint8) bool {
	m := g.Players[seat].Marbles[idx]
	return m.Safe && m.Pos == StartCell(seat)
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState for checkpoint and restore.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }

// GetState returns a full, unmasked copy of the state.
func (g *GameState) GetState() GameState { return *g }

// SetState replaces the state wholesale.
func (g *GameState) SetState(s GameState) { *g = s }

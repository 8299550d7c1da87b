package agent

import (
	engine "github.com/jason-s-yu/dog/engine"
)

const (
	winScore = 1 << 20
	// lookahead bounds how many follow-up decisions of the same turn (Joker
	// substitution, seven steps) are searched.
	lookahead = 1
)

// keepValue ranks cards by how much a seat wants to keep them. The exchange
// gives away the lowest.
var keepValue = [engine.NumRanks]int{
	engine.RankTwo:   2,
	engine.RankThree: 1,
	engine.RankFour:  5,
	engine.RankFive:  1,
	engine.RankSix:   1,
	engine.RankSeven: 6,
	engine.RankEight: 2,
	engine.RankNine:  2,
	engine.RankTen:   3,
	engine.RankJack:  4,
	engine.RankQueen: 3,
	engine.RankKing:  7,
	engine.RankAce:   8,
	engine.RankJoker: 10,
}

// GreedyPlayer simulates every legal action on its view and keeps the one
// that maximises its team's progress minus the opponents'. Ties go to the
// earliest action, so the player is deterministic.
type GreedyPlayer struct {
	Seat uint8
}

// NewGreedyPlayer returns a GreedyPlayer for seat.
func NewGreedyPlayer(seat uint8) *GreedyPlayer {
	return &GreedyPlayer{Seat: seat}
}

// SelectAction implements engine.Player.
func (p *GreedyPlayer) SelectAction(view engine.GameState, actions []engine.Action) *engine.Action {
	if len(actions) == 0 {
		return nil
	}
	if view.DecisionCtx() == engine.CtxExchange {
		return p.pickExchange(actions)
	}

	best, bestScore := 0, 0
	for i := range actions {
		s := p.score(view, actions[i], lookahead)
		if i == 0 || s > bestScore {
			best, bestScore = i, s
		}
	}
	a := actions[best]
	return &a
}

func (p *GreedyPlayer) pickExchange(actions []engine.Action) *engine.Action {
	best := 0
	for i := range actions {
		if keepValue[actions[i].Card.Rank()] < keepValue[actions[best].Card.Rank()] {
			best = i
		}
	}
	a := actions[best]
	return &a
}

// score applies a to a copy of the view. When the same seat must decide
// again, the best follow-up is searched up to depth more levels.
func (p *GreedyPlayer) score(view engine.GameState, a engine.Action, depth int) int {
	sim := view
	if err := sim.ApplyAction(&a); err != nil {
		return -winScore
	}
	if sim.LastAction.Outcome == engine.OutcomeIgnored {
		return -winScore
	}
	if depth > 0 && !sim.IsTerminal() && sim.ActivePlayer == p.Seat {
		switch sim.DecisionCtx() {
		case engine.CtxJoker, engine.CtxSeven:
			next := sim.LegalActions()
			if len(next) == 0 {
				// Only a fold remains, which forfeits the card.
				folded := sim
				if err := folded.ApplyAction(nil); err != nil {
					return -winScore
				}
				return p.evaluate(&folded)
			}
			best := -winScore
			for _, n := range next {
				if s := p.score(sim, n, depth-1); s > best {
					best = s
				}
			}
			return best
		}
	}
	return p.evaluate(&sim)
}

// evaluate is the team progress difference, with a win dominating.
func (p *GreedyPlayer) evaluate(g *engine.GameState) int {
	team := engine.TeamOf(p.Seat)
	if g.IsTerminal() && g.WinningTeam >= 0 {
		if uint8(g.WinningTeam) == team {
			return winScore
		}
		return -winScore
	}
	s := 0
	for seat := uint8(0); seat < engine.NumSeats; seat++ {
		if engine.TeamOf(seat) == team {
			s += g.Progress(seat)
		} else {
			s -= g.Progress(seat)
		}
	}
	return s
}

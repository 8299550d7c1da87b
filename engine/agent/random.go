// Package agent implements baseline engine.Player strategies used by the
// match adapter and the simulator.
package agent

import (
	"math/rand/v2"

	engine "github.com/jason-s-yu/dog/engine"
)

// RandomPlayer picks uniformly among the legal actions. It folds only when
// nothing is legal.
type RandomPlayer struct {
	rng *rand.Rand
}

// NewRandomPlayer returns a RandomPlayer with its own seeded source, so
// matches replay identically for the same seed.
func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// SelectAction implements engine.Player.
func (p *RandomPlayer) SelectAction(_ engine.GameState, actions []engine.Action) *engine.Action {
	if len(actions) == 0 {
		return nil
	}
	a := actions[p.rng.IntN(len(actions))]
	return &a
}

//go:build integration

package engine

// Random-play tests over the public API: NewGame, Start, LegalActions,
// ApplyAction, PlayerView.
//
// Run: go test -tags integration -run TestIntegration ./engine

import (
	"math/rand"
	"testing"
)

// checkInvariants verifies card conservation and that every marble sits on a
// distinct cell it is allowed to occupy.
func checkInvariants(t *testing.T, g *GameState, step int) {
	t.Helper()
	if n := g.CardCount(); n != DeckSize {
		t.Fatalf("step %d: card count %d, want %d", step, n, DeckSize)
	}
	seen := make(map[Pos]bool)
	for p := uint8(0); p < NumSeats; p++ {
		for m := uint8(0); m < MarblesPerPlayer; m++ {
			pos := g.Players[p].Marbles[m].Pos
			if seen[pos] {
				t.Fatalf("step %d: two marbles on %d", step, pos)
			}
			seen[pos] = true
			if !IsOnTrack(pos) && !IsInKennel(p, pos) && !IsInFinish(p, pos) {
				t.Fatalf("step %d: seat %d marble on foreign cell %d", step, p, pos)
			}
			if g.Players[p].Marbles[m].Safe && pos != StartCell(p) {
				t.Fatalf("step %d: seat %d safe marble off its start (%d)", step, p, pos)
			}
		}
	}
}

func playRandom(t *testing.T, seed int64, maxSteps int) *GameState {
	t.Helper()
	rules := DefaultHouseRules()
	rules.MaxRounds = 60
	g := NewGame(uint64(seed), rules)
	if err := g.Start(); err != nil {
		t.Fatalf("seed %d: Start: %v", seed, err)
	}
	rng := rand.New(rand.NewSource(seed))

	for step := 0; step < maxSteps && !g.IsTerminal(); step++ {
		acts := g.LegalActions()
		var choice *Action
		// Fold now and then even when moves exist.
		if len(acts) > 0 && rng.Intn(20) != 0 {
			choice = &acts[rng.Intn(len(acts))]
		}
		if err := g.ApplyAction(choice); err != nil {
			t.Fatalf("seed %d step %d: %v", seed, step, err)
		}
		if choice != nil && g.LastAction.Outcome == OutcomeIgnored {
			t.Fatalf("seed %d step %d: legal action %s was ignored", seed, step, *choice)
		}
		checkInvariants(t, &g, step)
	}
	return &g
}

func TestIntegrationRandomGamesTerminate(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := playRandom(t, seed, 100000)
		if !g.IsTerminal() {
			t.Errorf("seed %d: game did not finish", seed)
		}
	}
}

func TestIntegrationSnapshotReplay(t *testing.T) {
	g := NewGame(7, DefaultHouseRules())
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200 && !g.IsTerminal(); i++ {
		acts := g.LegalActions()
		snap := g.Save()

		var choice *Action
		if len(acts) > 0 {
			choice = &acts[rng.Intn(len(acts))]
		}
		if err := g.ApplyAction(choice); err != nil {
			t.Fatal(err)
		}
		after := g.GetState()

		g.Restore(snap)
		if err := g.ApplyAction(choice); err != nil {
			t.Fatal(err)
		}
		if g.GetState() != after {
			t.Fatalf("step %d: replay from snapshot diverged", i)
		}
	}
}

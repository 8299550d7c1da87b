// internal/game/engine_adapter.go
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/dog/engine"
)

// HandleAction applies a decision submitted for a human seat. A nil action
// folds (or forfeits an open seven).
func (g *DogGame) HandleAction(playerID uuid.UUID, a *engine.Action) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if !g.Started {
		return ErrNotStarted
	}
	if g.GameOver {
		return ErrGameOver
	}
	p := g.getPlayerByID(playerID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if p.Seat != g.Engine.ActivePlayer {
		return ErrNotYourTurn
	}
	return g.apply(p, a)
}

// Step lets the active seat's bot decide once. It returns ErrAwaitingHuman
// when the active seat has no bot.
func (g *DogGame) Step() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.step()
}

// step assumes lock is held by caller.
func (g *DogGame) step() error {
	if !g.Started {
		return ErrNotStarted
	}
	if g.GameOver {
		return ErrGameOver
	}
	p := g.Players[g.Engine.ActivePlayer]
	if p.Bot == nil {
		return ErrAwaitingHuman
	}
	actions := g.Engine.LegalActions()
	choice := p.Bot.SelectAction(g.Engine.PlayerView(p.Seat), actions)
	return g.apply(p, choice)
}

// Run steps bots until the match ends, a human seat must decide, ctx is done
// or maxSteps decisions were made (0 = no limit). It returns the number of
// decisions applied.
func (g *DogGame) Run(ctx context.Context, maxSteps int) (int, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	steps := 0
	for !g.GameOver {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		if maxSteps > 0 && steps >= maxSteps {
			g.log.WithField("steps", steps).Warn("step limit reached, aborting game")
			g.endGame(true)
			return steps, ErrStepLimit
		}
		err := g.step()
		if err != nil && !errors.Is(err, ErrIllegalAction) {
			return steps, err
		}
		steps++
	}
	return steps, nil
}

// apply hands one decision to the engine and emits the resulting events.
// Assumes lock is held by caller.
func (g *DogGame) apply(p *Player, a *engine.Action) error {
	ctxBefore := g.Engine.DecisionCtx()
	roundBefore := g.Engine.Round

	if err := g.Engine.ApplyAction(a); err != nil {
		g.log.WithError(err).WithFields(logrus.Fields{
			"seat":   p.Seat,
			"action": actionString(a),
		}).Error("engine invariant broken, aborting game")
		g.endGame(true)
		return fmt.Errorf("game %s: %w", g.ID, err)
	}

	last := g.Engine.LastAction
	entry := g.log.WithFields(logrus.Fields{
		"seat":    p.Seat,
		"round":   g.Engine.Round,
		"action":  actionString(a),
		"outcome": last.Outcome.String(),
	})

	if last.Outcome == engine.OutcomeIgnored {
		entry.Warn("action rejected")
		g.fireEventToPlayer(p.ID, GameEvent{
			Type:    EventPrivateActionRejected,
			User:    eventUser(p),
			Action:  toEventAction(a, false),
			Outcome: last.Outcome.String(),
			Payload: map[string]interface{}{"decision": decisionName(ctxBefore)},
		})
		return ErrIllegalAction
	}
	entry.Debug("action applied")

	// Exchange selections stay private until the cards change hands.
	public := ctxBefore != engine.CtxExchange
	g.logAction(p.ID, string(EventPlayerAction), map[string]interface{}{
		"seat":     p.Seat,
		"action":   actionString(a),
		"outcome":  last.Outcome.String(),
		"decision": decisionName(ctxBefore),
	})
	g.fireEvent(GameEvent{
		Type:    EventPlayerAction,
		User:    eventUser(p),
		Action:  toEventAction(a, public),
		Outcome: last.Outcome.String(),
	})
	g.emitSubsequenceEvents(p, ctxBefore, last.Outcome)

	if g.Engine.IsTerminal() {
		g.endGame(false)
		return nil
	}
	if g.Engine.Round != roundBefore {
		g.log.WithFields(logrus.Fields{
			"round":         g.Engine.Round,
			"starting_seat": g.Engine.StartingPlayer,
			"hand_size":     g.Rules.HandSizeForRound(g.Engine.Round),
		}).Info("round dealt")
		g.logAction(uuid.Nil, string(EventRoundStart), map[string]interface{}{
			"round":        g.Engine.Round,
			"startingSeat": g.Engine.StartingPlayer,
		})
		g.fireEvent(GameEvent{
			Type: EventRoundStart,
			Payload: map[string]interface{}{
				"round":        g.Engine.Round,
				"startingSeat": g.Engine.StartingPlayer,
				"handSize":     g.Rules.HandSizeForRound(g.Engine.Round),
			},
		})
		g.broadcastSyncStateToAll()
	}
	g.broadcastPlayerTurn()
	return nil
}

func actionString(a *engine.Action) string {
	if a == nil {
		return "fold"
	}
	return a.String()
}

// toEventAction converts an engine action for a GameEvent. With reveal false
// the card is withheld.
func toEventAction(a *engine.Action, reveal bool) *EventAction {
	if a == nil {
		return nil
	}
	ev := &EventAction{}
	if reveal {
		ev.Card = a.Card.String()
	}
	if a.CardSwap != engine.EmptyCard {
		ev.As = a.CardSwap.String()
	}
	if a.IsMove() {
		from, to := int(a.From), int(a.To)
		ev.From, ev.To = &from, &to
	}
	return ev
}

// zoneOf names the board area of a cell.
func zoneOf(pos engine.Pos) string {
	switch {
	case engine.IsOnTrack(pos):
		return "track"
	case engine.IsKennelCell(pos):
		return "kennel"
	case engine.IsFinishCell(pos):
		return "finish"
	}
	return "none"
}

// internal/game/special_actions.go
package game

import (
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/dog/engine"
)

// Events of the multi-decision plays: the split seven and the Joker.
const (
	EventSevenProgress GameEventType = "seven_progress" // Public: steps left in a split seven.
	EventSevenRollback GameEventType = "seven_rollback" // Public: a split seven was undone.
	EventJokerActing   GameEventType = "joker_acting"   // Public: the Joker now acts as another card.
)

// emitSubsequenceEvents reports progress of an open seven or Joker after an
// applied action.
// Assumes lock is held by caller.
func (g *DogGame) emitSubsequenceEvents(p *Player, before engine.DecisionContext, outcome engine.Outcome) {
	switch outcome {
	case engine.OutcomeSevenStep:
		remaining := int(g.Engine.StepsRemaining)
		if !g.Engine.SevenInProgress() {
			remaining = 0
		}
		g.fireEvent(GameEvent{
			Type: EventSevenProgress,
			User: eventUser(p),
			Payload: map[string]interface{}{
				"stepsRemaining": remaining,
				"card":           g.Engine.PlayedCard.String(),
			},
		})

	case engine.OutcomeRolledBack:
		g.log.WithFields(logrus.Fields{"seat": p.Seat}).Info("seven rolled back")
		g.logAction(p.ID, string(EventSevenRollback), map[string]interface{}{"seat": p.Seat})
		g.fireEvent(GameEvent{Type: EventSevenRollback, User: eventUser(p)})
		g.broadcastSyncStateToAll()

	case engine.OutcomeSubstituted:
		g.fireEvent(GameEvent{
			Type:    EventJokerActing,
			User:    eventUser(p),
			Payload: map[string]interface{}{"as": g.Engine.ActiveCard.String()},
		})

	case engine.OutcomeApplied:
		if before == engine.CtxSeven {
			g.fireEvent(GameEvent{
				Type:    EventSevenProgress,
				User:    eventUser(p),
				Payload: map[string]interface{}{"stepsRemaining": 0},
			})
		}
	}
}

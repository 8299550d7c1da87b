// internal/game/game.go
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/dog/engine"
	"github.com/jason-s-yu/dog/service/internal/cache"
)

// Errors returned by DogGame. Engine invariant failures are wrapped
// *engine.EngineError values instead.
var (
	ErrGameFull       = errors.New("game is full")
	ErrNeedPlayers    = errors.New("not enough players")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotStarted     = errors.New("game not started")
	ErrGameOver       = errors.New("game is over")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrIllegalAction  = errors.New("illegal action")
	ErrAwaitingHuman  = errors.New("waiting for a human player")
	ErrStepLimit      = errors.New("step limit reached")
)

// OnGameEndFunc is called once when a match ends. winningTeam is -1 for a
// match stopped by the round limit or aborted.
type OnGameEndFunc func(gameID uuid.UUID, winningTeam int, winners []uuid.UUID)

// ActionRecorder receives the action log of a match.
type ActionRecorder interface {
	PublishGameAction(ctx context.Context, record cache.GameActionRecord) error
}

// GameEventType represents the type of a match event.
type GameEventType string

// Constants defining the GameEvent types.
const (
	EventGameStart             GameEventType = "game_start"              // Public: seats and starting seat.
	EventRoundStart            GameEventType = "game_round_start"        // Public: a new round was dealt.
	EventGamePlayerTurn        GameEventType = "game_player_turn"        // Public: whose decision it is.
	EventPlayerAction          GameEventType = "player_action"           // Public: an applied action and its outcome.
	EventPrivateActionRejected GameEventType = "private_action_rejected" // Private: the action was illegal.
	EventPrivateSyncState      GameEventType = "private_sync_state"      // Private: full obfuscated state.
	EventGameEnd               GameEventType = "game_end"                // Public: result.
)

// EventUser identifies a seat within a GameEvent payload.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Seat int       `json:"seat"`
}

// EventAction describes an action within a GameEvent payload. Card is left
// empty where it must stay private (exchange selections).
type EventAction struct {
	Card string `json:"card,omitempty"`
	From *int   `json:"from,omitempty"`
	To   *int   `json:"to,omitempty"`
	As   string `json:"as,omitempty"`
}

// GameEvent is the structure broadcast for every match change.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	User    *EventUser             `json:"user,omitempty"`
	Action  *EventAction           `json:"action,omitempty"`
	Outcome string                 `json:"outcome,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	State   *ObfGameState          `json:"state,omitempty"`
}

// Player is one seat of a match. A nil Bot means the seat is driven through
// HandleAction.
type Player struct {
	ID   uuid.UUID
	Name string
	Seat uint8
	Bot  engine.Player
}

// Result summarises a finished match.
type Result struct {
	WinningTeam int // -1 when undecided
	Winners     []uuid.UUID
	Rounds      uint16
	Aborted     bool
}

// DogGame wraps one engine.GameState with seats, logging, events and the
// action log. Exported methods take Mu themselves; callbacks run with Mu held.
type DogGame struct {
	ID    uuid.UUID
	Seed  uint64
	Rules engine.HouseRules

	Players []*Player // indexed by seat
	Engine  engine.GameState

	Started  bool
	GameOver bool
	result   Result

	Mu sync.Mutex

	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc
	Recorder            ActionRecorder

	log         *logrus.Entry
	actionIndex int
	publishing  sync.WaitGroup
}

// NewDogGame creates a match that has not been dealt yet. A nil logger uses
// the logrus standard logger.
func NewDogGame(seed uint64, rules engine.HouseRules, logger *logrus.Logger) *DogGame {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.New()
	return &DogGame{
		ID:    id,
		Seed:  seed,
		Rules: rules,
		log:   logger.WithField("game", id.String()),
	}
}

// AddPlayer seats a new player. Seats fill in order 0..3; seats 0/2 and 1/3
// are partners.
func (g *DogGame) AddPlayer(name string, bot engine.Player) (*Player, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Started {
		return nil, ErrAlreadyStarted
	}
	if len(g.Players) >= engine.NumSeats {
		return nil, ErrGameFull
	}
	p := &Player{
		ID:   uuid.New(),
		Name: name,
		Seat: uint8(len(g.Players)),
		Bot:  bot,
	}
	g.Players = append(g.Players, p)

	g.log.WithFields(logrus.Fields{"player": p.ID, "seat": p.Seat, "name": name, "bot": bot != nil}).Info("player added")
	g.logAction(p.ID, "player_add", map[string]interface{}{"seat": p.Seat, "name": name, "bot": bot != nil})
	return p, nil
}

// Start deals the first round once all four seats are taken.
func (g *DogGame) Start() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Started {
		return ErrAlreadyStarted
	}
	if len(g.Players) != engine.NumSeats {
		return fmt.Errorf("%w: have %d of %d", ErrNeedPlayers, len(g.Players), engine.NumSeats)
	}

	g.Engine = engine.NewGame(g.Seed, g.Rules)
	for _, p := range g.Players {
		if p.Name != "" {
			g.Engine.Players[p.Seat].Name = p.Name
		}
	}
	if err := g.Engine.Start(); err != nil {
		g.log.WithError(err).Error("failed to deal")
		return fmt.Errorf("game %s: %w", g.ID, err)
	}
	g.Started = true

	starting := g.Engine.StartingPlayer
	g.log.WithFields(logrus.Fields{"seed": g.Seed, "starting_seat": starting}).Info("game started")
	g.logAction(uuid.Nil, "game_start", map[string]interface{}{"seed": g.Seed, "startingSeat": starting})

	seats := make([]EventUser, len(g.Players))
	for i, p := range g.Players {
		seats[i] = EventUser{ID: p.ID, Seat: int(p.Seat)}
	}
	g.fireEvent(GameEvent{
		Type:    EventGameStart,
		Payload: map[string]interface{}{"seats": seats, "startingSeat": starting, "round": g.Engine.Round},
	})
	g.broadcastSyncStateToAll()
	g.broadcastPlayerTurn()
	return nil
}

// IsOver reports whether the match has ended.
func (g *DogGame) IsOver() bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.GameOver
}

// Result returns the outcome of a finished match.
func (g *DogGame) Result() Result {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.result
}

// GetState returns a full unmasked copy of the engine state.
func (g *DogGame) GetState() engine.GameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.Engine.GetState()
}

// SetState replaces the engine state, e.g. to resume a saved match, and
// re-syncs every seat.
func (g *DogGame) SetState(s engine.GameState) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	g.Engine.SetState(s)
	g.Started = s.Phase != engine.PhaseSetup
	g.GameOver = s.Phase == engine.PhaseFinished
	g.log.WithFields(logrus.Fields{"phase": s.Phase.String(), "round": s.Round}).Info("state replaced")
	g.logAction(uuid.Nil, "state_set", map[string]interface{}{"round": s.Round, "phase": s.Phase.String()})
	g.broadcastSyncStateToAll()
}

// Wait blocks until every queued action record has been handed to the
// recorder.
func (g *DogGame) Wait() {
	g.publishing.Wait()
}

// endGame records the result and notifies everyone.
// Assumes lock is held by caller.
func (g *DogGame) endGame(aborted bool) {
	if g.GameOver {
		return
	}
	g.GameOver = true

	res := Result{WinningTeam: -1, Rounds: g.Engine.Round, Aborted: aborted}
	if !aborted && g.Engine.WinningTeam >= 0 {
		res.WinningTeam = int(g.Engine.WinningTeam)
		for _, p := range g.Players {
			if int(engine.TeamOf(p.Seat)) == res.WinningTeam {
				res.Winners = append(res.Winners, p.ID)
			}
		}
	}
	g.result = res

	g.log.WithFields(logrus.Fields{
		"winning_team": res.WinningTeam,
		"rounds":       res.Rounds,
		"aborted":      aborted,
	}).Info("game ended")

	winners := make([]string, len(res.Winners))
	for i, id := range res.Winners {
		winners[i] = id.String()
	}
	payload := map[string]interface{}{
		"winningTeam": res.WinningTeam,
		"winners":     winners,
		"rounds":      res.Rounds,
		"aborted":     aborted,
	}
	g.logAction(uuid.Nil, string(EventGameEnd), payload)
	g.fireEvent(GameEvent{Type: EventGameEnd, Payload: payload})
	g.broadcastSyncStateToAll()

	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, res.WinningTeam, res.Winners)
	}
}

// fireEvent broadcasts an event to all seats via the BroadcastFn callback.
// Assumes lock is held by caller.
func (g *DogGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends an event to one seat via BroadcastToPlayerFn.
// Assumes lock is held by caller.
func (g *DogGame) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn != nil {
		g.BroadcastToPlayerFn(playerID, ev)
	}
}

// broadcastPlayerTurn announces the seat that must decide next.
// Assumes lock is held by caller.
func (g *DogGame) broadcastPlayerTurn() {
	if g.GameOver || !g.Started {
		return
	}
	p := g.Players[g.Engine.ActivePlayer]
	g.fireEvent(GameEvent{
		Type: EventGamePlayerTurn,
		User: eventUser(p),
		Payload: map[string]interface{}{
			"round":    g.Engine.Round,
			"decision": decisionName(g.Engine.DecisionCtx()),
		},
	})
}

// getPlayerByID returns the seated player with the given ID, or nil.
// Assumes lock is held by caller.
func (g *DogGame) getPlayerByID(playerID uuid.UUID) *Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// logAction sends an action record to the Recorder, if any.
// Increments the internal action index for ordering.
// Assumes lock is held by caller.
func (g *DogGame) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if g.Recorder == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActorUserID:   actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}

	g.publishing.Add(1)
	go func(rec cache.GameActionRecord) {
		defer g.publishing.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := g.Recorder.PublishGameAction(ctx, rec); err != nil {
			g.log.WithError(err).WithFields(logrus.Fields{
				"action_index": rec.ActionIndex,
				"action_type":  rec.ActionType,
			}).Error("failed publishing action")
		}
	}(record)
}

func eventUser(p *Player) *EventUser {
	return &EventUser{ID: p.ID, Seat: int(p.Seat)}
}

func decisionName(ctx engine.DecisionContext) string {
	switch ctx {
	case engine.CtxExchange:
		return "exchange"
	case engine.CtxSeven:
		return "seven"
	case engine.CtxJoker:
		return "joker"
	case engine.CtxPlay:
		return "play"
	case engine.CtxSetup:
		return "setup"
	}
	return "none"
}

// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"

	engine "github.com/jason-s-yu/dog/engine"
)

// ObfMarble is one marble as every seat sees it.
type ObfMarble struct {
	Pos  int    `json:"pos"`
	Zone string `json:"zone"` // track, kennel or finish
	Safe bool   `json:"safe,omitempty"`
}

// ObfPlayerState represents the state of a single seat, obfuscated for a specific observer.
type ObfPlayerState struct {
	PlayerID      uuid.UUID   `json:"playerId"`
	Username      string      `json:"username"`
	Seat          int         `json:"seat"`
	Team          int         `json:"team"`
	Bot           bool        `json:"bot"`
	HandSize      int         `json:"handSize"`
	IsCurrentTurn bool        `json:"isCurrentTurn"`
	Finished      bool        `json:"finished"`
	Marbles       []ObfMarble `json:"marbles"`
	// RevealedHand is populated only for the player requesting the state ('self').
	RevealedHand []string `json:"revealedHand,omitempty"`
	// ExchangeCard is the self seat's pending partner exchange pick.
	ExchangeCard string `json:"exchangeCard,omitempty"`
}

// ObfGameState represents the overall match state, obfuscated for a specific observer.
type ObfGameState struct {
	GameID          uuid.UUID        `json:"gameId"`
	Started         bool             `json:"started"`
	GameOver        bool             `json:"gameOver"`
	Round           int              `json:"round"`
	StartingSeat    int              `json:"startingSeat"`
	CurrentPlayerID uuid.UUID        `json:"currentPlayerId"`
	Decision        string           `json:"decision"`
	DrawPileSize    int              `json:"drawPileSize"`
	DiscardSize     int              `json:"discardSize"`
	DiscardTop      string           `json:"discardTop,omitempty"`
	ActiveCard      string           `json:"activeCard,omitempty"`
	StepsRemaining  int              `json:"stepsRemaining,omitempty"`
	WinningTeam     int              `json:"winningTeam"`
	Players         []ObfPlayerState `json:"players"`
	// LegalActions is populated only when the requesting player must decide.
	LegalActions []string `json:"legalActions,omitempty"`
}

// GetObfuscatedState returns the match as forUser may see it.
func (g *DogGame) GetObfuscatedState(forUser uuid.UUID) ObfGameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.obfuscatedState(forUser)
}

// obfuscatedState builds the snapshot from the engine's masked player view.
// This function assumes the game lock is HELD by the caller.
func (g *DogGame) obfuscatedState(forUser uuid.UUID) ObfGameState {
	self := g.getPlayerByID(forUser)
	seat := uint8(engine.NumSeats) // spectators see no hand
	if self != nil {
		seat = self.Seat
	}
	view := g.Engine.PlayerView(seat)

	obf := ObfGameState{
		GameID:       g.ID,
		Started:      g.Started,
		GameOver:     g.GameOver || view.IsTerminal(),
		Round:        int(view.Round),
		StartingSeat: int(view.StartingPlayer),
		Decision:     decisionName(view.DecisionCtx()),
		DrawPileSize: int(view.DrawLen),
		DiscardSize:  int(view.DiscardLen),
		WinningTeam:  -1,
	}
	if g.Started {
		obf.WinningTeam = int(view.WinningTeam)
		if top := view.DiscardTop(); top != engine.EmptyCard {
			obf.DiscardTop = top.String()
		}
		if view.ActiveCard != engine.EmptyCard {
			obf.ActiveCard = view.ActiveCard.String()
		}
		if view.SevenInProgress() {
			obf.StepsRemaining = int(view.StepsRemaining)
		}
	}

	live := g.Started && !obf.GameOver
	if live && int(view.ActivePlayer) < len(g.Players) {
		obf.CurrentPlayerID = g.Players[view.ActivePlayer].ID
	}

	obf.Players = make([]ObfPlayerState, len(g.Players))
	for i, pl := range g.Players {
		ps := &view.Players[pl.Seat]
		op := ObfPlayerState{
			PlayerID:      pl.ID,
			Username:      pl.Name,
			Seat:          int(pl.Seat),
			Team:          int(engine.TeamOf(pl.Seat)),
			Bot:           pl.Bot != nil,
			HandSize:      int(ps.HandLen),
			IsCurrentTurn: live && view.ActivePlayer == pl.Seat,
			Finished:      g.Started && view.SeatFinished(pl.Seat),
			Marbles:       make([]ObfMarble, engine.MarblesPerPlayer),
		}
		for j, m := range ps.Marbles {
			op.Marbles[j] = ObfMarble{Pos: int(m.Pos), Zone: zoneOf(m.Pos), Safe: m.Safe}
		}
		if self != nil && pl.ID == self.ID {
			op.RevealedHand = make([]string, 0, ps.HandLen)
			for _, c := range ps.Cards() {
				op.RevealedHand = append(op.RevealedHand, c.String())
			}
			if sel := view.Exchange.Selected[pl.Seat]; sel != engine.EmptyCard && !view.CardExchanged {
				op.ExchangeCard = sel.String()
			}
		}
		obf.Players[i] = op
	}

	if self != nil && obf.CurrentPlayerID == self.ID {
		for _, a := range g.Engine.LegalActions() {
			obf.LegalActions = append(obf.LegalActions, a.String())
		}
	}
	return obf
}

// broadcastSyncStateToAll sends every seat its own obfuscated snapshot.
// Assumes lock is held by caller.
func (g *DogGame) broadcastSyncStateToAll() {
	if g.BroadcastToPlayerFn == nil {
		return
	}
	for _, p := range g.Players {
		st := g.obfuscatedState(p.ID)
		g.fireEventToPlayer(p.ID, GameEvent{
			Type:  EventPrivateSyncState,
			User:  eventUser(p),
			State: &st,
		})
	}
}

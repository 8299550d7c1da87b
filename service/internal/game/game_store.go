package game

import (
	"sync"

	"github.com/google/uuid"
)

// GameStore keeps the running matches of a process.
type GameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*DogGame
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*DogGame),
	}
}

func (s *GameStore) AddGame(game *DogGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
}

func (s *GameStore) GetGame(id uuid.UUID) (*DogGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, exists := s.games[id]
	return g, exists
}

func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// Len returns the number of stored matches.
func (s *GameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// GetGameByPlayerID returns the match seating playerID, or nil if none does.
// The store lock is released before any game lock is taken, so OnGameEnd
// callbacks may call DeleteGame.
func (s *GameStore) GetGameByPlayerID(playerID uuid.UUID) *DogGame {
	s.mu.Lock()
	games := make([]*DogGame, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	s.mu.Unlock()

	for _, g := range games {
		g.Mu.Lock()
		p := g.getPlayerByID(playerID)
		g.Mu.Unlock()
		if p != nil {
			return g
		}
	}
	return nil
}

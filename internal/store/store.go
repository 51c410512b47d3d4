// Package store implements GameStore: the game_id-keyed table of live
// games.
package store

import (
	"sync"

	"github.com/WToma/missingparts/internal/gameplay"
	"github.com/rs/zerolog"
)

// Store maps game_id to *gameplay.Game, generating monotonically
// increasing IDs. Insert and lookup are serialized through mu; once a
// *gameplay.Game reference is obtained, callers mutate it through its own
// lock without holding the store's, matching the reference GameManager's
// CHashMap-backed with_game/with_mut_game split between store-level and
// game-level locking.
type Store struct {
	mu     sync.RWMutex
	games  map[int]*gameplay.Game
	nextID int
	log    zerolog.Logger
}

func New(log zerolog.Logger) *Store {
	return &Store{games: make(map[int]*gameplay.Game), log: log}
}

// Insert reserves the next game_id, calls build with it, records the game
// build returns under that ID, and returns that game.
func (s *Store) Insert(build func(gameID int) *gameplay.Game) *gameplay.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	g := build(id)
	s.games[id] = g
	s.log.Info().Int("game_id", id).Msg("game created")
	return g
}

// Get returns the game for gameID, or false if none exists.
func (s *Store) Get(gameID int) (*gameplay.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[gameID]
	return g, ok
}

// Len reports the number of games currently tracked, for diagnostics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Each calls f for every game currently tracked, for diagnostics. f must
// not call back into Store.
func (s *Store) Each(f func(gameID int, g *gameplay.Game)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, g := range s.games {
		f(id, g)
	}
}

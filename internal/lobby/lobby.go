// Package lobby implements Lobby: matchmaking over waiting players, and
// the deal step that turns a matched group into a new Game.
package lobby

import (
	"errors"
	"math/rand"
	"sort"
	"sync"

	"github.com/WToma/missingparts/internal/domain"
	"github.com/WToma/missingparts/internal/gameplay"
	"github.com/WToma/missingparts/internal/session"
	"github.com/WToma/missingparts/internal/store"
	"github.com/rs/zerolog"
)

// ErrInvalidSizePreferences is returned by Join when min/max violate
// 2 ≤ min ≤ max.
var ErrInvalidSizePreferences = errors.New("lobby: invalid game size preferences")

// Config controls dealing and matchmaking policy left open by the spec.
type Config struct {
	// OpeningHandSize is how many cards each player is dealt at game
	// creation, beyond their missing_part.
	OpeningHandSize int

	// MaxMatchmakingGroupSize bounds how large a single match can be; the
	// matchmaking scan tries candidate sizes from min(this, waiting count)
	// down to 2.
	MaxMatchmakingGroupSize int

	// DefaultMovesLeft is the moves_left every dealt player starts with.
	// nil means unbounded.
	DefaultMovesLeft *int
}

// Assignment is where a matched LobbyPlayer ended up.
type Assignment struct {
	GameID         int
	PlayerIDInGame int
}

type waitingPlayer struct {
	idInLobby int
	minSize   int
	maxSize   int
	isTester  bool
}

// Lobby is the single exclusion unit over waiting players and the
// matchmaking pass, matching the reference server's lobby.rs Lobby: a
// single coarse lock around one internal struct, rather than fine-grained
// per-field locking.
type Lobby struct {
	mu          sync.Mutex
	waiting     []waitingPlayer
	assignments map[int]Assignment
	nextID      int

	cfg       Config
	sessions  *session.Registry
	store     *store.Store
	rng       *rand.Rand
	log       zerolog.Logger
}

func New(cfg Config, sessions *session.Registry, gameStore *store.Store, rng *rand.Rand, log zerolog.Logger) *Lobby {
	return &Lobby{
		assignments: make(map[int]Assignment),
		cfg:         cfg,
		sessions:    sessions,
		store:       gameStore,
		rng:         rng,
		log:         log,
	}
}

// JoinResult is the outcome of Join: either the player is now waiting
// (Matched == false), or they closed an outstanding match and are already
// seated in a freshly created game.
type JoinResult struct {
	IDInLobby int
	Token     session.Token
	Matched   bool
	Assignment
}

// Join adds a player with the given size preferences (both inclusive), and
// then runs a matchmaking pass before returning — so a join that itself
// completes a group returns JoinedGameDirectly semantics in the same call.
func (l *Lobby) Join(minSize, maxSize int, isTester bool) (JoinResult, error) {
	if minSize < 2 || maxSize < minSize {
		return JoinResult{}, ErrInvalidSizePreferences
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	token := l.sessions.IssueLobbyToken(id)
	l.waiting = append(l.waiting, waitingPlayer{idInLobby: id, minSize: minSize, maxSize: maxSize, isTester: isTester})

	l.runMatchmaking()

	if assignment, ok := l.assignments[id]; ok {
		// formGame already upgraded this token in place; UpgradeLobbyToGame
		// returns the same value back, so token already reflects it.
		return JoinResult{IDInLobby: id, Token: token, Matched: true, Assignment: assignment}, nil
	}
	return JoinResult{IDInLobby: id, Token: token, Matched: false}, nil
}

// Poll reports whether id has been matched yet.
func (l *Lobby) Poll(id int) (Assignment, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assignments[id]
	return a, ok
}

// runMatchmaking implements §4.4's matchmaking algorithm literally: sort
// waiting players by id_in_lobby ascending, then for each candidate size k
// from the policy maximum down to 2, check whether the first k of them
// jointly support exactly k players. Repeat until no group forms. Must be
// called with mu held.
func (l *Lobby) runMatchmaking() {
	for {
		sort.Slice(l.waiting, func(i, j int) bool { return l.waiting[i].idInLobby < l.waiting[j].idInLobby })

		maxK := l.cfg.MaxMatchmakingGroupSize
		if len(l.waiting) < maxK {
			maxK = len(l.waiting)
		}

		formed := false
		for k := maxK; k >= 2; k-- {
			group := l.waiting[:k]
			maxMin, minMax := group[0].minSize, group[0].maxSize
			for _, p := range group[1:] {
				if p.minSize > maxMin {
					maxMin = p.minSize
				}
				if p.maxSize < minMax {
					minMax = p.maxSize
				}
			}
			if maxMin <= k && k <= minMax {
				l.formGame(group)
				l.waiting = l.waiting[k:]
				formed = true
				break
			}
		}
		if !formed {
			return
		}
	}
}

// formGame deals a fresh game for the given matched group and records each
// player's assignment. Must be called with mu held.
func (l *Lobby) formGame(group []waitingPlayer) {
	snapshot := deal(len(group), l.cfg, l.rng, group)
	game := l.store.Insert(func(gameID int) *gameplay.Game { return gameplay.New(gameID, snapshot) })

	for playerIDInGame, p := range group {
		assignment := Assignment{GameID: game.ID(), PlayerIDInGame: playerIDInGame}
		l.assignments[p.idInLobby] = assignment
		// Every matched player's token is upgraded here, not just the one
		// whose Join call happened to trigger this pass — a player matched
		// as a side effect of someone else joining still needs their
		// existing lobby token to start authenticating the game seat.
		l.sessions.UpgradeLobbyToGame(p.idInLobby, assignment.GameID, assignment.PlayerIDInGame)
	}
	l.log.Info().Int("game_id", game.ID()).Int("size", len(group)).Msg("matchmaking formed a game")
}

// deal implements §4.4's game-creation steps: shuffle, carve off each
// player's missing_part, deal opening hands, and leave the remainder as
// the draw pile. Dealing order is a sequential block per player (player i
// gets the i-th OpeningHandSize-card block) rather than round-robin; both
// are deterministic given the shuffle, and the spec only requires
// determinism, not a specific dealing order.
func deal(numPlayers int, cfg Config, rng *rand.Rand, group []waitingPlayer) domain.Snapshot {
	deck := domain.NewShuffledDeck(rng)

	players := make([]domain.Player, numPlayers)
	missingParts := deck.PopTop(numPlayers)
	for i := range players {
		players[i].MissingPart = missingParts[i]
		players[i].GatheredParts = deck.PopTop(cfg.OpeningHandSize)
		if cfg.DefaultMovesLeft != nil {
			v := *cfg.DefaultMovesLeft
			players[i].MovesLeft = &v
		}
		if i < len(group) {
			players[i].IsTester = group[i].isTester
		}
	}

	return domain.Snapshot{
		Players: players,
		Draw:    deck,
		State:   domain.WaitingForPlayerActionState(0),
	}
}

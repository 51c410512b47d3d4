// Package gameplay implements Game: the per-match wrapper around a domain
// snapshot that serializes mutation and builds the public/private views.
package gameplay

import (
	"errors"
	"sync"

	"github.com/WToma/missingparts/internal/domain"
)

// ErrNoSuchPlayer is returned by DescribePrivate for an out-of-range player
// index.
var ErrNoSuchPlayer = errors.New("gameplay: no such player")

// PublicPlayerView is one player's entry in a public game_description: it
// omits missing_part, which is only ever shown to that player.
type PublicPlayerView struct {
	GatheredParts []domain.Card `json:"gathered_parts"`
	Escaped       bool          `json:"escaped"`
	MovesLeft     *int          `json:"moves_left"`
}

// PublicView is describe_public's return value: draw count, discard,
// per-player public state, and the turn state machine's current state. It
// never reveals the draw pile's contents or any player's missing_part.
type PublicView struct {
	NumCardsInDraw int                `json:"num_cards_in_draw"`
	Discard        []domain.Card      `json:"discard"`
	Players        []PublicPlayerView `json:"players"`
	State          domain.GameState   `json:"state"`
}

// Game owns a GameRules-governed snapshot for one match, identified by
// GameID, and serializes every mutation through mu (§5: each Game is an
// independent unit of exclusion).
type Game struct {
	mu       sync.Mutex
	gameID   int
	snapshot domain.Snapshot
}

// New wraps snapshot as game gameID. snapshot is expected to already carry
// each player's missing_part and is_tester flag (domain.Player fields) set
// by the dealing step.
func New(gameID int, snapshot domain.Snapshot) *Game {
	return &Game{gameID: gameID, snapshot: snapshot}
}

func (g *Game) ID() int {
	return g.gameID
}

// NumPlayers reports the number of seats in the game. Safe to call without
// holding any external lock; it only reads the slice length under g's own
// lock.
func (g *Game) NumPlayers() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.snapshot.Players)
}

// Apply runs GameRules.Apply for (actor, action) against the game's current
// snapshot, atomically committing the result on success. On rejection the
// game's state is left untouched and the *domain.ActionError is returned.
func (g *Game) Apply(actor int, action domain.PlayerAction) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	next, err := domain.Apply(g.snapshot, actor, action)
	if err != nil {
		return err
	}
	g.snapshot = next
	return nil
}

// DescribePublic returns the public view of the game under a single lock
// acquisition, so readers always observe a consistent snapshot.
func (g *Game) DescribePublic() PublicView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return buildPublicView(g.snapshot)
}

// DescribePrivate returns player's missing_part.
func (g *Game) DescribePrivate(player int) (domain.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if player < 0 || player >= len(g.snapshot.Players) {
		return domain.Card{}, ErrNoSuchPlayer
	}
	return g.snapshot.Players[player].MissingPart, nil
}

// Results computes the current winners/stuck split.
func (g *Game) Results() domain.GameResults {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.Results(g.snapshot)
}

func buildPublicView(snap domain.Snapshot) PublicView {
	players := make([]PublicPlayerView, len(snap.Players))
	for i, p := range snap.Players {
		players[i] = PublicPlayerView{
			GatheredParts: append([]domain.Card{}, p.GatheredParts...),
			Escaped:       p.Escaped,
			MovesLeft:     p.MovesLeft,
		}
	}
	return PublicView{
		NumCardsInDraw: snap.Draw.Len(),
		Discard:        append([]domain.Card{}, snap.Discard...),
		Players:        players,
		State:          snap.State,
	}
}

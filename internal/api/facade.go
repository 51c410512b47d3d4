// Package api implements the façade of §6: Facade composes Lobby,
// GameStore, and SessionRegistry into the five operations a transport
// calls, and owns the Authorization/Lobby/Routing error taxonomy of §7
// that sits above GameRules' own ActionError.
package api

import (
	"github.com/WToma/missingparts/internal/domain"
	"github.com/WToma/missingparts/internal/gameplay"
	"github.com/WToma/missingparts/internal/lobby"
	"github.com/WToma/missingparts/internal/session"
	"github.com/WToma/missingparts/internal/store"
)

// Facade is the single entry point a transport binds its endpoints to.
type Facade struct {
	lobby    *lobby.Lobby
	store    *store.Store
	sessions *session.Registry
}

func NewFacade(l *lobby.Lobby, s *store.Store, sessions *session.Registry) *Facade {
	return &Facade{lobby: l, store: s, sessions: sessions}
}

// JoinLobbyResult is the response to POST /lobby.
type JoinLobbyResult struct {
	Token          session.Token
	IDInLobby      int
	Matched        bool
	GameID         int
	PlayerIDInGame int
}

// JoinLobby admits a new player with the given size preferences.
func (f *Facade) JoinLobby(minSize, maxSize int, isTester bool) (JoinLobbyResult, error) {
	res, err := f.lobby.Join(minSize, maxSize, isTester)
	if err != nil {
		return JoinLobbyResult{}, ErrInvalidSizePreferences
	}
	return JoinLobbyResult{
		Token:          res.Token,
		IDInLobby:      res.IDInLobby,
		Matched:        res.Matched,
		GameID:         res.Assignment.GameID,
		PlayerIDInGame: res.Assignment.PlayerIDInGame,
	}, nil
}

// PollLobby reports whether idInLobby has been matched, after verifying
// token authenticates that lobby id.
func (f *Facade) PollLobby(token session.Token, idInLobby int) (lobby.Assignment, error) {
	if !f.sessions.AuthorizeLobby(token, idInLobby) {
		return lobby.Assignment{}, ErrBadToken
	}
	assignment, ok := f.lobby.Poll(idInLobby)
	if !ok {
		return lobby.Assignment{}, ErrNotMatchedYet
	}
	return assignment, nil
}

// DescribePrivate returns a player's missing_part, after verifying token
// authenticates that (gameID, playerID) seat.
func (f *Facade) DescribePrivate(token session.Token, gameID, playerID int) (domain.Card, error) {
	if !f.sessions.AuthorizeGame(token, gameID, playerID) {
		return domain.Card{}, ErrTokenNotForThisResource
	}
	g, ok := f.store.Get(gameID)
	if !ok {
		return domain.Card{}, ErrNoSuchGame
	}
	card, err := g.DescribePrivate(playerID)
	if err != nil {
		return domain.Card{}, ErrNoSuchPlayer
	}
	return card, nil
}

// SubmitAction applies action as playerID in gameID, after verifying token
// authenticates that seat. A rejected action surfaces its
// *domain.ActionError unchanged; the caller distinguishes it from the
// Authorization/Routing errors above by type.
func (f *Facade) SubmitAction(token session.Token, gameID, playerID int, action domain.PlayerAction) error {
	if !f.sessions.AuthorizeGame(token, gameID, playerID) {
		return ErrTokenNotForThisResource
	}
	g, ok := f.store.Get(gameID)
	if !ok {
		return ErrNoSuchGame
	}
	return g.Apply(playerID, action)
}

// DescribeGame returns the public view of gameID. No authorization is
// required, per §6.
func (f *Facade) DescribeGame(gameID int) (gameplay.PublicView, error) {
	g, ok := f.store.Get(gameID)
	if !ok {
		return gameplay.PublicView{}, ErrNoSuchGame
	}
	return g.DescribePublic(), nil
}

// Package httpapi binds internal/api's Facade to the five endpoints of
// spec.md §6: a thin chi-based transport, illustrative only. JSON5 and
// content negotiation are explicitly out of core scope (§1) and not
// implemented here; only JSON is served.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/WToma/missingparts/internal/api"
	"github.com/WToma/missingparts/internal/domain"
	"github.com/WToma/missingparts/internal/session"
)

// Server wraps the façade with a chi router implementing §6.
type Server struct {
	r      *chi.Mux
	facade *api.Facade
	log    zerolog.Logger
}

// New constructs a Server, installs middleware, and registers the five
// endpoints of §6.
func New(facade *api.Facade, log zerolog.Logger) *Server {
	s := &Server{r: chi.NewRouter(), facade: facade, log: log}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Post("/lobby", s.handleJoinLobby)
	s.r.Get("/lobby/players/{id}/game", s.handlePollLobby)
	s.r.Get("/games/{gid}/players/{pid}/private", s.handleDescribePrivate)
	s.r.Post("/games/{gid}/players/{pid}/moves", s.handleSubmitAction)
	s.r.Get("/games/{gid}", s.handleDescribeGame)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router, for tests.
func (s *Server) Router() chi.Router { return s.r }

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	return h
}

func pathInt(r *http.Request, key string) (int, bool) {
	v := chi.URLParam(r, key)
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// ---- POST /lobby ----

type joinLobbyRequest struct {
	MinSize  int  `json:"min_size"`
	MaxSize  int  `json:"max_size"`
	IsTester bool `json:"is_tester,omitempty"`
}

type joinLobbyResponse struct {
	Token     string `json:"token"`
	IDInLobby int    `json:"id_in_lobby"`
}

type joinedGameDirectlyResponse struct {
	Token          string `json:"token"`
	GameID         int    `json:"game_id"`
	PlayerIDInGame int    `json:"player_id_in_game"`
}

func (s *Server) handleJoinLobby(w http.ResponseWriter, r *http.Request) {
	var req joinLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	res, err := s.facade.JoinLobby(req.MinSize, req.MaxSize, req.IsTester)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_size_preferences")
		return
	}

	if res.Matched {
		writeJSON(w, http.StatusCreated, joinedGameDirectlyResponse{
			Token:          string(res.Token),
			GameID:         res.GameID,
			PlayerIDInGame: res.PlayerIDInGame,
		})
		return
	}
	writeJSON(w, http.StatusCreated, joinLobbyResponse{
		Token:     string(res.Token),
		IDInLobby: res.IDInLobby,
	})
}

// ---- GET /lobby/players/{id}/game ----

type foundGameResponse struct {
	GameID         int `json:"game_id"`
	PlayerIDInGame int `json:"player_id_in_game"`
}

func (s *Server) handlePollLobby(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	assignment, err := s.facade.PollLobby(tokenOf(r), id)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrBadToken):
			writeError(w, http.StatusUnauthorized, "bad_token")
		case errors.Is(err, api.ErrNotMatchedYet):
			writeError(w, http.StatusNotFound, "not_matched_yet")
		default:
			writeError(w, http.StatusInternalServerError, "internal")
		}
		return
	}

	w.Header().Set("Location", privateInfoURL(assignment.GameID, assignment.PlayerIDInGame))
	writeJSON(w, http.StatusTemporaryRedirect, foundGameResponse{
		GameID:         assignment.GameID,
		PlayerIDInGame: assignment.PlayerIDInGame,
	})
}

func privateInfoURL(gameID, playerID int) string {
	return "/games/" + strconv.Itoa(gameID) + "/players/" + strconv.Itoa(playerID) + "/private"
}

// ---- GET /games/{gid}/players/{pid}/private ----

type playerPrivateResponse struct {
	MissingPart domain.Card `json:"missing_part"`
}

func (s *Server) handleDescribePrivate(w http.ResponseWriter, r *http.Request) {
	gid, ok1 := pathInt(r, "gid")
	pid, ok2 := pathInt(r, "pid")
	if !ok1 || !ok2 {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	card, err := s.facade.DescribePrivate(tokenOf(r), gid, pid)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrTokenNotForThisResource):
			writeError(w, http.StatusForbidden, "token_not_for_this_resource")
		case errors.Is(err, api.ErrNoSuchGame):
			writeError(w, http.StatusNotFound, "no_such_game")
		case errors.Is(err, api.ErrNoSuchPlayer):
			writeError(w, http.StatusNotFound, "no_such_player")
		default:
			writeError(w, http.StatusInternalServerError, "internal")
		}
		return
	}
	writeJSON(w, http.StatusOK, playerPrivateResponse{MissingPart: card})
}

// ---- POST /games/{gid}/players/{pid}/moves ----

func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	gid, ok1 := pathInt(r, "gid")
	pid, ok2 := pathInt(r, "pid")
	if !ok1 || !ok2 {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	var action domain.PlayerAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	err := s.facade.SubmitAction(tokenOf(r), gid, pid, action)
	if err != nil {
		var actionErr *domain.ActionError
		switch {
		case errors.Is(err, api.ErrTokenNotForThisResource):
			writeError(w, http.StatusForbidden, "token_not_for_this_resource")
		case errors.Is(err, api.ErrNoSuchGame):
			writeError(w, http.StatusNotFound, "no_such_game")
		case errors.As(err, &actionErr):
			s.log.Debug().Int("game_id", gid).Int("player_id", pid).Str("code", string(actionErr.Code)).Msg("action rejected")
			writeJSON(w, http.StatusBadRequest, actionErr)
		default:
			writeError(w, http.StatusInternalServerError, "internal")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- GET /games/{gid} ----

func (s *Server) handleDescribeGame(w http.ResponseWriter, r *http.Request) {
	gid, ok := pathInt(r, "gid")
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	view, err := s.facade.DescribeGame(gid)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_such_game")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func tokenOf(r *http.Request) session.Token {
	return session.Token(bearerToken(r))
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/WToma/missingparts/internal/api"
	"github.com/WToma/missingparts/internal/lobby"
	"github.com/WToma/missingparts/internal/session"
	"github.com/WToma/missingparts/internal/store"
)

func newTestServer() *Server {
	sessions := session.NewRegistry()
	gameStore := store.New(zerolog.Nop())
	cfg := lobby.Config{OpeningHandSize: 4, MaxMatchmakingGroupSize: 8}
	l := lobby.New(cfg, sessions, gameStore, rand.New(rand.NewSource(1)), zerolog.Nop())
	facade := api.NewFacade(l, gameStore, sessions)
	return New(facade, zerolog.Nop())
}

func doRequest(s *Server, method, path, token string, body []byte) *httptest.ResponseRecorder {
	var reqBody *bytes.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestJoinLobbyThenPollReturnsNotMatchedYet(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPost, "/lobby", "", []byte(`{"min_size":2,"max_size":4}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var joined joinLobbyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &joined); err != nil {
		t.Fatalf("decode join response: %v", err)
	}
	if joined.Token == "" {
		t.Fatalf("expected a non-empty token")
	}

	pollRec := doRequest(s, http.MethodGet, "/lobby/players/0/game", joined.Token, nil)
	if pollRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 (not matched yet), got %d", pollRec.Code)
	}
}

func TestJoinLobbyBadSizePreferencesReturns400(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPost, "/lobby", "", []byte(`{"min_size":1,"max_size":1}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTwoCompatibleJoinsMatchDirectlyAndGameIsVisible(t *testing.T) {
	s := newTestServer()

	first := doRequest(s, http.MethodPost, "/lobby", "", []byte(`{"min_size":2,"max_size":2}`))
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := doRequest(s, http.MethodPost, "/lobby", "", []byte(`{"min_size":2,"max_size":2}`))
	if second.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", second.Code)
	}
	var directly joinedGameDirectlyResponse
	if err := json.Unmarshal(second.Body.Bytes(), &directly); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if directly.Token == "" {
		t.Fatalf("expected the second joiner to get a token bound to their game seat")
	}

	gameRec := doRequest(s, http.MethodGet, "/games/0", "", nil)
	if gameRec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a public game description, got %d: %s", gameRec.Code, gameRec.Body.String())
	}

	privRec := doRequest(s, http.MethodGet, "/games/0/players/1/private", directly.Token, nil)
	if privRec.Code != http.StatusOK {
		t.Fatalf("expected 200 for the second joiner's private view, got %d", privRec.Code)
	}
}

func TestSubmitActionRejectsWrongTurnWith400(t *testing.T) {
	s := newTestServer()

	doRequest(s, http.MethodPost, "/lobby", "", []byte(`{"min_size":2,"max_size":2}`))
	second := doRequest(s, http.MethodPost, "/lobby", "", []byte(`{"min_size":2,"max_size":2}`))
	var directly joinedGameDirectlyResponse
	_ = json.Unmarshal(second.Body.Bytes(), &directly)

	// the second joiner is seat 1; seat 0 has the turn, so this must fail.
	rec := doRequest(s, http.MethodPost, "/games/0/players/1/moves", directly.Token, []byte(`"Skip"`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 NotYourTurn, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDescribeGameUnknownIDReturns404(t *testing.T) {
	s := newTestServer()
	rec := doRequest(s, http.MethodGet, "/games/999", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

package session

import "testing"

func TestIssueLobbyTokenAuthorizesOnlyThatLobbyID(t *testing.T) {
	r := NewRegistry()
	tok := r.IssueLobbyToken(7)

	if !r.AuthorizeLobby(tok, 7) {
		t.Fatalf("expected token to authorize lobby 7")
	}
	if r.AuthorizeLobby(tok, 8) {
		t.Fatalf("token should not authorize a different lobby id")
	}
	if r.AuthorizeGame(tok, 0, 0) {
		t.Fatalf("a lobby-only token should not authorize any game seat")
	}
}

func TestInverseLookupsByLobbyAndGameSeat(t *testing.T) {
	r := NewRegistry()
	tok := r.IssueLobbyToken(9)

	got, ok := r.TokenForLobby(9)
	if !ok || got != tok {
		t.Fatalf("expected TokenForLobby(9) = %v, got %v (ok=%v)", tok, got, ok)
	}
	if _, ok := r.TokenForGame(9, 0); ok {
		t.Fatalf("expected no game-seat token before upgrade")
	}

	r.UpgradeLobbyToGame(9, 42, 0)
	got, ok = r.TokenForGame(42, 0)
	if !ok || got != tok {
		t.Fatalf("expected TokenForGame(42,0) = %v, got %v (ok=%v)", tok, got, ok)
	}
}

func TestUpgradeLobbyToGameKeepsTheSameToken(t *testing.T) {
	r := NewRegistry()
	tok := r.IssueLobbyToken(3)

	upgraded, ok := r.UpgradeLobbyToGame(3, 42, 1)
	if !ok {
		t.Fatalf("expected upgrade to succeed for a registered lobby id")
	}
	if upgraded != tok {
		t.Fatalf("expected the same token to carry over, got a new one")
	}
	if !r.AuthorizeGame(tok, 42, 1) {
		t.Fatalf("expected token to now authorize game seat (42,1)")
	}
	if !r.AuthorizeLobby(tok, 3) {
		t.Fatalf("expected token to still authorize its original lobby id")
	}
}

func TestUpgradeUnknownLobbyIDFails(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.UpgradeLobbyToGame(999, 1, 0); ok {
		t.Fatalf("expected upgrade of an unregistered lobby id to fail")
	}
}

func TestTokensAreUnpredictableAndOpaque(t *testing.T) {
	r := NewRegistry()
	seen := make(map[Token]bool)
	for i := 0; i < 100; i++ {
		tok := r.IssueLobbyToken(i)
		if seen[tok] {
			t.Fatalf("token collision at iteration %d", i)
		}
		seen[tok] = true
		if len(tok) < 16 {
			t.Fatalf("token %q looks too short to carry 128 bits of entropy", tok)
		}
	}
}

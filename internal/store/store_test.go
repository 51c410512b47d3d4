package store

import (
	"testing"

	"github.com/WToma/missingparts/internal/domain"
	"github.com/WToma/missingparts/internal/gameplay"
	"github.com/rs/zerolog"
)

func emptySnapshot(n int) domain.Snapshot {
	players := make([]domain.Player, n)
	return domain.Snapshot{Players: players, State: domain.WaitingForPlayerActionState(0)}
}

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	s := New(zerolog.Nop())

	g1 := s.Insert(func(id int) *gameplay.Game { return gameplay.New(id, emptySnapshot(2)) })
	g2 := s.Insert(func(id int) *gameplay.Game { return gameplay.New(id, emptySnapshot(2)) })

	if g1.ID() != 0 || g2.ID() != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", g1.ID(), g2.ID())
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 games tracked, got %d", s.Len())
	}
}

func TestGetReturnsNotOkForUnknownID(t *testing.T) {
	s := New(zerolog.Nop())
	if _, ok := s.Get(42); ok {
		t.Fatalf("expected no game for an id that was never inserted")
	}
}

func TestGetReturnsTheSameGameInstance(t *testing.T) {
	s := New(zerolog.Nop())
	inserted := s.Insert(func(id int) *gameplay.Game { return gameplay.New(id, emptySnapshot(3)) })

	got, ok := s.Get(inserted.ID())
	if !ok || got != inserted {
		t.Fatalf("expected Get to return the same *gameplay.Game pointer that was inserted")
	}
}

func TestEachVisitsEveryTrackedGame(t *testing.T) {
	s := New(zerolog.Nop())
	s.Insert(func(id int) *gameplay.Game { return gameplay.New(id, emptySnapshot(2)) })
	s.Insert(func(id int) *gameplay.Game { return gameplay.New(id, emptySnapshot(2)) })

	seen := map[int]bool{}
	s.Each(func(gameID int, g *gameplay.Game) { seen[gameID] = true })
	if len(seen) != 2 {
		t.Fatalf("expected Each to visit 2 games, saw %v", seen)
	}
}

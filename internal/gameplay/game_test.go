package gameplay

import (
	"errors"
	"testing"

	"github.com/WToma/missingparts/internal/domain"
)

func twoPlayerGame() *Game {
	snap := domain.Snapshot{
		Players: []domain.Player{
			{MissingPart: domain.Card{Suit: domain.Hearts, Rank: domain.Ace}},
			{MissingPart: domain.Card{Suit: domain.Spades, Rank: domain.Ace}},
		},
		State: domain.WaitingForPlayerActionState(0),
	}
	return New(7, snap)
}

func TestDescribePublicHidesMissingPartAndDrawContents(t *testing.T) {
	g := twoPlayerGame()
	view := g.DescribePublic()

	if view.NumCardsInDraw != 0 {
		t.Fatalf("expected 0 cards in an empty draw pile, got %d", view.NumCardsInDraw)
	}
	if len(view.Players) != 2 {
		t.Fatalf("expected 2 players in the view, got %d", len(view.Players))
	}
	// PublicPlayerView has no missing_part field at all, so there is
	// nothing to assert beyond the type not compiling with one.
}

func TestDescribePrivateReturnsMissingPart(t *testing.T) {
	g := twoPlayerGame()

	card, err := g.DescribePrivate(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card != (domain.Card{Suit: domain.Spades, Rank: domain.Ace}) {
		t.Fatalf("got %v, want Spades Ace", card)
	}

	if _, err := g.DescribePrivate(5); !errors.Is(err, ErrNoSuchPlayer) {
		t.Fatalf("expected ErrNoSuchPlayer for an out-of-range index, got %v", err)
	}
}

func TestApplyCommitsOnSuccessAndLeavesStateOnRejection(t *testing.T) {
	g := twoPlayerGame()

	if err := g.Apply(1, domain.SkipAction()); err == nil {
		t.Fatalf("expected NotYourTurn, P1 is not the turn-holder")
	}
	if g.DescribePublic().State.Player != 0 {
		t.Fatalf("rejected action should not have changed the turn-holder")
	}

	if err := g.Apply(0, domain.SkipAction()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.DescribePublic().State.Player != 1 {
		t.Fatalf("expected turn to advance to player 1")
	}
}

func TestResultsReflectsEscapes(t *testing.T) {
	g := twoPlayerGame()
	results := g.Results()
	if len(results.Winners) != 0 || len(results.Stuck) != 2 {
		t.Fatalf("expected no winners yet, got %+v", results)
	}
}

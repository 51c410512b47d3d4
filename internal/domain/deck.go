package domain

import "math/rand"

// Deck is the draw pile: an ordered stack of cards, top-of-stack at index 0.
type Deck struct {
	cards []Card
}

// NewShuffledDeck builds a deck containing every card of a standard 52-card
// deck exactly once, shuffled using rng. rng must be supplied by the caller
// so that dealing is reproducible under a seeded source in tests.
func NewShuffledDeck(rng *rand.Rand) Deck {
	cards := FullDeck()
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return Deck{cards: cards}
}

// Len returns the number of cards remaining in the deck.
func (d Deck) Len() int {
	return len(d.cards)
}

// PopTop removes and returns up to n cards from the top of the deck, in the
// order they were drawn (first returned card was on top). If fewer than n
// cards remain, it returns whatever is left.
func (d *Deck) PopTop(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	popped := make([]Card, n)
	copy(popped, d.cards[:n])
	d.cards = d.cards[n:]
	return popped
}

// Cards returns a copy of the remaining cards, top first. Intended for tests
// and for cloning a snapshot; callers must not rely on the draw pile's
// contents being observable through any public API (see gameplay.PublicView).
func (d Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// cloneDeck returns an independent copy of d so snapshots can be passed
// around as values without aliasing the underlying array.
func cloneDeck(d Deck) Deck {
	return Deck{cards: d.Cards()}
}

package domain

import (
	"encoding/json"
	"fmt"
)

// StateKind discriminates the variants of GameState.
type StateKind string

const (
	StateWaitingForPlayerAction      StateKind = "WaitingForPlayerAction"
	StateWaitingForScavengeComplete  StateKind = "WaitingForScavengeComplete"
	StateWaitingForTradeConfirmation StateKind = "WaitingForTradeConfirmation"
	StateFinished                    StateKind = "Finished"
)

// TradeOffer is the pair of cards under negotiation in a pending trade.
type TradeOffer struct {
	Offered    Card `json:"offered"`
	InExchange Card `json:"in_exchange"`
}

// GameState is the part of a game's observable state that determines which
// actions can legally be taken next. It is a tagged union over the four
// variants below; construct one with the matching helper function rather
// than the zero value.
type GameState struct {
	Kind StateKind

	// Player is the turn-holder in WaitingForPlayerAction and
	// WaitingForScavengeComplete.
	Player int

	// ScavengedCards holds the three cards turned up by the pending
	// Scavenge, valid only in WaitingForScavengeComplete.
	ScavengedCards []Card

	// InitiatingPlayer and TradingWithPlayer and Offer are valid only in
	// WaitingForTradeConfirmation.
	InitiatingPlayer  int
	TradingWithPlayer int
	Offer             TradeOffer
}

// WaitingForPlayerActionState builds the state waiting on player's turn.
func WaitingForPlayerActionState(player int) GameState {
	return GameState{Kind: StateWaitingForPlayerAction, Player: player}
}

// WaitingForScavengeCompleteState builds the state waiting on player to
// choose one of scavengedCards.
func WaitingForScavengeCompleteState(player int, scavengedCards []Card) GameState {
	return GameState{Kind: StateWaitingForScavengeComplete, Player: player, ScavengedCards: scavengedCards}
}

// WaitingForTradeConfirmationState builds the state waiting on tradingWithPlayer
// to accept or reject offer.
func WaitingForTradeConfirmationState(initiatingPlayer, tradingWithPlayer int, offer TradeOffer) GameState {
	return GameState{
		Kind:              StateWaitingForTradeConfirmation,
		InitiatingPlayer:  initiatingPlayer,
		TradingWithPlayer: tradingWithPlayer,
		Offer:             offer,
	}
}

// FinishedState builds the terminal state.
func FinishedState() GameState {
	return GameState{Kind: StateFinished}
}

func (s GameState) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case StateWaitingForPlayerAction:
		return json.Marshal(map[string]any{
			string(s.Kind): map[string]any{"player": s.Player},
		})
	case StateWaitingForScavengeComplete:
		return json.Marshal(map[string]any{
			string(s.Kind): map[string]any{
				"player":          s.Player,
				"scavenged_cards": s.ScavengedCards,
			},
		})
	case StateWaitingForTradeConfirmation:
		return json.Marshal(map[string]any{
			string(s.Kind): map[string]any{
				"initiating_player":   s.InitiatingPlayer,
				"trading_with_player": s.TradingWithPlayer,
				"offer":               s.Offer,
			},
		})
	case StateFinished:
		return json.Marshal(string(s.Kind))
	default:
		return nil, fmt.Errorf("domain: unknown GameState kind %q", s.Kind)
	}
}

func (s *GameState) UnmarshalJSON(data []byte) error {
	var bareString string
	if err := json.Unmarshal(data, &bareString); err == nil {
		if bareString != string(StateFinished) {
			return fmt.Errorf("domain: unknown bare GameState variant %q", bareString)
		}
		*s = FinishedState()
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if len(wrapper) != 1 {
		return fmt.Errorf("domain: GameState object must have exactly one key, got %d", len(wrapper))
	}
	for kind, payload := range wrapper {
		switch StateKind(kind) {
		case StateWaitingForPlayerAction:
			var p struct {
				Player int `json:"player"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*s = WaitingForPlayerActionState(p.Player)
		case StateWaitingForScavengeComplete:
			var p struct {
				Player         int    `json:"player"`
				ScavengedCards []Card `json:"scavenged_cards"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*s = WaitingForScavengeCompleteState(p.Player, p.ScavengedCards)
		case StateWaitingForTradeConfirmation:
			var p struct {
				InitiatingPlayer  int        `json:"initiating_player"`
				TradingWithPlayer int        `json:"trading_with_player"`
				Offer             TradeOffer `json:"offer"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*s = WaitingForTradeConfirmationState(p.InitiatingPlayer, p.TradingWithPlayer, p.Offer)
		default:
			return fmt.Errorf("domain: unknown GameState variant %q", kind)
		}
	}
	return nil
}

// Snapshot is the complete, authoritative state of one game at a point in
// time. GameRules.Apply takes a Snapshot and returns a new one; Snapshot
// values are never mutated in place by the rules engine.
type Snapshot struct {
	Players []Player
	Draw    Deck
	Discard []Card
	State   GameState
}

// Clone returns a deep copy of the snapshot, so the rules engine can build
// the "next" snapshot without aliasing the "current" one.
func (s Snapshot) Clone() Snapshot {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = clonePlayer(p)
	}
	discard := make([]Card, len(s.Discard))
	copy(discard, s.Discard)
	state := s.State
	if s.State.ScavengedCards != nil {
		state.ScavengedCards = make([]Card, len(s.State.ScavengedCards))
		copy(state.ScavengedCards, s.State.ScavengedCards)
	}
	return Snapshot{
		Players: players,
		Draw:    cloneDeck(s.Draw),
		Discard: discard,
		State:   state,
	}
}

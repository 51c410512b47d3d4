package domain

import (
	"encoding/json"
	"fmt"
)

// ActionKind discriminates the variants of PlayerAction.
type ActionKind string

const (
	ActionScavenge       ActionKind = "Scavenge"
	ActionFinishScavenge ActionKind = "FinishScavenge"
	ActionShare          ActionKind = "Share"
	ActionTrade          ActionKind = "Trade"
	ActionTradeAccept    ActionKind = "TradeAccept"
	ActionTradeReject    ActionKind = "TradeReject"
	ActionSteal          ActionKind = "Steal"
	ActionScrap          ActionKind = "Scrap"
	ActionEscape         ActionKind = "Escape"
	ActionSkip           ActionKind = "Skip"
	ActionCheatGetCards  ActionKind = "CheatGetCards"
)

// bareActionKinds are the variants with no payload, wire-encoded as a bare
// JSON string rather than a single-key object.
var bareActionKinds = map[ActionKind]bool{
	ActionScavenge:    true,
	ActionTradeAccept: true,
	ActionTradeReject: true,
	ActionEscape:      true,
	ActionSkip:        true,
}

// PlayerAction is a move submitted by a player. It is a tagged union over
// the eleven variants below; construct one with the matching helper
// function rather than the zero value.
type PlayerAction struct {
	Kind ActionKind

	// Card is the chosen card for FinishScavenge, and the stolen card for
	// Steal.
	Card Card

	// WithPlayer names the target of Share and Trade.
	WithPlayer int

	// Offer is the proposed exchange for Trade.
	Offer TradeOffer

	// FromPlayer names the victim of Steal.
	FromPlayer int

	// PlayerCards and ForDiscardCard are the payload of Scrap.
	PlayerCards    []Card
	ForDiscardCard Card

	// Cards is the payload of CheatGetCards.
	Cards []Card
}

func ScavengeAction() PlayerAction { return PlayerAction{Kind: ActionScavenge} }

func FinishScavengeAction(card Card) PlayerAction {
	return PlayerAction{Kind: ActionFinishScavenge, Card: card}
}

func ShareAction(withPlayer int) PlayerAction {
	return PlayerAction{Kind: ActionShare, WithPlayer: withPlayer}
}

func TradeAction(withPlayer int, offer TradeOffer) PlayerAction {
	return PlayerAction{Kind: ActionTrade, WithPlayer: withPlayer, Offer: offer}
}

func TradeAcceptAction() PlayerAction { return PlayerAction{Kind: ActionTradeAccept} }
func TradeRejectAction() PlayerAction { return PlayerAction{Kind: ActionTradeReject} }

func StealAction(fromPlayer int, card Card) PlayerAction {
	return PlayerAction{Kind: ActionSteal, FromPlayer: fromPlayer, Card: card}
}

func ScrapAction(playerCards []Card, forDiscardCard Card) PlayerAction {
	return PlayerAction{Kind: ActionScrap, PlayerCards: playerCards, ForDiscardCard: forDiscardCard}
}

func EscapeAction() PlayerAction { return PlayerAction{Kind: ActionEscape} }
func SkipAction() PlayerAction   { return PlayerAction{Kind: ActionSkip} }

func CheatGetCardsAction(cards []Card) PlayerAction {
	return PlayerAction{Kind: ActionCheatGetCards, Cards: cards}
}

func (a PlayerAction) MarshalJSON() ([]byte, error) {
	if bareActionKinds[a.Kind] {
		return json.Marshal(string(a.Kind))
	}
	switch a.Kind {
	case ActionFinishScavenge:
		return json.Marshal(map[string]any{string(a.Kind): map[string]any{"card": a.Card}})
	case ActionShare:
		return json.Marshal(map[string]any{string(a.Kind): map[string]any{"with_player": a.WithPlayer}})
	case ActionTrade:
		return json.Marshal(map[string]any{string(a.Kind): map[string]any{
			"with_player": a.WithPlayer,
			"offer":       a.Offer,
		}})
	case ActionSteal:
		return json.Marshal(map[string]any{string(a.Kind): map[string]any{
			"from_player": a.FromPlayer,
			"card":        a.Card,
		}})
	case ActionScrap:
		return json.Marshal(map[string]any{string(a.Kind): map[string]any{
			"player_cards":     a.PlayerCards,
			"for_discard_card": a.ForDiscardCard,
		}})
	case ActionCheatGetCards:
		return json.Marshal(map[string]any{string(a.Kind): map[string]any{"cards": a.Cards}})
	default:
		return nil, fmt.Errorf("domain: unknown PlayerAction kind %q", a.Kind)
	}
}

func (a *PlayerAction) UnmarshalJSON(data []byte) error {
	var bareString string
	if err := json.Unmarshal(data, &bareString); err == nil {
		kind := ActionKind(bareString)
		if !bareActionKinds[kind] {
			return fmt.Errorf("domain: unknown bare PlayerAction variant %q", bareString)
		}
		*a = PlayerAction{Kind: kind}
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if len(wrapper) != 1 {
		return fmt.Errorf("domain: PlayerAction object must have exactly one key, got %d", len(wrapper))
	}
	for kind, payload := range wrapper {
		switch ActionKind(kind) {
		case ActionFinishScavenge:
			var p struct {
				Card Card `json:"card"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*a = FinishScavengeAction(p.Card)
		case ActionShare:
			var p struct {
				WithPlayer int `json:"with_player"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*a = ShareAction(p.WithPlayer)
		case ActionTrade:
			var p struct {
				WithPlayer int        `json:"with_player"`
				Offer      TradeOffer `json:"offer"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*a = TradeAction(p.WithPlayer, p.Offer)
		case ActionSteal:
			var p struct {
				FromPlayer int  `json:"from_player"`
				Card       Card `json:"card"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*a = StealAction(p.FromPlayer, p.Card)
		case ActionScrap:
			var p struct {
				PlayerCards    []Card `json:"player_cards"`
				ForDiscardCard Card   `json:"for_discard_card"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*a = ScrapAction(p.PlayerCards, p.ForDiscardCard)
		case ActionCheatGetCards:
			var p struct {
				Cards []Card `json:"cards"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			*a = CheatGetCardsAction(p.Cards)
		default:
			return fmt.Errorf("domain: unknown PlayerAction variant %q", kind)
		}
	}
	return nil
}

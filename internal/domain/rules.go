package domain

// Apply is GameRules: the pure state-transition function for one game. It
// takes the current snapshot plus an (actor, action) pair and returns
// either the next snapshot, or the snapshot unchanged alongside an
// *ActionError. Apply never mutates snapshot; every returned Snapshot is an
// independent value.
func Apply(snapshot Snapshot, actor int, action PlayerAction) (Snapshot, error) {
	next := snapshot.Clone()

	switch action.Kind {
	case ActionScavenge:
		if err := requireWaitingForPlayerAction(next, actor); err != nil {
			return snapshot, err
		}
		if next.Draw.Len() < 3 {
			return snapshot, ErrNotEnoughCardsInDraw
		}
		scavenged := next.Draw.PopTop(3)
		next.State = WaitingForScavengeCompleteState(actor, scavenged)
		return next, nil // does not advance the turn

	case ActionFinishScavenge:
		scavengedPlayer, scavengedCards, err := requireWaitingForScavengeComplete(next, actor)
		if err != nil {
			return snapshot, err
		}
		remaining, found := removeCard(scavengedCards, action.Card)
		if !found {
			return snapshot, ErrCardNotInScavenged
		}
		next.Players[scavengedPlayer].GatheredParts = append(next.Players[scavengedPlayer].GatheredParts, action.Card)
		next.Discard = pushAllToDiscard(next.Discard, remaining)
		return finishTurn(next, actor), nil

	case ActionShare:
		if err := requireWaitingForPlayerAction(next, actor); err != nil {
			return snapshot, err
		}
		if err := requireValidPlayer(next, action.WithPlayer); err != nil {
			return snapshot, err
		}
		if next.Draw.Len() < 3 {
			return snapshot, ErrNotEnoughCardsInDraw
		}
		if err := requireDifferentPlayers(actor, action.WithPlayer); err != nil {
			return snapshot, err
		}
		if err := requireTargetCanAct(next, action.WithPlayer); err != nil {
			return snapshot, err
		}
		drawn := next.Draw.PopTop(3)
		next.Players[actor].GatheredParts = append(next.Players[actor].GatheredParts, drawn[0], drawn[1])
		next.Players[action.WithPlayer].GatheredParts = append(next.Players[action.WithPlayer].GatheredParts, drawn[2])
		return finishTurn(next, actor), nil

	case ActionTrade:
		if err := requireWaitingForPlayerAction(next, actor); err != nil {
			return snapshot, err
		}
		if err := requireValidPlayer(next, action.WithPlayer); err != nil {
			return snapshot, err
		}
		if err := requireDifferentPlayers(actor, action.WithPlayer); err != nil {
			return snapshot, err
		}
		if err := requireNotEscaped(next, action.WithPlayer); err != nil {
			return snapshot, err
		}
		if !next.Players[actor].HasCard(action.Offer.Offered) {
			return snapshot, ErrCardNotOwned
		}
		if !next.Players[action.WithPlayer].HasCard(action.Offer.InExchange) {
			return snapshot, ErrCardNotOwned
		}
		next.State = WaitingForTradeConfirmationState(actor, action.WithPlayer, action.Offer)
		return next, nil // does not advance the turn

	case ActionTradeAccept:
		initiatingPlayer, tradingWithPlayer, offer, err := requireWaitingForTradeConfirmation(next, actor)
		if err != nil {
			return snapshot, err
		}
		if !next.Players[initiatingPlayer].HasCard(offer.Offered) {
			return snapshot, ErrCardNotOwned
		}
		if !next.Players[tradingWithPlayer].HasCard(offer.InExchange) {
			return snapshot, ErrCardNotOwned
		}
		next.Players[initiatingPlayer].GatheredParts, _ = removeCard(next.Players[initiatingPlayer].GatheredParts, offer.Offered)
		next.Players[tradingWithPlayer].GatheredParts, _ = removeCard(next.Players[tradingWithPlayer].GatheredParts, offer.InExchange)
		next.Players[initiatingPlayer].GatheredParts = append(next.Players[initiatingPlayer].GatheredParts, offer.InExchange)
		next.Players[tradingWithPlayer].GatheredParts = append(next.Players[tradingWithPlayer].GatheredParts, offer.Offered)
		next.State = WaitingForPlayerActionState(initiatingPlayer)
		return finishTurn(next, initiatingPlayer), nil

	case ActionTradeReject:
		initiatingPlayer, _, _, err := requireWaitingForTradeConfirmation(next, actor)
		if err != nil {
			return snapshot, err
		}
		next.State = WaitingForPlayerActionState(initiatingPlayer)
		return next, nil // left-identity for the initiator: no movement, no turn advance

	case ActionSteal:
		if err := requireWaitingForPlayerAction(next, actor); err != nil {
			return snapshot, err
		}
		if err := requireValidPlayer(next, action.FromPlayer); err != nil {
			return snapshot, err
		}
		if err := requireDifferentPlayers(actor, action.FromPlayer); err != nil {
			return snapshot, err
		}
		if err := requireNotEscaped(next, action.FromPlayer); err != nil {
			return snapshot, err
		}
		if !next.Players[action.FromPlayer].HasCard(action.Card) {
			return snapshot, ErrCardNotOwned
		}
		next.Players[action.FromPlayer].GatheredParts, _ = removeCard(next.Players[action.FromPlayer].GatheredParts, action.Card)
		next.Players[actor].GatheredParts = append(next.Players[actor].GatheredParts, action.Card)
		return finishTurn(next, actor), nil

	case ActionScrap:
		if err := requireWaitingForPlayerAction(next, actor); err != nil {
			return snapshot, err
		}
		if !containsCard(next.Discard, action.ForDiscardCard) {
			return snapshot, ErrCardNotInDiscard
		}
		if len(action.PlayerCards) != 4 {
			return snapshot, ErrWrongNumberOfCards
		}
		gathered := next.Players[actor].GatheredParts
		for _, c := range action.PlayerCards {
			if !containsCard(gathered, c) {
				return snapshot, ErrCardNotOwned
			}
			gathered, _ = removeCard(gathered, c)
		}
		next.Discard, _ = removeCard(next.Discard, action.ForDiscardCard)
		next.Players[actor].GatheredParts = append(gathered, action.ForDiscardCard)
		next.Discard = pushAllToDiscard(next.Discard, action.PlayerCards)
		return finishTurn(next, actor), nil

	case ActionEscape:
		if err := requireWaitingForPlayerAction(next, actor); err != nil {
			return snapshot, err
		}
		if !next.Players[actor].EscapeConditionMet() {
			return snapshot, ErrEscapeConditionNotMet
		}
		next.Players[actor].Escaped = true
		return finishTurn(next, actor), nil

	case ActionSkip:
		if err := requireWaitingForPlayerAction(next, actor); err != nil {
			return snapshot, err
		}
		return finishTurn(next, actor), nil

	case ActionCheatGetCards:
		if err := requireWaitingForPlayerAction(next, actor); err != nil {
			return snapshot, err
		}
		if !next.Players[actor].IsTester {
			return snapshot, ErrNotATester
		}
		next.Players[actor].GatheredParts = append(next.Players[actor].GatheredParts, action.Cards...)
		return finishTurn(next, actor), nil

	default:
		return snapshot, ErrInvalidActionForState
	}
}

// finishTurn decrements actingPlayer's remaining moves (if bounded) and
// advances the turn pointer, starting its search for the next eligible
// player from whatever player the snapshot's current state names.
func finishTurn(snap Snapshot, actingPlayer int) Snapshot {
	decrementMoves(&snap, actingPlayer)
	moveToNextPlayer(&snap)
	return snap
}

func decrementMoves(snap *Snapshot, idx int) {
	p := &snap.Players[idx]
	if p.MovesLeft != nil {
		remaining := *p.MovesLeft - 1
		p.MovesLeft = &remaining
	}
}

// moveToNextPlayer centralizes next-player selection so Skip, Escape,
// Steal, and every other turn-advancing action agree on it. It searches the
// other players in seat order after the one the current state names,
// skipping those who have escaped or are out of moves; if none of them is
// eligible, the game transitions to Finished, whether or not the current
// player could still act.
func moveToNextPlayer(snap *Snapshot) {
	var lastPlayer int
	switch snap.State.Kind {
	case StateWaitingForPlayerAction, StateWaitingForScavengeComplete:
		lastPlayer = snap.State.Player
	case StateWaitingForTradeConfirmation:
		lastPlayer = snap.State.InitiatingPlayer
	case StateFinished:
		return
	}

	n := len(snap.Players)
	next := FinishedState()
	for i := 1; i < n; i++ {
		idx := (lastPlayer + i) % n
		if snap.Players[idx].CanAct() {
			next = WaitingForPlayerActionState(idx)
			break
		}
	}
	snap.State = next
}

// pushAllToDiscard pushes cards onto discard one at a time, in the order
// given, so the last card in cards ends up as the new top of discard.
func pushAllToDiscard(discard []Card, cards []Card) []Card {
	if len(cards) == 0 {
		return discard
	}
	out := make([]Card, 0, len(discard)+len(cards))
	for i := len(cards) - 1; i >= 0; i-- {
		out = append(out, cards[i])
	}
	out = append(out, discard...)
	return out
}

func requireValidPlayer(snap Snapshot, idx int) error {
	if idx < 0 || idx >= len(snap.Players) {
		return newActionError(CodeInvalidPlayerReference, "no such player")
	}
	return nil
}

func requireDifferentPlayers(a, b int) error {
	if a == b {
		return newActionError(CodeInvalidPlayerReference, "player cannot target itself")
	}
	return nil
}

func requireNotEscaped(snap Snapshot, idx int) error {
	if snap.Players[idx].Escaped {
		return newActionError(CodeInvalidPlayerReference, "target has already escaped")
	}
	return nil
}

func requireTargetCanAct(snap Snapshot, idx int) error {
	if !snap.Players[idx].CanAct() {
		return newActionError(CodeInvalidPlayerReference, "target cannot currently act")
	}
	return nil
}

// currentActor reports which player the current state is waiting on, and
// whether the state has one at all (Finished does not).
func currentActor(snap Snapshot) (actor int, ok bool) {
	switch snap.State.Kind {
	case StateWaitingForPlayerAction, StateWaitingForScavengeComplete:
		return snap.State.Player, true
	case StateWaitingForTradeConfirmation:
		return snap.State.TradingWithPlayer, true
	default:
		return 0, false
	}
}

// requireActionAllowed implements the authorization gate: it checks who the
// current state is waiting on before it checks whether the submitted
// action even fits that state, so a wrong-actor submission is always
// NotYourTurn even if the action kind is also wrong for the state.
func requireActionAllowed(snap Snapshot, actor int, requiredKind StateKind) error {
	expectedActor, ok := currentActor(snap)
	if !ok {
		return ErrInvalidActionForState
	}
	if actor != expectedActor {
		return ErrNotYourTurn
	}
	if snap.State.Kind != requiredKind {
		return ErrInvalidActionForState
	}
	return nil
}

func requireWaitingForPlayerAction(snap Snapshot, actor int) error {
	return requireActionAllowed(snap, actor, StateWaitingForPlayerAction)
}

func requireWaitingForScavengeComplete(snap Snapshot, actor int) (player int, scavengedCards []Card, err error) {
	if err := requireActionAllowed(snap, actor, StateWaitingForScavengeComplete); err != nil {
		return 0, nil, err
	}
	return snap.State.Player, snap.State.ScavengedCards, nil
}

func requireWaitingForTradeConfirmation(snap Snapshot, actor int) (initiatingPlayer, tradingWithPlayer int, offer TradeOffer, err error) {
	if err := requireActionAllowed(snap, actor, StateWaitingForTradeConfirmation); err != nil {
		return 0, 0, TradeOffer{}, err
	}
	return snap.State.InitiatingPlayer, snap.State.TradingWithPlayer, snap.State.Offer, nil
}

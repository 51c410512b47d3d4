package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode is the wire-visible ActionError taxonomy from the core
// boundary. These are the only values the client ever sees; any additional
// context carried on ActionError.Detail is for server-side logging only.
type ErrorCode string

const (
	CodeNotYourTurn            ErrorCode = "NotYourTurn"
	CodeInvalidActionForState  ErrorCode = "InvalidActionForState"
	CodeNotEnoughCardsInDraw   ErrorCode = "NotEnoughCardsInDraw"
	CodeCardNotInScavenged     ErrorCode = "CardNotInScavenged"
	CodeCardNotOwned           ErrorCode = "CardNotOwned"
	CodeCardNotInDiscard       ErrorCode = "CardNotInDiscard"
	CodeInvalidPlayerReference ErrorCode = "InvalidPlayerReference"
	CodeEscapeConditionNotMet  ErrorCode = "EscapeConditionNotMet"
	CodeNotATester             ErrorCode = "NotATester"
	CodeWrongNumberOfCards     ErrorCode = "WrongNumberOfCards"
)

// ActionError is returned by GameRules.Apply for every rejected action.
// Rejections are non-destructive: the snapshot GameRules.Apply was given is
// returned unchanged alongside the error.
type ActionError struct {
	Code ErrorCode

	// Detail is free-form context (e.g. which player or card was involved).
	// It is never part of the wire encoding; use Code for that.
	Detail string
}

func newActionError(code ErrorCode, detail string) *ActionError {
	return &ActionError{Code: code, Detail: detail}
}

func (e *ActionError) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Is lets errors.Is(err, domain.ErrNotYourTurn) match any ActionError
// carrying the same Code, regardless of Detail.
func (e *ActionError) Is(target error) bool {
	var other *ActionError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func (e ActionError) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(e.Code))
}

func (e *ActionError) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	e.Code = ErrorCode(code)
	return nil
}

// Sentinel values for use with errors.Is; construct codes with Detail via
// the package-internal constructors where richer context is useful.
var (
	ErrNotYourTurn            = &ActionError{Code: CodeNotYourTurn}
	ErrInvalidActionForState  = &ActionError{Code: CodeInvalidActionForState}
	ErrNotEnoughCardsInDraw   = &ActionError{Code: CodeNotEnoughCardsInDraw}
	ErrCardNotInScavenged     = &ActionError{Code: CodeCardNotInScavenged}
	ErrCardNotOwned           = &ActionError{Code: CodeCardNotOwned}
	ErrCardNotInDiscard       = &ActionError{Code: CodeCardNotInDiscard}
	ErrInvalidPlayerReference = &ActionError{Code: CodeInvalidPlayerReference}
	ErrEscapeConditionNotMet  = &ActionError{Code: CodeEscapeConditionNotMet}
	ErrNotATester             = &ActionError{Code: CodeNotATester}
	ErrWrongNumberOfCards     = &ActionError{Code: CodeWrongNumberOfCards}
)

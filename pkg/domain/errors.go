package domain

import "errors"

// ErrInvalidStateHandle is returned when an operation references a state that does not currently exist.
var ErrInvalidStateHandle = errors.New("invalid state handle")

// ErrNoInitialState is returned when the model has no initial state (e.g. it was removed).
var ErrNoInitialState = errors.New("no initial state")

// ErrTransitionNotFound is returned when a removal matches no outgoing transition.
var ErrTransitionNotFound = errors.New("transition not found")

// ErrDuplicateLabel is returned when a label is already used by another live state.
var ErrDuplicateLabel = errors.New("duplicate state label")

// ErrEmptyLabel is returned when a state is given a blank label.
var ErrEmptyLabel = errors.New("empty state label")

// ErrUnknownLabel is returned when no live state carries the requested label.
var ErrUnknownLabel = errors.New("unknown state label")

// ErrSymbolNotInAlphabet is returned by strict models when a transition symbol is not a member of the alphabet.
var ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")

// ErrInvalidAlphabetSize is returned when an alphabet size is outside the supported range.
var ErrInvalidAlphabetSize = errors.New("invalid alphabet size")

// ErrMismatchedBracket is returned when a closing bracket has no opener or closes a different family.
var ErrMismatchedBracket = errors.New("mismatched bracket")

// ErrUnclosedBracket is returned when an opener remains unmatched at the end of an expression.
var ErrUnclosedBracket = errors.New("unclosed bracket")

// ErrUnexpectedSymbol is returned when an expression contains a symbol that is neither
// an alphabet member, an operator nor a bracket.
var ErrUnexpectedSymbol = errors.New("unexpected symbol")

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")

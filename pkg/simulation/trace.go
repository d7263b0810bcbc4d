package simulation

import (
	"context"

	"github.com/aretw0/fsmsketch/pkg/domain"
)

// Trace records the active states after every consumed symbol.
type Trace struct {
	Word     []rune           `json:"word"`
	Valid    bool             `json:"valid"`
	Initial  []domain.StateID `json:"initial"`
	Steps    []TraceStep      `json:"steps"`
	Accepted bool             `json:"accepted"`
}

// TraceStep is the active set after one symbol.
type TraceStep struct {
	Symbol rune             `json:"symbol"`
	States []domain.StateID `json:"states"`
}

// Trace simulates word like AcceptsWord and keeps every intermediate subset.
// Steps stops at the symbol that emptied the set.
func (e *Engine) Trace(ctx context.Context, word []rune) Trace {
	tr := Trace{Word: word, Valid: e.alphabet.ValidateWord(word)}
	if !tr.Valid {
		e.verdict(ctx, len(word), false, false, 0)
		return tr
	}

	run := e.Start(ctx)
	tr.Initial = run.current.Sorted()
	for _, symbol := range word {
		alive := run.Feed(symbol)
		tr.Steps = append(tr.Steps, TraceStep{Symbol: symbol, States: run.current.Sorted()})
		if !alive {
			break
		}
	}

	tr.Accepted = run.Accepting()
	e.verdict(ctx, len(word), true, tr.Accepted, run.current.Len())
	return tr
}

package simulation

import (
	"context"
	"time"

	"github.com/aretw0/fsmsketch/pkg/automaton"
	"github.com/aretw0/fsmsketch/pkg/domain"
)

// Run is a simulation fed one symbol at a time.
// A Run reads the automaton on every Feed; it must not outlive edits the caller
// does not want it to observe.
type Run struct {
	engine   *Engine
	ctx      context.Context
	current  automaton.StateSet
	consumed int
	dead     bool
}

// Start begins a run at the initial state. Without an initial state the run
// starts dead.
func (e *Engine) Start(ctx context.Context) *Run {
	r := &Run{engine: e, ctx: ctx, current: make(automaton.StateSet)}
	if initial, ok := e.automaton.InitialState(); ok {
		r.current.Add(initial)
	} else {
		r.dead = true
	}
	return r
}

// Feed consumes one symbol. It returns false once the run is dead: the symbol is
// outside the alphabet or no active state has a transition on it. A dead run
// ignores further symbols.
func (r *Run) Feed(symbol rune) bool {
	if r.dead {
		return false
	}
	if !r.engine.alphabet.IsMember(symbol) {
		r.kill()
		return false
	}

	r.current = r.engine.Step(r.current, symbol)
	r.consumed++

	if hook := r.engine.hooks.OnStep; hook != nil {
		hook(r.ctx, &domain.StepEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
			Position:  r.consumed - 1,
			Symbol:    symbol,
			Active:    r.current.Len(),
		})
	}

	if r.current.Len() == 0 {
		r.dead = true
		return false
	}
	return true
}

func (r *Run) kill() {
	r.dead = true
	r.current = make(automaton.StateSet)
}

// Current returns a copy of the active states.
func (r *Run) Current() automaton.StateSet {
	return r.current.Union(nil)
}

// Consumed returns how many symbols were stepped through.
func (r *Run) Consumed() int {
	return r.consumed
}

// Dead reports whether the run can no longer accept.
func (r *Run) Dead() bool {
	return r.dead
}

// Accepting reports whether the symbols fed so far form an accepted word.
func (r *Run) Accepting() bool {
	return !r.dead && r.engine.accepting(r.current)
}

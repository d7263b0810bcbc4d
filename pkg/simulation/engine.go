package simulation

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/aretw0/fsmsketch/internal/logging"
	"github.com/aretw0/fsmsketch/pkg/automaton"
	"github.com/aretw0/fsmsketch/pkg/domain"
)

// Automaton is the read side of automaton.Model the engine runs on.
type Automaton interface {
	InitialState() (domain.StateID, bool)
	Successors(from domain.StateID, symbol rune) iter.Seq[domain.StateID]
	IsAcceptState(id domain.StateID) bool
}

// Alphabet is the membership side of alphabet.Manager.
type Alphabet interface {
	IsMember(symbol rune) bool
	ValidateWord(word []rune) bool
}

// Engine simulates an automaton over words of an alphabet.
type Engine struct {
	automaton Automaton
	alphabet  Alphabet
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger used for verdict traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// New creates an engine over a and alpha. Both are read on every call, so later
// edits to the automaton are seen by the next simulation.
func New(a Automaton, alpha Alphabet, opts ...Option) *Engine {
	e := &Engine{
		automaton: a,
		alphabet:  alpha,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Step returns every state reachable from a state of current by one transition
// labeled symbol. Step of an empty set is empty.
func (e *Engine) Step(current automaton.StateSet, symbol rune) automaton.StateSet {
	next := make(automaton.StateSet)
	for id := range current {
		for to := range e.automaton.Successors(id, symbol) {
			next.Add(to)
		}
	}
	return next
}

// AcceptsWord reports whether the automaton accepts word.
func (e *Engine) AcceptsWord(ctx context.Context, word []rune) bool {
	if !e.alphabet.ValidateWord(word) {
		e.verdict(ctx, len(word), false, false, 0)
		return false
	}

	run := e.Start(ctx)
	for _, symbol := range word {
		if !run.Feed(symbol) {
			e.verdict(ctx, len(word), true, false, 0)
			return false
		}
	}

	accepted := run.Accepting()
	e.verdict(ctx, len(word), true, accepted, run.Current().Len())
	return accepted
}

func (e *Engine) accepting(states automaton.StateSet) bool {
	for id := range states {
		if e.automaton.IsAcceptState(id) {
			return true
		}
	}
	return false
}

func (e *Engine) verdict(ctx context.Context, length int, valid, accepted bool, active int) {
	e.logger.DebugContext(ctx, "word decided",
		"length", length,
		"valid", valid,
		"accepted", accepted,
		"active", active,
	)
	if e.hooks.OnVerdict != nil {
		e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventVerdict},
			WordLength: length,
			Valid:      valid,
			Accepted:   accepted,
		})
	}
}

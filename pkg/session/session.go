package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/fsmsketch/internal/logging"
	"github.com/aretw0/fsmsketch/pkg/alphabet"
	"github.com/aretw0/fsmsketch/pkg/automaton"
	"github.com/aretw0/fsmsketch/pkg/brackets"
	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/aretw0/fsmsketch/pkg/simulation"
)

// Verdict is the outcome of testing a word.
type Verdict string

const (
	VerdictInvalid Verdict = "invalid" // the word uses symbols outside the alphabet
	VerdictAccept  Verdict = "accept"
	VerdictReject  Verdict = "reject"
)

type options struct {
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	permissive bool
}

// Option configures sessions and managers.
type Option func(*options)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks on the engine and validator.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithStrictSymbols controls whether transitions on symbols outside the
// alphabet are rejected. Sessions are strict unless told otherwise.
func WithStrictSymbols(strict bool) Option {
	return func(o *options) {
		o.permissive = !strict
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Session is one automaton under edit. Safe for concurrent use.
type Session struct {
	id      string
	created time.Time

	mu        sync.Mutex
	alphabet  *alphabet.Manager
	model     *automaton.Model
	engine    *simulation.Engine
	validator *brackets.Validator
}

// New creates a session whose alphabet holds the first size symbols.
// By default the model rejects transitions on symbols outside that alphabet.
func New(id string, size int, opts ...Option) (*Session, error) {
	return newSession(id, size, buildOptions(opts))
}

func newSession(id string, size int, o options) (*Session, error) {
	alpha, err := alphabet.New(size)
	if err != nil {
		return nil, err
	}
	var modelOpts []automaton.Option
	if !o.permissive {
		modelOpts = append(modelOpts, automaton.WithAlphabet(alpha))
	}
	model := automaton.New(modelOpts...)
	logger := o.logger.With("session_id", id)

	return &Session{
		id:        id,
		created:   time.Now(),
		alphabet:  alpha,
		model:     model,
		engine:    simulation.New(model, alpha, simulation.WithLogger(logger), simulation.WithLifecycleHooks(o.hooks)),
		validator: brackets.New(alpha, brackets.WithLifecycleHooks(o.hooks)),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Created returns the creation time.
func (s *Session) Created() time.Time { return s.created }

// Alphabet returns the session symbols in order.
func (s *Session) Alphabet() []rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alphabet.Symbols()
}

// AddState creates a state. An empty label keeps the generated one.
func (s *Session) AddState(label string) (domain.StateID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	label = strings.TrimSpace(label)
	if label != "" {
		if _, err := s.model.StateByLabel(label); err == nil {
			return domain.NoState, fmt.Errorf("%w: %q", domain.ErrDuplicateLabel, label)
		}
	}

	id := s.model.AddState()
	if label != "" {
		if err := s.model.SetLabel(id, label); err != nil {
			return domain.NoState, err
		}
	}
	return id, nil
}

// Resolve maps a label to its state.
func (s *Session) Resolve(label string) (domain.StateID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.StateByLabel(label)
}

// Label returns the label of a state.
func (s *Session) Label(id domain.StateID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Label(id)
}

// RemoveState deletes a state and its transitions.
func (s *Session) RemoveState(id domain.StateID) error {
	return s.Update(func(m *automaton.Model) error { return m.RemoveState(id) })
}

// SetInitialState makes id the initial state.
func (s *Session) SetInitialState(id domain.StateID) error {
	return s.Update(func(m *automaton.Model) error { return m.SetInitialState(id) })
}

// SetFinalState marks id as accepting.
func (s *Session) SetFinalState(id domain.StateID) error {
	return s.Update(func(m *automaton.Model) error { return m.SetFinalState(id) })
}

// ToggleStateAcceptance flips id between accepting and non-accepting.
func (s *Session) ToggleStateAcceptance(id domain.StateID) (bool, error) {
	var accepting bool
	err := s.Update(func(m *automaton.Model) error {
		var err error
		accepting, err = m.ToggleStateAcceptance(id)
		return err
	})
	return accepting, err
}

// AddTransition adds an edge labeled symbol.
func (s *Session) AddTransition(from, to domain.StateID, symbol rune) error {
	return s.Update(func(m *automaton.Model) error { return m.AddTransition(from, to, symbol) })
}

// RemoveTransition removes the first edge matching symbol and destination.
func (s *Session) RemoveTransition(from, to domain.StateID, symbol rune) error {
	return s.Update(func(m *automaton.Model) error { return m.RemoveTransition(from, to, symbol) })
}

// RemoveTransitionOnSymbol removes the first edge of from labeled symbol,
// whatever its destination.
func (s *Session) RemoveTransitionOnSymbol(from domain.StateID, symbol rune) error {
	return s.Update(func(m *automaton.Model) error { return m.RemoveTransitionOnSymbol(from, symbol) })
}

// OutgoingSymbols lists the symbols on every transition leaving from, in
// insertion order.
func (s *Session) OutgoingSymbols(from domain.StateID) ([]rune, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.OutgoingSymbols(from)
}

// SymbolsBetween lists the symbols on transitions from one state to another.
func (s *Session) SymbolsBetween(from, to domain.StateID) ([]rune, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.SymbolsBetween(from, to)
}

// Update runs fn with exclusive access to the model.
func (s *Session) Update(fn func(m *automaton.Model) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.model)
}

// Test decides a word the way the editor's "Test String" does: words with
// foreign symbols are reported as invalid before any simulation.
func (s *Session) Test(ctx context.Context, word string) Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbols := []rune(word)
	accepted := s.engine.AcceptsWord(ctx, symbols)
	switch {
	case !s.alphabet.ValidateWord(symbols):
		return VerdictInvalid
	case accepted:
		return VerdictAccept
	default:
		return VerdictReject
	}
}

// Trace simulates word and returns every intermediate subset.
func (s *Session) Trace(ctx context.Context, word string) simulation.Trace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Trace(ctx, []rune(word))
}

// CheckExpression runs the bracket validator over text.
func (s *Session) CheckExpression(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validator.Check(ctx, []rune(text))
}

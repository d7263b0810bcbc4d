package automaton

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/aretw0/fsmsketch/pkg/domain"
)

// Membership is the part of an alphabet a strict model needs.
type Membership interface {
	IsMember(symbol rune) bool
}

// slot is one entry of the state table. A dead slot keeps its generation so
// handles that still point at it can be told apart from its next occupant.
type slot struct {
	generation uint32
	live       bool
	label      string
	out        []domain.Transition
}

// Model owns the states, transitions, initial state and final states of an automaton.
//
// States live in a slot table addressed by domain.StateID. Removing a state frees
// its slot without moving any other state, so every other handle keeps its meaning.
// Model is not safe for concurrent use; see package session for a locked wrapper.
type Model struct {
	slots    []slot
	free     []uint32
	live     int
	created  int
	initial  domain.StateID
	finals   map[domain.StateID]struct{}
	labels   map[string]domain.StateID
	alphabet Membership
}

// Option configures a Model.
type Option func(*Model)

// WithAlphabet makes AddTransition reject symbols that are not members of a.
// Without it, any symbol is accepted.
func WithAlphabet(a Membership) Option {
	return func(m *Model) {
		m.alphabet = a
	}
}

// New creates an empty model.
func New(opts ...Option) *Model {
	m := &Model{
		finals: make(map[domain.StateID]struct{}),
		labels: make(map[string]domain.StateID),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) valid(id domain.StateID) bool {
	if id == domain.NoState {
		return false
	}
	idx := id.Index()
	if int(idx) >= len(m.slots) {
		return false
	}
	s := &m.slots[idx]
	return s.live && s.generation == id.Generation()
}

func (m *Model) check(id domain.StateID) error {
	if !m.valid(id) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidStateHandle, id)
	}
	return nil
}

// Contains reports whether id names a live state.
func (m *Model) Contains(id domain.StateID) bool {
	return m.valid(id)
}

// AddState creates a state with no outgoing transitions and returns its handle.
// If the model has no initial state, the new state becomes initial.
func (m *Model) AddState() domain.StateID {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot{})
	}

	s := &m.slots[idx]
	s.generation++
	s.live = true
	s.out = nil
	id := domain.NewStateID(idx, s.generation)

	s.label = m.nextLabel()
	m.labels[s.label] = id
	m.live++

	if m.initial == domain.NoState {
		m.initial = id
	}
	return id
}

func (m *Model) nextLabel() string {
	for {
		label := fmt.Sprintf("q%d", m.created)
		m.created++
		if _, taken := m.labels[label]; !taken {
			return label
		}
	}
}

// RemoveState deletes a state together with every transition that starts or ends at it.
func (m *Model) RemoveState(id domain.StateID) error {
	if err := m.check(id); err != nil {
		return err
	}

	for i := range m.slots {
		s := &m.slots[i]
		if !s.live {
			continue
		}
		s.out = slices.DeleteFunc(s.out, func(t domain.Transition) bool {
			return t.To == id
		})
	}

	s := &m.slots[id.Index()]
	delete(m.labels, s.label)
	s.live = false
	s.label = ""
	s.out = nil
	// A slot whose generation is exhausted is retired instead of reused.
	if s.generation < math.MaxUint32 {
		m.free = append(m.free, id.Index())
	}
	m.live--

	delete(m.finals, id)
	if m.initial == id {
		m.initial = domain.NoState
	}
	return nil
}

// NumStates returns the number of live states.
func (m *Model) NumStates() int {
	return m.live
}

// States returns the live state handles in slot order.
func (m *Model) States() []domain.StateID {
	ids := make([]domain.StateID, 0, m.live)
	for i := range m.slots {
		s := &m.slots[i]
		if s.live {
			ids = append(ids, domain.NewStateID(uint32(i), s.generation))
		}
	}
	return ids
}

// SetInitialState makes id the initial state.
func (m *Model) SetInitialState(id domain.StateID) error {
	if err := m.check(id); err != nil {
		return err
	}
	m.initial = id
	return nil
}

// InitialState returns the initial state. ok is false when none is set.
func (m *Model) InitialState() (id domain.StateID, ok bool) {
	return m.initial, m.initial != domain.NoState
}

// SetFinalState marks id as accepting. Marking twice is a no-op.
func (m *Model) SetFinalState(id domain.StateID) error {
	if err := m.check(id); err != nil {
		return err
	}
	m.finals[id] = struct{}{}
	return nil
}

// ToggleStateAcceptance switches id between accepting and non-accepting and
// returns the new status.
func (m *Model) ToggleStateAcceptance(id domain.StateID) (bool, error) {
	if err := m.check(id); err != nil {
		return false, err
	}
	if _, ok := m.finals[id]; ok {
		delete(m.finals, id)
		return false, nil
	}
	m.finals[id] = struct{}{}
	return true, nil
}

// IsAcceptState reports whether id is a live accepting state.
func (m *Model) IsAcceptState(id domain.StateID) bool {
	_, ok := m.finals[id]
	return ok
}

// FinalStates returns the accepting states in slot order.
func (m *Model) FinalStates() []domain.StateID {
	ids := make([]domain.StateID, 0, len(m.finals))
	for _, id := range m.States() {
		if m.IsAcceptState(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// AddTransition appends (symbol, to) to the outgoing transitions of from.
// Identical transitions are not merged.
func (m *Model) AddTransition(from, to domain.StateID, symbol rune) error {
	if err := m.check(from); err != nil {
		return err
	}
	if err := m.check(to); err != nil {
		return err
	}
	if m.alphabet != nil && !m.alphabet.IsMember(symbol) {
		return fmt.Errorf("%w: %q", domain.ErrSymbolNotInAlphabet, symbol)
	}

	s := &m.slots[from.Index()]
	s.out = append(s.out, domain.Transition{Symbol: symbol, To: to})
	return nil
}

// RemoveTransition removes the first transition of from that is labeled symbol
// and leads to to.
func (m *Model) RemoveTransition(from, to domain.StateID, symbol rune) error {
	if err := m.check(to); err != nil {
		return err
	}
	return m.removeFirst(from, func(t domain.Transition) bool {
		return t.Symbol == symbol && t.To == to
	})
}

// RemoveTransitionOnSymbol removes the first transition of from labeled symbol,
// whatever its destination.
func (m *Model) RemoveTransitionOnSymbol(from domain.StateID, symbol rune) error {
	return m.removeFirst(from, func(t domain.Transition) bool {
		return t.Symbol == symbol
	})
}

func (m *Model) removeFirst(from domain.StateID, match func(domain.Transition) bool) error {
	if err := m.check(from); err != nil {
		return err
	}
	s := &m.slots[from.Index()]
	i := slices.IndexFunc(s.out, match)
	if i < 0 {
		return domain.ErrTransitionNotFound
	}
	s.out = slices.Delete(s.out, i, i+1)
	return nil
}

// Transitions returns a copy of the outgoing transitions of from, in insertion order.
func (m *Model) Transitions(from domain.StateID) ([]domain.Transition, error) {
	if err := m.check(from); err != nil {
		return nil, err
	}
	return slices.Clone(m.slots[from.Index()].out), nil
}

// NumTransitions counts every stored transition, duplicates included.
func (m *Model) NumTransitions() int {
	n := 0
	for i := range m.slots {
		if m.slots[i].live {
			n += len(m.slots[i].out)
		}
	}
	return n
}

// Edges lists every transition of the model, grouped by source in slot order.
func (m *Model) Edges() []domain.Edge {
	edges := make([]domain.Edge, 0, m.NumTransitions())
	for _, from := range m.States() {
		for _, t := range m.slots[from.Index()].out {
			edges = append(edges, domain.Edge{From: from, Symbol: t.Symbol, To: t.To})
		}
	}
	return edges
}

// OutgoingSymbols returns the symbols of all outgoing transitions of from,
// duplicates included, in insertion order. This is what the legacy
// "characters between" query returned regardless of its destination argument.
func (m *Model) OutgoingSymbols(from domain.StateID) ([]rune, error) {
	if err := m.check(from); err != nil {
		return nil, err
	}
	out := m.slots[from.Index()].out
	symbols := make([]rune, 0, len(out))
	for _, t := range out {
		symbols = append(symbols, t.Symbol)
	}
	return symbols, nil
}

// SymbolsBetween returns the symbols of the transitions from from to to, in insertion order.
func (m *Model) SymbolsBetween(from, to domain.StateID) ([]rune, error) {
	if err := m.check(from); err != nil {
		return nil, err
	}
	if err := m.check(to); err != nil {
		return nil, err
	}
	var symbols []rune
	for _, t := range m.slots[from.Index()].out {
		if t.To == to {
			symbols = append(symbols, t.Symbol)
		}
	}
	return symbols, nil
}

// Successors yields the destination of every transition of from labeled symbol.
// An invalid handle yields nothing.
func (m *Model) Successors(from domain.StateID, symbol rune) iter.Seq[domain.StateID] {
	return func(yield func(domain.StateID) bool) {
		if !m.valid(from) {
			return
		}
		for _, t := range m.slots[from.Index()].out {
			if t.Symbol == symbol && !yield(t.To) {
				return
			}
		}
	}
}

package scenario

import (
	"context"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/aretw0/fsmsketch/pkg/session"
)

// Step is one scripted editor action.
type Step interface {
	Op() string
	apply(ctx context.Context, s *session.Session, r *Report) error
}

var registry = map[string]func() Step{
	"state":             func() Step { return &stateStep{} },
	"remove_state":      func() Step { return &removeStateStep{} },
	"initial":           func() Step { return &initialStep{} },
	"final":             func() Step { return &finalStep{} },
	"toggle":            func() Step { return &toggleStep{} },
	"transition":        func() Step { return &transitionStep{} },
	"remove_transition": func() Step { return &removeTransitionStep{} },
	"symbols":           func() Step { return &symbolsStep{} },
	"test":              func() Step { return &testStep{} },
	"expression":        func() Step { return &expressionStep{} },
}

func singleSymbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("symbol %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

type stateStep struct {
	Label string `mapstructure:"label"`
}

func (st *stateStep) Op() string { return "state" }

func (st *stateStep) apply(_ context.Context, s *session.Session, _ *Report) error {
	_, err := s.AddState(st.Label)
	return err
}

type removeStateStep struct {
	State string `mapstructure:"state"`
}

func (st *removeStateStep) Op() string { return "remove_state" }

func (st *removeStateStep) apply(_ context.Context, s *session.Session, _ *Report) error {
	id, err := s.Resolve(st.State)
	if err != nil {
		return err
	}
	return s.RemoveState(id)
}

type initialStep struct {
	State string `mapstructure:"state"`
}

func (st *initialStep) Op() string { return "initial" }

func (st *initialStep) apply(_ context.Context, s *session.Session, _ *Report) error {
	id, err := s.Resolve(st.State)
	if err != nil {
		return err
	}
	return s.SetInitialState(id)
}

type finalStep struct {
	State string `mapstructure:"state"`
}

func (st *finalStep) Op() string { return "final" }

func (st *finalStep) apply(_ context.Context, s *session.Session, _ *Report) error {
	id, err := s.Resolve(st.State)
	if err != nil {
		return err
	}
	return s.SetFinalState(id)
}

type toggleStep struct {
	State string `mapstructure:"state"`
}

func (st *toggleStep) Op() string { return "toggle" }

func (st *toggleStep) apply(_ context.Context, s *session.Session, _ *Report) error {
	id, err := s.Resolve(st.State)
	if err != nil {
		return err
	}
	_, err = s.ToggleStateAcceptance(id)
	return err
}

type edgeArgs struct {
	From   string `mapstructure:"from"`
	To     string `mapstructure:"to"`
	Symbol string `mapstructure:"symbol"`
}

func (a *edgeArgs) validate() error {
	_, err := singleSymbol(a.Symbol)
	return err
}

func (a *edgeArgs) resolve(s *session.Session) (from, to domain.StateID, symbol rune, err error) {
	if from, err = s.Resolve(a.From); err != nil {
		return
	}
	if to, err = s.Resolve(a.To); err != nil {
		return
	}
	symbol, err = singleSymbol(a.Symbol)
	return
}

type transitionStep struct {
	edgeArgs `mapstructure:",squash"`
}

func (st *transitionStep) Op() string { return "transition" }

func (st *transitionStep) apply(_ context.Context, s *session.Session, _ *Report) error {
	from, to, symbol, err := st.resolve(s)
	if err != nil {
		return err
	}
	return s.AddTransition(from, to, symbol)
}

type removeTransitionStep struct {
	edgeArgs `mapstructure:",squash"`
}

func (st *removeTransitionStep) Op() string { return "remove_transition" }

// Without "to" the first edge on the symbol is removed, whatever its destination.
func (st *removeTransitionStep) apply(_ context.Context, s *session.Session, _ *Report) error {
	if st.To == "" {
		from, err := s.Resolve(st.From)
		if err != nil {
			return err
		}
		symbol, err := singleSymbol(st.Symbol)
		if err != nil {
			return err
		}
		return s.RemoveTransitionOnSymbol(from, symbol)
	}
	from, to, symbol, err := st.resolve(s)
	if err != nil {
		return err
	}
	return s.RemoveTransition(from, to, symbol)
}

// symbolsStep checks the labels drawn on an edge. Without "to" it lists every
// outgoing symbol of "from".
type symbolsStep struct {
	From   string `mapstructure:"from"`
	To     string `mapstructure:"to"`
	Expect string `mapstructure:"expect"`
}

func (st *symbolsStep) Op() string { return "symbols" }

func (st *symbolsStep) apply(_ context.Context, s *session.Session, r *Report) error {
	from, err := s.Resolve(st.From)
	if err != nil {
		return err
	}
	to := domain.NoState
	if st.To != "" {
		if to, err = s.Resolve(st.To); err != nil {
			return err
		}
	}

	var got []rune
	if to == domain.NoState {
		got, err = s.OutgoingSymbols(from)
	} else {
		got, err = s.SymbolsBetween(from, to)
	}
	if err != nil {
		return err
	}

	input := st.From + "->" + st.To
	if st.To == "" {
		input = st.From + "->*"
	}
	r.record(st.Op(), input, st.Expect, string(got), st.Expect == "" || slices.Equal(got, []rune(st.Expect)))
	return nil
}

type testStep struct {
	Word   string `mapstructure:"word"`
	Expect string `mapstructure:"expect"`
}

func (st *testStep) Op() string { return "test" }

func (st *testStep) validate() error {
	switch session.Verdict(st.Expect) {
	case "", session.VerdictAccept, session.VerdictReject, session.VerdictInvalid:
		return nil
	}
	return fmt.Errorf("expect must be accept, reject or invalid, got %q", st.Expect)
}

func (st *testStep) apply(ctx context.Context, s *session.Session, r *Report) error {
	got := s.Test(ctx, st.Word)
	r.record(st.Op(), st.Word, st.Expect, string(got), st.Expect == "" || st.Expect == string(got))
	return nil
}

type expressionStep struct {
	Text   string `mapstructure:"text"`
	Expect string `mapstructure:"expect"`
}

func (st *expressionStep) Op() string { return "expression" }

func (st *expressionStep) validate() error {
	switch st.Expect {
	case "", "valid", "invalid":
		return nil
	}
	return fmt.Errorf("expect must be valid or invalid, got %q", st.Expect)
}

func (st *expressionStep) apply(ctx context.Context, s *session.Session, r *Report) error {
	got := "valid"
	detail := ""
	if err := s.CheckExpression(ctx, st.Text); err != nil {
		got = "invalid"
		detail = err.Error()
	}
	r.record(st.Op(), st.Text, st.Expect, got, st.Expect == "" || st.Expect == got)
	if detail != "" {
		r.Checks[len(r.Checks)-1].Detail = detail
	}
	return nil
}

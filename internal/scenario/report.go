package scenario

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/fsmsketch/pkg/session"
)

// DefaultAlphabet is used when a scenario names no alphabet size.
const DefaultAlphabet = 2

// Check is the outcome of one test, expression or symbols step.
type Check struct {
	Step   int    `json:"step"`
	Op     string `json:"op"`
	Input  string `json:"input"`
	Expect string `json:"expect,omitempty"`
	Got    string `json:"got"`
	Detail string `json:"detail,omitempty"`
	Pass   bool   `json:"pass"`
}

// Report collects the checks of a run.
type Report struct {
	Name   string  `json:"name,omitempty"`
	Checks []Check `json:"checks"`
	step   int
}

func (r *Report) record(op, input, expect, got string, pass bool) {
	r.Checks = append(r.Checks, Check{
		Step:   r.step,
		Op:     op,
		Input:  input,
		Expect: expect,
		Got:    got,
		Pass:   pass,
	})
}

// Failed counts checks whose expectation did not hold.
func (r *Report) Failed() int {
	n := 0
	for _, c := range r.Checks {
		if !c.Pass {
			n++
		}
	}
	return n
}

// WriteText prints one line per check.
func (r *Report) WriteText(w io.Writer) error {
	for _, c := range r.Checks {
		status := "ok  "
		if !c.Pass {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s step %d %s %q -> %s", status, c.Step, c.Op, c.Input, c.Got)
		if c.Expect != "" && !c.Pass {
			line += fmt.Sprintf(" (want %s)", c.Expect)
		}
		if c.Detail != "" {
			line += ": " + c.Detail
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d checks, %d failed\n", len(r.Checks), r.Failed())
	return err
}

// Run replays sc on a fresh session. An edit that fails aborts the run with an
// error naming the step; failed expectations are only recorded.
func Run(ctx context.Context, sc *Scenario, opts ...session.Option) (*Report, error) {
	size := sc.Alphabet
	if size == 0 {
		size = DefaultAlphabet
	}
	s, err := session.New(sc.Name, size, opts...)
	if err != nil {
		return nil, err
	}
	return RunOn(ctx, s, sc)
}

// RunOn replays the steps of sc on an existing session.
func RunOn(ctx context.Context, s *session.Session, sc *Scenario) (*Report, error) {
	r := &Report{Name: sc.Name}
	for i, step := range sc.Steps {
		r.step = i + 1
		if err := step.apply(ctx, s, r); err != nil {
			return r, fmt.Errorf("step %d (%s): %w", r.step, step.Op(), err)
		}
	}
	return r, nil
}

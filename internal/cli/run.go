package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/fsmsketch/internal/scenario"
)

// ErrChecksFailed is returned when a scenario ran to the end but some
// expectations did not hold.
var ErrChecksFailed = errors.New("scenario checks failed")

// ErrInvalidExpression is returned by CheckExpression after the failure has
// already been written to its output.
var ErrInvalidExpression = errors.New("invalid expression")

// RunScenario replays the scenario at path and writes its report to out.
// A scenario without an alphabet size uses the configured one.
func RunScenario(ctx context.Context, path string, opts RunOptions, out io.Writer) (*scenario.Report, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	name := sc.Name
	if name == "" {
		name = path
	}

	s, err := createSession(name, sc.Alphabet, opts)
	if err != nil {
		return nil, err
	}
	opts.logger().Info("Scenario Started", "name", name, "steps", len(sc.Steps), "alphabet", string(s.Alphabet()))

	report, err := scenario.RunOn(ctx, s, sc)
	if report != nil {
		if werr := report.WriteText(out); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return report, fmt.Errorf("%s: %w", name, err)
	}
	if n := report.Failed(); n > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrChecksFailed, n, len(report.Checks))
	}
	return report, nil
}

// CheckExpression validates one expression over the configured alphabet and
// prints the result.
func CheckExpression(ctx context.Context, text string, opts RunOptions, out io.Writer) error {
	s, err := createSession("check", 0, opts)
	if err != nil {
		return err
	}
	if err := s.CheckExpression(ctx, text); err != nil {
		fmt.Fprintf(out, "invalid: %v\n", err)
		return fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}
	fmt.Fprintln(out, "valid")
	return nil
}

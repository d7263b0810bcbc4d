package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndRun(t *testing.T) {
	sc, err := Load("testdata/ends_with_a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ends-with-a", sc.Name)
	assert.Equal(t, 2, sc.Alphabet)
	require.Len(t, sc.Steps, 14)

	report, err := Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Len(t, report.Checks, 8)
	assert.Zero(t, report.Failed(), report.Checks)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	assert.Contains(t, buf.String(), "8 checks, 0 failed")
	assert.Contains(t, buf.String(), `expression "(a+b]" -> invalid: mismatched bracket`)
}

func TestRun_FailedExpectation(t *testing.T) {
	sc, err := Parse([]byte(`
steps:
  - {op: state, label: only}
  - {op: test, word: "", expect: accept}
  - {op: toggle, state: only}
  - {op: test, word: "", expect: accept}
`))
	require.NoError(t, err)

	report, err := Run(context.Background(), sc)
	require.NoError(t, err)
	require.Len(t, report.Checks, 2)
	assert.False(t, report.Checks[0].Pass)
	assert.Equal(t, "reject", report.Checks[0].Got)
	assert.Equal(t, 2, report.Checks[0].Step)
	assert.True(t, report.Checks[1].Pass)
	assert.Equal(t, 1, report.Failed())

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	assert.Contains(t, buf.String(), "FAIL step 2 test \"\" -> reject (want accept)")
}

func TestRun_EditErrorAborts(t *testing.T) {
	sc, err := Parse([]byte(`
alphabet: 1
steps:
  - {op: state, label: p}
  - {op: transition, from: p, to: p, symbol: b}
  - {op: test, word: a}
`))
	require.NoError(t, err)

	report, err := Run(context.Background(), sc)
	assert.ErrorIs(t, err, domain.ErrSymbolNotInAlphabet)
	assert.ErrorContains(t, err, "step 2 (transition)")
	assert.Empty(t, report.Checks)

	sc, err = Parse([]byte(`
steps:
  - {op: final, state: ghost}
`))
	require.NoError(t, err)
	_, err = Run(context.Background(), sc)
	assert.ErrorIs(t, err, domain.ErrUnknownLabel)
}

func TestRun_RemovalKeepsOtherLabels(t *testing.T) {
	sc, err := Parse([]byte(`
steps:
  - {op: state, label: a0}
  - {op: state, label: a1}
  - {op: state, label: a2}
  - {op: final, state: a2}
  - {op: transition, from: a0, to: a1, symbol: a}
  - {op: transition, from: a0, to: a2, symbol: b}
  - {op: remove_state, state: a1}
  - {op: test, word: b, expect: accept}
  - {op: test, word: a, expect: reject}
  - {op: remove_transition, from: a0, to: a2, symbol: b}
  - {op: test, word: b, expect: reject}
  - {op: initial, state: a2}
  - {op: test, word: "", expect: accept}
`))
	require.NoError(t, err)

	report, err := Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Zero(t, report.Failed(), report.Checks)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"yaml", "steps: [", "failed to parse scenario"},
		{"unknown op", "steps:\n  - {op: fly}", `step 1: unknown op "fly"`},
		{"unknown arg", "steps:\n  - {op: state, colour: red}", `op "state"`},
		{"symbol", "steps:\n  - {op: transition, from: a, to: b, symbol: ab}", "single character"},
		{"expect", "steps:\n  - {op: test, word: a, expect: maybe}", "expect must be"},
		{"expression expect", "steps:\n  - {op: expression, text: a, expect: ok}", "expect must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRun_RemoveTransitionAnyDestination(t *testing.T) {
	sc, err := Parse([]byte(`
steps:
  - {op: state, label: p}
  - {op: state, label: q}
  - {op: final, state: q}
  - {op: transition, from: p, to: q, symbol: a}
  - {op: transition, from: p, to: p, symbol: a}
  - {op: remove_transition, from: p, symbol: a}
  - {op: symbols, from: p, expect: a}
  - {op: test, word: a, expect: reject}
  - {op: remove_transition, from: p, symbol: a}
  - {op: symbols, from: p, expect: ""}
`))
	require.NoError(t, err)

	report, err := Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Zero(t, report.Failed(), report.Checks)

	sc, err = Parse([]byte(`
steps:
  - {op: state, label: p}
  - {op: remove_transition, from: p, symbol: b}
`))
	require.NoError(t, err)
	_, err = Run(context.Background(), sc)
	assert.ErrorIs(t, err, domain.ErrTransitionNotFound)
	assert.ErrorContains(t, err, "step 2 (remove_transition)")
}

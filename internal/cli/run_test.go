package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/fsmsketch/internal/config"
	"github.com/aretw0/fsmsketch/internal/logging"
	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunScenario(t *testing.T) {
	opts := RunOptions{Config: config.Default()}

	t.Run("passes", func(t *testing.T) {
		path := writeScenario(t, `
name: single-a
steps:
  - {op: state, label: s}
  - {op: state, label: f}
  - {op: final, state: f}
  - {op: transition, from: s, to: f, symbol: a}
  - {op: test, word: a, expect: accept}
  - {op: test, word: b, expect: reject}
`)
		var out bytes.Buffer
		report, err := RunScenario(context.Background(), path, opts, &out)
		require.NoError(t, err)
		assert.Len(t, report.Checks, 2)
		assert.Contains(t, out.String(), "2 checks, 0 failed")
	})

	t.Run("failed expectation", func(t *testing.T) {
		path := writeScenario(t, `
steps:
  - {op: state}
  - {op: test, word: "", expect: accept}
`)
		var out bytes.Buffer
		_, err := RunScenario(context.Background(), path, opts, &out)
		assert.ErrorIs(t, err, ErrChecksFailed)
		assert.Contains(t, out.String(), "FAIL step 2")
	})

	t.Run("configured alphabet", func(t *testing.T) {
		path := writeScenario(t, `
steps:
  - {op: state, label: s}
  - {op: transition, from: s, to: s, symbol: c}
`)
		small := opts
		_, err := RunScenario(context.Background(), path, small, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrSymbolNotInAlphabet)

		small.Config.AlphabetSize = 3
		_, err = RunScenario(context.Background(), path, small, &bytes.Buffer{})
		assert.NoError(t, err)
	})

	t.Run("permissive symbols", func(t *testing.T) {
		path := writeScenario(t, `
alphabet: 1
steps:
  - {op: state, label: s}
  - {op: transition, from: s, to: s, symbol: z}
  - {op: test, word: z, expect: invalid}
`)
		loose := opts
		loose.Config.StrictSymbols = false
		_, err := RunScenario(context.Background(), path, loose, &bytes.Buffer{})
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := RunScenario(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), opts, &bytes.Buffer{})
		assert.ErrorContains(t, err, "failed to read scenario")
	})
}

func TestCheckExpression(t *testing.T) {
	opts := RunOptions{Config: config.Default()}

	var out bytes.Buffer
	require.NoError(t, CheckExpression(context.Background(), "[(a+b)*]", opts, &out))
	assert.Equal(t, "valid\n", out.String())

	out.Reset()
	err := CheckExpression(context.Background(), "(a+c)", opts, &out)
	assert.ErrorIs(t, err, domain.ErrUnexpectedSymbol)
	assert.ErrorIs(t, err, ErrInvalidExpression)
	assert.Equal(t, "invalid: unexpected symbol: 'c' at position 3\n", out.String())

	out.Reset()
	err = CheckExpression(context.Background(), "(a + b)", opts, &out)
	assert.ErrorIs(t, err, ErrInvalidExpression)
	assert.Contains(t, out.String(), "' ' at position 2")
}

func TestSessionOptions_DebugHooks(t *testing.T) {
	var logs bytes.Buffer
	opts := RunOptions{
		Config: config.Default(),
		Logger: newDebugLogger(&logs),
	}
	s, err := createSession("debug", 0, opts)
	require.NoError(t, err)
	_, err = s.AddState("")
	require.NoError(t, err)
	s.Test(context.Background(), "")

	assert.Contains(t, logs.String(), "msg=Verdict")
}

func newDebugLogger(w *bytes.Buffer) *slog.Logger {
	return logging.NewWithWriter(w, slog.LevelDebug, logging.FormatText)
}

func TestExampleScenarios(t *testing.T) {
	paths, err := filepath.Glob("../../examples/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			var out bytes.Buffer
			_, err := RunScenario(context.Background(), path, RunOptions{Config: config.Default()}, &out)
			assert.NoError(t, err, out.String())
		})
	}
}

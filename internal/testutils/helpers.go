package testutils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/aretw0/fsmsketch/pkg/session"
	"github.com/stretchr/testify/require"
)

// NewSession creates a strict session over size symbols and draws edges, each
// written "from symbol to". States are created on first mention; the first
// one becomes initial. A label written "*name" is also marked accepting.
// It fails the test immediately on error.
func NewSession(t *testing.T, size int, edges ...string) *session.Session {
	t.Helper()

	s, err := session.New(t.Name(), size)
	require.NoError(t, err, "Failed to create session")

	for _, edge := range edges {
		parts := strings.Fields(edge)
		require.Len(t, parts, 3, "edge %q must be \"from symbol to\"", edge)
		require.Equal(t, 1, utf8.RuneCountInString(parts[1]), "edge %q needs a single symbol", edge)

		from := State(t, s, parts[0])
		to := State(t, s, parts[2])
		symbol, _ := utf8.DecodeRuneInString(parts[1])
		require.NoError(t, s.AddTransition(from, to, symbol), "Failed to add edge %q", edge)
	}
	return s
}

// State returns the state labeled name, creating it if needed. A leading "*"
// marks it accepting.
func State(t *testing.T, s *session.Session, name string) domain.StateID {
	t.Helper()

	final := strings.HasPrefix(name, "*")
	name = strings.TrimPrefix(name, "*")

	id, err := s.Resolve(name)
	if err != nil {
		id, err = s.AddState(name)
		require.NoError(t, err, "Failed to add state %q", name)
	}
	if final {
		require.NoError(t, s.SetFinalState(id))
	}
	return id
}

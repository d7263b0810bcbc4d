package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/aretw0/fsmsketch/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t       *testing.T
	handler http.Handler
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}

func newClient(t *testing.T, opts ...Option) *client {
	return &client{t: t, handler: NewHandler(session.NewManager(), opts...)}
}

func TestServer_AcceptanceFlow(t *testing.T) {
	c := newClient(t)

	w := c.do("POST", "/sessions", createSessionRequest{AlphabetSize: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[createSessionResponse](t, w)
	assert.Equal(t, "ab", created.Alphabet)
	base := "/sessions/" + created.ID

	w = c.do("POST", base+"/states", addStateRequest{})
	require.Equal(t, http.StatusCreated, w.Code)
	q0 := decode[stateResponse](t, w)
	assert.Equal(t, "q0", q0.Label)

	w = c.do("POST", base+"/states", addStateRequest{Label: "end"})
	require.Equal(t, http.StatusCreated, w.Code)
	q1 := decode[stateResponse](t, w)
	assert.Equal(t, "end", q1.Label)

	w = c.do("POST", fmt.Sprintf("%s/states/%d/toggle", base, q1.State), nil)
	require.Equal(t, http.StatusOK, w.Code)
	toggled := decode[stateResponse](t, w)
	require.NotNil(t, toggled.Final)
	assert.True(t, *toggled.Final)

	w = c.do("POST", base+"/transitions", transitionRequest{From: q0.State, To: q1.State, Symbol: "a"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for word, want := range map[string]session.Verdict{
		"a":  session.VerdictAccept,
		"b":  session.VerdictReject,
		"aa": session.VerdictReject,
		"ax": session.VerdictInvalid,
	} {
		w = c.do("POST", base+"/test", testRequest{Word: word})
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[testResponse](t, w)
		assert.Equal(t, want, got.Verdict, word)
		assert.Equal(t, want == session.VerdictAccept, got.Accepted, word)
	}

	w = c.do("GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[session.Summary](t, w)
	assert.Len(t, sum.States, 2)
	assert.Equal(t, []session.EdgeSummary{{From: "q0", To: "end", Symbol: "a"}}, sum.Transitions)

	w = c.do("DELETE", base+"/transitions", transitionRequest{From: q0.State, To: q1.State, Symbol: "a"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do("DELETE", base+"/transitions", transitionRequest{From: q0.State, To: q1.State, Symbol: "a"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do("PUT", base+"/initial", initialRequest{State: q1.State})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do("POST", base+"/test", testRequest{Word: ""})
	assert.Equal(t, session.VerdictAccept, decode[testResponse](t, w).Verdict)

	w = c.do("DELETE", fmt.Sprintf("%s/states/%d", base, q1.State), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do("DELETE", fmt.Sprintf("%s/states/%d", base, q1.State), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do("DELETE", base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do("GET", base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Expressions(t *testing.T) {
	c := newClient(t)
	created := decode[createSessionResponse](t, c.do("POST", "/sessions", createSessionRequest{AlphabetSize: 2}))
	path := "/sessions/" + created.ID + "/expressions"

	w := c.do("POST", path, expressionRequest{Text: "(a+b)*"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, expressionResponse{Valid: true}, decode[expressionResponse](t, w))

	w = c.do("POST", path, expressionRequest{Text: "(a+b]"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[expressionResponse](t, w)
	assert.False(t, got.Valid)
	assert.Contains(t, got.Error, domain.ErrMismatchedBracket.Error())
	require.NotNil(t, got.Position)
	assert.Equal(t, 4, *got.Position)
}

func TestServer_Errors(t *testing.T) {
	c := newClient(t)

	w := c.do("POST", "/sessions", createSessionRequest{AlphabetSize: 99})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = c.do("GET", "/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	created := decode[createSessionResponse](t, c.do("POST", "/sessions", createSessionRequest{AlphabetSize: 1}))
	base := "/sessions/" + created.ID
	q0 := decode[stateResponse](t, c.do("POST", base+"/states", addStateRequest{Label: "x"}))

	w = c.do("POST", base+"/states", addStateRequest{Label: "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do("POST", base+"/transitions", transitionRequest{From: q0.State, To: q0.State, Symbol: "b"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = c.do("POST", base+"/transitions", transitionRequest{From: q0.State, To: q0.State, Symbol: "ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do("POST", base+"/transitions", transitionRequest{From: q0.State, To: domain.NewStateID(5, 1), Symbol: "a"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do("DELETE", base+"/states/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest("POST", base+"/test", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})
	c := newClient(t, WithMetricsHandler(metrics))

	w := c.do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, w))

	w = c.do("GET", "/metrics", nil)
	assert.Equal(t, "# metrics", w.Body.String())

	w = c.do("GET", "/sessions", nil)
	assert.Equal(t, map[string][]string{"sessions": {}}, decode[map[string][]string](t, w))
}

func TestServer_CreateSessionDefaults(t *testing.T) {
	c := newClient(t, WithDefaultAlphabet(3))

	w := c.do("POST", "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "abc", decode[createSessionResponse](t, w).Alphabet)

	w = c.do("POST", "/sessions", map[string]any{})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "abc", decode[createSessionResponse](t, w).Alphabet)

	req := httptest.NewRequest("POST", "/sessions", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_RemoveTransitionOnSymbol(t *testing.T) {
	c := newClient(t)
	created := decode[createSessionResponse](t, c.do("POST", "/sessions", createSessionRequest{AlphabetSize: 2}))
	base := "/sessions/" + created.ID
	p := decode[stateResponse](t, c.do("POST", base+"/states", addStateRequest{Label: "p"}))
	q := decode[stateResponse](t, c.do("POST", base+"/states", addStateRequest{Label: "q"}))

	require.Equal(t, http.StatusCreated, c.do("POST", base+"/transitions", transitionRequest{From: p.State, To: q.State, Symbol: "a"}).Code)
	require.Equal(t, http.StatusCreated, c.do("POST", base+"/transitions", transitionRequest{From: p.State, To: p.State, Symbol: "a"}).Code)

	w := c.do("DELETE", base+"/transitions", map[string]any{"from": p.State, "symbol": "a"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	sum := decode[session.Summary](t, c.do("GET", base, nil))
	assert.Equal(t, []session.EdgeSummary{{From: "p", To: "p", Symbol: "a"}}, sum.Transitions)

	w = c.do("DELETE", base+"/transitions", map[string]any{"from": p.State, "symbol": "b"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

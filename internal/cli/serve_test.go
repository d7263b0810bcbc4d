package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/fsmsketch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNewServer_MetricsFollowSessions(t *testing.T) {
	srv, err := NewServer(RunOptions{Config: config.Default()})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp := post(t, ts.URL+"/sessions", `{}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID       string `json:"id"`
		Alphabet string `json:"alphabet"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "ab", created.Alphabet, "configured alphabet size applies")

	base := ts.URL + "/sessions/" + created.ID
	require.Equal(t, http.StatusCreated, post(t, base+"/states", `{"label":"s"}`).StatusCode)
	require.Equal(t, http.StatusOK, post(t, base+"/test", `{"word":"a"}`).StatusCode)
	require.Equal(t, http.StatusOK, post(t, base+"/test", `{"word":"x"}`).StatusCode)
	require.Equal(t, http.StatusOK, post(t, base+"/expressions", `{"text":"(a"}`).StatusCode)

	metrics, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `fsmsketch_words_total{verdict="reject"} 1`)
	assert.Contains(t, text, `fsmsketch_words_total{verdict="invalid"} 1`)
	assert.Contains(t, text, `fsmsketch_expression_checks_total{result="invalid"} 1`)
	assert.Contains(t, text, "go_goroutines")
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Listen = "127.0.0.1:0"
	srv, err := NewServer(RunOptions{Config: cfg})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, RunOptions{Config: cfg}) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

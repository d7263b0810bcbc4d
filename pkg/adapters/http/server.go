package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/fsmsketch/internal/logging"
	"github.com/aretw0/fsmsketch/pkg/brackets"
	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/aretw0/fsmsketch/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Server exposes a session manager as a JSON API.
type Server struct {
	Sessions *session.Manager
	logger   *slog.Logger
	metrics  http.Handler
	alphabet int
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDefaultAlphabet sets the alphabet size used when a create request
// names none.
func WithDefaultAlphabet(size int) Option {
	return func(s *Server) {
		s.alphabet = size
	}
}

// WithMetricsHandler mounts h (usually promhttp) at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler for sessions.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{Sessions: sessions, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/states", s.AddState)
			r.Delete("/states/{state}", s.RemoveState)
			r.Post("/states/{state}/toggle", s.ToggleState)
			r.Put("/initial", s.SetInitial)
			r.Post("/transitions", s.AddTransition)
			r.Delete("/transitions", s.RemoveTransition)
			r.Post("/test", s.TestWord)
			r.Post("/expressions", s.CheckExpression)
		})
	})
	return r
}

type createSessionRequest struct {
	AlphabetSize int `json:"alphabet_size"`
}

type createSessionResponse struct {
	ID       string `json:"id"`
	Alphabet string `json:"alphabet"`
}

type addStateRequest struct {
	Label string `json:"label"`
}

type stateResponse struct {
	State domain.StateID `json:"state"`
	Label string         `json:"label,omitempty"`
	Final *bool          `json:"final,omitempty"`
}

type initialRequest struct {
	State domain.StateID `json:"state"`
}

type transitionRequest struct {
	From   domain.StateID `json:"from"`
	To     domain.StateID `json:"to"`
	Symbol string         `json:"symbol"`
}

type testRequest struct {
	Word string `json:"word"`
}

type testResponse struct {
	Verdict  session.Verdict `json:"verdict"`
	Accepted bool            `json:"accepted"`
}

type expressionRequest struct {
	Text string `json:"text"`
}

type expressionResponse struct {
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.badBody(w, r, err)
		return
	}
	if body.AlphabetSize == 0 {
		body.AlphabetSize = s.alphabet
	}
	sess, err := s.Sessions.Create(body.AlphabetSize)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, createSessionResponse{ID: sess.ID(), Alphabet: string(sess.Alphabet())})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.Sessions.List()})
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Summary())
}

// DeleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddState handles POST /sessions/{sessionID}/states.
func (s *Server) AddState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body addStateRequest
	if !s.decode(w, r, &body) {
		return
	}
	id, err := sess.AddState(body.Label)
	if err != nil {
		s.writeError(w, err)
		return
	}
	label, _ := sess.Label(id)
	s.writeJSON(w, http.StatusCreated, stateResponse{State: id, Label: label})
}

// RemoveState handles DELETE /sessions/{sessionID}/states/{state}.
func (s *Server) RemoveState(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := s.sessionState(w, r)
	if !ok {
		return
	}
	if err := sess.RemoveState(id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleState handles POST /sessions/{sessionID}/states/{state}/toggle.
func (s *Server) ToggleState(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := s.sessionState(w, r)
	if !ok {
		return
	}
	final, err := sess.ToggleStateAcceptance(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stateResponse{State: id, Final: &final})
}

// SetInitial handles PUT /sessions/{sessionID}/initial.
func (s *Server) SetInitial(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body initialRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := sess.SetInitialState(body.State); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTransition handles POST /sessions/{sessionID}/transitions.
func (s *Server) AddTransition(w http.ResponseWriter, r *http.Request) {
	sess, body, symbol, ok := s.transition(w, r)
	if !ok {
		return
	}
	if err := sess.AddTransition(body.From, body.To, symbol); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RemoveTransition handles DELETE /sessions/{sessionID}/transitions.
// Omitting "to" removes the first edge on the symbol whatever its destination.
func (s *Server) RemoveTransition(w http.ResponseWriter, r *http.Request) {
	sess, body, symbol, ok := s.transition(w, r)
	if !ok {
		return
	}
	var err error
	if body.To == domain.NoState {
		err = sess.RemoveTransitionOnSymbol(body.From, symbol)
	} else {
		err = sess.RemoveTransition(body.From, body.To, symbol)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TestWord handles POST /sessions/{sessionID}/test.
// Verdicts are outcomes, not faults: they are always 200.
func (s *Server) TestWord(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body testRequest
	if !s.decode(w, r, &body) {
		return
	}
	verdict := sess.Test(r.Context(), body.Word)
	s.writeJSON(w, http.StatusOK, testResponse{Verdict: verdict, Accepted: verdict == session.VerdictAccept})
}

// CheckExpression handles POST /sessions/{sessionID}/expressions.
func (s *Server) CheckExpression(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body expressionRequest
	if !s.decode(w, r, &body) {
		return
	}

	resp := expressionResponse{Valid: true}
	if err := sess.CheckExpression(r.Context(), body.Text); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
		var se *brackets.SyntaxError
		if errors.As(err, &se) {
			resp.Position = &se.Pos
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.Sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) sessionState(w http.ResponseWriter, r *http.Request) (*session.Session, domain.StateID, bool) {
	sess, ok := s.session(w, r)
	if !ok {
		return nil, domain.NoState, false
	}
	raw, err := strconv.ParseUint(chi.URLParam(r, "state"), 10, 64)
	if err != nil {
		http.Error(w, "invalid state handle", http.StatusBadRequest)
		return nil, domain.NoState, false
	}
	return sess, domain.StateID(raw), true
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request) (*session.Session, transitionRequest, rune, bool) {
	var body transitionRequest
	sess, ok := s.session(w, r)
	if !ok {
		return nil, body, 0, false
	}
	if !s.decode(w, r, &body) {
		return nil, body, 0, false
	}
	if utf8.RuneCountInString(body.Symbol) != 1 {
		http.Error(w, "symbol must be a single character", http.StatusBadRequest)
		return nil, body, 0, false
	}
	symbol, _ := utf8.DecodeRuneInString(body.Symbol)
	return sess, body, symbol, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.badBody(w, r, err)
		return false
	}
	return true
}

func (s *Server) badBody(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, "Invalid request body", http.StatusBadRequest)
	s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
}

// writeError maps engine errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrInvalidStateHandle),
		errors.Is(err, domain.ErrTransitionNotFound),
		errors.Is(err, domain.ErrUnknownLabel):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateLabel):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAlphabetSize),
		errors.Is(err, domain.ErrSymbolNotInAlphabet),
		errors.Is(err, domain.ErrEmptyLabel):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", fmt.Errorf("encode %T: %w", v, err))
	}
}

// Package server exposes compilation and simulation over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regexviz/internal/batch"
	"regexviz/internal/cache"
	"regexviz/internal/render"
	"regexviz/regexlib"
)

const maxBodyBytes = 1 << 20

// Defaults for the compile guards. Subset construction may need 2^n states,
// so patterns are capped before they reach the compiler.
const (
	DefaultMaxPatternLength = 64
	DefaultTimeout          = 10 * time.Second
)

// ReasonPatternTooLong is reported when a pattern exceeds the length cap.
const ReasonPatternTooLong = "pattern-too-long"

// Server serves the regexviz HTTP API.
type Server struct {
	cache      cache.Store
	logger     *slog.Logger
	normalize  func(string) string
	metrics    *metrics
	maxPattern int
	timeout    time.Duration
}

type Option func(*Server)

// WithNormalizer sets the input normalization applied before simulation.
func WithNormalizer(fn func(string) string) Option {
	return func(s *Server) {
		s.normalize = fn
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMaxPatternLength caps patterns, counted in characters. Zero or less
// disables the cap.
func WithMaxPatternLength(n int) Option {
	return func(s *Server) {
		s.maxPattern = n
	}
}

// WithTimeout bounds the time spent serving /compile and /simulate. Zero or
// less disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// New creates a server caching export documents in store.
func New(store cache.Store, opts ...Option) *Server {
	s := &Server{
		cache:      store,
		logger:     slog.Default(),
		normalize:  func(in string) string { return in },
		metrics:    newMetrics(),
		maxPattern: DefaultMaxPatternLength,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodPost, "/compile", s.bounded(s.Compile))
	r.Method(http.MethodPost, "/simulate", s.bounded(s.Simulate))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) bounded(h http.HandlerFunc) http.Handler {
	if s.timeout <= 0 {
		return h
	}
	body := `{"error":"request timed out","reason":"timeout"}`
	return http.TimeoutHandler(h, s.timeout, body)
}

type compileRequest struct {
	Pattern string `json:"pattern"`
}

type simulateRequest struct {
	Pattern string   `json:"pattern"`
	Inputs  []string `json:"inputs"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Reason string `json:"reason,omitempty"`
	Pos    *int   `json:"pos,omitempty"`
}

// Compile handles POST /compile and returns the export document.
func (s *Server) Compile(w http.ResponseWriter, r *http.Request) {
	var body compileRequest
	if !s.decode(w, r, &body) || !s.checkPattern(w, body.Pattern) {
		return
	}

	key := cache.Key(body.Pattern)
	data, err := s.cache.Get(r.Context(), key)
	switch {
	case err == nil:
		s.metrics.cacheHits.Inc()
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	case !errors.Is(err, cache.ErrMiss):
		s.logger.Warn("cache read failed", "error", err)
	}

	re, ok := s.compile(w, body.Pattern)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteJSON(&buf, render.Export(re)); err != nil {
		http.Error(w, "encode export", http.StatusInternalServerError)
		return
	}
	if err := s.cache.Set(r.Context(), key, buf.Bytes()); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

type stepView struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}

type verdictView struct {
	Input      string     `json:"input"`
	Normalized string     `json:"normalized"`
	Accepted   bool       `json:"accepted"`
	Reason     string     `json:"reason,omitempty"`
	FinalState string     `json:"finalState"`
	Steps      []stepView `json:"steps"`
}

type simulateResponse struct {
	Pattern string        `json:"pattern"`
	Results []verdictView `json:"results"`
	Summary string        `json:"summary"`
}

// Simulate handles POST /simulate: every input is run on the DFA and the
// step trace is returned with the verdict.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body simulateRequest
	if !s.decode(w, r, &body) || !s.checkPattern(w, body.Pattern) {
		return
	}
	re, ok := s.compile(w, body.Pattern)
	if !ok {
		return
	}
	sim, err := re.Simulator()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := simulateResponse{Pattern: body.Pattern, Results: []verdictView{}}
	var rep batch.Report
	for _, in := range body.Inputs {
		v := verdictView{Input: in, Normalized: s.normalize(in), Steps: []stepView{}}
		res := sim.Run(v.Normalized)
		v.Accepted = res.Accepted
		rep.Verdicts = append(rep.Verdicts, batch.Verdict{Input: in, Normalized: v.Normalized, Accepted: v.Accepted})
		switch {
		case res.Accepted:
			rep.Accepted++
		case !res.ValidTransition:
			rep.Rejected++
			v.Reason = "no-transition"
		default:
			rep.Rejected++
			v.Reason = "non-accepting"
		}
		v.FinalState = sim.Current().Label
		for _, st := range sim.History() {
			v.Steps = append(v.Steps, stepView{From: st.From.Label, Symbol: string(st.Symbol), To: st.To.Label})
		}
		resp.Results = append(resp.Results, v)
	}
	resp.Summary = rep.Summary()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) compile(w http.ResponseWriter, pattern string) (*regexlib.Result, bool) {
	start := time.Now()
	re, err := regexlib.Compile(pattern)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.compiles.WithLabelValues("error").Inc()
		s.logger.Info("compile rejected", "pattern", pattern, "error", err)
		s.writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	s.metrics.compiles.WithLabelValues("ok").Inc()
	s.logger.Debug("compiled",
		"pattern", pattern,
		"enfa_states", len(re.ENFA.States()),
		"nfa_states", len(re.NFA.States()),
		"dfa_states", len(re.DFA.States()),
	)
	return re, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) checkPattern(w http.ResponseWriter, pattern string) bool {
	if s.maxPattern <= 0 {
		return true
	}
	if n := utf8.RuneCountInString(pattern); n > s.maxPattern {
		s.metrics.compiles.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  fmt.Sprintf("pattern has %d characters, the limit is %d", n, s.maxPattern),
			Kind:   "request",
			Reason: ReasonPatternTooLong,
		})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error(), Kind: regexlib.KindOf(err), Reason: string(regexlib.ReasonOf(err))}
	var e *regexlib.Error
	if errors.As(err, &e) && e.Pos >= 0 {
		resp.Pos = &e.Pos
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	render.WriteJSON(w, v)
}

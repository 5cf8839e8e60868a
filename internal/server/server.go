// Package server serves still frames and instruction strings over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lsystree/app"
	"lsystree/internal/metrics"
	"lsystree/lsystem"
)

const maxSide = 4096

// Server renders frames from a base config; query parameters override a copy
// per request.
type Server struct {
	Base    app.Config
	Width   int
	Height  int
	Log     *slog.Logger
	Metrics *metrics.Recorder
}

// NewHandler builds the router.
func NewHandler(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Get("/instructions", s.handleInstructions)
	r.Get("/frame.png", s.handleFrame)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}
	return r
}

func (s *Server) handleInstructions(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.configFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	instr, err := app.Instructions(cfg.Rules, cfg.Seed, cfg.Iterations, cfg.MaxSymbols)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Symbols", strconv.Itoa(len(instr)))
	w.Write([]byte(instr))
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.configFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	q := r.URL.Query()
	angle := cfg.InitialAngle
	if v := q.Get("angle"); v != "" {
		if angle, err = strconv.ParseFloat(v, 64); err != nil {
			http.Error(w, fmt.Sprintf("angle: %v", err), http.StatusBadRequest)
			return
		}
	}
	width, err := intParam(q.Get("width"), s.Width, 1, maxSide)
	if err != nil {
		http.Error(w, fmt.Sprintf("width: %v", err), http.StatusBadRequest)
		return
	}
	height, err := intParam(q.Get("height"), s.Height, 1, maxSide)
	if err != nil {
		http.Error(w, fmt.Sprintf("height: %v", err), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	opts := []app.Option{app.WithMetrics(s.Metrics)}
	if s.Log != nil {
		opts = append(opts, app.WithLogger(s.Log))
	}
	if err := app.RenderPNG(&buf, cfg, angle, width, height, opts...); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}

func (s *Server) configFrom(r *http.Request) (app.Config, error) {
	cfg := s.Base
	q := r.URL.Query()
	if q.Has("seed") {
		cfg.Seed = q.Get("seed")
	}
	if v := q.Get("iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("iterations: %w", err)
		}
		if n < 0 {
			return cfg, fmt.Errorf("iterations: %w", lsystem.ErrNegativeIterations)
		}
		cfg.Iterations = n
	}
	return cfg, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lsystem.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, app.ErrInvalidConfig), errors.Is(err, lsystem.ErrNegativeIterations):
		status = http.StatusBadRequest
	}
	if s.Log != nil && status == http.StatusInternalServerError {
		s.Log.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	http.Error(w, err.Error(), status)
}

func intParam(v string, def, lo, hi int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

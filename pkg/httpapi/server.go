// Package httpapi exposes the rendering pipeline as an HTTP service: a
// render endpoint that accepts Depict DSL source and returns SVG or
// geometry JSON, and a health check for load balancers and orchestrators.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/depictlang/depict/pkg/depict"
	"github.com/depictlang/depict/pkg/depicterrors"
	"github.com/depictlang/depict/pkg/observability"
	"github.com/depictlang/depict/pkg/pipeline"
	"github.com/depictlang/depict/pkg/rendercache"
)

// Server wraps a pipeline.Runner as an HTTP handler.
type Server struct {
	Runner *pipeline.Runner
	Cache  rendercache.Cache // may be rendercache.NewNullCache() to disable caching
}

// NewServer creates a Server. If cache is nil, caching is disabled.
func NewServer(runner *pipeline.Runner, cache rendercache.Cache) *Server {
	if cache == nil {
		cache = rendercache.NewNullCache()
	}
	return &Server{Runner: runner, Cache: cache}
}

// Handler builds the chi router: POST /render and GET /healthz.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observeRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)

	return r
}

// observeRequests fires observability.HTTPHooks around every request.
func (s *Server) observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(req.Context(), req.Method, req.URL.Path)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, req)

		hooks.OnResponse(req.Context(), req.Method, req.URL.Path, sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// renderRequest is the POST /render request body.
type renderRequest struct {
	Source    string            `json:"source"`
	Emit      string            `json:"emit,omitempty"` // "svg" (default) or "geometry"
	FontSize  float64           `json:"font_size,omitempty"`
	RowHeight float64           `json:"row_height,omitempty"`
	ClassMap  map[string]string `json:"class_map,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Emit == "" {
		req.Emit = "svg"
	}

	key := rendercache.Key(req.Source, rendercache.KeyOpts{
		Emit:      req.Emit,
		FontSize:  req.FontSize,
		RowHeight: req.RowHeight,
		ClassMap:  req.ClassMap,
	})

	if cached, hit, err := s.Cache.Get(r.Context(), key); err == nil && hit {
		s.writeRendered(w, req.Emit, cached)
		return
	}

	opts := pipeline.Options{
		Source:    req.Source,
		FontSize:  req.FontSize,
		RowHeight: req.RowHeight,
		ClassMap:  req.ClassMap,
	}
	if req.Emit == "geometry" {
		opts.Emit = depict.EmitGeometry
	}

	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeRenderError(w, r, err)
		return
	}

	var data []byte
	if req.Emit == "geometry" {
		data, err = json.Marshal(result.Geometry)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
	} else {
		data = result.SVG
	}

	_ = s.Cache.Set(r.Context(), key, data, time.Hour)
	s.writeRendered(w, req.Emit, data)
}

func (s *Server) writeRendered(w http.ResponseWriter, emit string, data []byte) {
	if emit == "geometry" {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	_, _ = w.Write(data)
}

func (s *Server) writeRenderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case func() bool { _, ok := depicterrors.AsParseError(err); return ok }():
		status = http.StatusBadRequest
	case func() bool { _, ok := depicterrors.AsInternalError(err); return ok }():
		status = http.StatusInternalServerError
	}
	s.writeError(w, r, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/depictlang/depict/pkg/pipeline"
	"github.com/depictlang/depict/pkg/rendercache"
)

func newTestServer() *Server {
	return NewServer(pipeline.NewRunner(nil), rendercache.NewNullCache())
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", rec.Code)
	}
}

func TestHandleRenderSVG(t *testing.T) {
	srv := newTestServer()
	body, _ := json.Marshal(renderRequest{Source: "Client Server: ping\n"})
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /render status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Error("POST /render should return non-empty SVG body")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
}

func TestHandleRenderGeometry(t *testing.T) {
	srv := newTestServer()
	body, _ := json.Marshal(renderRequest{Source: "Client Server: ping\n", Emit: "geometry"})
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /render status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var geo map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &geo); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
}

func TestHandleRenderInvalidJSON(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRenderParseError(t *testing.T) {
	srv := newTestServer()
	body, _ := json.Marshal(renderRequest{Source: "A B no colon\n"})
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a parse error", rec.Code)
	}
}

func TestHandleRenderRepeatedRequestsWithNullCache(t *testing.T) {
	cache := rendercache.NewNullCache()
	srv := NewServer(pipeline.NewRunner(nil), cache)

	body, _ := json.Marshal(renderRequest{Source: "Client Server: ping\n"})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

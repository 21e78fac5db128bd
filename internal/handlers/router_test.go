package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/repositories"
)

func TestRouterHealthz(t *testing.T) {
	now := time.Date(2025, time.May, 6, 12, 0, 0, 0, time.UTC)
	router := NewRouter(WithHealthHandlers(NewHealthHandlers(
		WithHealthClock(func() time.Time { return now }),
		WithHealthVersion("1.2.3"),
	)))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["status"] != "ok" || body["version"] != "1.2.3" {
		t.Fatalf("unexpected payload %v", body)
	}
}

func TestRouterNotFoundEnvelope(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["error"] != "route_not_found" {
		t.Fatalf("unexpected payload %v", body)
	}
}

func TestRouterMountsGroups(t *testing.T) {
	router := NewRouter(WithPublicRoutes(func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			writeJSONResponse(w, http.StatusOK, map[string]any{"pong": true})
		})
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/ping", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/anything", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("unregistered group status = %d, want 501", rr.Code)
	}
}

func TestRouterReadyzFailure(t *testing.T) {
	failing := repositories.DependencyCheck{
		Name:    "firestore",
		Timeout: 50 * time.Millisecond,
		Check: func(context.Context) error {
			return errors.New("connection refused")
		},
	}
	router := NewRouter(WithHealthHandlers(NewHealthHandlers(
		WithReadinessChecks(failing),
	)))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hatbazar/api/internal/platform/httpx"
	"github.com/hatbazar/api/internal/repositories"
)

const defaultCheckTimeout = 2 * time.Second

// HealthHandlers serves liveness and readiness probes. Readiness runs the
// configured dependency checks with individual timeouts.
type HealthHandlers struct {
	clock     func() time.Time
	startedAt time.Time
	version   string
	checks    []repositories.DependencyCheck
}

// HealthOption customises the health handlers.
type HealthOption func(*HealthHandlers)

// WithHealthClock overrides the time source, used in tests.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithHealthVersion reports a build version in probe payloads.
func WithHealthVersion(version string) HealthOption {
	return func(h *HealthHandlers) {
		h.version = version
	}
}

// WithReadinessChecks registers dependency probes run by /readyz.
func WithReadinessChecks(checks ...repositories.DependencyCheck) HealthOption {
	return func(h *HealthHandlers) {
		h.checks = append(h.checks, checks...)
	}
}

// NewHealthHandlers constructs probe handlers.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{clock: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	h.startedAt = h.clock().UTC()
	return h
}

// Healthz reports process liveness only.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock().UTC()
	payload := map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.startedAt).String(),
		"timestamp": now.Format(time.RFC3339),
	}
	if h.version != "" {
		payload["version"] = h.version
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

// Readyz runs each dependency check and reports per-dependency outcomes.
// Any failure yields 503.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	type checkResult struct {
		Name  string `json:"name"`
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]checkResult, 0, len(h.checks))
	healthy := true
	for _, check := range h.checks {
		result := checkResult{Name: check.Name, OK: true}
		if err := runDependencyCheck(ctx, check); err != nil {
			result.OK = false
			result.Error = err.Error()
			healthy = false
		}
		results = append(results, result)
	}

	if !healthy {
		httpx.WriteError(ctx, w, httpx.NewError("not_ready", "one or more dependencies failed", http.StatusServiceUnavailable).
			WithDetails(map[string]any{"checks": results}))
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"checks": results,
	})
}

func runDependencyCheck(ctx context.Context, check repositories.DependencyCheck) error {
	if check.Check == nil {
		return nil
	}
	timeout := check.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return check.Check(ctx)
}

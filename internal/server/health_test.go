package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/streamfront/internal/services"
)

type pingerFunc func(ctx context.Context, path, token string) (*services.APIResponse, error)

func (f pingerFunc) Get(ctx context.Context, path, token string) (*services.APIResponse, error) {
	return f(ctx, path, token)
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) Health {
	t.Helper()
	var h Health
	if err := json.NewDecoder(rec.Body).Decode(&h); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	return h
}

func TestHealthCheck(t *testing.T) {
	t.Run("Without Pinger", func(t *testing.T) {
		rec := serve(HealthCheck(nil), httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if h := decodeHealth(t, rec); h.Status != "ok" || h.Upstream.Status != "skipped" {
			t.Errorf("unexpected health %+v", h)
		}
	})

	t.Run("Unreachable Upstream", func(t *testing.T) {
		p := pingerFunc(func(ctx context.Context, path, token string) (*services.APIResponse, error) {
			return nil, errors.New("connection refused")
		})

		rec := serve(HealthCheck(p), httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", rec.Code)
		}
		h := decodeHealth(t, rec)
		if h.Status != "degraded" || h.Upstream.Status != "error" {
			t.Errorf("unexpected health %+v", h)
		}
		if h.Upstream.Message == "connection refused" {
			t.Error("expected transport details to stay out of the response")
		}
	})

	t.Run("Reachable Upstream", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer upstream.Close()

		api := services.NewAPIService(upstream.URL, upstream.Client())
		rec := serve(HealthCheck(api), httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if h := decodeHealth(t, rec); h.Upstream.Status != "ok" {
			t.Errorf("unexpected health %+v", h)
		}
	})

	t.Run("Mounted On App", func(t *testing.T) {
		rec := serve(newTestApp(testConfig(), catalogUpstream()), httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

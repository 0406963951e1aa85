package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"github.com/desertthunder/streamfront/internal/shared"
)

func teapot() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := Chain(teapot(), RequestLogger(shared.NewLogger(&buf)))

	serve(h, httptest.NewRequest(http.MethodGet, "/pot", nil))

	out := buf.String()
	for _, want := range []string{"WARN", "path=/pot", "status=418", "bytes=15"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got %s", want, out)
		}
	}
}

func TestSecureHeaders(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		rec := serve(Chain(teapot(), SecureHeaders(true)), httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Header().Get("X-Frame-Options") != "SAMEORIGIN" {
			t.Error("expected frame options")
		}
		if rec.Header().Get("Strict-Transport-Security") != "" {
			t.Error("expected no HSTS in development")
		}
	})

	t.Run("Production", func(t *testing.T) {
		rec := serve(Chain(teapot(), SecureHeaders(false)), httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Header().Get("Strict-Transport-Security") == "" {
			t.Error("expected HSTS in production")
		}
	})
}

func TestCORS(t *testing.T) {
	const origin = "http://localhost:8080"
	h := Chain(teapot(), CORS(origin))

	t.Run("Matching Origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		rec := serve(h, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != origin {
			t.Errorf("expected allowed origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
		}
		if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Error("expected credentials to be allowed")
		}
		if rec.Code != http.StatusTeapot {
			t.Errorf("expected handler to run, got %d", rec.Code)
		}
	})

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/user-movies", nil)
		req.Header.Set("Origin", origin)
		rec := serve(h, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
		if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete) {
			t.Error("expected DELETE to be allowed")
		}
	})

	t.Run("Other Origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := serve(h, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("expected no CORS headers")
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		rec := serve(Chain(teapot(), CORS("")), req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("expected no CORS headers")
		}
	})

	t.Run("Preflight Through App", func(t *testing.T) {
		cfg := testConfig()
		cfg.Server.CORSOrigin = origin
		app := newTestApp(cfg, catalogUpstream())

		req := httptest.NewRequest(http.MethodOptions, "/user-movies", nil)
		req.Header.Set("Origin", origin)
		rec := serve(app, req)

		if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != origin {
			t.Errorf("expected preflight answer, got %d %v", rec.Code, rec.Header())
		}
	})
}

func TestRateLimit(t *testing.T) {
	h := Chain(teapot(), RateLimit(rate.NewLimiter(rate.Limit(0.001), 2)))

	codes := []int{}
	for range 3 {
		codes = append(codes, serve(h, httptest.NewRequest(http.MethodPost, "/", nil)).Code)
	}

	if codes[0] != http.StatusTeapot || codes[1] != http.StatusTeapot {
		t.Errorf("expected burst to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", codes[2])
	}
}

func TestChain(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	serve(Chain(teapot(), mark("a"), mark("b"), mark("c")), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, "") != "abc" {
		t.Errorf("expected abc, got %v", order)
	}
}

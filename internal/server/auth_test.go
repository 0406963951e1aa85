package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/session"
	"github.com/desertthunder/streamfront/internal/shared"
	tu "github.com/desertthunder/streamfront/internal/testing"
)

func authUpstream() *tu.MockUpstream {
	return &tu.MockUpstream{
		SignInFn: func(ctx context.Context, email, password string) (*models.AuthResult, error) {
			if password != "secret" {
				return nil, fmt.Errorf("%w: rejected", shared.ErrAuthFailed)
			}
			return &models.AuthResult{
				Token: "jwt",
				User:  models.User{ID: "u1", Name: "Ada", Email: email},
			}, nil
		},
		SignUpFn: func(ctx context.Context, user models.SignUp) (string, error) {
			return "u7", nil
		},
	}
}

func TestAuthHandler(t *testing.T) {
	t.Run("SignIn", func(t *testing.T) {
		t.Run("Basic Auth Returns User And Sets Cookies", func(t *testing.T) {
			cfg := testConfig()
			cfg.Server.Env = "production"
			app := newTestApp(cfg, authUpstream())

			req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
			req.SetBasicAuth("ada@example.com", "secret")
			rec := serve(app, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var user models.User
			if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if user.ID != "u1" || user.Email != "ada@example.com" {
				t.Errorf("unexpected user %+v", user)
			}

			cookies := responseCookies(rec)
			token := cookies[session.CookieToken]
			if token == nil || token.Value != "jwt" {
				t.Fatalf("expected token cookie, got %+v", token)
			}
			if !token.HttpOnly || !token.Secure {
				t.Error("expected HttpOnly and Secure token in production")
			}
			if cookies[session.CookieID] == nil || cookies[session.CookieID].Value != "u1" {
				t.Error("expected id cookie")
			}
		})

		t.Run("Development Token Is Not Secure", func(t *testing.T) {
			app := newTestApp(testConfig(), authUpstream())

			req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
			req.SetBasicAuth("ada@example.com", "secret")
			rec := serve(app, req)

			if token := responseCookies(rec)[session.CookieToken]; token == nil || token.Secure {
				t.Errorf("expected non-secure token cookie in development, got %+v", token)
			}
		})

		t.Run("Form Post Redirects Home", func(t *testing.T) {
			app := newTestApp(testConfig(), authUpstream())

			form := url.Values{"email": {"ada@example.com"}, "password": {"secret"}}
			req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := serve(app, req)

			if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
				t.Errorf("expected 303 to /, got %d %q", rec.Code, rec.Header().Get("Location"))
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			upstream := authUpstream()
			app := newTestApp(testConfig(), upstream)

			rec := serve(app, httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if len(upstream.Calls()) != 0 {
				t.Error("expected no upstream call")
			}
		})

		t.Run("Rejected Credentials", func(t *testing.T) {
			app := newTestApp(testConfig(), authUpstream())

			req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
			req.SetBasicAuth("ada@example.com", "wrong")
			rec := serve(app, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if _, ok := responseCookies(rec)[session.CookieToken]; ok {
				t.Error("expected no token cookie")
			}

			var body errorBody
			json.NewDecoder(rec.Body).Decode(&body)
			if body.Error == "" {
				t.Error("expected error message")
			}
		})

		t.Run("Rate Limited", func(t *testing.T) {
			cfg := testConfig()
			cfg.Server.AuthRateLimit = 0.001
			cfg.Server.AuthBurst = 1
			app := newTestApp(cfg, authUpstream())

			send := func() int {
				req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
				req.SetBasicAuth("ada@example.com", "secret")
				return serve(app, req).Code
			}

			if code := send(); code != http.StatusOK {
				t.Fatalf("expected first request to pass, got %d", code)
			}
			if code := send(); code != http.StatusTooManyRequests {
				t.Errorf("expected 429, got %d", code)
			}
		})
	})

	t.Run("SignUp", func(t *testing.T) {
		t.Run("JSON", func(t *testing.T) {
			app := newTestApp(testConfig(), authUpstream())

			body := `{"name":"Ada","email":"ada@example.com","password":"secret"}`
			req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(app, req)

			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
			}

			var user models.User
			json.NewDecoder(rec.Body).Decode(&user)
			if user.ID != "u7" || user.Name != "Ada" || user.Email != "ada@example.com" {
				t.Errorf("unexpected user %+v", user)
			}
		})

		t.Run("Form Redirects To Login", func(t *testing.T) {
			app := newTestApp(testConfig(), authUpstream())

			form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "password": {"secret"}}
			req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := serve(app, req)

			if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
				t.Errorf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
			}
		})

		t.Run("Missing Fields", func(t *testing.T) {
			app := newTestApp(testConfig(), authUpstream())

			req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(`{"email":"ada@example.com"}`))
			rec := serve(app, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			app := newTestApp(testConfig(), authUpstream())

			rec := serve(app, httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(`{`)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	})

	t.Run("Logout", func(t *testing.T) {
		app := newTestApp(testConfig(), authUpstream())

		rec := serve(app, signIn(httptest.NewRequest(http.MethodGet, "/logout", nil)))

		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
			t.Errorf("expected 302 to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
		}
		cookies := responseCookies(rec)
		for _, name := range []string{session.CookieEmail, session.CookieName, session.CookieID, session.CookieToken} {
			if c, ok := cookies[name]; !ok || c.MaxAge >= 0 {
				t.Errorf("expected %s to be expired", name)
			}
		}
	})
}

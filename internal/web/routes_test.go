package web

import (
	"testing"

	"github.com/desertthunder/streamfront/internal/models"
)

func TestAuthStateOf(t *testing.T) {
	if got := AuthStateOf(models.Identity{}); got != Anonymous {
		t.Errorf("expected anonymous, got %s", got)
	}
	if got := AuthStateOf(models.Identity{Email: "ada@example.com", Token: "jwt"}); got != Anonymous {
		t.Errorf("expected identity without id to be anonymous, got %s", got)
	}
	if got := AuthStateOf(models.Identity{ID: "u1"}); got != Authenticated {
		t.Errorf("expected authenticated, got %s", got)
	}
}

func TestRouteTable(t *testing.T) {
	tests := []struct {
		name     string
		auth     AuthState
		path     string
		view     View
		redirect string
		params   map[string]string
	}{
		{name: "Anonymous Home", auth: Anonymous, path: "/", redirect: "/login"},
		{name: "Anonymous Login", auth: Anonymous, path: "/login", view: ViewLogin},
		{name: "Anonymous Register", auth: Anonymous, path: "/register", view: ViewRegister},
		{name: "Anonymous Player", auth: Anonymous, path: "/player/42", redirect: "/login"},
		{name: "Anonymous Unknown", auth: Anonymous, path: "/zzz", view: ViewNotFound},
		{name: "Signed In Home", auth: Authenticated, path: "/", view: ViewHome},
		{name: "Signed In Login", auth: Authenticated, path: "/login", redirect: "/"},
		{name: "Signed In Register", auth: Authenticated, path: "/register", redirect: "/"},
		{name: "Signed In Player", auth: Authenticated, path: "/player/42", view: ViewPlayer, params: map[string]string{"id": "42"}},
		{name: "Signed In Unknown", auth: Authenticated, path: "/zzz", view: ViewNotFound},
		{name: "Trailing Slash", auth: Authenticated, path: "/login/", redirect: "/"},
		{name: "Empty Path", auth: Authenticated, path: "", view: ViewHome},
		{name: "Player Without Id", auth: Authenticated, path: "/player/", view: ViewNotFound},
		{name: "Player Extra Segment", auth: Authenticated, path: "/player/42/extra", view: ViewNotFound},
		{name: "Not Prefix Matched", auth: Anonymous, path: "/login/help", view: ViewNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, params := RoutesFor(tt.auth).Match(tt.path)

			if route.Redirect != tt.redirect {
				t.Errorf("expected redirect %q, got %q", tt.redirect, route.Redirect)
			}
			if tt.redirect == "" && route.View != tt.view {
				t.Errorf("expected view %q, got %q", tt.view, route.View)
			}
			for k, v := range tt.params {
				if params[k] != v {
					t.Errorf("expected param %s=%q, got %q", k, v, params[k])
				}
			}
		})
	}

	t.Run("Tables Are Copies", func(t *testing.T) {
		table := RoutesFor(Anonymous)
		table[0].Redirect = "/elsewhere"

		if route, _ := RoutesFor(Anonymous).Match("/"); route.Redirect != "/login" {
			t.Errorf("expected table to be unaffected, got %q", route.Redirect)
		}
	})
}

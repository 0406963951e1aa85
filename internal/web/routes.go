package web

import (
	"slices"
	"strings"

	"github.com/desertthunder/streamfront/internal/models"
)

// AuthState selects between the two route tables.
type AuthState int

const (
	Anonymous AuthState = iota
	Authenticated
)

func (a AuthState) String() string {
	if a == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// AuthStateOf reports [Authenticated] when the identity carries a user id.
func AuthStateOf(id models.Identity) AuthState {
	if id.LoggedIn() {
		return Authenticated
	}
	return Anonymous
}

// View names a page template.
type View string

const (
	ViewHome     View = "home"
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewPlayer   View = "player"
	ViewNotFound View = "notfound"
)

// Route maps an exact path pattern to a view or to a redirect target.
//
// Segments starting with ":" capture one non-empty path segment.
type Route struct {
	Path     string
	View     View
	Redirect string
}

// RouteTable is matched in order; the first matching route wins.
type RouteTable []Route

var (
	anonymousRoutes = RouteTable{
		{Path: "/", Redirect: "/login"},
		{Path: "/login", View: ViewLogin},
		{Path: "/register", View: ViewRegister},
		{Path: "/player/:id", Redirect: "/login"},
	}
	authenticatedRoutes = RouteTable{
		{Path: "/", View: ViewHome},
		{Path: "/login", Redirect: "/"},
		{Path: "/register", Redirect: "/"},
		{Path: "/player/:id", View: ViewPlayer},
	}
	notFoundRoute = Route{Path: "*", View: ViewNotFound}
)

// RoutesFor returns the route table for the given state.
func RoutesFor(a AuthState) RouteTable {
	if a == Authenticated {
		return slices.Clone(authenticatedRoutes)
	}
	return slices.Clone(anonymousRoutes)
}

// Match finds the route for path and its captured parameters.
//
// Unmatched paths resolve to the NotFound route. A single trailing slash is ignored.
func (t RouteTable) Match(path string) (Route, map[string]string) {
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	for _, route := range t {
		if params, ok := matchPattern(route.Path, path); ok {
			return route, params
		}
	}
	return notFoundRoute, map[string]string{}
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return nil, false
	}

	params := map[string]string{}
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if got[i] == "" {
				return nil, false
			}
			params[name] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/shared"
	"github.com/desertthunder/streamfront/internal/state"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"avatar": Gravatar,
}).ParseFS(templateFS, "templates/*.html"))

// maxRedirects bounds redirect chains between route tables.
const maxRedirects = 3

// Result is a rendered view.
type Result struct {
	View     View
	Params   map[string]string
	Redirect string // final location when the requested path redirected
	Status   int
	Markup   template.HTML
	State    models.PreloadedState // the state the view was rendered with
}

// Renderer renders views into markup.
type Renderer struct {
	title string
}

// NewRenderer creates a [Renderer] using title as the site name in page headers.
func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "PlatziVideo"
	}
	return &Renderer{title: title}
}

// Title returns the site name.
func (r *Renderer) Title() string {
	return r.title
}

type rail struct {
	Title  string
	Movies []models.Movie
	IsList bool
}

type viewData struct {
	Title  string
	State  models.PreloadedState
	Params map[string]string
	Query  string
	Rails  []rail
}

// Render matches location against the route table for the state's user and renders the resulting view.
//
// Redirects are followed inside the render; [Result.Redirect] reports where they ended. The state is not modified: the
// Player view fills playing and Home fills search on a copy returned in [Result.State].
func (r *Renderer) Render(s models.PreloadedState, location string) (*Result, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: bad location %q: %v", shared.ErrInvalidInput, location, err)
	}

	table := RoutesFor(AuthStateOf(s.User))
	path := u.Path
	query := u.Query()
	redirect := ""

	route, params := table.Match(path)
	for hops := 0; route.Redirect != ""; hops++ {
		if hops == maxRedirects {
			return nil, fmt.Errorf("too many redirects from %q", location)
		}
		redirect = route.Redirect
		query = url.Values{}
		route, params = table.Match(redirect)
	}

	res := &Result{
		View:     route.View,
		Params:   params,
		Redirect: redirect,
		Status:   http.StatusOK,
		State:    s,
	}

	data := viewData{Title: r.title, Params: params}

	switch route.View {
	case ViewHome:
		if term := query.Get("search"); term != "" {
			c := state.Collections{MyList: s.MyList, Trends: s.Trends, Originals: s.Originals}
			found := state.Search(c, term)
			if found == nil {
				found = []models.Movie{}
			}
			res.State.Search = found
			data.Query = term
		}
		data.Rails = homeRails(res.State)
	case ViewPlayer:
		if m, ok := state.FindPlaying(s, params["id"]); ok {
			res.State.Playing = m
		}
	case ViewNotFound:
		res.Status = http.StatusNotFound
	}
	data.State = res.State

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(route.View), data); err != nil {
		return nil, fmt.Errorf("render %s: %w", route.View, err)
	}
	res.Markup = template.HTML(buf.String())

	return res, nil
}

func homeRails(s models.PreloadedState) []rail {
	var rails []rail
	if len(s.Search) > 0 {
		rails = append(rails, rail{Title: "Results", Movies: s.Search})
	}
	if len(s.MyList) > 0 {
		rails = append(rails, rail{Title: "My list", Movies: s.MyList, IsList: true})
	}
	return append(rails,
		rail{Title: "Trends", Movies: s.Trends},
		rail{Title: "Originals", Movies: s.Originals},
	)
}

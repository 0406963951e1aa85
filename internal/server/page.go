package server

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/streamfront/internal/session"
	"github.com/desertthunder/streamfront/internal/state"
	"github.com/desertthunder/streamfront/internal/web"
)

// AssetSource resolves the bundle paths for the document.
type AssetSource interface {
	Assets() web.Assets
}

// PageHandler serves every page through the server-side render pipeline.
type PageHandler struct {
	builder  *state.Builder
	renderer *web.Renderer
	assets   AssetSource
	logger   *log.Logger
}

// NewPageHandler creates a new [PageHandler].
func NewPageHandler(builder *state.Builder, renderer *web.Renderer, assets AssetSource, logger *log.Logger) *PageHandler {
	return &PageHandler{builder: builder, renderer: renderer, assets: assets, logger: logger}
}

// Routes returns the catch-all pattern; more specific routes take precedence.
func (h *PageHandler) Routes() []string {
	return []string{"/*"}
}

// ServeHTTP builds the preloaded state from the session, renders the requested view and writes the document.
//
// Failing to load the user's collections expires the token cookie and renders the logged-out page.
// Route redirects become 302 responses.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := session.FromRequest(r)

	s, outcome := h.builder.Build(r.Context(), id)
	if outcome.ClearToken {
		session.ClearToken(w)
	}

	res, err := h.renderer.Render(s, r.URL.RequestURI())
	if err != nil {
		h.logger.Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Something went wrong while rendering the page.", http.StatusInternalServerError)
		return
	}

	if res.Redirect != "" {
		http.Redirect(w, r, res.Redirect, http.StatusFound)
		return
	}

	doc, err := web.Compose(web.Page{
		Title:  h.renderer.Title(),
		Markup: res.Markup,
		State:  res.State,
		Assets: h.assets.Assets(),
	})
	if err != nil {
		h.logger.Error("compose failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Something went wrong while rendering the page.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(res.Status)
	w.Write(doc)
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/desertthunder/streamfront/internal/services"
	"github.com/desertthunder/streamfront/internal/session"
	"github.com/desertthunder/streamfront/internal/shared"
)

// UserMoviesHandler proxies "my list" changes to the upstream API for the signed-in user.
type UserMoviesHandler struct {
	api    services.Upstream
	logger *log.Logger
}

// NewUserMoviesHandler creates a new [UserMoviesHandler].
func NewUserMoviesHandler(api services.Upstream, logger *log.Logger) *UserMoviesHandler {
	return &UserMoviesHandler{api: api, logger: logger}
}

// List returns the user's favorite links.
func (h *UserMoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	id := session.FromRequest(r)
	if !id.LoggedIn() {
		writeError(w, h.logger, r, shared.ErrNotAuthenticated)
		return
	}

	links, err := h.api.UserMovies(r.Context(), id.Token, id.ID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: links, Message: "user movies listed"})
}

// Add saves {"movieId": ...} to the user's list.
func (h *UserMoviesHandler) Add(w http.ResponseWriter, r *http.Request) {
	id := session.FromRequest(r)
	if !id.LoggedIn() {
		writeError(w, h.logger, r, shared.ErrNotAuthenticated)
		return
	}

	var body struct {
		MovieID string `json:"movieId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, r, fmt.Errorf("%w: malformed body: %v", shared.ErrInvalidInput, err))
		return
	}
	if body.MovieID == "" {
		writeError(w, h.logger, r, fmt.Errorf("%w: movieId is required", shared.ErrInvalidInput))
		return
	}

	linkID, err := h.api.AddUserMovie(r.Context(), id.Token, id.ID, body.MovieID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Data: linkID, Message: "user movie created"})
}

// Remove deletes a movie from the user's list.
//
// The path carries the movie id; the upstream deletes by link id, so the link is looked up first.
func (h *UserMoviesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := session.FromRequest(r)
	if !id.LoggedIn() {
		writeError(w, h.logger, r, shared.ErrNotAuthenticated)
		return
	}

	movieID := chi.URLParam(r, "movieId")
	if movieID == "" {
		writeError(w, h.logger, r, fmt.Errorf("%w: movie id is required", shared.ErrInvalidInput))
		return
	}

	links, err := h.api.UserMovies(r.Context(), id.Token, id.ID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	linkID := ""
	for _, link := range links {
		if link.MovieID == movieID {
			linkID = link.ID
			break
		}
	}
	if linkID == "" {
		writeError(w, h.logger, r, fmt.Errorf("%w: %s", shared.ErrFavoriteNotFound, movieID))
		return
	}

	removed, err := h.api.DeleteUserMovie(r.Context(), id.Token, linkID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: removed, Message: "user movie removed"})
}

// package services defines interface Upstream for interacting with the movies/users API
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/shared"
)

// Upstream defines every call the front end makes against the movies/users API.
type Upstream interface {
	// Movies retrieves the full catalog.
	Movies(ctx context.Context, token string) ([]models.Movie, error)

	// UserMovies retrieves the favorite links saved by the given user.
	UserMovies(ctx context.Context, token, userID string) ([]models.FavoriteLink, error)

	// AddUserMovie saves a movie to the user's list and returns the created link id.
	AddUserMovie(ctx context.Context, token, userID, movieID string) (string, error)

	// DeleteUserMovie removes a favorite link by its own id (not the movie id).
	DeleteUserMovie(ctx context.Context, token, linkID string) (string, error)

	// SignUp registers a user and returns the new user id.
	SignUp(ctx context.Context, user models.SignUp) (string, error)

	// SignIn authenticates email and password.
	SignIn(ctx context.Context, email, password string) (*models.AuthResult, error)

	// SignInProvider exchanges a third-party profile for an upstream token.
	SignInProvider(ctx context.Context, profile models.ProviderProfile) (*models.AuthResult, error)
}

// StatusError reports a non-2xx response from the upstream API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s %s returned %d", shared.ErrUpstreamStatus, e.Method, e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return shared.ErrUpstreamStatus
}

// envelope is the wrapper used by the upstream collection endpoints.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

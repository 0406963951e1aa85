package state

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/shared"
)

// Catalog is the slice of the upstream API the builder reads.
type Catalog interface {
	Movies(ctx context.Context, token string) ([]models.Movie, error)
	UserMovies(ctx context.Context, token, userID string) ([]models.FavoriteLink, error)
}

// Outcome tells the caller what to do with the session after a build.
type Outcome struct {
	ClearToken bool  // the token cookie must be expired
	Err        error // cause of the fallback, nil on success
}

// Builder assembles the preloaded state for a request.
type Builder struct {
	catalog Catalog
	logger  *log.Logger
}

// NewBuilder creates a [Builder] reading from catalog. A nil logger writes to stderr.
func NewBuilder(catalog Catalog, logger *log.Logger) *Builder {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Builder{catalog: catalog, logger: shared.WithLogger(logger, "component", "state")}
}

// DefaultState returns the logged-out application state.
func DefaultState() models.PreloadedState {
	return models.PreloadedState{
		MyList:    []models.Movie{},
		Trends:    []models.Movie{},
		Originals: []models.Movie{},
		Search:    []models.Movie{},
	}
}

// Build fetches the catalog and the user's favorites concurrently and reconciles them.
//
// Anonymous identities get [DefaultState] without touching the upstream. Any fetch failure also yields
// [DefaultState], with [Outcome.ClearToken] set: a partially filled state is never returned.
func (b *Builder) Build(ctx context.Context, id models.Identity) (models.PreloadedState, Outcome) {
	if !id.LoggedIn() {
		return DefaultState(), Outcome{}
	}

	var (
		catalog []models.Movie
		links   []models.FavoriteLink
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		movies, err := b.catalog.Movies(gctx, id.Token)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		catalog = movies
		return nil
	})
	g.Go(func() error {
		favs, err := b.catalog.UserMovies(gctx, id.Token, id.ID)
		if err != nil {
			return fmt.Errorf("fetch favorites: %w", err)
		}
		links = favs
		return nil
	})

	if err := g.Wait(); err != nil {
		b.logger.Warn("falling back to logged-out state", "user", id.ID, "error", err)
		return DefaultState(), Outcome{ClearToken: true, Err: err}
	}

	c := Reconcile(catalog, links)

	s := DefaultState()
	s.User = models.Identity{Email: id.Email, Name: id.Name, ID: id.ID}
	if c.MyList != nil {
		s.MyList = c.MyList
	}
	if c.Trends != nil {
		s.Trends = c.Trends
	}
	if c.Originals != nil {
		s.Originals = c.Originals
	}

	b.logger.Debug("built state", "user", id.ID, "mylist", len(s.MyList), "trends", len(s.Trends), "originals", len(s.Originals))
	return s, Outcome{}
}

package state

import (
	"strings"

	"github.com/desertthunder/streamfront/internal/models"
)

// Collections is the reconciled view of the catalog for one user.
type Collections struct {
	MyList    []models.Movie
	Trends    []models.Movie
	Originals []models.Movie
}

// Reconcile derives the home page rails from the catalog and the user's favorite links.
//
// MyList holds every catalog movie the user saved. Trends ("PG") and Originals ("G") are taken from the full catalog
// and then stripped of anything in MyList. Output follows catalog order and the inputs are never modified.
func Reconcile(catalog []models.Movie, links []models.FavoriteLink) Collections {
	saved := make(map[string]struct{}, len(links))
	for _, link := range links {
		saved[link.MovieID] = struct{}{}
	}

	var c Collections
	listed := make(map[string]struct{}, len(saved))
	for _, m := range catalog {
		if _, ok := saved[m.ID]; ok {
			c.MyList = append(c.MyList, m)
			listed[m.ID] = struct{}{}
		}
	}

	c.Trends = byRating(catalog, models.RatingTrend, listed)
	c.Originals = byRating(catalog, models.RatingOriginal, listed)
	return c
}

func byRating(catalog []models.Movie, rating string, exclude map[string]struct{}) []models.Movie {
	var out []models.Movie
	for _, m := range catalog {
		if m.ContentRating != rating {
			continue
		}
		if _, ok := exclude[m.ID]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Search returns movies from the rails whose title contains term, ignoring case.
//
// Each movie appears once, in rail order (my list, trends, originals). A blank term matches nothing.
func Search(c Collections, term string) []models.Movie {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var out []models.Movie
	seen := map[string]struct{}{}
	for _, rail := range [][]models.Movie{c.MyList, c.Trends, c.Originals} {
		for _, m := range rail {
			if _, ok := seen[m.ID]; ok {
				continue
			}
			if strings.Contains(strings.ToLower(m.Title), term) {
				seen[m.ID] = struct{}{}
				out = append(out, m)
			}
		}
	}
	return out
}

// FindPlaying looks up a movie by id across the rails of a preloaded state.
func FindPlaying(s models.PreloadedState, id string) (*models.Movie, bool) {
	for _, rail := range [][]models.Movie{s.MyList, s.Trends, s.Originals} {
		for i := range rail {
			if rail[i].ID == id {
				m := rail[i]
				return &m, true
			}
		}
	}
	return nil, false
}

// package models defines the data model for the video streaming front end
package models

import "encoding/json"

// Content ratings that select the home page rails.
const (
	RatingTrend    = "PG"
	RatingOriginal = "G"
)

// Movie is a catalog entry served by the upstream API.
type Movie struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Cover         string   `json:"cover"`
	Description   string   `json:"description,omitempty"`
	Year          int      `json:"year"`
	ContentRating string   `json:"contentRating"`
	Source        string   `json:"source"`
	Duration      int      `json:"duration"` // minutes
	Tags          []string `json:"tags,omitempty"`
}

// FavoriteLink pairs a user with a movie saved to "my list".
type FavoriteLink struct {
	ID      string `json:"_id"`
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

// Identity is the session read from request cookies.
//
// The token is never serialized into the page.
type Identity struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	ID    string `json:"id,omitempty"`
	Token string `json:"-"`
}

// LoggedIn reports whether the identity carries a user id.
func (i Identity) LoggedIn() bool {
	return i.ID != ""
}

// User is the public profile returned by the upstream sign-in endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult is the upstream response to a successful sign-in.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Identity converts the sign-in result into the cookie session.
func (a AuthResult) Identity() Identity {
	return Identity{Email: a.User.Email, Name: a.User.Name, ID: a.User.ID, Token: a.Token}
}

// SignUp is the registration payload forwarded to the upstream API.
type SignUp struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProviderProfile is a third-party identity exchanged for an upstream token.
type ProviderProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // the provider's stable user id
}

// PreloadedState is the application state rendered on the server and embedded for client hydration.
type PreloadedState struct {
	User      Identity
	Playing   *Movie
	MyList    []Movie
	Trends    []Movie
	Originals []Movie
	Search    []Movie
}

// MarshalJSON writes the shape the client store expects: empty collections as [] and no current movie as {}.
func (s PreloadedState) MarshalJSON() ([]byte, error) {
	var playing any = struct{}{}
	if s.Playing != nil {
		playing = s.Playing
	}

	return json.Marshal(struct {
		User      Identity `json:"user"`
		Playing   any      `json:"playing"`
		MyList    []Movie  `json:"mylist"`
		Trends    []Movie  `json:"trends"`
		Originals []Movie  `json:"originals"`
		Search    []Movie  `json:"search"`
	}{
		User:      s.User,
		Playing:   playing,
		MyList:    nonNil(s.MyList),
		Trends:    nonNil(s.Trends),
		Originals: nonNil(s.Originals),
		Search:    nonNil(s.Search),
	})
}

func nonNil(m []Movie) []Movie {
	if m == nil {
		return []Movie{}
	}
	return m
}

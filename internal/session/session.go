// package session reads and writes the identity cookies set after a login
package session

import (
	"net/http"
	"net/url"

	"github.com/desertthunder/streamfront/internal/models"
)

// Cookie names shared with the client bundle.
const (
	CookieEmail = "email"
	CookieName  = "name"
	CookieID    = "id"
	CookieToken = "token"
)

var identityCookies = []string{CookieEmail, CookieName, CookieID, CookieToken}

// FromRequest extracts the identity from the request cookies.
//
// No validation happens here. A missing token leaves upstream calls unauthenticated and the upstream rejects them.
func FromRequest(r *http.Request) models.Identity {
	return models.Identity{
		Email: value(r, CookieEmail),
		Name:  value(r, CookieName),
		ID:    value(r, CookieID),
		Token: value(r, CookieToken),
	}
}

// SetIdentity writes the four identity cookies.
//
// Only the token is HttpOnly; the client bundle reads the others. Secure is set on the token when secure is true.
func SetIdentity(w http.ResponseWriter, id models.Identity, secure bool) {
	set(w, CookieEmail, id.Email, false, false)
	set(w, CookieName, id.Name, false, false)
	set(w, CookieID, id.ID, false, false)
	set(w, CookieToken, id.Token, true, secure)
}

// ClearToken expires the token cookie, leaving the plaintext identity fields in place.
func ClearToken(w http.ResponseWriter) {
	expire(w, CookieToken)
}

// Clear expires every identity cookie.
func Clear(w http.ResponseWriter) {
	for _, name := range identityCookies {
		expire(w, name)
	}
}

func value(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	if v, err := url.PathUnescape(c.Value); err == nil {
		return v
	}
	return c.Value
}

func set(w http.ResponseWriter, name, v string, httpOnly, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.PathEscape(v),
		Path:     "/",
		HttpOnly: httpOnly,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}

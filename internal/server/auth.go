package server

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/services"
	"github.com/desertthunder/streamfront/internal/session"
	"github.com/desertthunder/streamfront/internal/shared"
)

// AuthHandler proxies local sign-in and sign-up to the upstream API and manages the identity cookies.
type AuthHandler struct {
	api    services.Upstream
	secure bool
	logger *log.Logger
}

// NewAuthHandler creates a new [AuthHandler]. secure marks the token cookie Secure.
func NewAuthHandler(api services.Upstream, secure bool, logger *log.Logger) *AuthHandler {
	return &AuthHandler{api: api, secure: secure, logger: logger}
}

// SignIn authenticates with basic credentials, or email and password form fields, and sets the identity cookies.
//
// JSON clients receive the user profile. Browser form posts are redirected home.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		if err := r.ParseForm(); err == nil {
			email, password = r.PostForm.Get("email"), r.PostForm.Get("password")
		}
	}
	if email == "" || password == "" {
		writeError(w, h.logger, r, fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput))
		return
	}

	result, err := h.api.SignIn(r.Context(), email, password)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	session.SetIdentity(w, result.Identity(), h.secure)
	h.logger.Info("signed in", "user", result.User.ID)

	if isForm(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, result.User)
}

// SignUp registers a user upstream.
//
// JSON clients receive the new profile with 201. Browser form posts are redirected to the login page.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	user, err := decodeSignUp(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	id, err := h.api.SignUp(r.Context(), user)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	h.logger.Info("signed up", "user", id)

	if isForm(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, models.User{ID: id, Name: user.Name, Email: user.Email})
}

// Logout expires the identity cookies and sends the browser to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func decodeSignUp(r *http.Request) (models.SignUp, error) {
	var user models.SignUp

	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return user, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		user = models.SignUp{
			Name:     r.PostForm.Get("name"),
			Email:    r.PostForm.Get("email"),
			Password: r.PostForm.Get("password"),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		return user, fmt.Errorf("%w: malformed body: %v", shared.ErrInvalidInput, err)
	}

	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if user.Name == "" || user.Email == "" || user.Password == "" {
		return user, fmt.Errorf("%w: name, email and password are required", shared.ErrInvalidInput)
	}
	return user, nil
}

func isForm(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data"
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/services"
	"github.com/desertthunder/streamfront/internal/session"
	"github.com/desertthunder/streamfront/internal/shared"
)

const (
	stateCookie    = "oauth_state"
	verifierCookie = "oauth_verifier"
	flowTTL        = 10 * time.Minute
	maxProfileBody = 1 << 20
)

// Provider describes a third-party identity provider.
type Provider struct {
	Name       string
	Path       string // login path; the callback is Path + "/callback"
	Config     *oauth2.Config
	PKCE       bool
	ProfileURL string
	Decode     func(body []byte) (models.ProviderProfile, error)
}

// OAuthHandler runs the authorization code flow for one provider and exchanges the resulting profile for an
// upstream session. Implements the Handler interface for registration with a Router.
type OAuthHandler struct {
	provider Provider
	api      services.Upstream
	secure   bool
	logger   *log.Logger
}

// NewOAuthHandler creates a new OAuth handler for the given provider.
func NewOAuthHandler(provider Provider, api services.Upstream, secure bool, logger *log.Logger) *OAuthHandler {
	return &OAuthHandler{
		provider: provider,
		api:      api,
		secure:   secure,
		logger:   shared.WithLogger(logger, "provider", provider.Name),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{h.provider.Path, h.callbackPath()}
}

func (h *OAuthHandler) callbackPath() string {
	return h.provider.Path + "/callback"
}

// ServeHTTP starts the flow on the login path and completes it on the callback path.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if strings.TrimSuffix(r.URL.Path, "/") == h.callbackPath() {
		h.callback(w, r)
		return
	}
	h.begin(w, r)
}

// begin stores a fresh state (and PKCE verifier) in short-lived cookies and redirects to the provider.
func (h *OAuthHandler) begin(w http.ResponseWriter, r *http.Request) {
	state := shared.GenerateID()
	h.setFlowCookie(w, stateCookie, state)

	var opts []oauth2.AuthCodeOption
	if h.provider.PKCE {
		verifier := oauth2.GenerateVerifier()
		h.setFlowCookie(w, verifierCookie, verifier)
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}

	http.Redirect(w, r, h.provider.Config.AuthCodeURL(state, opts...), http.StatusFound)
}

// callback validates the state parameter, exchanges the authorization code, fetches the profile and signs in upstream.
func (h *OAuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	expected := cookieValue(r, stateCookie)
	verifier := cookieValue(r, verifierCookie)
	h.clearFlowCookies(w)

	if state := r.URL.Query().Get("state"); expected == "" || state != expected {
		writeError(w, h.logger, r, shared.ErrInvalidState)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		writeError(w, h.logger, r, fmt.Errorf("%w: %s - %s", shared.ErrAuthFailed, errParam, errDesc))
		return
	}

	var opts []oauth2.AuthCodeOption
	if h.provider.PKCE {
		if verifier == "" {
			writeError(w, h.logger, r, fmt.Errorf("%w: missing code verifier", shared.ErrInvalidState))
			return
		}
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	token, err := h.provider.Config.Exchange(r.Context(), code, opts...)
	if err != nil {
		writeError(w, h.logger, r, fmt.Errorf("%w: token exchange failed: %v", shared.ErrAPIRequest, err))
		return
	}

	profile, err := h.fetchProfile(r.Context(), token)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	result, err := h.api.SignInProvider(r.Context(), profile)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	session.SetIdentity(w, result.Identity(), h.secure)
	h.logger.Info("signed in", "user", result.User.ID)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *OAuthHandler) fetchProfile(ctx context.Context, token *oauth2.Token) (models.ProviderProfile, error) {
	client := h.provider.Config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.provider.ProfileURL, nil)
	if err != nil {
		return models.ProviderProfile{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return models.ProviderProfile{}, fmt.Errorf("%w: profile request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBody))
	if err != nil {
		return models.ProviderProfile{}, fmt.Errorf("%w: failed to read profile: %w", shared.ErrAPIRequest, err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.ProviderProfile{}, fmt.Errorf("%w: profile returned %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	profile, err := h.provider.Decode(body)
	if err != nil {
		return models.ProviderProfile{}, fmt.Errorf("%w: failed to decode profile: %v", shared.ErrAPIRequest, err)
	}
	if profile.Email == "" || profile.Password == "" {
		return models.ProviderProfile{}, fmt.Errorf("%w: profile is missing email or id", shared.ErrAuthFailed)
	}
	return profile, nil
}

func (h *OAuthHandler) setFlowCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     h.provider.Path,
		MaxAge:   int(flowTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *OAuthHandler) clearFlowCookies(w http.ResponseWriter) {
	for _, name := range []string{stateCookie, verifierCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     h.provider.Path,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secure,
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func decodeJSON[T any](body []byte) (T, error) {
	var v T
	err := json.Unmarshal(body, &v)
	return v, err
}

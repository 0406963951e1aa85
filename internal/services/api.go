// API service for the upstream movies/users API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/shared"
)

const (
	defaultBaseURL = "http://localhost:8000"
	maxErrorBody   = 512
)

// APIService implements [Upstream] over HTTP.
type APIService struct {
	baseURL     string
	apiKeyToken string
	httpClient  *http.Client
}

var _ Upstream = (*APIService)(nil)

// NewAPIService creates a new API service instance for the upstream movies API.
//
// Timeouts are the client's concern: pass an [http.Client] with Timeout set.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// SetAPIKeyToken sets the key the upstream requires on sign-in requests to choose token scopes.
func (a *APIService) SetAPIKeyToken(token string) {
	a.apiKeyToken = token
}

// BaseURL returns the upstream root.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Get performs a GET request to the specified path and returns the raw response.
//
// Non-2xx statuses are not errors here; callers inspect StatusCode.
func (a *APIService) Get(ctx context.Context, path, token string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// Movies retrieves the full catalog.
func (a *APIService) Movies(ctx context.Context, token string) ([]models.Movie, error) {
	var env envelope[[]models.Movie]
	if err := a.do(ctx, http.MethodGet, "/api/movies", bearer(token), nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UserMovies retrieves the favorite links saved by the given user.
func (a *APIService) UserMovies(ctx context.Context, token, userID string) ([]models.FavoriteLink, error) {
	path := "/api/user-movies?userId=" + url.QueryEscape(userID)

	var env envelope[[]models.FavoriteLink]
	if err := a.do(ctx, http.MethodGet, path, bearer(token), nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// AddUserMovie saves a movie to the user's list and returns the created link id.
func (a *APIService) AddUserMovie(ctx context.Context, token, userID, movieID string) (string, error) {
	payload := struct {
		UserID  string `json:"userId"`
		MovieID string `json:"movieId"`
	}{UserID: userID, MovieID: movieID}

	var env envelope[string]
	if err := a.do(ctx, http.MethodPost, "/api/user-movies", bearer(token), payload, &env); err != nil {
		return "", err
	}
	return env.Data, nil
}

// DeleteUserMovie removes a favorite link by its own id.
func (a *APIService) DeleteUserMovie(ctx context.Context, token, linkID string) (string, error) {
	path := "/api/user-movies/" + url.PathEscape(linkID)

	var env envelope[string]
	if err := a.do(ctx, http.MethodDelete, path, bearer(token), nil, &env); err != nil {
		return "", err
	}
	return env.Data, nil
}

// SignUp registers a user and returns the new user id.
func (a *APIService) SignUp(ctx context.Context, user models.SignUp) (string, error) {
	var env envelope[string]
	if err := a.do(ctx, http.MethodPost, "/api/auth/sign-up", nil, user, &env); err != nil {
		return "", err
	}
	return env.Data, nil
}

// SignIn authenticates with HTTP basic credentials.
func (a *APIService) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	payload := struct {
		APIKeyToken string `json:"apiKeyToken"`
	}{APIKeyToken: a.apiKeyToken}

	basic := func(req *http.Request) { req.SetBasicAuth(email, password) }

	var result models.AuthResult
	if err := a.do(ctx, http.MethodPost, "/api/auth/sign-in", basic, payload, &result); err != nil {
		return nil, authError(err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("%w: upstream returned no token", shared.ErrAuthFailed)
	}
	return &result, nil
}

// SignInProvider exchanges a third-party profile for an upstream token.
func (a *APIService) SignInProvider(ctx context.Context, profile models.ProviderProfile) (*models.AuthResult, error) {
	payload := struct {
		models.ProviderProfile
		APIKeyToken string `json:"apiKeyToken"`
	}{ProviderProfile: profile, APIKeyToken: a.apiKeyToken}

	var result models.AuthResult
	if err := a.do(ctx, http.MethodPost, "/api/auth/sign-provider", nil, payload, &result); err != nil {
		return nil, authError(err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("%w: upstream returned no token", shared.ErrAuthFailed)
	}
	return &result, nil
}

// do performs a JSON request and decodes a 2xx body into result.
func (a *APIService) do(ctx context.Context, method, path string, decorate func(*http.Request), body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", shared.ErrInvalidInput, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if decorate != nil {
		decorate(req)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return &StatusError{Method: method, Path: req.URL.Path, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// authError marks rejected credentials as [shared.ErrAuthFailed] while keeping the status.
func authError(err error) error {
	var se *StatusError
	if errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden) {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}
	return err
}

// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/streamfront/internal/models"
)

// MockUpstream is a test double for [services.Upstream].
//
// Nil function fields return zero values. Calls are recorded by method name.
type MockUpstream struct {
	MoviesFn          func(ctx context.Context, token string) ([]models.Movie, error)
	UserMoviesFn      func(ctx context.Context, token, userID string) ([]models.FavoriteLink, error)
	AddUserMovieFn    func(ctx context.Context, token, userID, movieID string) (string, error)
	DeleteUserMovieFn func(ctx context.Context, token, linkID string) (string, error)
	SignUpFn          func(ctx context.Context, user models.SignUp) (string, error)
	SignInFn          func(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignInProviderFn  func(ctx context.Context, profile models.ProviderProfile) (*models.AuthResult, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockUpstream) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the recorded method names in call order.
func (m *MockUpstream) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockUpstream) Movies(ctx context.Context, token string) ([]models.Movie, error) {
	m.record("Movies")
	if m.MoviesFn == nil {
		return nil, nil
	}
	return m.MoviesFn(ctx, token)
}

func (m *MockUpstream) UserMovies(ctx context.Context, token, userID string) ([]models.FavoriteLink, error) {
	m.record("UserMovies")
	if m.UserMoviesFn == nil {
		return nil, nil
	}
	return m.UserMoviesFn(ctx, token, userID)
}

func (m *MockUpstream) AddUserMovie(ctx context.Context, token, userID, movieID string) (string, error) {
	m.record("AddUserMovie")
	if m.AddUserMovieFn == nil {
		return "", nil
	}
	return m.AddUserMovieFn(ctx, token, userID, movieID)
}

func (m *MockUpstream) DeleteUserMovie(ctx context.Context, token, linkID string) (string, error) {
	m.record("DeleteUserMovie")
	if m.DeleteUserMovieFn == nil {
		return "", nil
	}
	return m.DeleteUserMovieFn(ctx, token, linkID)
}

func (m *MockUpstream) SignUp(ctx context.Context, user models.SignUp) (string, error) {
	m.record("SignUp")
	if m.SignUpFn == nil {
		return "", nil
	}
	return m.SignUpFn(ctx, user)
}

func (m *MockUpstream) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	m.record("SignIn")
	if m.SignInFn == nil {
		return nil, errors.New("sign in not configured")
	}
	return m.SignInFn(ctx, email, password)
}

func (m *MockUpstream) SignInProvider(ctx context.Context, profile models.ProviderProfile) (*models.AuthResult, error) {
	m.record("SignInProvider")
	if m.SignInProviderFn == nil {
		return nil, errors.New("provider sign in not configured")
	}
	return m.SignInProviderFn(ctx, profile)
}

// Catalog returns a small catalog covering both rails and an unrelated rating.
func Catalog() []models.Movie {
	return []models.Movie{
		{ID: "m1", Title: "Notorious", Cover: "/covers/m1.jpg", Year: 2009, ContentRating: "PG", Source: "https://cdn.example.com/m1.mp4", Duration: 122},
		{ID: "m2", Title: "Dark Waters", Cover: "/covers/m2.jpg", Year: 2019, ContentRating: "G", Source: "https://cdn.example.com/m2.mp4", Duration: 126},
		{ID: "m3", Title: "Night Crawler", Cover: "/covers/m3.jpg", Year: 2014, ContentRating: "R", Source: "https://cdn.example.com/m3.mp4", Duration: 117},
		{ID: "m4", Title: "Paper Planes", Cover: "/covers/m4.jpg", Year: 2015, ContentRating: "PG", Source: "https://cdn.example.com/m4.mp4", Duration: 96},
		{ID: "m5", Title: "Up", Cover: "/covers/m5.jpg", Year: 2009, ContentRating: "G", Source: "https://cdn.example.com/m5.mp4", Duration: 96},
	}
}

// Links builds favorite links for user u1 pointing at the given movie ids.
func Links(movieIDs ...string) []models.FavoriteLink {
	links := make([]models.FavoriteLink, 0, len(movieIDs))
	for _, id := range movieIDs {
		links = append(links, models.FavoriteLink{ID: "link-" + id, UserID: "u1", MovieID: id})
	}
	return links
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails once maxWrites writes have gone through.
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

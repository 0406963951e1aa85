package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/desertthunder/streamfront/internal/services"
	"github.com/desertthunder/streamfront/internal/shared"
	"github.com/desertthunder/streamfront/internal/state"
	"github.com/desertthunder/streamfront/internal/web"
)

// Options holds the dependencies of the HTTP application.
type Options struct {
	Config *shared.Config
	API    services.Upstream
	Pinger Pinger // optional; enables the upstream check in /healthz
	Assets AssetSource
	Logger *log.Logger
}

// New assembles the application router: page rendering, auth and favorites proxies, provider sign-in, static assets
// and the health check.
func New(opts Options) *ChiRouter {
	cfg := opts.Config
	if cfg == nil {
		cfg = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	logger := shared.WithLogger(opts.Logger, "component", "server")
	dev := cfg.Dev()

	assets := opts.Assets
	if assets == nil {
		assets = web.NewManifestSource(cfg.Assets.ManifestPath, dev, opts.Logger)
	}

	router := NewChiRouter()
	router.Use(
		RequestLogger(logger),
		SecureHeaders(dev),
		CORS(cfg.Server.CORSOrigin),
		middleware.Compress(5),
	)

	var authLimit []Middleware
	if cfg.Server.AuthRateLimit > 0 {
		burst := max(cfg.Server.AuthBurst, 1)
		authLimit = append(authLimit, RateLimit(rate.NewLimiter(rate.Limit(cfg.Server.AuthRateLimit), burst)))
	}

	auth := NewAuthHandler(opts.API, !dev, logger)
	router.Handle(http.MethodPost, "/auth/sign-in", Chain(http.HandlerFunc(auth.SignIn), authLimit...))
	router.Handle(http.MethodPost, "/auth/sign-up", Chain(http.HandlerFunc(auth.SignUp), authLimit...))
	router.Handle(http.MethodGet, "/logout", http.HandlerFunc(auth.Logout))

	favorites := NewUserMoviesHandler(opts.API, logger)
	router.Handle(http.MethodGet, "/user-movies", http.HandlerFunc(favorites.List))
	router.Handle(http.MethodPost, "/user-movies", http.HandlerFunc(favorites.Add))
	router.Handle(http.MethodDelete, "/user-movies/{movieId}", http.HandlerFunc(favorites.Remove))

	providers := []struct {
		creds shared.ProviderConfig
		build func(shared.ProviderConfig) Provider
	}{
		{cfg.Credentials.Google, GoogleProvider},
		{cfg.Credentials.Twitter, TwitterProvider},
		{cfg.Credentials.Facebook, FacebookProvider},
	}
	for _, p := range providers {
		if !p.creds.Enabled() {
			continue
		}
		provider := p.build(p.creds)
		router.Handler(NewOAuthHandler(provider, opts.API, !dev, logger))
		logger.Debug("provider enabled", "provider", provider.Name, "path", provider.Path)
	}

	router.Handle(http.MethodGet, "/healthz", HealthCheck(opts.Pinger))

	// Preflight requests from the allowed origin are answered by CORS before reaching this handler.
	router.Handle(http.MethodOptions, "/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	if cfg.Assets.PublicDir != "" {
		router.Handle(http.MethodGet, "/assets/*", http.FileServer(http.Dir(cfg.Assets.PublicDir)))
	}

	page := NewPageHandler(
		state.NewBuilder(opts.API, opts.Logger),
		web.NewRenderer(cfg.Server.Title),
		assets,
		logger,
	)
	for _, route := range page.Routes() {
		router.Handle(http.MethodGet, route, page)
	}

	return router
}

// Package server provides HTTP routing, middleware, and handlers for the streaming front end.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [ChiRouter] implementation uses a chi mux internally, which gives method routing and URL parameters such as
// /user-movies/{movieId}.
//
// # Routes
//
//	GET    /*                               → server-rendered page ([PageHandler])
//	POST   /auth/sign-in                    → basic-auth sign in, sets identity cookies
//	POST   /auth/sign-up                    → register
//	GET    /logout                          → clear identity cookies
//	GET    /user-movies                     → favorite links for the session user
//	POST   /user-movies                     → add a favorite
//	DELETE /user-movies/{movieId}           → remove a favorite by movie id
//	GET    /auth/{google-oauth,twitter,facebook}[/callback] → provider sign-in
//	GET    /assets/*                        → bundler output
//	GET    /healthz                         → upstream reachability
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code flow, one instance per [Provider].
//
// The login route stores a random state (and, for Twitter, a PKCE verifier) in short-lived cookies scoped to the
// provider path. The callback validates the state parameter (CSRF protection), exchanges the authorization code for
// tokens, fetches the provider profile and trades it for an upstream token via the sign-provider endpoint.
//
// # Errors
//
// Proxy endpoints answer failures with {"error": "..."} and a status derived from the error chain: invalid input is
// 400, missing or rejected credentials 401, unknown favorites 404, and upstream failures 502.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server

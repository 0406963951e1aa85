// Package services implements the client for the upstream movies/users API.
//
// # Upstream Client
//
// [APIService] wraps every endpoint the front end consumes:
//
//	GET    /api/movies                 → catalog
//	GET    /api/user-movies?userId=    → favorite links for a user
//	POST   /api/user-movies            → add a favorite
//	DELETE /api/user-movies/{id}       → remove a favorite link
//	POST   /api/auth/sign-up           → register
//	POST   /api/auth/sign-in           → basic-auth sign in, returns a bearer token
//	POST   /api/auth/sign-provider     → exchange a third-party profile for a token
//
// Collection endpoints answer with a `{"data": ..., "message": ...}` envelope; the sign-in endpoints answer with
// `{"token": ..., "user": {...}}`.
//
// # Errors
//
// Transport failures wrap [shared.ErrAPIRequest]. A non-2xx response becomes a [*StatusError], which matches
// [shared.ErrUpstreamStatus] with [errors.Is] and exposes the status code for handlers that forward it.
//
// # Raw Access
//
// [APIService.Get] returns an [APIResponse] with the undecoded body, used by the CLI for debugging the upstream.
package services

// Package models defines the entities exchanged between the upstream movies API, the request cookies, and the
// server-rendered pages.
//
// The package contains two categories of types:
//
// 1. Upstream DTOs: owned by the movies/users API and never mutated here
//   - [Movie] : Catalog entry with content rating and stream source
//   - [FavoriteLink] : One "added to my list" relationship between a user and a movie
//   - [User], [AuthResult] : Sign-in responses carrying the bearer token
//
// 2. Request-scoped state: built fresh for every request and discarded after the response
//   - [Identity] : Email, name, id and token read from cookies
//   - [PreloadedState] : The snapshot rendered on the server and embedded in the page for hydration
package models

// Package state builds the preloaded application state rendered on the server.
//
// # Reconciliation
//
// [Reconcile] cross-references the catalog with the user's favorite links:
//
//	mylist    = catalog movies whose _id is a favorite link's movieId
//	trends    = catalog movies rated "PG", minus mylist
//	originals = catalog movies rated "G", minus mylist
//
// Movies with any other rating appear only in mylist, if saved. Every rail keeps catalog order.
//
// # Builder
//
// [Builder.Build] fetches both collections at once and joins before reconciling. The builder fails closed: when either
// fetch errors it returns [DefaultState] and asks the caller to expire the token cookie, so the page renders logged out
// rather than half personalized.
package state

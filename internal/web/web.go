// Package web renders the application on the server.
//
// # Architecture
//
// Every page request runs the same pipeline:
//
//  1. The route table is chosen from the session: [RoutesFor] with [AuthStateOf]
//  2. The path is matched, following redirects (/ → /login when anonymous, /login → / when signed in)
//  3. The matched view template renders the preloaded state into markup
//  4. [Compose] wraps the markup in the HTML document with the serialized state and bundle paths
//
// Rendering is pure: all data is gathered into [models.PreloadedState] before [Renderer.Render] is called.
//
// # Routes
//
//	Path           Signed in     Anonymous
//	/              Home          → /login
//	/login         → /           Login
//	/register      → /           Register
//	/player/:id    Player        → /login
//	anything else  NotFound      NotFound
//
// # Templates
//
//   - partials.html: header and movie rail
//   - home.html, login.html, register.html, player.html, notfound.html: one per view
//   - document.html: the outer document with the hydration script
//
// # Assets
//
// Bundle paths come from the bundler's manifest.json ("main.css", "main.js", "vendors.js"). Missing manifests or keys
// fall back to the unhashed development bundle names. See [ManifestSource].
package web

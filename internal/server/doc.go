// Package server provides HTTP routing, middleware, and the JSON wire surface for the rating service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// [RatingsHandler] serves the rating submission and aggregation endpoints for both kinds.
// [HealthHandler] reports storage reachability. [IndexHandler] serves the embedded player page.
//
// # Wire Envelope
//
// Every API response is the {success, data?/message?, error?} envelope.
// Errors propagated from the repository or driver are converted to responses in exactly one place:
// validation failures become 400s, storage failures 500s. No handler writes a bare error body.
package server

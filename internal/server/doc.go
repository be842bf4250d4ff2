// Package server exposes the grid editor over a small JSON HTTP API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [Logging] records method, path, status and duration for each request
//   - [Recover] turns handler panics into 500 responses
//   - [RateLimit] applies a token bucket shared by all clients and answers 429 when it is empty
//
// # Board Handler
//
// [BoardHandler] serves the board state and forwards drag gestures and bulk operations to the editor:
//
//	GET  /board
//	POST /drag/start    {"active": id}
//	POST /drag/over     {"over": id, "geometry": {...}}
//	POST /drag/end      {"over": id}
//	POST /drag/cancel
//	POST /autofill
//	POST /clear
//	POST /resize        {"rows": n, "columns": n}
//	POST /items/style   {"id": id, "text_color": "#fff", "text_background": true}
//	POST /pallete/sort  {"order": "title"}
//	POST /pallete/add   {"title": "...", "subtitle": "...", "images": [...]}
//	POST /pallete/remove {"id": id}
//
// Every successful response carries the resulting board.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server

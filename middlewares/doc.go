// Package middlewares provides the HTTP middleware filevault runs on every
// request: request IDs, request logging, panic recovery, deadlines, token
// authentication and the JSON error renderer.
//
// Recommended order:
//
//	internal.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Logging(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(30*time.Second),
//	),
//	internal.WithErrorHandler(middlewares.JSONErrorHandler()),
//
// Auth is applied per route:
//
//	r.GET("/files/{id}", h.get, middlewares.Auth(tokens))
//	r.GET("/files/{id}/data", h.data, middlewares.OptionalAuth(tokens))
package middlewares

// Package middleware provides HTTP middleware for the application
// router: Prometheus request metrics and OpenTelemetry request spans.
//
// Both are standard chi middlewares:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Metrics())
//	r.Use(middleware.Trace())
package middleware

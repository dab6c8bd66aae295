// Package middleware provides HTTP middleware for the preview server.
//
// # Prometheus Metrics
//
// Metrics counts requests and observes their duration, labelled with the
// matched chi route pattern rather than the raw path:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Metrics(
//	    middleware.WithNamespace("squirrel"),
//	    middleware.WithRegistry(reg),
//	))
//
// # OpenTelemetry
//
// Tracing starts a server span per request using the global tracer
// provider. Configure the provider before serving:
//
//	otel.SetTracerProvider(tp)
//	r.Use(middleware.Tracing(middleware.WithFilter(func(r *http.Request) bool {
//	    return r.URL.Path != "/metrics"
//	})))
package middleware

// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// helpers shared by the engine packages.
//
// Metrics are optional everywhere: a nil *Metrics records nothing.
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	particles := particle.NewRegistry(particle.WithMetrics(m))
package telemetry

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "squirrel").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the engine metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "squirrel",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for the engine.
//
// All methods are safe to call on a nil *Metrics, so packages can accept an
// optional instance without guarding every call site.
//
// Metrics collected:
//   - squirrel_particle_dispatch_total: particle lookups by result (hit, miss)
//   - squirrel_nodes_created_total: nodes materialized by element factories
//   - squirrel_drag_sessions_total: drag sessions started
//   - squirrel_drag_moves_total: pointer moves applied during drag sessions
//   - squirrel_component_resolve_total: component lookups by result
//   - squirrel_preview_sessions: open preview websocket sessions
type Metrics struct {
	dispatchTotal  *prometheus.CounterVec
	nodesCreated   prometheus.Counter
	dragSessions   prometheus.Counter
	dragMoves      prometheus.Counter
	resolveTotal   *prometheus.CounterVec
	previewSession prometheus.Gauge
}

// NewMetrics creates and registers the engine metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		dispatchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "particle_dispatch_total",
			Help:        "Total number of particle lookups by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		nodesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_created_total",
			Help:        "Total number of nodes materialized",
			ConstLabels: config.ConstLabels,
		}),

		dragSessions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drag_sessions_total",
			Help:        "Total number of drag sessions started",
			ConstLabels: config.ConstLabels,
		}),

		dragMoves: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drag_moves_total",
			Help:        "Total number of pointer moves applied while dragging",
			ConstLabels: config.ConstLabels,
		}),

		resolveTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_resolve_total",
			Help:        "Total number of component lookups by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		previewSession: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preview_sessions",
			Help:        "Number of open preview websocket sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordDispatch counts a particle lookup.
func (m *Metrics) RecordDispatch(hit bool) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(result(hit)).Inc()
}

// RecordNodeCreated counts a materialized node.
func (m *Metrics) RecordNodeCreated() {
	if m == nil {
		return
	}
	m.nodesCreated.Inc()
}

// RecordDragStart counts a started drag session.
func (m *Metrics) RecordDragStart() {
	if m == nil {
		return
	}
	m.dragSessions.Inc()
}

// RecordDragMove counts an applied pointer move.
func (m *Metrics) RecordDragMove() {
	if m == nil {
		return
	}
	m.dragMoves.Inc()
}

// RecordResolve counts a component lookup.
func (m *Metrics) RecordResolve(hit bool) {
	if m == nil {
		return
	}
	m.resolveTotal.WithLabelValues(result(hit)).Inc()
}

// PreviewSessionOpened increments the open preview session gauge.
func (m *Metrics) PreviewSessionOpened() {
	if m == nil {
		return
	}
	m.previewSession.Inc()
}

// PreviewSessionClosed decrements the open preview session gauge.
func (m *Metrics) PreviewSessionClosed() {
	if m == nil {
		return
	}
	m.previewSession.Dec()
}

func result(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

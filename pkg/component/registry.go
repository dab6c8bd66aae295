package component

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

// Builder produces the configuration for one component instance.
type Builder func(props map[string]any) atome.Config

// Loader fetches a builder on first use.
type Loader func(ctx context.Context) (Builder, error)

type entry struct {
	builder Builder
	loader  Loader
}

// Registry maps component names to builders.
//
// Registration is expected during startup. Resolve may be called
// concurrently; lazy loaders run at most once per successful load.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*entry
	declared []string
	logger   *slog.Logger
	metrics  *telemetry.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records resolution hits and misses.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		logger:  slog.Default().With("component", "registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a builder under name, replacing any previous entry.
func (r *Registry) Register(name string, b Builder) {
	if name == "" || b == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replace(name)
	r.entries[name] = &entry{builder: b}
}

// RegisterLazy adds a loader under name. The loader runs on the first
// Resolve of name.
func (r *Registry) RegisterLazy(name string, l Loader) {
	if name == "" || l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replace(name)
	r.entries[name] = &entry{loader: l}
}

func (r *Registry) replace(name string) {
	if _, ok := r.entries[name]; ok {
		r.logger.Debug("component replaced",
			"name", name,
			"code", errors.CodeDuplicateDefinition)
	}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the builder registered under name, running its loader
// if needed. An unknown name is a resolution miss (E001). A failing loader
// returns E011 and is retried on the next Resolve. Loaders run with the
// registry locked and must not call back into it.
func (r *Registry) Resolve(ctx context.Context, name string) (b Builder, err error) {
	ctx, span := telemetry.StartSpan(ctx, "component.Resolve",
		attribute.String("component.name", name))
	defer func() { telemetry.EndSpan(span, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	r.metrics.RecordResolve(ok)
	if !ok {
		return nil, errors.New(errors.CodeResolutionMiss).
			WithDetail("no component named " + name)
	}
	if e.builder != nil {
		return e.builder, nil
	}

	loaded, err := e.loader(ctx)
	if err != nil {
		return nil, errors.New(errors.CodeLoaderFailed).
			WithDetail("loading " + name).
			Wrap(err)
	}
	if loaded == nil {
		return nil, errors.New(errors.CodeLoaderFailed).
			WithDetail("loader for " + name + " returned no builder")
	}
	e.builder = loaded
	e.loader = nil
	r.logger.Debug("component loaded", "name", name)
	return loaded, nil
}

// Build resolves name and materializes it with f.
func (r *Registry) Build(ctx context.Context, f *atome.Factory, name string, props map[string]any) (*atome.Atome, error) {
	b, err := r.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = map[string]any{}
	}
	return f.Create(b(props)), nil
}

// Sync records names as the canonical declared list.
func (r *Registry) Sync(names []string) {
	declared := make([]string, len(names))
	copy(declared, names)
	sort.Strings(declared)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.declared = dedupe(declared)
}

// Declared returns the canonical declared list set by Sync.
func (r *Registry) Declared() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.declared))
	copy(out, r.declared)
	return out
}

// Missing returns declared names that have no registered builder.
func (r *Registry) Missing() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var missing []string
	for _, name := range r.declared {
		if _, ok := r.entries[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}

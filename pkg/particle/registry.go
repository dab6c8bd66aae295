package particle

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

// Registry maps configuration keys to particle definitions.
//
// A Registry is not safe for concurrent mutation. Registration is expected
// to happen during startup; Dispatch may then be called freely from the
// goroutine that owns the nodes being built.
type Registry struct {
	defs    map[string]*Definition
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and kind warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records dispatch hits and misses.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		defs:   make(map[string]*Definition),
		logger: slog.Default().With("component", "particle"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds def to the registry and reports whether it was accepted.
// A definition without a name or Process function is rejected. Registering
// a name again replaces the previous definition.
func (r *Registry) Register(def Definition) bool {
	if def.Name == "" || def.Process == nil {
		r.logger.Warn("particle rejected",
			"name", def.Name,
			"reason", "name and process are required")
		return false
	}
	if _, exists := r.defs[def.Name]; exists {
		r.logger.Debug("particle replaced",
			"name", def.Name,
			"code", errors.CodeDuplicateDefinition)
	}
	d := def
	r.defs[def.Name] = &d
	return true
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	d, ok := r.defs[name]
	if !ok {
		return Definition{}, false
	}
	return *d, true
}

// Has reports whether a particle is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Len returns the number of registered particles.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByCategory returns the names registered under c in sorted order.
func (r *Registry) ByCategory(c Category) []string {
	var names []string
	for name, d := range r.defs {
		if d.Category == c {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Order splits keys into the ones with a registered particle, sorted by
// category then name, and the remaining keys sorted by name.
func (r *Registry) Order(keys []string) (particles, rest []string) {
	for _, k := range keys {
		if _, ok := r.defs[k]; ok {
			particles = append(particles, k)
		} else {
			rest = append(rest, k)
		}
	}
	sort.Slice(particles, func(i, j int) bool {
		ri, rj := r.defs[particles[i]].Category.Rank(), r.defs[particles[j]].Category.Rank()
		if ri != rj {
			return ri < rj
		}
		return particles[i] < particles[j]
	})
	sort.Strings(rest)
	return particles, rest
}

// Dispatch applies value to n through the particle registered under key.
// It returns false when no particle is registered, leaving n untouched.
// A nil value is a hit that performs no work.
func (r *Registry) Dispatch(n *dom.Node, key string, value any, s *Scope) bool {
	d, ok := r.defs[key]
	r.metrics.RecordDispatch(ok)
	if !ok {
		return false
	}
	if value == nil || n == nil {
		return true
	}
	if s == nil {
		s = &Scope{}
	}

	if !d.Kind.Accepts(value) {
		r.logger.Warn("particle kind mismatch",
			"name", d.Name,
			"expected", d.Kind.String(),
			"got", fmt.Sprintf("%T", value))
	}

	v := value
	if d.Before != nil {
		v = d.Before(n, v, s)
	}
	d.Process(n, v, s)
	if d.After != nil {
		d.After(n, v, s)
	}
	return true
}

// Package squirrel wires the engine parts together.
//
//	engine := squirrel.New()
//	box := engine.Create(squirrel.Config{
//	    "width": 100,
//	    "color": "red",
//	    "units": map[string]any{"width": "px"},
//	})
//	slider, err := engine.Build(ctx, "slider", map[string]any{"value": 30})
//	html, err := engine.Render(box, true)
//
// The particle registry, element factory and drag controllers are
// single-threaded. The component registry may be shared across
// goroutines.
package squirrel

import (
	"context"
	"log/slog"

	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/component"
	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/drag"
	"github.com/squirrel-ui/squirrel/pkg/particle"
	"github.com/squirrel-ui/squirrel/pkg/render"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
	"github.com/squirrel-ui/squirrel/pkg/widgets"
)

// =============================================================================
// Re-exported types
// =============================================================================

// Config describes a node to create.
type Config = atome.Config

// Atome is a created element.
type Atome = atome.Atome

// Builder turns props into a Config.
type Builder = component.Builder

// Particle is a named configuration-key handler.
type Particle = particle.Definition

// DragOptions configures a drag controller.
type DragOptions = drag.Options

// Point is a 2-D offset in pixels.
type Point = drag.Point

// =============================================================================
// Engine
// =============================================================================

// Option configures an Engine.
type Option func(*options)

type options struct {
	doc         *dom.Document
	factory     []atome.Option
	metrics     *telemetry.Metrics
	logger      *slog.Logger
	skipWidgets bool
}

// WithDocument sets the document the engine's factory builds into.
func WithDocument(doc *dom.Document) Option {
	return func(o *options) { o.doc = doc }
}

// WithFactoryOptions passes options to the element factory.
func WithFactoryOptions(opts ...atome.Option) Option {
	return func(o *options) { o.factory = append(o.factory, opts...) }
}

// WithMetrics records metrics in every part of the engine.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger sets the logger for every part of the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithoutWidgets leaves the built-in widgets unregistered.
func WithoutWidgets() Option {
	return func(o *options) { o.skipWidgets = true }
}

// Engine owns a particle registry, a factory over one document and a
// component registry.
type Engine struct {
	Particles  *particle.Registry
	Components *component.Registry

	factory *atome.Factory
	opts    options
}

// New creates an engine with the standard particles and, unless
// WithoutWidgets is given, the built-in widgets.
func New(opts ...Option) *Engine {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	particles := particle.NewRegistry(particle.WithLogger(o.logger), particle.WithMetrics(o.metrics))
	particle.RegisterStandard(particles)

	components := component.NewRegistry(component.WithLogger(o.logger), component.WithMetrics(o.metrics))
	if !o.skipWidgets {
		widgets.Register(components)
	}

	e := &Engine{
		Particles:  particles,
		Components: components,
		opts:       o,
	}
	e.factory = e.NewFactory(o.doc)
	return e
}

// NewFactory creates a factory over doc sharing the engine's registries.
// A nil doc gets a fresh document.
func (e *Engine) NewFactory(doc *dom.Document) *atome.Factory {
	opts := append([]atome.Option{
		atome.WithLogger(e.opts.logger),
		atome.WithMetrics(e.opts.metrics),
	}, e.opts.factory...)
	return atome.NewFactory(doc, e.Particles, opts...)
}

// Factory returns the engine's factory.
func (e *Engine) Factory() *atome.Factory { return e.factory }

// Document returns the engine's document.
func (e *Engine) Document() *dom.Document { return e.factory.Document() }

// Register adds a particle. It reports whether the definition was accepted.
func (e *Engine) Register(def Particle) bool { return e.Particles.Register(def) }

// Create materializes cfg.
func (e *Engine) Create(cfg Config) *Atome { return e.factory.Create(cfg) }

// Lookup returns the live element with the given id.
func (e *Engine) Lookup(id string) (*Atome, bool) { return e.factory.Lookup(id) }

// Build resolves a component and creates its node.
func (e *Engine) Build(ctx context.Context, name string, props map[string]any) (*Atome, error) {
	return e.Components.Build(ctx, e.factory, name, props)
}

// Draggable attaches a drag controller to a's node.
func (e *Engine) Draggable(a *Atome, opts DragOptions) *drag.Controller {
	if opts.Metrics == nil {
		opts.Metrics = e.opts.metrics
	}
	if opts.Logger == nil {
		opts.Logger = e.opts.logger
	}
	c := drag.New(a.Node(), opts)
	c.Attach()
	return c
}

// Render serializes a's node.
func (e *Engine) Render(a *Atome, pretty bool) (string, error) {
	return render.New(render.Options{Pretty: pretty}).RenderToString(a.Node())
}

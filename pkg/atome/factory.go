package atome

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/particle"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

// Defaults for generated ids and parent resolution.
const (
	DefaultIDPrefix     = "atome"
	DefaultRootSelector = "#view"
)

// Factory materializes Configs into nodes of one document.
//
// A Factory is not safe for concurrent use.
type Factory struct {
	doc       *dom.Document
	particles *particle.Registry
	idPrefix  string
	root      string
	counter   uint64
	templates map[string]Config
	atomes    map[string]*Atome
	logger    *slog.Logger
	metrics   *telemetry.Metrics
}

// Option configures a Factory.
type Option func(*Factory)

// WithIDPrefix sets the prefix for generated ids (default "atome").
func WithIDPrefix(prefix string) Option {
	return func(f *Factory) {
		if prefix != "" {
			f.idPrefix = prefix
		}
	}
}

// WithRootSelector sets the selector used when a Config names no
// resolvable parent (default "#view").
func WithRootSelector(sel string) Option {
	return func(f *Factory) {
		f.root = sel
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics records created nodes.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(f *Factory) {
		f.metrics = m
	}
}

// NewFactory creates a factory for doc using particles for key dispatch.
// A nil doc gets a fresh document; a nil registry gets the standard set.
func NewFactory(doc *dom.Document, particles *particle.Registry, opts ...Option) *Factory {
	if doc == nil {
		doc = dom.NewDocument()
	}
	if particles == nil {
		particles = particle.NewRegistry()
		particle.RegisterStandard(particles)
	}
	f := &Factory{
		doc:       doc,
		particles: particles,
		idPrefix:  DefaultIDPrefix,
		root:      DefaultRootSelector,
		templates: make(map[string]Config),
		atomes:    make(map[string]*Atome),
		logger:    slog.Default().With("component", "atome"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Document returns the factory's document.
func (f *Factory) Document() *dom.Document { return f.doc }

// Particles returns the particle registry used for dispatch.
func (f *Factory) Particles() *particle.Registry { return f.particles }

// Lookup returns the live atome with the given id.
func (f *Factory) Lookup(id string) (*Atome, bool) {
	a, ok := f.atomes[id]
	return a, ok
}

// Len returns the number of live atomes.
func (f *Factory) Len() int { return len(f.atomes) }

// Create materializes cfg and attaches the node under its resolved parent.
// It never fails; malformed entries degrade to attribute assignment or
// are skipped.
func (f *Factory) Create(cfg Config) *Atome {
	parent := f.resolveParent(cfg[KeyParent])

	id := explicitID(cfg[KeyID])
	if id == "" {
		id = f.nextID()
	}

	node := f.doc.CreateElement("div")
	node.SetID(id)

	a := &Atome{
		factory: f,
		id:      id,
		node:    node,
		config:  cfg.Clone(),
		units:   particle.NormalizeUnits(cfg[KeyUnits]),
	}

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		if !IsReserved(k) {
			keys = append(keys, k)
		}
	}
	scope := a.scope()
	particles, rest := f.particles.Order(keys)
	for _, k := range particles {
		f.particles.Dispatch(node, k, cfg[k], scope)
	}
	for _, k := range rest {
		f.fallback(node, k, cfg[k], a.units)
	}

	if text, ok := textValue(cfg); ok {
		node.SetText(text)
	}
	if tag, ok := cfg[KeyTag]; ok && tag != nil {
		node.SetData("tag", fmt.Sprint(tag))
	}

	if children, ok := cfg[KeyChildren]; ok {
		for _, child := range childConfigs(children) {
			a.AddChild(child)
		}
	}

	parent.AppendChild(node)
	f.atomes[id] = a
	f.metrics.RecordNodeCreated()
	return a
}

// apply re-runs the key resolution for a single key on an existing node.
func (f *Factory) apply(a *Atome, key string, value any) {
	if f.particles.Dispatch(a.node, key, value, a.scope()) {
		return
	}
	f.fallback(a.node, key, value, a.units)
}

// fallback handles keys with no registered particle.
func (f *Factory) fallback(n *dom.Node, key string, value any, units particle.Units) {
	if value == nil {
		return
	}
	if listener, ok := eventHandler(key, value); ok {
		n.AddEventListener(strings.ToLower(key[2:]), listener)
		return
	}
	if particle.IsNumber(value) {
		if _, configured := units[key]; configured || particle.IsDefaultPx(key) {
			out, _ := particle.FormatValue(key, value, units)
			n.Style.Set(key, out)
			return
		}
	}
	if particle.IsStyleProperty(key) {
		if out, ok := particle.FormatValue(key, value, units); ok {
			n.Style.Set(key, out)
			return
		}
	}
	if !particle.ApplyAttribute(n, key, value) {
		if !dom.ValidAttributeName(key) {
			f.logger.Warn("invalid attribute name", "key", key, "id", n.ID())
			return
		}
		f.logger.Debug("key ignored", "key", key, "type", fmt.Sprintf("%T", value))
	}
}

func (f *Factory) nextID() string {
	f.counter++
	return fmt.Sprintf("%s_%d", f.idPrefix, f.counter)
}

func (f *Factory) resolveParent(v any) *dom.Node {
	switch p := v.(type) {
	case *dom.Node:
		if p != nil {
			return p
		}
	case *Atome:
		if p != nil && p.node != nil {
			return p.node
		}
	case string:
		if sel := strings.TrimSpace(p); sel != "" {
			if n := f.doc.QuerySelector(sel); n != nil {
				return n
			}
			f.logger.Warn("parent not found, using default root", "selector", sel)
		}
	}
	if f.root != "" {
		if n := f.doc.QuerySelector(f.root); n != nil {
			return n
		}
	}
	return f.doc.Body
}

func (f *Factory) forget(id string, a *Atome) {
	if cur, ok := f.atomes[id]; ok && cur == a {
		delete(f.atomes, id)
	}
}

func explicitID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case nil:
		return ""
	}
	if f, ok := particle.ToFloat(v); ok {
		return particle.FormatNumber(f)
	}
	return fmt.Sprint(v)
}

// textValue returns the text content from the first present of text and
// content.
func textValue(cfg Config) (string, bool) {
	for _, key := range []string{KeyText, KeyContent} {
		v, ok := cfg[key]
		if !ok || v == nil {
			continue
		}
		if f, isNum := particle.ToFloat(v); isNum {
			return particle.FormatNumber(f), true
		}
		return fmt.Sprint(v), true
	}
	return "", false
}

func eventHandler(key string, value any) (dom.Listener, bool) {
	if len(key) <= 2 || !strings.HasPrefix(key, "on") {
		return nil, false
	}
	switch fn := value.(type) {
	case dom.Listener:
		return fn, true
	case func(*dom.Event):
		return fn, true
	case func():
		return func(*dom.Event) { fn() }, true
	}
	return nil, false
}

func childConfigs(v any) []Config {
	switch list := v.(type) {
	case []Config:
		return list
	case []map[string]any:
		out := make([]Config, len(list))
		for i, m := range list {
			out[i] = Config(m)
		}
		return out
	case []any:
		out := make([]Config, 0, len(list))
		for _, item := range list {
			switch m := item.(type) {
			case Config:
				out = append(out, m)
			case map[string]any:
				out = append(out, Config(m))
			}
		}
		return out
	}
	return nil
}

// IDs returns the ids of all live atomes in sorted order.
func (f *Factory) IDs() []string {
	ids := make([]string, 0, len(f.atomes))
	for id := range f.atomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

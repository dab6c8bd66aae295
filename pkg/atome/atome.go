package atome

import (
	"fmt"
	"strings"

	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/particle"
)

// Atome wraps a materialized node. The wrapper owns the node; the node
// holds no reference back.
type Atome struct {
	factory *Factory
	id      string
	node    *dom.Node
	config  Config
	units   particle.Units
	gone    bool
}

// ID returns the node id.
func (a *Atome) ID() string { return a.id }

// Node returns the materialized node.
func (a *Atome) Node() *dom.Node { return a.node }

// Get returns the last value applied for key.
func (a *Atome) Get(key string) (any, bool) {
	v, ok := a.config[key]
	return v, ok
}

// Units returns the unit table in effect for this atome.
func (a *Atome) Units() particle.Units { return a.units }

// Set applies a single key to the node using the same resolution as
// Create and records the value. Set on a destroyed atome is a no-op.
func (a *Atome) Set(key string, value any) *Atome {
	if a.gone {
		return a
	}
	a.config[key] = value

	switch key {
	case KeyID:
		id := explicitID(value)
		if id == "" || id == a.id {
			return a
		}
		a.factory.forget(a.id, a)
		a.id = id
		a.node.SetID(id)
		a.factory.atomes[id] = a
	case KeyParent:
		a.factory.resolveParent(value).AppendChild(a.node)
	case KeyText, KeyContent:
		if text, ok := textValue(a.config); ok {
			a.node.SetText(text)
		}
	case KeyTag:
		if value == nil {
			a.node.RemoveAttribute("data-tag")
		} else {
			a.node.SetData("tag", fmt.Sprint(value))
		}
	case KeyUnits:
		a.units = particle.NormalizeUnits(value)
	case KeyChildren:
		for _, child := range childConfigs(value) {
			a.AddChild(child)
		}
	default:
		a.factory.apply(a, key, value)
	}
	return a
}

// AddChild creates a child atome under this node and records its id in
// the fasten list.
func (a *Atome) AddChild(cfg Config) *Atome {
	c := cfg.Clone()
	c[KeyParent] = a.node
	child := a.factory.Create(c)
	a.fasten(child.id)
	return child
}

// Fastened returns the ids recorded in the node's fasten list.
func (a *Atome) Fastened() []string {
	v := a.node.Data("fasten")
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func (a *Atome) fasten(id string) {
	for _, existing := range a.Fastened() {
		if existing == id {
			return
		}
	}
	a.node.SetData("fasten", strings.Join(append(a.Fastened(), id), ","))
}

// Destroy detaches the node, drops its listeners and removes it and its
// descendants from the factory's id table.
func (a *Atome) Destroy() {
	if a.gone {
		return
	}
	a.gone = true
	a.node.Remove()
	a.node.Walk(func(n *dom.Node) bool {
		n.RemoveAllListeners()
		if id := n.ID(); id != "" {
			if owner, ok := a.factory.atomes[id]; ok && owner.node == n {
				owner.gone = true
				a.factory.forget(id, owner)
			}
		}
		return true
	})
}

// Destroyed reports whether Destroy has been called.
func (a *Atome) Destroyed() bool { return a.gone }

func (a *Atome) scope() *particle.Scope {
	return &particle.Scope{Units: a.units, Data: a.config}
}

// Package particle implements the attribute handler registry used to
// materialize configuration mappings into nodes.
//
// A particle is a named handler for one configuration key. The registry maps
// key names to Definitions; Dispatch looks a key up and, on a hit, runs the
// optional Before transform, the Process effect and the optional After hook
// against a node. A miss returns false so the caller can fall back to
// style or attribute assignment.
//
// # Categories
//
// Particles are grouped into categories that also define processing order
// when a whole mapping is applied:
//
//	structural, physical, visual, content, behavioral,
//	relationship, interactive, transform
//
// # Units
//
// Numeric values are converted to style strings by FormatValue using a
// per-mapping Units table. Properties in the default-px set (left, width,
// margin-top and friends) receive "px" when no unit is configured.
//
// # Standard Set
//
// RegisterStandard installs the built-in particles (class, markup, width,
// shadow, rotation, events and others). Applications register their own
// particles the same way:
//
//	reg := particle.NewRegistry()
//	particle.RegisterStandard(reg)
//	reg.Register(particle.Definition{
//	    Name:     "glow",
//	    Kind:     particle.KindString,
//	    Category: particle.CategoryVisual,
//	    Process: func(n *dom.Node, v any, s *particle.Scope) {
//	        n.Style.Set("filter", "drop-shadow(0 0 4px "+v.(string)+")")
//	    },
//	})
package particle

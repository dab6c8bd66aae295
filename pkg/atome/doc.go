// Package atome materializes configuration mappings into nodes.
//
// A Factory owns a document, a particle registry and the id counter. Create
// turns a Config into a node attached under its parent and returns an Atome
// wrapper for later mutation:
//
//	f := atome.NewFactory(doc, particles)
//	box := f.Create(atome.Config{
//	    "width":  100,
//	    "height": 50,
//	    "color":  "orange",
//	    "units":  map[string]any{"width": "%"},
//	    "text":   "hello",
//	})
//
// # Key Resolution
//
// The reserved keys id, parent, text, content, tag and units are handled by
// the factory itself. Every other key is resolved in this order:
//
//  1. a registered particle
//  2. a numeric value whose key has a configured unit (or defaults to px),
//     applied as a style
//  3. a recognized style property, applied as-is
//  4. a generic attribute
//
// Construction never fails. An unresolvable parent falls back to the root
// selector (default "#view") and then to the document body.
//
// # Templates
//
// Define registers a named base configuration; CreateFrom merges it with a
// per-call Config. LoadTemplates reads templates from YAML.
package atome

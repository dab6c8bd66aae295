// Package render serializes materialized nodes to HTML.
//
// Attributes are written in sorted order with id first, followed by the
// inline style. Text is escaped; content set through innerHTML is written
// as is. Nodes with listeners can be marked with data-on-<type>
// attributes so a client can rebind them.
//
//	r := render.New(render.Options{Pretty: true})
//	html, err := r.RenderToString(a.Node())
//
// RenderPage wraps a body node in a complete HTML5 document and
// StreamingRenderer flushes the head before the body.
package render

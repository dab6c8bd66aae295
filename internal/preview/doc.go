// Package preview serves components over HTTP for interactive inspection.
//
// Routes:
//
//	GET /                   index page linking every registered component
//	GET /components         JSON list of component names
//	GET /components/{name}  component rendered into a fresh document
//	GET /ws/{name}          websocket drag session for one component
//	GET /metrics            Prometheus metrics
//
// Each websocket session owns its document and factory. Pointer messages
// are applied in arrival order on the session's read loop.
package preview

package render

import (
	"net/http"
)

// StreamingRenderer flushes the document head before rendering the body.
type StreamingRenderer struct {
	*Renderer
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewStreamingRenderer creates a streaming renderer writing to w. Flushing
// is skipped when w does not implement http.Flusher.
func NewStreamingRenderer(w http.ResponseWriter, opts Options) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{Renderer: New(opts), w: w, flusher: flusher}
}

// RenderPage writes page, flushing after the head.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	ew := &errWriter{w: s.w}
	s.renderHead(ew, page)
	if ew.err != nil {
		return ew.err
	}
	s.flush()
	s.renderBody(ew, page)
	if ew.err != nil {
		return ew.err
	}
	s.flush()
	return nil
}

func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

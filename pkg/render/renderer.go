package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/squirrel-ui/squirrel/pkg/dom"
)

// Options configures a Renderer.
type Options struct {
	// Pretty indents block children on their own lines.
	Pretty bool

	// Indent is used per nesting level in pretty mode. Defaults to two
	// spaces.
	Indent string

	// EventMarkers writes a data-on-<type> attribute for each listener
	// type registered on a node.
	EventMarkers bool
}

// Renderer writes nodes as HTML.
type Renderer struct {
	opts Options
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	return &Renderer{opts: opts}
}

// RenderToString renders n and its subtree.
func (r *Renderer) RenderToString(n *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams n and its subtree to w. A nil node writes nothing.
func (r *Renderer) RenderToWriter(w io.Writer, n *dom.Node) error {
	if n == nil {
		return nil
	}
	ew := &errWriter{w: w}
	r.renderNode(ew, n, 0)
	return ew.err
}

func (r *Renderer) renderNode(w *errWriter, n *dom.Node, depth int) {
	tag := n.Name
	if tag == "" {
		tag = "div"
	}
	if r.opts.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.str("<")
	w.str(tag)
	r.renderAttributes(w, n)
	w.str(">")

	if isVoidElement(tag) {
		r.newline(w)
		return
	}

	children := n.Children()
	block := len(children) > 0 && !isInlineElement(tag)
	switch {
	case n.InnerHTML() != "":
		w.str(n.InnerHTML())
	default:
		w.str(escapeHTML(n.Text()))
		if r.opts.Pretty && block {
			w.str("\n")
		}
		for _, c := range children {
			r.renderNode(w, c, depth+1)
		}
		if r.opts.Pretty && block {
			r.writeIndent(w, depth)
		}
	}

	w.str("</")
	w.str(tag)
	w.str(">")
	r.newline(w)
}

// renderAttributes writes id first, the remaining attributes sorted, then
// style and event markers.
func (r *Renderer) renderAttributes(w *errWriter, n *dom.Node) {
	if id := n.ID(); id != "" {
		writeAttr(w, "id", id)
	}
	for _, name := range n.AttributeNames() {
		if name == "id" || name == "style" {
			continue
		}
		if !dom.ValidAttributeName(name) {
			continue
		}
		value, _ := n.Attribute(name)
		if value == "" && dom.IsBooleanAttribute(name) {
			w.str(" ")
			w.str(name)
			continue
		}
		writeAttr(w, name, value)
	}
	if css := n.Style.CSSText(); css != "" {
		writeAttr(w, "style", css)
	}
	if r.opts.EventMarkers {
		for _, typ := range n.ListenerTypes() {
			if name := "data-on-" + strings.ToLower(typ); dom.ValidAttributeName(name) {
				writeAttr(w, name, "true")
			}
		}
	}
}

func writeAttr(w *errWriter, name, value string) {
	w.str(" ")
	w.str(name)
	w.str(`="`)
	w.str(escapeAttr(value))
	w.str(`"`)
}

func (r *Renderer) newline(w *errWriter) {
	if r.opts.Pretty {
		w.str("\n")
	}
}

func (r *Renderer) writeIndent(w *errWriter, depth int) {
	w.str(strings.Repeat(r.opts.Indent, depth))
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) str(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

package render

import (
	"io"

	"github.com/squirrel-ui/squirrel/pkg/dom"
)

// PageData describes a complete HTML document.
type PageData struct {
	Title string

	// Body is the page content. A <body> node contributes its children.
	Body *dom.Node

	// Lang defaults to "en".
	Lang string

	// Styles are written as inline <style> blocks.
	Styles []string

	StyleSheets []string

	// Scripts are inline module scripts written before </body>.
	Scripts []string
}

// RenderPage renders page as an HTML5 document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	ew := &errWriter{w: w}
	r.renderHead(ew, page)
	if ew.err != nil {
		return ew.err
	}
	r.renderBody(ew, page)
	return ew.err
}

func (r *Renderer) renderHead(w *errWriter, page PageData) {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	w.str("<!DOCTYPE html>\n")
	w.str(`<html lang="` + escapeAttr(lang) + `">` + "\n")
	w.str("<head>\n")
	w.str(`  <meta charset="utf-8">` + "\n")
	w.str(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		w.str("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}
	for _, href := range page.StyleSheets {
		w.str(`  <link rel="stylesheet" href="` + escapeAttr(href) + `">` + "\n")
	}
	for _, css := range page.Styles {
		w.str("  <style>" + css + "</style>\n")
	}
	w.str("</head>\n")
}

func (r *Renderer) renderBody(w *errWriter, page PageData) {
	w.str("<body>\n")
	for _, n := range bodyNodes(page.Body) {
		r.renderNode(w, n, 0)
		if !r.opts.Pretty {
			w.str("\n")
		}
	}
	for _, src := range page.Scripts {
		w.str(`<script type="module">` + src + "</script>\n")
	}
	w.str("</body>\n</html>\n")
}

func bodyNodes(n *dom.Node) []*dom.Node {
	switch {
	case n == nil:
		return nil
	case n.Name == "body":
		return n.Children()
	}
	return []*dom.Node{n}
}

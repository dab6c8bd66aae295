package widgets

import (
	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/drag"
)

// DraggableAttr marks nodes built by Draggable.
const DraggableAttr = "data-draggable"

// Draggable builds a box meant to be dragged. The drag behavior itself is
// attached after construction with MakeDraggable.
//
// Props: text, width, height (default 100), color.
func Draggable(props map[string]any) atome.Config {
	cfg := base(props)
	withClass(cfg, "hs-draggable")
	cfg["text"] = str(props, "text", "")
	cfg["width"] = num(props, "width", 100)
	cfg["height"] = num(props, "height", 100)
	cfg["smooth"] = 8
	mergeCSS(cfg, map[string]any{
		"position":        "absolute",
		"backgroundColor": str(props, "color", "#3498db"),
		"border":          "2px solid #2980b9",
		"display":         "flex",
		"alignItems":      "center",
		"justifyContent":  "center",
		"color":           "white",
		"fontWeight":      "bold",
		"transition":      "box-shadow 0.2s ease",
	}, props)
	cfg["attrs"] = map[string]any{DraggableAttr: "true"}
	return cfg
}

// IsDraggable reports whether n was built by Draggable.
func IsDraggable(n *dom.Node) bool {
	v, ok := n.Attribute(DraggableAttr)
	return ok && v == "true"
}

// MakeDraggable attaches a drag controller to a's node. The cursor defaults
// to "grab".
func MakeDraggable(a *atome.Atome, opts drag.Options) *drag.Controller {
	if opts.Cursor == "" {
		opts.Cursor = "grab"
	}
	c := drag.New(a.Node(), opts)
	c.Attach()
	return c
}

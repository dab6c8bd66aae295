package widgets

import (
	"fmt"

	"github.com/squirrel-ui/squirrel/pkg/atome"
)

// List builds an unordered list with one item per entry of the items prop.
//
// Props: items ([]string or []any), ordered, spacing (px between items).
func List(props map[string]any) atome.Config {
	cfg := base(props)
	withClass(cfg, "hs-list")
	cfg["markup"] = "ul"
	if flag(props, "ordered") {
		cfg["markup"] = "ol"
	}
	mergeCSS(cfg, map[string]any{
		"listStyle":  "none",
		"margin":     0,
		"padding":    0,
		"fontFamily": "system-ui, sans-serif",
	}, props)

	spacing := num(props, "spacing", 4)
	var children []atome.Config
	for i, item := range items(props["items"]) {
		children = append(children, atome.Config{
			"markup": "li",
			"class":  "hs-list-item",
			"text":   item,
			"css":    map[string]any{"marginBottom": spacing},
			"attrs":  map[string]any{"data-index": i},
		})
	}
	if len(children) > 0 {
		cfg["children"] = children
	}
	return cfg
}

func items(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	}
	return nil
}

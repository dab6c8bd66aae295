package widgets

import "github.com/squirrel-ui/squirrel/pkg/atome"

var tooltipPlacement = map[string]map[string]any{
	"top":    {"bottom": "100%", "left": "50%", "transform": "translateX(-50%)", "marginBottom": 6},
	"bottom": {"top": "100%", "left": "50%", "transform": "translateX(-50%)", "marginTop": 6},
	"left":   {"right": "100%", "top": "50%", "transform": "translateY(-50%)", "marginRight": 6},
	"right":  {"left": "100%", "top": "50%", "transform": "translateY(-50%)", "marginLeft": 6},
}

// Tooltip builds a hidden-by-default hint bubble.
//
// Props: text, position ("top", "bottom", "left" or "right"), visible.
func Tooltip(props map[string]any) atome.Config {
	position := str(props, "position", "top")
	placement, ok := tooltipPlacement[position]
	if !ok {
		position, placement = "top", tooltipPlacement["top"]
	}

	cfg := base(props)
	withClass(cfg, "hs-tooltip")
	cfg["text"] = str(props, "text", "")

	css := map[string]any{
		"position":        "absolute",
		"padding":         "4px 8px",
		"backgroundColor": "rgba(0,0,0,0.8)",
		"color":           "white",
		"borderRadius":    "4px",
		"fontSize":        "12px",
		"whiteSpace":      "nowrap",
		"pointerEvents":   "none",
		"zIndex":          1000,
	}
	for k, v := range placement {
		css[k] = v
	}
	mergeCSS(cfg, css, props)

	cfg["attrs"] = map[string]any{
		"role":          "tooltip",
		"data-position": position,
		"hidden":        !flag(props, "visible"),
	}
	return cfg
}

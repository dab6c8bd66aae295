package widgets

import "github.com/squirrel-ui/squirrel/pkg/atome"

// Badge builds a small rounded counter or label.
//
// Props: text, color (background), textColor.
func Badge(props map[string]any) atome.Config {
	cfg := base(props)
	withClass(cfg, "hs-badge")
	cfg["markup"] = "span"
	cfg["text"] = str(props, "text", "")
	cfg["smooth"] = 9
	mergeCSS(cfg, map[string]any{
		"display":         "inline-flex",
		"alignItems":      "center",
		"justifyContent":  "center",
		"minWidth":        18,
		"height":          18,
		"padding":         "0 4px",
		"backgroundColor": str(props, "color", "#dc3545"),
		"color":           str(props, "textColor", "white"),
		"fontSize":        "11px",
		"fontWeight":      "bold",
	}, props)
	return cfg
}

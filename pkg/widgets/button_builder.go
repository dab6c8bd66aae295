package widgets

import "github.com/squirrel-ui/squirrel/pkg/atome"

// Button builds a clickable button.
//
// Props: text (default "hello"), onClick, disabled, variant
// ("primary" switches to the filled style).
func Button(props map[string]any) atome.Config {
	cfg := base(props)
	withClass(cfg, "hs-button")
	cfg["markup"] = "button"
	cfg["text"] = str(props, "text", "hello")

	bg, fg, border := "#f8f9fa", "#333", "1px solid #ccc"
	if str(props, "variant", "") == "primary" {
		bg, fg, border = "#007bff", "white", "1px solid #0069d9"
	}
	mergeCSS(cfg, map[string]any{
		"position":        "relative",
		"display":         "inline-flex",
		"alignItems":      "center",
		"justifyContent":  "center",
		"padding":         "8px 16px",
		"border":          border,
		"borderRadius":    "4px",
		"backgroundColor": bg,
		"color":           fg,
		"fontSize":        "14px",
		"fontFamily":      "system-ui, sans-serif",
		"cursor":          "pointer",
		"transition":      "all 0.2s ease",
		"outline":         "none",
	}, props)

	attrs := map[string]any{"type": "button"}
	if flag(props, "disabled") {
		attrs["disabled"] = true
		attrs["aria-disabled"] = "true"
	}
	cfg["attrs"] = attrs

	if fn, ok := props["onClick"]; ok && fn != nil && !flag(props, "disabled") {
		cfg["onClick"] = fn
	}
	return cfg
}

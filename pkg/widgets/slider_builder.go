package widgets

import (
	"math"

	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/particle"
)

// Slider builds a horizontal or vertical range control made of a track,
// a progression bar and a handle.
//
// Props: min (0), max (100), value (50), orientation ("horizontal" or
// "vertical"), length (px, default 200).
func Slider(props map[string]any) atome.Config {
	lo := num(props, "min", 0)
	hi := num(props, "max", 100)
	value := num(props, "value", 50)
	length := num(props, "length", 200)
	vertical := str(props, "orientation", "horizontal") == "vertical"

	pct := SliderPercent(lo, hi, value)
	pctText := particle.FormatNumber(pct) + "%"

	cfg := base(props)
	withClass(cfg, "hs-slider")
	cfg["attrs"] = map[string]any{
		"role":             "slider",
		"aria-valuemin":    lo,
		"aria-valuemax":    hi,
		"aria-valuenow":    math.Max(lo, math.Min(hi, value)),
		"aria-orientation": map[bool]string{true: "vertical", false: "horizontal"}[vertical],
	}
	if vertical {
		cfg["width"], cfg["height"] = 20, length
	} else {
		cfg["width"], cfg["height"] = length, 20
	}
	mergeCSS(cfg, map[string]any{
		"position":    "relative",
		"display":     "inline-block",
		"userSelect":  "none",
		"touchAction": "none",
	}, props)

	track := map[string]any{"position": "absolute", "backgroundColor": "#e0e0e0", "borderRadius": "4px", "overflow": "hidden"}
	progress := map[string]any{"position": "absolute", "backgroundColor": "#007bff", "left": 0}
	handle := map[string]any{
		"position":        "absolute",
		"width":           16,
		"height":          16,
		"backgroundColor": "#fff",
		"border":          "2px solid #007bff",
		"borderRadius":    "50%",
		"boxShadow":       "0 4px 8px rgba(0,0,0,0.15)",
	}
	if vertical {
		track["height"], track["width"], track["left"], track["transform"] = "100%", 4, "50%", "translateX(-50%)"
		progress["width"], progress["height"], progress["bottom"] = "100%", pctText, 0
		handle["left"], handle["bottom"], handle["transform"] = "50%", pctText, "translate(-50%, 50%)"
	} else {
		track["width"], track["height"], track["top"], track["transform"] = "100%", 4, "50%", "translateY(-50%)"
		progress["height"], progress["width"], progress["top"] = "100%", pctText, 0
		handle["top"], handle["left"], handle["transform"] = "50%", pctText, "translate(-50%, -50%)"
	}

	cfg["children"] = []atome.Config{
		{"class": "hs-slider-track", "css": track, "children": []atome.Config{
			{"class": "hs-slider-progression", "css": progress},
		}},
		{"class": "hs-slider-handle", "css": handle},
	}
	return cfg
}

// SliderPercent maps value in [lo, hi] to a percentage, clamped to 0..100.
func SliderPercent(lo, hi, value float64) float64 {
	if hi <= lo {
		return 0
	}
	pct := (value - lo) / (hi - lo) * 100
	return math.Max(0, math.Min(100, pct))
}

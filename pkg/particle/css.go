package particle

import (
	"strings"

	"github.com/squirrel-ui/squirrel/pkg/dom"
)

var styleProperties = makeSet(
	"align-content", "align-items", "align-self", "animation", "animation-delay",
	"animation-duration", "animation-name", "aspect-ratio", "backdrop-filter",
	"background", "background-color", "background-image", "background-position",
	"background-repeat", "background-size", "border", "border-bottom", "border-color",
	"border-left", "border-radius", "border-right", "border-style", "border-top",
	"border-width", "bottom", "box-shadow", "box-sizing", "clip-path", "color",
	"column-gap", "cursor", "display", "filter", "flex", "flex-basis",
	"flex-direction", "flex-grow", "flex-shrink", "flex-wrap", "font",
	"font-family", "font-size", "font-style", "font-weight", "gap", "grid",
	"grid-area", "grid-column", "grid-row", "grid-template-columns",
	"grid-template-rows", "height", "inset", "justify-content", "justify-items",
	"left", "letter-spacing", "line-height", "margin", "margin-bottom",
	"margin-left", "margin-right", "margin-top", "max-height", "max-width",
	"min-height", "min-width", "mix-blend-mode", "object-fit", "opacity",
	"order", "outline", "overflow", "overflow-x", "overflow-y", "padding",
	"padding-bottom", "padding-left", "padding-right", "padding-top",
	"perspective", "pointer-events", "position", "resize", "right", "row-gap",
	"text-align", "text-decoration", "text-overflow", "text-shadow",
	"text-transform", "top", "transform", "transform-origin", "transition",
	"user-select", "vertical-align", "visibility", "white-space", "width",
	"will-change", "word-break", "z-index",
)

// IsStyleProperty reports whether name is a recognized CSS property, given
// in camelCase or kebab-case. Custom properties (--name) are always
// recognized.
func IsStyleProperty(name string) bool {
	if strings.HasPrefix(name, "--") && len(name) > 2 {
		return true
	}
	return styleProperties[dom.Kebab(name)]
}

func makeSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

package particle

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/squirrel-ui/squirrel/pkg/dom"
)

// BaseStyles are applied by the reset particle to clear platform defaults.
var BaseStyles = []struct{ Name, Value string }{
	{"margin", "0"},
	{"padding", "0"},
	{"box-sizing", "border-box"},
	{"display", "block"},
	{"position", "absolute"},
	{"line-height", "normal"},
	{"font-size", "inherit"},
	{"font-weight", "inherit"},
	{"color", "inherit"},
	{"background", "transparent"},
}

// Shadow defaults.
const (
	defaultShadowX     = 3
	defaultShadowY     = 3
	defaultShadowBlur  = 7
	defaultShadowColor = "rgba(0,0,0,0.6)"
)

var rotatePattern = regexp.MustCompile(`rotate\([^)]*\)`)

// Standard returns the built-in particle definitions.
func Standard() []Definition {
	return []Definition{
		// structural
		{Name: "class", Kind: KindMixed, Category: CategoryStructural, Process: processClass},
		{Name: "markup", Kind: KindString, Category: CategoryStructural, Process: processMarkup},
		{Name: "type", Kind: KindString, Category: CategoryStructural, Process: processType},
		{Name: "renderers", Kind: KindArray, Category: CategoryStructural, Process: processRenderers},

		// physical
		dimension("x", "left"),
		dimension("y", "top"),
		dimension("width", "width"),
		dimension("height", "height"),
		styleString("position", CategoryPhysical),
		styleString("overflow", CategoryPhysical),
		{Name: "origin", Kind: KindObject, Category: CategoryPhysical, Process: processOrigin},
		{Name: "center", Kind: KindBoolean, Category: CategoryPhysical, Process: processCenter},

		// visual
		{Name: "smooth", Kind: KindMixed, Category: CategoryVisual, Process: processSmooth},
		{Name: "color", Kind: KindString, Category: CategoryVisual, Process: processColor},
		{Name: "css", Kind: KindMixed, Category: CategoryVisual, Process: processCSS},
		{
			Name:     "shadow",
			Kind:     KindMixed,
			Category: CategoryVisual,
			Before:   normalizeShadow,
			Process:  processShadow,
			After:    countShadow,
		},

		// content
		{Name: "innerHTML", Kind: KindString, Category: CategoryContent, Process: processInnerHTML},

		// behavioral
		{Name: "reset", Kind: KindBoolean, Category: CategoryBehavioral, Process: processReset},
		{Name: "attrs", Kind: KindObject, Category: CategoryBehavioral, Process: processAttrs},

		// relationship
		{Name: "fasten", Kind: KindArray, Category: CategoryRelationship, Process: processFasten},

		// interactive
		{Name: "events", Kind: KindObject, Category: CategoryInteractive, Process: processEvents},
		{Name: "animate", Kind: KindObject, Category: CategoryInteractive, Process: processAnimate},

		// transform
		{
			Name:     "rotation",
			Kind:     KindNumber,
			Category: CategoryTransform,
			Before:   normalizeRotation,
			Process:  processRotation,
			After:    orientRotation,
		},
	}
}

// RegisterStandard installs the built-in particles into r.
func RegisterStandard(r *Registry) {
	for _, d := range Standard() {
		r.Register(d)
	}
}

func processClass(n *dom.Node, v any, _ *Scope) {
	n.SetClassName(strings.Join(stringList(v), " "))
}

func processMarkup(n *dom.Node, v any, _ *Scope) {
	if name, ok := v.(string); ok && strings.TrimSpace(name) != "" {
		n.Name = strings.ToLower(strings.TrimSpace(name))
	}
}

func processType(n *dom.Node, v any, _ *Scope) {
	n.SetData("type", fmt.Sprint(v))
}

func processRenderers(n *dom.Node, v any, _ *Scope) {
	for _, r := range stringList(v) {
		n.AddClass("renderer-" + r)
	}
}

// dimension maps a particle onto a length property. The unit is looked up
// under the particle name, so {x: 10, units: {x: "%"}} sets left to 10%.
func dimension(name, property string) Definition {
	return Definition{
		Name:     name,
		Kind:     KindNumber,
		Category: CategoryPhysical,
		Process: func(n *dom.Node, v any, s *Scope) {
			if f, ok := ToFloat(v); ok {
				if u, configured := s.Unit(name); configured {
					n.Style.Set(property, FormatNumber(f)+u)
					return
				}
			}
			if out, ok := FormatValue(property, v, nil); ok {
				n.Style.Set(property, out)
			}
		},
	}
}

func styleString(property string, c Category) Definition {
	return Definition{
		Name:     property,
		Kind:     KindString,
		Category: c,
		Process: func(n *dom.Node, v any, _ *Scope) {
			n.Style.Set(property, strings.TrimSpace(fmt.Sprint(v)))
		},
	}
}

func processOrigin(n *dom.Node, v any, _ *Scope) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	n.SetData("origin", string(b))
}

func processCenter(n *dom.Node, v any, _ *Scope) {
	if on, _ := v.(bool); on {
		n.Style.Set("left", "50%")
		n.Style.Set("transform", "translateX(-50%)")
	}
}

func processSmooth(n *dom.Node, v any, _ *Scope) {
	if f, ok := ToFloat(v); ok {
		n.Style.Set("border-radius", FormatNumber(f)+"px")
		return
	}
	if s, ok := v.(string); ok {
		n.Style.Set("border-radius", strings.TrimSpace(s))
	}
}

func processColor(n *dom.Node, v any, _ *Scope) {
	if s, ok := v.(string); ok {
		n.Style.Set("background-color", strings.TrimSpace(s))
	}
}

func processCSS(n *dom.Node, v any, s *Scope) {
	if text, ok := v.(string); ok {
		n.Style.SetCSSText(text)
		return
	}
	m, ok := stringMap(v)
	if !ok {
		return
	}
	for _, k := range sortedKeys(m) {
		if m[k] == nil {
			n.Style.Remove(k)
			continue
		}
		if out, ok := FormatValue(k, m[k], s.units()); ok {
			n.Style.Set(k, out)
		}
	}
}

// normalizeShadow turns a single shadow mapping into a one-element list.
func normalizeShadow(_ *dom.Node, v any, _ *Scope) any {
	if m, ok := stringMap(v); ok {
		return []any{m}
	}
	switch list := v.(type) {
	case []map[string]any:
		out := make([]any, len(list))
		for i, m := range list {
			out[i] = m
		}
		return out
	}
	return v
}

func processShadow(n *dom.Node, v any, _ *Scope) {
	list, ok := v.([]any)
	if !ok {
		return
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		m, ok := stringMap(item)
		if !ok {
			continue
		}
		parts = append(parts, shadowString(m))
	}
	n.Style.Set("box-shadow", strings.Join(parts, ", "))
}

func shadowString(m map[string]any) string {
	x := numberOr(m["x"], defaultShadowX)
	y := numberOr(m["y"], defaultShadowY)
	blur := numberOr(m["blur"], defaultShadowBlur)
	inset := ""
	if invert, _ := m["invert"].(bool); invert {
		inset = "inset "
	}
	color := defaultShadowColor
	switch c := m["color"].(type) {
	case string:
		if c != "" {
			color = c
		}
	default:
		if cm, ok := stringMap(c); ok {
			color = fmt.Sprintf("rgba(%d,%d,%d,%s)",
				channel(cm["red"]), channel(cm["green"]), channel(cm["blue"]),
				FormatNumber(numberOr(cm["alpha"], 0.6)))
		}
	}
	return fmt.Sprintf("%s%spx %spx %spx %s", inset,
		FormatNumber(x), FormatNumber(y), FormatNumber(blur), color)
}

func channel(v any) int {
	return int(math.Round(numberOr(v, 0) * 255))
}

func numberOr(v any, def float64) float64 {
	if f, ok := ToFloat(v); ok {
		return f
	}
	return def
}

func countShadow(n *dom.Node, v any, _ *Scope) {
	if list, ok := v.([]any); ok {
		n.SetData("shadowCount", fmt.Sprint(len(list)))
	}
}

func processInnerHTML(n *dom.Node, v any, _ *Scope) {
	if s, ok := v.(string); ok {
		n.SetInnerHTML(s)
	}
}

func processReset(n *dom.Node, v any, _ *Scope) {
	if on, ok := v.(bool); ok && !on {
		return
	}
	for _, p := range BaseStyles {
		n.Style.Set(p.Name, p.Value)
	}
}

func processAttrs(n *dom.Node, v any, _ *Scope) {
	m, ok := stringMap(v)
	if !ok {
		return
	}
	for _, k := range sortedKeys(m) {
		if m[k] == nil {
			n.RemoveAttribute(k)
			continue
		}
		ApplyAttribute(n, k, m[k])
	}
}

func processFasten(n *dom.Node, v any, _ *Scope) {
	ids := stringList(v)
	if len(ids) == 0 {
		return
	}
	n.SetData("fasten", strings.Join(ids, ","))
}

func processEvents(n *dom.Node, v any, _ *Scope) {
	m, ok := stringMap(v)
	if !ok {
		return
	}
	for _, typ := range sortedKeys(m) {
		switch fn := m[typ].(type) {
		case dom.Listener:
			n.AddEventListener(typ, fn)
		case func(*dom.Event):
			n.AddEventListener(typ, fn)
		case func():
			n.AddEventListener(typ, func(*dom.Event) { fn() })
		}
	}
}

func processAnimate(n *dom.Node, v any, s *Scope) {
	m, ok := stringMap(v)
	if !ok {
		return
	}
	duration := numberOr(m["duration"], 0.3)
	if duration == 0 {
		duration = 0.3
	}
	easing, _ := m["easing"].(string)
	if easing == "" {
		easing = "ease"
	}
	delay := numberOr(m["delay"], 0)
	n.Style.Set("transition", fmt.Sprintf("all %ss %s %ss",
		FormatNumber(duration), easing, FormatNumber(delay)))

	props, ok := stringMap(m["properties"])
	if !ok {
		return
	}
	for _, k := range sortedKeys(props) {
		val := props[k]
		if f, isNum := ToFloat(val); isNum {
			if _, configured := s.Unit(k); !configured {
				n.Style.Set(k, FormatNumber(f)+"px")
				continue
			}
		}
		if out, ok := FormatValue(k, val, s.units()); ok {
			n.Style.Set(k, out)
		}
	}
}

func normalizeRotation(_ *dom.Node, v any, _ *Scope) any {
	f, ok := ToFloat(v)
	if !ok {
		return v
	}
	return math.Mod(f, 360)
}

func processRotation(n *dom.Node, v any, _ *Scope) {
	deg, ok := ToFloat(v)
	if !ok {
		return
	}
	current := rotatePattern.ReplaceAllString(n.Style.Get("transform"), "")
	current = strings.Join(strings.Fields(current), " ")
	n.Style.Set("transform", strings.TrimSpace(current+" rotate("+FormatNumber(deg)+"deg)"))
}

func orientRotation(n *dom.Node, v any, _ *Scope) {
	deg, ok := ToFloat(v)
	if !ok {
		return
	}
	n.SetData("rotation", FormatNumber(deg))
	switch {
	case deg > 45 && deg < 135:
		n.AddClass("rotated-right")
	case deg >= 135 && deg < 225:
		n.AddClass("upside-down")
	case deg >= 225 && deg < 315:
		n.AddClass("rotated-left")
	default:
		n.AddClass("normal-orientation")
	}
}

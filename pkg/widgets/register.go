package widgets

import (
	"fmt"

	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/component"
	"github.com/squirrel-ui/squirrel/pkg/particle"
)

// Builders maps each widget name to its builder.
var Builders = map[string]component.Builder{
	"badge":     Badge,
	"button":    Button,
	"draggable": Draggable,
	"list":      List,
	"slider":    Slider,
	"tooltip":   Tooltip,
}

// Register installs the builders listed in Available into reg and records
// Available as the declared list.
func Register(reg *component.Registry) {
	for _, name := range Available {
		if b, ok := Builders[name]; ok {
			reg.Register(name, b)
		}
	}
	reg.Sync(Available)
}

// passthrough are the props copied verbatim onto the root config.
var passthrough = []string{
	atome.KeyID, atome.KeyParent, atome.KeyTag, atome.KeyUnits,
	"x", "y", "events", "class",
}

// base starts a config from the passthrough props.
func base(props map[string]any) atome.Config {
	cfg := atome.Config{}
	for _, k := range passthrough {
		if v, ok := props[k]; ok && v != nil {
			cfg[k] = v
		}
	}
	return cfg
}

func str(props map[string]any, key, def string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func num(props map[string]any, key string, def float64) float64 {
	if f, ok := particle.ToFloat(props[key]); ok {
		return f
	}
	return def
}

func flag(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}

// withClass joins the widget class with any caller-supplied class.
func withClass(cfg atome.Config, class string) {
	switch extra := cfg["class"].(type) {
	case string:
		if extra != "" {
			cfg["class"] = class + " " + extra
			return
		}
	case []string:
		cfg["class"] = append([]string{class}, extra...)
		return
	case []any:
		cfg["class"] = append([]any{class}, extra...)
		return
	}
	cfg["class"] = class
}

// mergeCSS overlays the caller's css prop on the widget defaults.
func mergeCSS(cfg atome.Config, defaults map[string]any, props map[string]any) {
	cfg["css"] = defaults
	if over, ok := props["css"].(map[string]any); ok {
		merged := atome.Merge(atome.Config{"css": defaults}, atome.Config{"css": over})
		cfg["css"] = merged["css"]
	}
}

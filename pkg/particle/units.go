package particle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/squirrel-ui/squirrel/pkg/dom"
)

// Units maps property names to the suffix appended to numeric values.
// A present but empty entry means "no suffix".
type Units map[string]string

// defaultPx holds the properties that receive "px" when a numeric value
// has no configured unit.
var defaultPx = map[string]bool{
	"left": true, "top": true, "right": true, "bottom": true,
	"width": true, "height": true,
	"min-width": true, "min-height": true, "max-width": true, "max-height": true,
	"margin": true, "margin-top": true, "margin-right": true, "margin-bottom": true, "margin-left": true,
	"padding": true, "padding-top": true, "padding-right": true, "padding-bottom": true, "padding-left": true,
}

// IsDefaultPx reports whether numeric values for name default to pixels.
func IsDefaultPx(name string) bool {
	return defaultPx[dom.Kebab(name)]
}

// NormalizeUnits builds a Units table from a configuration value.
// String entries are trimmed. Other entries are kept in their printed form.
// Values that are not maps yield nil.
func NormalizeUnits(v any) Units {
	switch m := v.(type) {
	case Units:
		out := make(Units, len(m))
		for k, u := range m {
			out[k] = strings.TrimSpace(u)
		}
		return out
	case map[string]string:
		out := make(Units, len(m))
		for k, u := range m {
			out[k] = strings.TrimSpace(u)
		}
		return out
	case map[string]any:
		out := make(Units, len(m))
		for k, u := range m {
			switch s := u.(type) {
			case string:
				out[k] = strings.TrimSpace(s)
			case nil:
				out[k] = ""
			default:
				out[k] = fmt.Sprint(s)
			}
		}
		return out
	}
	return nil
}

// FormatValue converts value to a style string for the property key.
//
// Numbers get the unit configured in units for key. Without an entry,
// default-px properties get "px" and everything else is left bare. Strings
// are trimmed and never receive the configured unit; a numeric string for
// a default-px property without an entry is treated like a number. Other
// values are not representable as style values and return false.
func FormatValue(key string, value any, units Units) (string, bool) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if _, configured := units[key]; !configured && IsDefaultPx(key) {
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				return s + "px", true
			}
		}
		return s, true
	}
	f, ok := ToFloat(value)
	if !ok {
		return "", false
	}
	num := FormatNumber(f)
	if u, configured := units[key]; configured {
		return num + u, true
	}
	if IsDefaultPx(key) {
		return num + "px", true
	}
	return num, true
}

// FormatNumber prints f without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToFloat converts any Go numeric type to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// IsNumber reports whether v is a Go numeric value.
func IsNumber(v any) bool {
	_, ok := ToFloat(v)
	return ok
}

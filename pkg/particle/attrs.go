package particle

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/squirrel-ui/squirrel/pkg/dom"
)

// ApplyAttribute sets name on n from an arbitrary configuration value.
//
// Booleans toggle boolean attributes and are printed otherwise. Lists are
// joined with commas and maps are stored as JSON. A *dom.Node value is
// appended as a child. Functions, nil and names that are not valid
// attribute names are ignored. It reports whether n was modified.
func ApplyAttribute(n *dom.Node, name string, v any) bool {
	if _, isNode := v.(*dom.Node); !isNode && !dom.ValidAttributeName(name) {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case *dom.Node:
		n.AppendChild(val)
		return true
	case bool:
		if dom.IsBooleanAttribute(name) {
			n.SetBoolAttribute(name, val)
			return true
		}
		n.SetAttribute(name, fmt.Sprint(val))
		return true
	case string:
		n.SetAttribute(name, val)
		return true
	}
	if f, ok := ToFloat(v); ok {
		n.SetAttribute(name, FormatNumber(f))
		return true
	}
	s, ok := stringify(v)
	if !ok {
		return false
	}
	n.SetAttribute(name, s)
	return true
}

func stringify(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.Invalid:
		return "", false
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, scalarString(rv.Index(i).Interface()))
		}
		return strings.Join(parts, ","), true
	case reflect.Map, reflect.Struct:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	return fmt.Sprint(v), true
}

func scalarString(v any) string {
	if f, ok := ToFloat(v); ok {
		return FormatNumber(f)
	}
	return fmt.Sprint(v)
}

// stringList converts a string, []string or []any into a list of strings.
func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return strings.Fields(val)
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			out = append(out, scalarString(item))
		}
		return out
	}
	return nil
}

// stringMap converts a map with string keys into map[string]any.
func stringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package particle

import (
	"math"
	"reflect"

	"github.com/squirrel-ui/squirrel/pkg/dom"
)

// ValueKind is the expected type of a particle value.
type ValueKind uint8

const (
	KindMixed ValueKind = iota
	KindNumber
	KindInteger
	KindString
	KindBoolean
	KindObject
	KindArray
	KindFunction
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	default:
		return "mixed"
	}
}

// Accepts reports whether v satisfies the kind.
func (k ValueKind) Accepts(v any) bool {
	switch k {
	case KindNumber:
		_, ok := ToFloat(v)
		return ok
	case KindInteger:
		f, ok := ToFloat(v)
		return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindObject:
		return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
	case KindArray:
		if v == nil {
			return false
		}
		kind := reflect.TypeOf(v).Kind()
		return kind == reflect.Slice || kind == reflect.Array
	case KindFunction:
		return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
	default:
		return true
	}
}

// Category groups particles and determines processing order.
type Category string

const (
	CategoryStructural   Category = "structural"
	CategoryPhysical     Category = "physical"
	CategoryVisual       Category = "visual"
	CategoryContent      Category = "content"
	CategoryBehavioral   Category = "behavioral"
	CategoryRelationship Category = "relationship"
	CategoryInteractive  Category = "interactive"
	CategoryTransform    Category = "transform"
)

// Categories lists the categories in processing order.
var Categories = []Category{
	CategoryStructural,
	CategoryPhysical,
	CategoryVisual,
	CategoryContent,
	CategoryBehavioral,
	CategoryRelationship,
	CategoryInteractive,
	CategoryTransform,
}

// Rank returns the processing position of c. Unknown categories sort last.
func (c Category) Rank() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return len(Categories)
}

// Scope is the context a handler runs in.
type Scope struct {
	// Units maps property names to unit suffixes for numeric values.
	Units Units

	// Data is the full configuration mapping being materialized.
	Data map[string]any
}

// Unit returns the configured unit for key and whether one is set.
func (s *Scope) Unit(key string) (string, bool) {
	if s == nil || s.Units == nil {
		return "", false
	}
	u, ok := s.Units[key]
	return u, ok
}

func (s *Scope) units() Units {
	if s == nil {
		return nil
	}
	return s.Units
}

// Definition describes a particle.
type Definition struct {
	// Name is the configuration key the particle handles.
	Name string

	// Kind is the expected value kind. A mismatch is logged, not rejected.
	Kind ValueKind

	// Category determines processing order.
	Category Category

	// Before optionally transforms the value before Process runs.
	Before func(n *dom.Node, value any, s *Scope) any

	// Process applies the value to the node. Required.
	Process func(n *dom.Node, value any, s *Scope)

	// After optionally runs once Process has completed.
	After func(n *dom.Node, value any, s *Scope)
}

package dom

import (
	"strings"
	"sync"
)

var kebabCache sync.Map

// Kebab converts a camelCase property name to kebab-case.
// Names already in kebab-case are returned unchanged.
func Kebab(name string) string {
	if v, ok := kebabCache.Load(name); ok {
		return v.(string)
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	kebabCache.Store(name, out)
	return out
}

// Style holds the inline style declarations of a node in insertion order.
type Style struct {
	props map[string]string
	order []string
}

func newStyle() *Style {
	return &Style{props: make(map[string]string)}
}

// Set assigns a property. An empty value removes the property.
func (s *Style) Set(name, value string) {
	key := Kebab(strings.TrimSpace(name))
	if key == "" {
		return
	}
	if value == "" {
		s.Remove(key)
		return
	}
	if _, ok := s.props[key]; !ok {
		s.order = append(s.order, key)
	}
	s.props[key] = value
}

// Get returns the value of a property, or "" if unset.
func (s *Style) Get(name string) string {
	return s.props[Kebab(name)]
}

// Has reports whether a property is set.
func (s *Style) Has(name string) bool {
	_, ok := s.props[Kebab(name)]
	return ok
}

// Remove unsets a property.
func (s *Style) Remove(name string) {
	key := Kebab(name)
	if _, ok := s.props[key]; !ok {
		return
	}
	delete(s.props, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of set properties.
func (s *Style) Len() int {
	return len(s.order)
}

// Each calls fn for every property in insertion order.
func (s *Style) Each(fn func(name, value string)) {
	for _, k := range s.order {
		fn(k, s.props[k])
	}
}

// CSSText serializes the declarations as an inline style string.
func (s *Style) CSSText() string {
	if len(s.order) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.order))
	for _, k := range s.order {
		parts = append(parts, k+": "+s.props[k])
	}
	return strings.Join(parts, "; ") + ";"
}

// SetCSSText replaces all declarations with the ones parsed from text.
func (s *Style) SetCSSText(text string) {
	s.props = make(map[string]string)
	s.order = nil
	for _, decl := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		s.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}

// Clear removes every declaration.
func (s *Style) Clear() {
	s.props = make(map[string]string)
	s.order = nil
}

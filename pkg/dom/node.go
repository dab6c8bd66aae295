package dom

import (
	"sort"
	"strings"
)

// booleanAttributes are set with an empty value when true and removed
// when false.
var booleanAttributes = map[string]bool{
	"draggable":       true,
	"hidden":          true,
	"spellcheck":      true,
	"contenteditable": true,
	"disabled":        true,
	"checked":         true,
	"readonly":        true,
}

// IsBooleanAttribute reports whether name is a boolean attribute.
func IsBooleanAttribute(name string) bool {
	return booleanAttributes[name]
}

// ValidAttributeName reports whether name can be written as an HTML
// attribute name: non-empty, without whitespace, control characters,
// quotes, '<', '>', '/' or '='.
func ValidAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= ' ', r == 0x7f, r >= 0x80 && r <= 0x9f:
			return false
		case strings.ContainsRune(`"'<>/=`, r):
			return false
		}
	}
	return true
}

// Node is a materialized element.
type Node struct {
	eventTarget

	// Name is the element name (e.g. "div").
	Name string

	// Style holds the inline style declarations.
	Style *Style

	doc       *Document
	parent    *Node
	children  []*Node
	attrs     map[string]string
	text      string
	innerHTML string
}

// Document returns the document that created the node.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ID returns the id attribute.
func (n *Node) ID() string { return n.attrs["id"] }

// SetID sets the id attribute.
func (n *Node) SetID(id string) { n.SetAttribute("id", id) }

// SetAttribute sets an attribute value.
func (n *Node) SetAttribute(name, value string) {
	if name == "" {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// SetBoolAttribute sets a boolean attribute: true assigns an empty value,
// false removes it.
func (n *Node) SetBoolAttribute(name string, on bool) {
	if on {
		n.SetAttribute(name, "")
		return
	}
	n.RemoveAttribute(name)
}

// Attribute returns an attribute value and whether it is present.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// HasAttribute reports whether an attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// RemoveAttribute removes an attribute.
func (n *Node) RemoveAttribute(name string) {
	delete(n.attrs, name)
}

// AttributeNames returns attribute names in sorted order.
func (n *Node) AttributeNames() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetData sets a data-* attribute. camelCase keys become kebab-case.
func (n *Node) SetData(key, value string) {
	n.SetAttribute("data-"+Kebab(key), value)
}

// Data returns a data-* attribute.
func (n *Node) Data(key string) string {
	return n.attrs["data-"+Kebab(key)]
}

// Classes returns the class list.
func (n *Node) Classes() []string {
	return strings.Fields(n.attrs["class"])
}

// HasClass reports whether the class list contains class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds classes that are not already present.
func (n *Node) AddClass(classes ...string) {
	list := n.Classes()
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if !contains(list, f) {
				list = append(list, f)
			}
		}
	}
	if len(list) > 0 {
		n.SetAttribute("class", strings.Join(list, " "))
	}
}

// RemoveClass removes classes from the class list.
func (n *Node) RemoveClass(classes ...string) {
	list := n.Classes()
	kept := list[:0]
	for _, c := range list {
		if !contains(classes, c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		n.RemoveAttribute("class")
		return
	}
	n.SetAttribute("class", strings.Join(kept, " "))
}

// SetClassName replaces the class list.
func (n *Node) SetClassName(className string) {
	if strings.TrimSpace(className) == "" {
		n.RemoveAttribute("class")
		return
	}
	n.SetAttribute("class", strings.Join(strings.Fields(className), " "))
}

// SetText replaces the node content with a text value.
func (n *Node) SetText(text string) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.innerHTML = ""
	n.text = text
}

// Text returns the node's own text value.
func (n *Node) Text() string { return n.text }

// TextContent returns the text of the node and all descendants.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		b.WriteString(c.text)
		return true
	})
	return b.String()
}

// SetInnerHTML stores raw markup rendered verbatim inside the node.
func (n *Node) SetInnerHTML(html string) {
	n.text = ""
	n.innerHTML = html
}

// InnerHTML returns raw markup set with SetInnerHTML.
func (n *Node) InnerHTML() string { return n.innerHTML }

// AppendChild appends child, detaching it from any previous parent.
func (n *Node) AppendChild(child *Node) {
	if child == nil || child == n || child.Contains(n) {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild removes child and reports whether it was a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Remove detaches the node from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in document order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Connected reports whether the node is attached to its document's body.
func (n *Node) Connected() bool {
	return n.doc != nil && n.doc.Body != nil && n.doc.Body.Contains(n)
}

// Dispatch runs listeners for e on n, then on each ancestor, then on the
// document when n is connected. Pointer enter and leave events reach n
// only.
func (n *Node) Dispatch(e *Event) {
	if e.Target == nil {
		e.Target = n
	}
	if !Bubbles(e.Type) {
		n.fire(e)
		return
	}
	for c := n; c != nil; c = c.parent {
		c.fire(e)
		if e.stopped {
			return
		}
	}
	if n.Connected() {
		n.doc.fire(e)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

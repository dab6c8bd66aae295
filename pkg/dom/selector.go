package dom

import "strings"

type attrMatcher struct {
	name     string
	value    string
	hasValue bool
}

// compound is a simple selector sequence such as div#main.card[data-x].
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatcher
}

// chain is a descendant-combined list of compounds, outermost first.
type chain []compound

// selectorGroup is a comma-separated list of chains.
type selectorGroup []chain

func (c compound) matches(n *Node) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, n.Name) {
		return false
	}
	if c.id != "" && n.ID() != c.id {
		return false
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.Attribute(a.name)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

func (ch chain) matches(n *Node) bool {
	last := len(ch) - 1
	if !ch[last].matches(n) {
		return false
	}
	i := last - 1
	for p := n.parent; p != nil && i >= 0; p = p.parent {
		if ch[i].matches(p) {
			i--
		}
	}
	return i < 0
}

func (g selectorGroup) matches(n *Node) bool {
	for _, ch := range g {
		if ch.matches(n) {
			return true
		}
	}
	return false
}

func parseSelector(sel string) (selectorGroup, bool) {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return nil, false
	}
	var group selectorGroup
	for _, part := range strings.Split(sel, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			return nil, false
		}
		ch := make(chain, 0, len(fields))
		for _, f := range fields {
			c, ok := parseCompound(f)
			if !ok {
				return nil, false
			}
			ch = append(ch, c)
		}
		group = append(group, ch)
	}
	return group, true
}

func parseCompound(s string) (compound, bool) {
	var c compound
	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && (s[i] == '*' || isIdentByte(s[i])) {
		if s[i] == '*' {
			c.tag = "*"
			i++
		} else {
			c.tag = readIdent()
		}
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			id := readIdent()
			if id == "" {
				return c, false
			}
			c.id = id
		case '.':
			i++
			class := readIdent()
			if class == "" {
				return c, false
			}
			c.classes = append(c.classes, class)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, false
			}
			body := s[i+1 : i+end]
			i += end + 1
			name, value, hasValue := strings.Cut(body, "=")
			name = strings.TrimSpace(name)
			if name == "" {
				return c, false
			}
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			c.attrs = append(c.attrs, attrMatcher{name: name, value: value, hasValue: hasValue})
		default:
			return c, false
		}
	}
	return c, true
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

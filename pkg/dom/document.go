package dom

// Document is the root of a node tree.
type Document struct {
	eventTarget

	// Body is the top-level node everything is attached under.
	Body *Node
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	d := &Document{}
	d.Body = d.CreateElement("body")
	return d
}

// CreateElement creates a detached node owned by the document.
func (d *Document) CreateElement(name string) *Node {
	if name == "" {
		name = "div"
	}
	return &Node{
		Name:  name,
		Style: newStyle(),
		doc:   d,
	}
}

// QuerySelector returns the first node under the body, body included, that
// matches sel. Unparseable or empty selectors match nothing.
func (d *Document) QuerySelector(sel string) *Node {
	groups, ok := parseSelector(sel)
	if !ok {
		return nil
	}
	var found *Node
	d.Body.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if groups.matches(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns every node matching sel in document order.
func (d *Document) QuerySelectorAll(sel string) []*Node {
	groups, ok := parseSelector(sel)
	if !ok {
		return nil
	}
	var out []*Node
	d.Body.Walk(func(n *Node) bool {
		if groups.matches(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// GetElementByID returns the first connected node with the given id.
func (d *Document) GetElementByID(id string) *Node {
	if id == "" {
		return nil
	}
	var found *Node
	d.Body.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Dispatch runs document-level listeners for e.
func (d *Document) Dispatch(e *Event) {
	d.fire(e)
}

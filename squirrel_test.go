package squirrel

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/particle"
	"github.com/squirrel-ui/squirrel/pkg/widgets"
)

func TestEngine_Create(t *testing.T) {
	e := New()
	a := e.Create(Config{"width": 100, "color": "red", "units": map[string]any{"width": "px"}})
	n := a.Node()
	if got := n.Style.Get("width"); got != "100px" {
		t.Errorf("width = %q", got)
	}
	if got := n.Style.Get("background-color"); got != "red" {
		t.Errorf("background-color = %q", got)
	}
	if got, ok := e.Lookup(a.ID()); !ok || got != a {
		t.Error("Lookup() did not return the created element")
	}
	if n.Document() != e.Document() {
		t.Error("node built outside the engine document")
	}
}

func TestEngine_Build(t *testing.T) {
	e := New()
	if diff := cmp.Diff(widgets.Available, e.Components.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	a, err := e.Build(context.Background(), "button", map[string]any{"text": "Save"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	html, err := e.Render(a, false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(html, `<button id="atome_1"`) || !strings.Contains(html, ">Save</button>") {
		t.Errorf("html = %s", html)
	}

	_, err = e.Build(context.Background(), "nope", nil)
	if !errors.IsCode(err, errors.CodeResolutionMiss) {
		t.Errorf("err = %v, want E001", err)
	}
}

func TestEngine_WithoutWidgets(t *testing.T) {
	e := New(WithoutWidgets())
	if names := e.Components.Names(); len(names) != 0 {
		t.Errorf("Names() = %v, want none", names)
	}
}

func TestEngine_Register(t *testing.T) {
	e := New()
	ok := e.Register(Particle{
		Name: "glow",
		Process: func(n *dom.Node, _ any, _ *particle.Scope) {
			n.Style.Set("filter", "drop-shadow(0 0 4px gold)")
		},
	})
	if !ok {
		t.Fatal("Register() = false")
	}
	a := e.Create(Config{"glow": true})
	if got := a.Node().Style.Get("filter"); got == "" {
		t.Error("glow particle not applied")
	}
}

func TestEngine_Draggable(t *testing.T) {
	doc := dom.NewDocument()
	e := New(WithDocument(doc))
	a := e.Create(Config{"id": "box"})
	c := e.Draggable(a, DragOptions{})

	a.Node().Dispatch(dom.NewPointerEvent(dom.EventPointerDown, 0, 0))
	doc.Dispatch(dom.NewPointerEvent(dom.EventPointerMove, 5, 7))
	doc.Dispatch(dom.NewPointerEvent(dom.EventPointerUp, 5, 7))
	if c.Transform() != (Point{X: 5, Y: 7}) {
		t.Errorf("Transform() = %+v", c.Transform())
	}
}

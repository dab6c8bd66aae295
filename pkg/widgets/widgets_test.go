package widgets

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/component"
	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/drag"
)

func TestAvailable_MatchesDirectory(t *testing.T) {
	opts := component.GoScanOptions()
	opts.Suffix = "_builder"
	got, err := component.Scan(context.Background(), component.DirSource{Dir: "."}, opts)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if diff := cmp.Diff(Available, got); diff != "" {
		t.Errorf("Available is stale; run `squirrel sync` (-want +got):\n%s", diff)
	}
	for _, name := range Available {
		if Builders[name] == nil {
			t.Errorf("no builder for %q", name)
		}
	}
	if len(Builders) != len(Available) {
		t.Errorf("len(Builders) = %d, len(Available) = %d", len(Builders), len(Available))
	}
}

func TestRegister(t *testing.T) {
	reg := component.NewRegistry()
	Register(reg)
	if diff := cmp.Diff(Available, reg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if missing := reg.Missing(); len(missing) != 0 {
		t.Errorf("Missing() = %v", missing)
	}
}

func build(t *testing.T, name string, props map[string]any) (*atome.Factory, *atome.Atome) {
	t.Helper()
	reg := component.NewRegistry()
	Register(reg)
	f := atome.NewFactory(dom.NewDocument(), nil)
	a, err := reg.Build(context.Background(), f, name, props)
	if err != nil {
		t.Fatalf("Build(%q): %v", name, err)
	}
	return f, a
}

func TestButton(t *testing.T) {
	clicks := 0
	_, a := build(t, "button", map[string]any{
		"id":      "ok",
		"text":    "OK",
		"onClick": func() { clicks++ },
		"variant": "primary",
	})
	n := a.Node()
	if n.Name != "button" || n.ID() != "ok" {
		t.Errorf("node = <%s id=%q>", n.Name, n.ID())
	}
	if !n.HasClass("hs-button") {
		t.Errorf("classes = %v", n.Classes())
	}
	if v, _ := n.Attribute("type"); v != "button" {
		t.Errorf("type = %q", v)
	}
	if n.Text() != "OK" {
		t.Errorf("text = %q", n.Text())
	}
	if got := n.Style.Get("background-color"); got != "#007bff" {
		t.Errorf("background-color = %q", got)
	}
	n.Dispatch(&dom.Event{Type: "click"})
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestButton_Disabled(t *testing.T) {
	clicks := 0
	_, a := build(t, "button", map[string]any{"disabled": true, "onClick": func() { clicks++ }})
	n := a.Node()
	if !n.HasAttribute("disabled") {
		t.Error("disabled attribute missing")
	}
	n.Dispatch(&dom.Event{Type: "click"})
	if clicks != 0 {
		t.Errorf("disabled button handled %d clicks", clicks)
	}
	if n.Text() != "hello" {
		t.Errorf("default text = %q", n.Text())
	}
}

func TestBadge_CSSOverride(t *testing.T) {
	_, a := build(t, "badge", map[string]any{
		"text": "3",
		"css":  map[string]any{"backgroundColor": "green"},
	})
	n := a.Node()
	if n.Name != "span" || n.Text() != "3" {
		t.Errorf("node = <%s>%s", n.Name, n.Text())
	}
	if got := n.Style.Get("background-color"); got != "green" {
		t.Errorf("background-color = %q, want override", got)
	}
	if got := n.Style.Get("min-width"); got != "18px" {
		t.Errorf("min-width = %q", got)
	}
}

func TestList(t *testing.T) {
	_, a := build(t, "list", map[string]any{"items": []any{"one", 2, nil, "three"}, "ordered": true})
	n := a.Node()
	if n.Name != "ol" {
		t.Errorf("markup = %q", n.Name)
	}
	var got []string
	for _, c := range n.Children() {
		got = append(got, c.Name+":"+c.Text())
	}
	if diff := cmp.Diff([]string{"li:one", "li:2", "li:three"}, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"atome_2", "atome_3", "atome_4"}, a.Fastened()); diff != "" {
		t.Errorf("Fastened() mismatch (-want +got):\n%s", diff)
	}
}

func TestSliderPercent(t *testing.T) {
	tests := []struct {
		lo, hi, value float64
		want          float64
	}{
		{0, 100, 50, 50},
		{0, 200, 50, 25},
		{10, 20, 5, 0},
		{10, 20, 30, 100},
		{5, 5, 5, 0},
	}
	for _, tt := range tests {
		if got := SliderPercent(tt.lo, tt.hi, tt.value); got != tt.want {
			t.Errorf("SliderPercent(%v, %v, %v) = %v, want %v", tt.lo, tt.hi, tt.value, got, tt.want)
		}
	}
}

func TestSlider_Structure(t *testing.T) {
	tests := []struct {
		orientation string
		handleProp  string
		width       string
	}{
		{"horizontal", "left", "200px"},
		{"vertical", "bottom", "20px"},
	}
	for _, tt := range tests {
		t.Run(tt.orientation, func(t *testing.T) {
			_, a := build(t, "slider", map[string]any{"max": 200, "value": 50, "orientation": tt.orientation})
			n := a.Node()
			if got := n.Style.Get("width"); got != tt.width {
				t.Errorf("width = %q, want %q", got, tt.width)
			}
			if v, _ := n.Attribute("aria-orientation"); v != tt.orientation {
				t.Errorf("aria-orientation = %q", v)
			}
			kids := n.Children()
			if len(kids) != 2 {
				t.Fatalf("children = %d, want 2", len(kids))
			}
			track, handle := kids[0], kids[1]
			if !track.HasClass("hs-slider-track") || !handle.HasClass("hs-slider-handle") {
				t.Errorf("classes = %v, %v", track.Classes(), handle.Classes())
			}
			if len(track.Children()) != 1 || !track.Children()[0].HasClass("hs-slider-progression") {
				t.Error("track should hold the progression bar")
			}
			if got := handle.Style.Get(tt.handleProp); got != "25%" {
				t.Errorf("handle %s = %q, want 25%%", tt.handleProp, got)
			}
		})
	}
}

func TestTooltip(t *testing.T) {
	_, a := build(t, "tooltip", map[string]any{"text": "hint", "position": "sideways"})
	n := a.Node()
	if v, _ := n.Attribute("data-position"); v != "top" {
		t.Errorf("data-position = %q, want top fallback", v)
	}
	if !n.HasAttribute("hidden") {
		t.Error("tooltip should start hidden")
	}
	if v, _ := n.Attribute("role"); v != "tooltip" {
		t.Errorf("role = %q", v)
	}

	_, b := build(t, "tooltip", map[string]any{"position": "left", "visible": true})
	if b.Node().HasAttribute("hidden") {
		t.Error("visible tooltip should not be hidden")
	}
	if got := b.Node().Style.Get("right"); got != "100%" {
		t.Errorf("right = %q", got)
	}
}

func TestDraggable(t *testing.T) {
	f, a := build(t, "draggable", map[string]any{"text": "Drag me", "width": 80})
	n := a.Node()
	if !IsDraggable(n) {
		t.Fatal("IsDraggable() = false")
	}
	if got := n.Style.Get("width"); got != "80px" {
		t.Errorf("width = %q", got)
	}

	var moved drag.Point
	c := MakeDraggable(a, drag.Options{OnDragMove: func(_ *dom.Node, tr, _ drag.Point) { moved = tr }})
	if got := n.Style.Get("cursor"); got != "grab" {
		t.Errorf("cursor = %q, want grab", got)
	}

	doc := f.Document()
	n.Dispatch(dom.NewPointerEvent(dom.EventPointerDown, 10, 10))
	doc.Dispatch(dom.NewPointerEvent(dom.EventPointerMove, 40, 25))
	doc.Dispatch(dom.NewPointerEvent(dom.EventPointerUp, 40, 25))
	if moved != (drag.Point{X: 30, Y: 15}) {
		t.Errorf("transform = %+v", moved)
	}
	if got := n.Style.Get("transform"); got != drag.TransformCSS(drag.Point{X: 30, Y: 15}) {
		t.Errorf("transform style = %q", got)
	}
	c.Detach()
	if c.Attached() {
		t.Error("still attached after Detach")
	}
}

package drag

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

type recorder struct {
	events []string
	moves  []Point
	starts []Point
	ends   []Point
}

func (r *recorder) options() Options {
	return Options{
		OnDragStart: func(_ *dom.Node, t Point) {
			r.events = append(r.events, "start")
			r.starts = append(r.starts, t)
		},
		OnDragMove: func(_ *dom.Node, t, d Point) {
			r.events = append(r.events, "move")
			r.moves = append(r.moves, d)
		},
		OnDragEnd: func(_ *dom.Node, t Point) {
			r.events = append(r.events, "end")
			r.ends = append(r.ends, t)
		},
	}
}

func setup() (*dom.Document, *dom.Node) {
	doc := dom.NewDocument()
	n := doc.CreateElement("div")
	n.SetID("box")
	doc.Body.AppendChild(n)
	return doc, n
}

func down(n *dom.Node, x, y float64) *dom.Event {
	e := dom.NewPointerEvent(dom.EventPointerDown, x, y)
	n.Dispatch(e)
	return e
}

func move(doc *dom.Document, x, y float64) *dom.Event {
	e := dom.NewPointerEvent(dom.EventPointerMove, x, y)
	doc.Dispatch(e)
	return e
}

func up(doc *dom.Document, x, y float64) {
	doc.Dispatch(dom.NewPointerEvent(dom.EventPointerUp, x, y))
}

func TestController_DragSequence(t *testing.T) {
	doc, n := setup()
	rec := &recorder{}
	c := New(n, rec.options())
	c.Attach()

	down(n, 100, 100)
	if c.State() != Dragging {
		t.Fatalf("State() = %v, want dragging", c.State())
	}
	if s := c.Session(); !s.Active || s.Origin != (Point{100, 100}) {
		t.Errorf("Session() = %+v", s)
	}
	e := move(doc, 120, 110)
	if !e.DefaultPrevented() {
		t.Error("move should prevent default")
	}
	move(doc, 150, 130)
	up(doc, 150, 130)

	if got := c.Transform(); got != (Point{50, 30}) {
		t.Errorf("Transform() = %v, want {50 30}", got)
	}
	if c.State() != Idle {
		t.Errorf("State() = %v, want idle", c.State())
	}
	if diff := cmp.Diff([]string{"start", "move", "move", "end"}, rec.events); diff != "" {
		t.Errorf("callbacks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Point{{20, 10}, {30, 20}}, rec.moves); diff != "" {
		t.Errorf("deltas mismatch (-want +got):\n%s", diff)
	}
	if got := n.Style.Get("transform"); got != "translate(50px, 30px)" {
		t.Errorf("transform = %q", got)
	}
}

func TestController_SessionListenersRemoved(t *testing.T) {
	doc, n := setup()
	c := New(n, Options{})
	c.Attach()

	down(n, 0, 0)
	for _, typ := range []string{dom.EventPointerMove, dom.EventPointerUp, dom.EventPointerLeave} {
		if doc.ListenerCount(typ) != 1 {
			t.Errorf("during session: %s listeners = %d, want 1", typ, doc.ListenerCount(typ))
		}
	}
	doc.Dispatch(dom.NewPointerEvent(dom.EventPointerLeave, 0, 0))
	for _, typ := range []string{dom.EventPointerMove, dom.EventPointerUp, dom.EventPointerLeave} {
		if doc.ListenerCount(typ) != 0 {
			t.Errorf("after session: %s listeners = %d, want 0", typ, doc.ListenerCount(typ))
		}
	}

	// Moves after the session are ignored.
	move(doc, 40, 40)
	if c.Transform() != (Point{}) {
		t.Errorf("Transform() = %v after session", c.Transform())
	}
}

func TestController_LeaveOnOtherNodeKeepsSession(t *testing.T) {
	doc, n := setup()
	sibling := doc.CreateElement("span")
	doc.Body.AppendChild(sibling)
	var r recorder
	c := New(n, r.options())
	c.Attach()

	down(n, 0, 0)
	sibling.Dispatch(dom.NewPointerEvent(dom.EventPointerLeave, 5, 5))
	n.Dispatch(dom.NewPointerEvent(dom.EventPointerLeave, 5, 5))
	move(doc, 20, 10)

	if c.State() != Dragging {
		t.Fatalf("state = %v, want dragging", c.State())
	}
	if got, want := c.Transform(), (Point{20, 10}); got != want {
		t.Errorf("transform = %+v, want %+v", got, want)
	}

	doc.Dispatch(dom.NewPointerEvent(dom.EventPointerLeave, 20, 10))
	if c.State() != Idle {
		t.Errorf("state = %v, want idle after leaving the document", c.State())
	}
	if diff := cmp.Diff([]string{"start", "move", "end"}, r.events); diff != "" {
		t.Errorf("callbacks mismatch (-want +got):\n%s", diff)
	}
}

func TestController_ReentrantDownIgnored(t *testing.T) {
	doc, n := setup()
	rec := &recorder{}
	c := New(n, rec.options())
	c.Attach()

	down(n, 0, 0)
	move(doc, 10, 5)
	down(n, 500, 500)
	move(doc, 20, 5)
	up(doc, 20, 5)

	if got := c.Transform(); got != (Point{20, 5}) {
		t.Errorf("Transform() = %v, want {20 5}", got)
	}
	if len(rec.starts) != 1 {
		t.Errorf("OnDragStart calls = %d, want 1", len(rec.starts))
	}
	if doc.ListenerCount(dom.EventPointerMove) != 0 {
		t.Error("nested session leaked a listener")
	}
}

func TestController_CumulativeAcrossSessions(t *testing.T) {
	doc, n := setup()
	rec := &recorder{}
	c := New(n, rec.options())
	c.Attach()

	down(n, 0, 0)
	move(doc, 10, 10)
	up(doc, 10, 10)

	down(n, 100, 100)
	move(doc, 95, 120)
	up(doc, 95, 120)

	if got := c.Transform(); got != (Point{5, 30}) {
		t.Errorf("Transform() = %v, want {5 30}", got)
	}
	if diff := cmp.Diff([]Point{{0, 0}, {10, 10}}, rec.starts); diff != "" {
		t.Errorf("start transforms mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Point{{10, 10}, {5, 30}}, rec.ends); diff != "" {
		t.Errorf("end transforms mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SumOfDeltas(t *testing.T) {
	doc, n := setup()
	c := New(n, Options{})
	c.Attach()

	down(n, 0, 0)
	var want Point
	last := Point{}
	for i := 1; i <= 50; i++ {
		p := Point{float64(i * 3 % 17), float64(i * 7 % 11)}
		want = want.Add(p.Sub(last))
		last = p
		move(doc, p.X, p.Y)
	}
	up(doc, last.X, last.Y)
	if c.Transform() != want {
		t.Errorf("Transform() = %v, want %v", c.Transform(), want)
	}
}

func TestController_Cursor(t *testing.T) {
	tests := []struct {
		cursor string
		busy   string
	}{
		{"", "move"},
		{"grab", "grabbing"},
		{"crosshair", "crosshair"},
	}
	for _, tt := range tests {
		doc, n := setup()
		c := New(n, Options{Cursor: tt.cursor})
		c.Attach()
		idle := n.Style.Get("cursor")
		if n.Style.Get("user-select") != "none" {
			t.Error("user-select not disabled")
		}
		down(n, 0, 0)
		if got := n.Style.Get("cursor"); got != tt.busy {
			t.Errorf("cursor %q: busy = %q, want %q", tt.cursor, got, tt.busy)
		}
		up(doc, 0, 0)
		if got := n.Style.Get("cursor"); got != idle {
			t.Errorf("cursor %q: restored = %q, want %q", tt.cursor, got, idle)
		}
	}
}

func TestController_Detach(t *testing.T) {
	doc, n := setup()
	rec := &recorder{}
	detach := Attach(n, rec.options())

	down(n, 0, 0)
	move(doc, 5, 5)
	detach()
	detach()

	if n.ListenerCount(dom.EventPointerDown) != 0 {
		t.Error("pointer-down listener not removed")
	}
	if doc.ListenerCount(dom.EventPointerMove) != 0 || doc.ListenerCount(dom.EventPointerUp) != 0 {
		t.Error("session listeners not removed")
	}
	for _, prop := range []string{"cursor", "user-select", "transform"} {
		if n.Style.Has(prop) {
			t.Errorf("%s still set after detach", prop)
		}
	}
	if len(rec.ends) != 0 {
		t.Error("detach must not invoke OnDragEnd")
	}

	down(n, 0, 0)
	if len(rec.starts) != 1 {
		t.Error("detached controller reacted to pointer-down")
	}
}

func TestController_DetachIdle(t *testing.T) {
	_, n := setup()
	c := New(n, Options{})
	c.Detach()
	c.Attach()
	c.Attach()
	if n.ListenerCount(dom.EventPointerDown) != 1 {
		t.Errorf("pointer-down listeners = %d, want 1", n.ListenerCount(dom.EventPointerDown))
	}
	c.Detach()
	if c.Attached() {
		t.Error("Attached() after Detach")
	}
}

func TestController_RotationAndScale(t *testing.T) {
	doc, n := setup()
	c := New(n, Options{RotationFactor: 1, ScaleFactor: 1})
	c.Attach()
	down(n, 0, 0)
	move(doc, 0, 3)
	got := n.Style.Get("transform")
	if strings.Contains(got, "rotate(") || !strings.HasPrefix(got, "translate(0px, 3px) scale(1.00") {
		t.Errorf("below threshold transform = %q", got)
	}
	move(doc, 0, 1000)
	got = n.Style.Get("transform")
	if !strings.HasPrefix(got, "translate(0px, 1000px) rotate(") || !strings.HasSuffix(got, "deg) scale(1.5)") {
		t.Errorf("transform = %q", got)
	}
}

func TestController_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
	doc, n := setup()
	Attach(n, Options{Metrics: m})
	down(n, 0, 0)
	move(doc, 1, 1)
	move(doc, 2, 2)
	up(doc, 2, 2)

	const want = `
# HELP squirrel_drag_moves_total Total number of pointer moves applied while dragging
# TYPE squirrel_drag_moves_total counter
squirrel_drag_moves_total 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "squirrel_drag_moves_total"); err != nil {
		t.Error(err)
	}
}

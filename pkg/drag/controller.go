package drag

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

// DefaultCursor is the cursor shown over a draggable node.
const DefaultCursor = "move"

const (
	rotationThreshold = 5
	maxScale          = 1.5
)

// State is the controller state.
type State uint8

const (
	Idle State = iota
	Dragging
)

// String returns the state name.
func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Point is a 2-D offset in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Options configures a Controller.
type Options struct {
	// OnDragStart is called when a session starts with the cumulative
	// transform at that moment.
	OnDragStart func(n *dom.Node, transform Point)

	// OnDragMove is called after each applied move.
	OnDragMove func(n *dom.Node, transform, delta Point)

	// OnDragEnd is called when a session ends with the final transform.
	OnDragEnd func(n *dom.Node, transform Point)

	// Cursor is shown over the node (default "move"). A "grab" cursor
	// switches to "grabbing" while dragging.
	Cursor string

	// RotationFactor tilts the node toward the drag direction once the
	// offset exceeds 5px. Zero disables rotation.
	RotationFactor float64

	// ScaleFactor grows the node with drag distance, capped at 1.5x.
	// Zero disables scaling.
	ScaleFactor float64

	// Logger receives session debug logs. Default: slog.Default().
	Logger *slog.Logger

	// Metrics records sessions and moves.
	Metrics *telemetry.Metrics
}

// Session is a snapshot of the current drag session.
type Session struct {
	Origin Point
	Last   Point
	Active bool
}

// Controller makes one node draggable.
//
// A Controller is not safe for concurrent use; all events for a node must
// be dispatched from one goroutine.
type Controller struct {
	node   *dom.Node
	opts   Options
	logger *slog.Logger

	state     State
	transform Point
	origin    Point
	last      Point

	savedCursor string
	removeDown  func()
	session     []func()
}

// New creates a controller for n. The controller does nothing until
// Attach is called.
func New(n *dom.Node, opts Options) *Controller {
	if opts.Cursor == "" {
		opts.Cursor = DefaultCursor
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		node:   n,
		opts:   opts,
		logger: logger.With("component", "drag", "node", n.ID()),
	}
}

// Attach makes n draggable and returns a function that reverses it.
func Attach(n *dom.Node, opts Options) (detach func()) {
	c := New(n, opts)
	c.Attach()
	return c.Detach
}

// Attach installs the pointer-down listener and drag styling. Calling
// Attach on an attached controller is a no-op.
func (c *Controller) Attach() {
	if c.removeDown != nil {
		return
	}
	c.node.Style.Set("cursor", c.opts.Cursor)
	c.node.Style.Set("user-select", "none")
	c.removeDown = c.node.AddEventListener(dom.EventPointerDown, c.onPointerDown)
}

// Detach ends any active session without invoking callbacks, removes all
// listeners and clears the drag styling and transform. It is safe to call
// in any state and more than once.
func (c *Controller) Detach() {
	c.endSession()
	c.state = Idle
	if c.removeDown != nil {
		c.removeDown()
		c.removeDown = nil
	}
	c.node.Style.Remove("cursor")
	c.node.Style.Remove("user-select")
	c.node.Style.Remove("transform")
	c.transform = Point{}
}

// Attached reports whether the controller is listening for pointer-down.
func (c *Controller) Attached() bool { return c.removeDown != nil }

// Node returns the controlled node.
func (c *Controller) Node() *dom.Node { return c.node }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Transform returns the cumulative translation.
func (c *Controller) Transform() Point { return c.transform }

// Session returns a snapshot of the current session.
func (c *Controller) Session() Session {
	return Session{Origin: c.origin, Last: c.last, Active: c.state == Dragging}
}

func (c *Controller) onPointerDown(e *dom.Event) {
	if c.state == Dragging {
		return
	}
	p := Point{e.X, e.Y}
	c.origin, c.last = p, p
	c.state = Dragging

	c.savedCursor = c.node.Style.Get("cursor")
	c.node.Style.Set("cursor", busyCursor(c.opts.Cursor))

	if c.opts.OnDragStart != nil {
		c.opts.OnDragStart(c.node, c.transform)
	}

	doc := c.node.Document()
	c.session = append(c.session,
		doc.AddEventListener(dom.EventPointerMove, c.onPointerMove),
		doc.AddEventListener(dom.EventPointerUp, c.onPointerUp),
		doc.AddEventListener(dom.EventPointerLeave, c.onPointerUp),
	)

	c.opts.Metrics.RecordDragStart()
	c.logger.Debug("drag started", "x", p.X, "y", p.Y)
	e.PreventDefault()
}

func (c *Controller) onPointerMove(e *dom.Event) {
	if c.state != Dragging {
		return
	}
	p := Point{e.X, e.Y}
	delta := p.Sub(c.last)
	c.transform = c.transform.Add(delta)
	c.node.Style.Set("transform", c.transformCSS())

	if c.opts.OnDragMove != nil {
		c.opts.OnDragMove(c.node, c.transform, delta)
	}
	c.last = p
	c.opts.Metrics.RecordDragMove()
	e.PreventDefault()
}

func (c *Controller) onPointerUp(*dom.Event) {
	if c.state != Dragging {
		return
	}
	c.state = Idle
	c.node.Style.Set("cursor", c.savedCursor)

	if c.opts.OnDragEnd != nil {
		c.opts.OnDragEnd(c.node, c.transform)
	}
	c.endSession()
	c.logger.Debug("drag ended", "x", c.transform.X, "y", c.transform.Y)
}

// endSession removes the session-scoped listeners.
func (c *Controller) endSession() {
	for _, remove := range c.session {
		remove()
	}
	c.session = nil
}

// transformCSS renders the cumulative transform with the optional
// rotation and scale effects.
func (c *Controller) transformCSS() string {
	t := c.transform
	parts := []string{TransformCSS(t)}

	if c.opts.RotationFactor > 0 && (math.Abs(t.X) > rotationThreshold || math.Abs(t.Y) > rotationThreshold) {
		deg := math.Atan2(t.Y, t.X) * (180 / math.Pi) * c.opts.RotationFactor
		parts = append(parts, "rotate("+num(deg)+"deg)")
	}
	if c.opts.ScaleFactor > 0 {
		dist := math.Sqrt(t.X*t.X + t.Y*t.Y)
		scale := math.Min(1+dist*c.opts.ScaleFactor*0.001, maxScale)
		parts = append(parts, "scale("+num(scale)+")")
	}
	return strings.Join(parts, " ")
}

// TransformCSS returns the transform style value for t without rotation
// or scale effects.
func TransformCSS(t Point) string {
	return "translate(" + px(t.X) + ", " + px(t.Y) + ")"
}

func busyCursor(cursor string) string {
	if cursor == "grab" {
		return "grabbing"
	}
	return cursor
}

func px(f float64) string { return num(f) + "px" }

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

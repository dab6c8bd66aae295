package preview

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/drag"
	"github.com/squirrel-ui/squirrel/pkg/render"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

// Message types.
const (
	TypeReady  = "ready"
	TypeUpdate = "update"
	TypeError  = "error"
)

// ClientMessage is a pointer event sent by the browser.
type ClientMessage struct {
	// Type is pointerdown, pointermove, pointerup or pointerleave.
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ServerMessage reports the node state after each client message.
type ServerMessage struct {
	Type      string     `json:"type"`
	Session   string     `json:"session,omitempty"`
	ID        string     `json:"id"`
	Transform drag.Point `json:"transform"`
	State     string     `json:"state"`
	CSS       string     `json:"css"`
	HTML      string     `json:"html,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Session is one websocket client driving one component.
type Session struct {
	ID        string
	Component string

	atome *atome.Atome
	drag  *drag.Controller
}

// NewSession attaches a drag controller to a. Pointer-down messages go to
// a's node; the others go to its document.
func NewSession(name string, a *atome.Atome, opts drag.Options) *Session {
	c := drag.New(a.Node(), opts)
	c.Attach()
	return &Session{
		ID:        ulid.Make().String(),
		Component: name,
		atome:     a,
		drag:      c,
	}
}

// Apply dispatches msg and returns the resulting state.
func (s *Session) Apply(msg ClientMessage) (ServerMessage, error) {
	n := s.atome.Node()
	switch msg.Type {
	case dom.EventPointerDown:
		n.Dispatch(dom.NewPointerEvent(msg.Type, msg.X, msg.Y))
	case dom.EventPointerMove, dom.EventPointerUp, dom.EventPointerLeave:
		n.Document().Dispatch(dom.NewPointerEvent(msg.Type, msg.X, msg.Y))
	default:
		return s.state(TypeError), fmt.Errorf("unknown message type %q", msg.Type)
	}
	return s.state(TypeUpdate), nil
}

// Close detaches the controller.
func (s *Session) Close() {
	s.drag.Detach()
}

func (s *Session) state(typ string) ServerMessage {
	return ServerMessage{
		Type:      typ,
		ID:        s.atome.ID(),
		Transform: s.drag.Transform(),
		State:     s.drag.State().String(),
		CSS:       s.atome.Node().Style.Get("transform"),
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx, span := telemetry.StartSpan(r.Context(), "preview.session", attribute.String("component", name))
	a, err := s.components.Build(ctx, s.newFactory(), name, Props(r.URL.Query()))
	telemetry.EndSpan(span, err)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := NewSession(name, a, drag.Options{
		Cursor:  s.cursor,
		Metrics: s.metrics,
		Logger:  s.logger,
	})
	s.open(sess)
	defer s.close(sess)

	s.serve(ctx, conn, sess)
}

func (s *Server) serve(ctx context.Context, conn *websocket.Conn, sess *Session) {
	logger := s.logger.With("session", sess.ID, "component", sess.Component)

	ready := sess.state(TypeReady)
	ready.Session = sess.ID
	ready.HTML, _ = render.New(render.Options{}).RenderToString(sess.atome.Node())
	if err := conn.WriteJSON(ready); err != nil {
		logger.Debug("write failed", "error", err)
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("session read failed", "error", err)
			}
			return
		}
		reply, err := sess.Apply(msg)
		if err != nil {
			reply.Error = err.Error()
		}
		if err := conn.WriteJSON(reply); err != nil {
			logger.Debug("write failed", "error", err)
			return
		}
	}
}

func (s *Server) open(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.PreviewSessionOpened()
	s.logger.Debug("session opened", "session", sess.ID, "component", sess.Component)
}

func (s *Server) close(sess *Session) {
	sess.Close()
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	s.metrics.PreviewSessionClosed()
	s.logger.Debug("session closed", "session", sess.ID)
}

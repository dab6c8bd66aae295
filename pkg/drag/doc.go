// Package drag implements pointer-driven dragging for nodes.
//
// A Controller is a two-state machine (Idle, Dragging) bound to one node.
// Pointer-down on the node starts a session; pointer-move events on the
// document accumulate into a translation applied as the node's transform;
// pointer-up or pointer-leave ends the session. Session listeners live
// only as long as the session does.
//
//	detach := drag.Attach(node, drag.Options{
//	    Cursor: "grab",
//	    OnDragEnd: func(n *dom.Node, t drag.Point) {
//	        log.Printf("dropped at %v", t)
//	    },
//	})
//	defer detach()
//
// The cumulative transform persists across sessions, so a node dragged
// twice ends up offset by the sum of both gestures.
package drag

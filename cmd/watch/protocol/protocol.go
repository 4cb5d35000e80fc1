// Package protocol defines the wire types shared between the watch server
// and the embedded browser viewer.
package protocol

import "time"

const (
	RouteIndex  = "/"
	RouteEvents = "/events"
)

// SSEEventDiagram names the SSE event carrying a DiagramSnapshot.
const SSEEventDiagram = "diagram"

// Position is a class box center in layout coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DiagramSnapshot is one rebuilt diagram pushed to viewers.
type DiagramSnapshot struct {
	ID        int64               `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Mermaid   string              `json:"mermaid"`
	Positions map[string]Position `json:"positions"`
	Classes   int                 `json:"classes"`
	Edges     int                 `json:"edges"`
}

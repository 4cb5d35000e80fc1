// Package layout assigns 2D coordinates to class boxes for rendering.
// It operates on plain boxes and edges so the diagram model stays
// decoupled from geometry.
package layout

// Point is the center coordinate assigned to one class box.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps class id to its computed center coordinate.
type Positions map[string]Point

// Box is the rendered extent of one class.
type Box struct {
	ID     string
	Width  float64
	Height float64
}

// Edge is a class-diagram edge the layout should keep short.
type Edge struct {
	SourceID    string
	TargetID    string
	Inheritance bool
}

// Engine computes positions for every box. Engines never fail outright:
// a failing strategy substitutes a deterministic fallback internally.
type Engine interface {
	Layout(boxes []Box, edges []Edge) Positions
}

// ByName selects an engine by its CLI name: "stress" (default),
// "hierarchy", or "grid".
func ByName(name string) Engine {
	switch name {
	case "hierarchy":
		return Hierarchy{}
	case "grid":
		return Grid{}
	default:
		return Stress{}
	}
}

// Box sizing constants. Width is fixed; height grows with the member rows
// actually shown (long classes are clipped to keep boxes bounded).
const (
	BoxWidth      = 220.0
	headerHeight  = 40.0
	memberRowH    = 18.0
	sectionPad    = 12.0
	maxMemberRows = 8
)

// NewBox sizes a class box from its member counts.
func NewBox(id string, fieldCount, methodCount int) Box {
	if fieldCount > maxMemberRows {
		fieldCount = maxMemberRows
	}
	if methodCount > maxMemberRows {
		methodCount = maxMemberRows
	}
	return Box{
		ID:     id,
		Width:  BoxWidth,
		Height: headerHeight + float64(fieldCount+methodCount)*memberRowH + 2*sectionPad,
	}
}

// maxDimension returns the largest width or height among the boxes.
func maxDimension(boxes []Box) float64 {
	max := BoxWidth
	for _, b := range boxes {
		if b.Width > max {
			max = b.Width
		}
		if b.Height > max {
			max = b.Height
		}
	}
	return max
}

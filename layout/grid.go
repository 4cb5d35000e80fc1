package layout

import "math"

const gridGap = 60.0

// Grid places boxes on a ceil(sqrt(n))-column grid, each row as tall as
// its tallest box. It cannot fail and produces no overlaps, which makes it
// the fallback when the stress oracle does.
type Grid struct{}

// Layout implements Engine. Edges are ignored.
func (Grid) Layout(boxes []Box, _ []Edge) Positions {
	positions := make(Positions, len(boxes))
	if len(boxes) == 0 {
		return positions
	}

	columns := int(math.Ceil(math.Sqrt(float64(len(boxes)))))

	y := 0.0
	for row := 0; row*columns < len(boxes); row++ {
		start := row * columns
		end := start + columns
		if end > len(boxes) {
			end = len(boxes)
		}

		rowHeight := 0.0
		for _, b := range boxes[start:end] {
			if b.Height > rowHeight {
				rowHeight = b.Height
			}
		}

		x := 0.0
		for _, b := range boxes[start:end] {
			positions[b.ID] = Point{X: x + b.Width/2, Y: y + rowHeight/2}
			x += b.Width + gridGap
		}
		y += rowHeight + gridGap
	}

	return positions
}

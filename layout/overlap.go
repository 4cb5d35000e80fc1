package layout

import (
	"math"
	"math/rand"
)

const (
	overlapMaxPasses = 100
	overlapMargin    = 20.0
	overlapStep      = 30.0
)

// resolveOverlaps pushes overlapping boxes apart pairwise until a full
// pass finds no overlap or the pass cap is hit. Separation is best-effort:
// the cap bounds the cost at O(passes * n^2) and a residual overlap after
// 100 passes is an accepted visual approximation.
func resolveOverlaps(positions Positions, boxes []Box, rng *rand.Rand) {
	for pass := 0; pass < overlapMaxPasses; pass++ {
		moved := false

		for i := 0; i < len(boxes); i++ {
			for j := i + 1; j < len(boxes); j++ {
				a, okA := positions[boxes[i].ID]
				b, okB := positions[boxes[j].ID]
				if !okA || !okB {
					continue
				}
				if !boxesOverlap(a, boxes[i], b, boxes[j]) {
					continue
				}

				dx := b.X - a.X
				dy := b.Y - a.Y
				if dx == 0 && dy == 0 {
					// Coincident centers: pick a random push direction.
					angle := rng.Float64() * 2 * math.Pi
					dx = math.Cos(angle)
					dy = math.Sin(angle)
				}
				length := math.Hypot(dx, dy)
				dx /= length
				dy /= length

				positions[boxes[i].ID] = Point{X: a.X - dx*overlapStep, Y: a.Y - dy*overlapStep}
				positions[boxes[j].ID] = Point{X: b.X + dx*overlapStep, Y: b.Y + dy*overlapStep}
				moved = true
			}
		}

		if !moved {
			return
		}
	}
}

// boxesOverlap checks axis-aligned bounding boxes around the two centers,
// padded by the separation margin.
func boxesOverlap(a Point, boxA Box, b Point, boxB Box) bool {
	halfW := (boxA.Width+boxB.Width)/2 + overlapMargin
	halfH := (boxA.Height+boxB.Height)/2 + overlapMargin
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < halfW && dy < halfH
}

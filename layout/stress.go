package layout

import (
	"fmt"
	"math"
	"math/rand"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/simple"

	glayout "gonum.org/v1/gonum/graph/layout"
)

// Stress is the primary engine: a force/stress-minimizing layout oracle
// (gonum's graph layout optimizer) followed by pairwise overlap
// resolution. If the oracle fails, the deterministic grid takes over so a
// renderable layout always comes back.
type Stress struct {
	// Updates bounds the oracle's iteration count. Zero means the default.
	Updates int
	// Seed makes the oracle and the overlap tie-breaks reproducible.
	Seed uint64
}

const defaultOracleUpdates = 100

// spacingFactor widens the desired inter-node distance relative to the
// largest box dimension, so edges rarely cross through node bodies.
const spacingFactor = 1.5

// Layout implements Engine.
func (s Stress) Layout(boxes []Box, edges []Edge) Positions {
	if len(boxes) == 0 {
		return Positions{}
	}

	positions, err := s.oracle(boxes, edges)
	if err != nil {
		// Oracle failure is absorbed here: grid placement always succeeds.
		return Grid{}.Layout(boxes, nil)
	}

	rng := rand.New(rand.NewSource(int64(s.Seed) + 1))
	resolveOverlaps(positions, boxes, rng)
	return positions
}

// oracle runs the external layout computation and scales the result so
// the closest pair of nodes sits about one spacing unit apart.
func (s Stress) oracle(boxes []Box, edges []Edge) (positions Positions, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("layout oracle panicked: %v", r)
		}
	}()

	g := simple.NewUndirectedGraph()
	index := make(map[string]int64, len(boxes))
	for i, b := range boxes {
		index[b.ID] = int64(i)
		g.AddNode(simple.Node(int64(i)))
	}
	for _, e := range edges {
		from, okFrom := index[e.SourceID]
		to, okTo := index[e.TargetID]
		if !okFrom || !okTo || from == to {
			continue
		}
		if g.HasEdgeBetween(from, to) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	updates := s.Updates
	if updates <= 0 {
		updates = defaultOracleUpdates
	}
	eades := glayout.EadesR2{
		Updates:   updates,
		Repulsion: 1,
		Rate:      0.05,
		Theta:     0.1,
		Src:       exprand.NewSource(s.Seed),
	}
	optimizer := glayout.NewOptimizerR2(g, eades.Update)
	for optimizer.Update() {
	}

	positions = make(Positions, len(boxes))
	for _, b := range boxes {
		coord := optimizer.Coord2(index[b.ID])
		if math.IsNaN(coord.X) || math.IsNaN(coord.Y) || math.IsInf(coord.X, 0) || math.IsInf(coord.Y, 0) {
			return nil, fmt.Errorf("layout oracle produced a non-finite coordinate for %s", b.ID)
		}
		positions[b.ID] = Point{X: coord.X, Y: coord.Y}
	}

	scalePositions(positions, spacingFactor*maxDimension(boxes))
	return positions, nil
}

// scalePositions rescales the oracle's abstract coordinates so the closest
// node pair ends up spacing units apart. Coincident nodes are left for the
// overlap resolver.
func scalePositions(positions Positions, spacing float64) {
	if len(positions) < 2 {
		return
	}

	points := make([]Point, 0, len(positions))
	for _, p := range positions {
		points = append(points, p)
	}

	minDist := math.Inf(1)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := math.Hypot(points[i].X-points[j].X, points[i].Y-points[j].Y)
			if d > 0 && d < minDist {
				minDist = d
			}
		}
	}
	if math.IsInf(minDist, 1) {
		return
	}

	scale := spacing / minDist
	for id, p := range positions {
		positions[id] = Point{X: p.X * scale, Y: p.Y * scale}
	}
}

package layout

import "sort"

// Hierarchy lays classes out as an is-a tree: parents above children,
// levels stacked vertically, each level's row centered horizontally.
// Simpler than Stress and clearer for inheritance-heavy diagrams.
type Hierarchy struct{}

const (
	hierarchyNodeW = BoxWidth
	hierarchyNodeH = 140.0
	hierarchyGapX  = 60.0
	hierarchyGapY  = 120.0
)

// Layout implements Engine. Only inheritance edges shape the levels;
// other edges render wherever their endpoints land.
func (Hierarchy) Layout(boxes []Box, edges []Edge) Positions {
	positions := make(Positions, len(boxes))
	if len(boxes) == 0 {
		return positions
	}

	inDiagram := make(map[string]bool, len(boxes))
	for _, b := range boxes {
		inDiagram[b.ID] = true
	}

	parents := make(map[string][]string)
	children := make(map[string][]string)
	for _, e := range edges {
		if !e.Inheritance || !inDiagram[e.SourceID] || !inDiagram[e.TargetID] {
			continue
		}
		// Source extends/implements target.
		parents[e.SourceID] = append(parents[e.SourceID], e.TargetID)
		children[e.TargetID] = append(children[e.TargetID], e.SourceID)
	}

	// Roots have no in-diagram parent and sit at level 0. BFS assigns each
	// reachable class the level below its parent; first-discovered wins.
	levels := make(map[string]int, len(boxes))
	var frontier []string
	for _, b := range boxes {
		if len(parents[b.ID]) == 0 {
			levels[b.ID] = 0
			frontier = append(frontier, b.ID)
		}
	}
	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			for _, child := range children[id] {
				if _, seen := levels[child]; seen {
					continue
				}
				levels[child] = levels[id] + 1
				next = append(next, child)
			}
		}
		frontier = next
	}

	// Classes never reached (inheritance cycles) default to level 0.
	rows := make(map[int][]string)
	maxLevel := 0
	for _, b := range boxes {
		level := levels[b.ID]
		rows[level] = append(rows[level], b.ID)
		if level > maxLevel {
			maxLevel = level
		}
	}

	for level := 0; level <= maxLevel; level++ {
		row := rows[level]
		sort.Strings(row)

		rowWidth := float64(len(row))*hierarchyNodeW + float64(len(row)-1)*hierarchyGapX
		x := -rowWidth / 2
		y := float64(level) * (hierarchyNodeH + hierarchyGapY)
		for _, id := range row {
			positions[id] = Point{X: x + hierarchyNodeW/2, Y: y}
			x += hierarchyNodeW + hierarchyGapX
		}
	}

	return positions
}

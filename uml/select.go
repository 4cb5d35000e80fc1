package uml

import (
	"errors"

	graphlib "github.com/dominikbraun/graph"

	"github.com/jinyoung/classdiag/graph"
)

// NodesWithinDepth computes the set of node ids reachable from startIDs in
// at most maxDepth hops, treating every class-relation link as
// bidirectional. Structural links (PARENT_OF, HAS_PARAMETER) never
// participate.
//
// An empty start set yields an empty result — there is no implicit
// "select everything". maxDepth <= 0 yields exactly the start set.
// Nodes reached at distance maxDepth are included but not expanded.
func NodesWithinDepth(startIDs []string, links []graph.Link, maxDepth int) map[string]bool {
	selected := make(map[string]bool, len(startIDs))
	if len(startIDs) == 0 {
		return selected
	}
	for _, id := range startIDs {
		selected[id] = true
	}
	if maxDepth <= 0 {
		return selected
	}

	adjacency := buildClassAdjacency(startIDs, links)

	// Multi-source BFS: all start ids sit at distance 0; first-discovered
	// distance wins, matching unweighted shortest-path distance.
	frontier := append([]string(nil), startIDs...)
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for neighbor := range adjacency[id] {
				if selected[neighbor] {
					continue
				}
				selected[neighbor] = true
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	return selected
}

// buildClassAdjacency loads class-relation links into an undirected graph
// and returns its adjacency map. Start ids are added as vertices so
// isolated focal nodes survive.
func buildClassAdjacency(startIDs []string, links []graph.Link) map[string]map[string]graphlib.Edge[string] {
	g := graphlib.New(graphlib.StringHash)

	for _, id := range startIDs {
		_ = g.AddVertex(id)
	}
	for _, link := range links {
		if !link.Type.IsClassRelation() {
			continue
		}
		if link.SourceID == link.TargetID {
			continue
		}
		if err := g.AddVertex(link.SourceID); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			continue
		}
		if err := g.AddVertex(link.TargetID); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			continue
		}
		if err := g.AddEdge(link.SourceID, link.TargetID); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
			continue
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		// AdjacencyMap on an in-memory store cannot fail; be lossy anyway.
		return map[string]map[string]graphlib.Edge[string]{}
	}
	return adjacency
}

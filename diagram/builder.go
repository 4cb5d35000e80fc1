// Package diagram coordinates diagram rebuilds over the graph store:
// focal-class resolution, UML projection, layout, and last-writer-wins
// application of results that may complete out of order.
package diagram

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/jinyoung/classdiag/graph"
	"github.com/jinyoung/classdiag/layout"
	"github.com/jinyoung/classdiag/uml"
)

// ErrStale marks a rebuild whose result was superseded by a newer trigger
// before it finished. The result is discarded, never applied.
var ErrStale = errors.New("rebuild superseded by a newer trigger")

// Selection names a focal class chosen by the user. Directory is optional
// and narrows the match when class names collide across packages.
type Selection struct {
	ClassName string
	Directory string
}

// Result is one completed rebuild.
type Result struct {
	Diagram    uml.ClassDiagram
	Positions  layout.Positions
	Generation uint64
}

// Builder owns the rebuild loop state. Rebuilds may run concurrently when
// triggers fire in quick succession; each draws an increasing generation
// token at start and only the newest-issued token may publish its result.
type Builder struct {
	store  *graph.Store
	engine layout.Engine

	generation atomic.Uint64

	mu     sync.RWMutex
	latest Result
}

// NewBuilder creates a builder over the store using the given layout
// engine.
func NewBuilder(store *graph.Store, engine layout.Engine) *Builder {
	return &Builder{store: store, engine: engine}
}

// Rebuild projects and lays out a diagram for the focal selections at the
// given depth, against an immutable snapshot of the store. If a newer
// rebuild was issued while this one ran, the result is discarded and
// ErrStale returned.
func (b *Builder) Rebuild(ctx context.Context, focal []Selection, maxDepth int) (Result, error) {
	token := b.generation.Add(1)
	snapshot := b.store.Snapshot()

	focalIDs := ResolveFocalIDs(snapshot.Nodes, focal)
	d := uml.BuildClassDiagram(snapshot, focalIDs, maxDepth)

	// The layout call is the slow part; a stale or canceled rebuild must
	// not publish over a newer one.
	boxes, edges := layoutInputs(d)
	positions := b.engine.Layout(boxes, edges)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result := Result{Diagram: d, Positions: positions, Generation: token}
	if token != b.generation.Load() {
		return Result{}, ErrStale
	}

	b.mu.Lock()
	if result.Generation > b.latest.Generation {
		b.latest = result
	}
	b.mu.Unlock()
	return result, nil
}

// Latest returns the most recently published rebuild result.
func (b *Builder) Latest() Result {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

// ResolveFocalIDs maps focal selections to node ids by exact class-name
// match, narrowed by directory when one is given. The first match in
// id-sorted snapshot order wins; selections that match nothing resolve to
// nothing.
func ResolveFocalIDs(nodes []graph.Node, focal []Selection) []string {
	var ids []string
	seen := make(map[string]bool)

	for _, sel := range focal {
		if sel.ClassName == "" {
			continue
		}
		for _, node := range nodes {
			if !node.IsClassLike() || node.ClassName() != sel.ClassName {
				continue
			}
			if sel.Directory != "" && node.Directory() != sel.Directory {
				continue
			}
			if !seen[node.ID] {
				seen[node.ID] = true
				ids = append(ids, node.ID)
			}
			break
		}
	}

	return ids
}

// layoutInputs converts the projected diagram into the layout engine's
// box/edge form.
func layoutInputs(d uml.ClassDiagram) ([]layout.Box, []layout.Edge) {
	boxes := make([]layout.Box, 0, len(d.Classes))
	for _, cls := range d.Classes {
		boxes = append(boxes, layout.NewBox(cls.ID, len(cls.Fields), len(cls.Methods)))
	}
	edges := make([]layout.Edge, 0, len(d.Relationships))
	for _, rel := range d.Relationships {
		edges = append(edges, layout.Edge{
			SourceID:    rel.SourceID,
			TargetID:    rel.TargetID,
			Inheritance: rel.Type == "EXTENDS" || rel.Type == "IMPLEMENTS",
		})
	}
	return boxes, edges
}

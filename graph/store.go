package graph

import (
	"sort"
	"strings"
	"sync"
)

// Graph is an immutable snapshot of the store, handed out per diagram
// rebuild. Nodes and links are sorted by id so "first match wins" lookups
// behave deterministically.
type Graph struct {
	Nodes []Node
	Links []Link
}

// NodeByID builds a lookup over the snapshot's nodes.
func (g Graph) NodeByID() map[string]Node {
	byID := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	return byID
}

// Store owns the mutable node/link maps fed by the understanding stream.
// Consumers never see the live maps; Snapshot copies them out.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]Node
	links map[string]Link
}

// NewStore creates an empty graph store.
func NewStore() *Store {
	return &Store{
		nodes: make(map[string]Node),
		links: make(map[string]Link),
	}
}

// Merge adds nodes and links by id. A later entry with an existing id
// overwrites the earlier one wholesale; there is no per-field merge.
// Nodes without a computed role are classified here.
func (s *Store) Merge(nodes []Node, links []Link) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range nodes {
		if n.ID == "" {
			continue
		}
		if n.Role == RoleOther {
			n.Role = ClassifyLabels(n.Labels)
		}
		if n.Props == nil {
			n.Props = Properties{}
		}
		s.nodes[n.ID] = n
	}
	for _, l := range links {
		if l.ID == "" || l.SourceID == "" || l.TargetID == "" {
			continue
		}
		if l.Props == nil {
			l.Props = Properties{}
		}
		l.Type = RelationType(strings.ToUpper(string(l.Type)))
		s.links[l.ID] = l
	}
}

// Reset drops all stored nodes and links, for a fresh understanding run.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = make(map[string]Node)
	s.links = make(map[string]Link)
}

// Len returns the current node and link counts.
func (s *Store) Len() (nodes, links int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes), len(s.links)
}

// Snapshot copies the current graph out of the store, sorted by id.
func (s *Store) Snapshot() Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := Graph{
		Nodes: make([]Node, 0, len(s.nodes)),
		Links: make([]Link, 0, len(s.links)),
	}
	for _, n := range s.nodes {
		g.Nodes = append(g.Nodes, n)
	}
	for _, l := range s.links {
		g.Links = append(g.Links, l)
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	sort.Slice(g.Links, func(i, j int) bool { return g.Links[i].ID < g.Links[j].ID })
	return g
}

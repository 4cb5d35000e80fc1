package uml

import (
	"sort"

	"github.com/jinyoung/classdiag/graph"
)

// ClassMembers buckets the field and method child nodes of one class,
// in link traversal order.
type ClassMembers struct {
	Fields  []graph.Node
	Methods []graph.Node
}

// BuildClassMembers walks PARENT_OF links and collects field/method child
// nodes per owning class. Links whose endpoints don't resolve, or whose
// source is not class-like, are skipped.
func BuildClassMembers(nodes map[string]graph.Node, links []graph.Link) map[string]*ClassMembers {
	members := make(map[string]*ClassMembers)

	for _, link := range links {
		if link.Type != graph.RelParentOf {
			continue
		}
		owner, ok := nodes[link.SourceID]
		if !ok || !owner.IsClassLike() {
			continue
		}
		child, ok := nodes[link.TargetID]
		if !ok {
			continue
		}

		bucket := members[owner.ID]
		if bucket == nil {
			bucket = &ClassMembers{}
			members[owner.ID] = bucket
		}
		switch {
		case child.Role == graph.RoleField:
			bucket.Fields = append(bucket.Fields, child)
		case child.IsMethodLike():
			bucket.Methods = append(bucket.Methods, child)
		}
	}

	return members
}

type indexedParameter struct {
	node  graph.Node
	index int
}

// BuildMethodParameters walks HAS_PARAMETER links and collects parameter
// nodes per method, sorted ascending by the link's `index` property
// (missing index defaults to 0; ties keep discovery order).
func BuildMethodParameters(nodes map[string]graph.Node, links []graph.Link) map[string][]graph.Node {
	collected := make(map[string][]indexedParameter)

	for _, link := range links {
		if link.Type != graph.RelHasParameter {
			continue
		}
		method, ok := nodes[link.SourceID]
		if !ok || !method.IsMethodLike() {
			continue
		}
		param, ok := nodes[link.TargetID]
		if !ok {
			continue
		}
		collected[method.ID] = append(collected[method.ID], indexedParameter{
			node:  param,
			index: link.Props.Int("index", 0),
		})
	}

	params := make(map[string][]graph.Node, len(collected))
	for methodID, entries := range collected {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].index < entries[j].index })
		ordered := make([]graph.Node, len(entries))
		for i, e := range entries {
			ordered[i] = e.node
		}
		params[methodID] = ordered
	}

	return params
}

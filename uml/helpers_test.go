package uml

import (
	"sort"

	"github.com/jinyoung/classdiag/graph"
)

// classNode builds a class-like node for tests.
func classNode(id, name string, labels ...string) graph.Node {
	if len(labels) == 0 {
		labels = []string{"Class"}
	}
	return graph.Node{
		ID:     id,
		Labels: labels,
		Props:  graph.Properties{"class_name": name},
		Role:   graph.ClassifyLabels(labels),
	}
}

// memberNode builds a field/method/parameter node for tests.
func memberNode(id, name string, label string, props graph.Properties) graph.Node {
	if props == nil {
		props = graph.Properties{}
	}
	props["name"] = name
	return graph.Node{
		ID:     id,
		Labels: []string{label},
		Props:  props,
		Role:   graph.ClassifyLabels([]string{label}),
	}
}

// link builds a typed link for tests.
func link(id, source, target string, relType graph.RelationType, props graph.Properties) graph.Link {
	if props == nil {
		props = graph.Properties{}
	}
	return graph.Link{ID: id, SourceID: source, TargetID: target, Type: relType, Props: props}
}

// sorted flattens a selection set into a sorted id list for assertions.
func sorted(ids map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for id, ok := range ids {
		if ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

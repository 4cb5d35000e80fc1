package uml

import "github.com/jinyoung/classdiag/graph"

// InheritanceMap records child class id → parent class ids, built from
// EXTENDS/IMPLEMENTS links between class nodes.
type InheritanceMap map[string][]string

// OwnershipMap records owner class id → owned class id → ownership type,
// built from COMPOSITION/AGGREGATION/ASSOCIATION links.
type OwnershipMap map[string]map[string]graph.RelationType

// BuildInheritanceMap indexes is-a edges whose endpoints are both in
// classIDs. Unmatched links are excluded, never reported.
func BuildInheritanceMap(links []graph.Link, classIDs map[string]bool) InheritanceMap {
	inherit := make(InheritanceMap)
	for _, link := range links {
		if !link.Type.IsInheritance() {
			continue
		}
		if !classIDs[link.SourceID] || !classIDs[link.TargetID] {
			continue
		}
		inherit[link.SourceID] = append(inherit[link.SourceID], link.TargetID)
	}
	return inherit
}

// BuildOwnershipMap indexes ownership edges whose endpoints are both in
// classIDs. When multiple ownership edges share a pair the strongest kind
// is recorded.
func BuildOwnershipMap(links []graph.Link, classIDs map[string]bool) OwnershipMap {
	own := make(OwnershipMap)
	for _, link := range links {
		if !link.Type.IsOwnership() {
			continue
		}
		if !classIDs[link.SourceID] || !classIDs[link.TargetID] {
			continue
		}
		owned := own[link.SourceID]
		if owned == nil {
			owned = make(map[string]graph.RelationType)
			own[link.SourceID] = owned
		}
		if link.Type.OwnershipStrength() > owned[link.TargetID].OwnershipStrength() {
			owned[link.TargetID] = link.Type
		}
	}
	return own
}

// Ancestors returns the transitive parents of classID. The walk is
// iterative with a visited set, so inheritance cycles (which a well-formed
// graph never has) terminate instead of recursing forever.
func (m InheritanceMap) Ancestors(classID string) map[string]bool {
	ancestors := make(map[string]bool)
	stack := append([]string(nil), m[classID]...)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == classID || ancestors[current] {
			continue
		}
		ancestors[current] = true
		stack = append(stack, m[current]...)
	}

	return ancestors
}

// AncestorOwns reports whether any transitive ancestor of classID holds an
// ownership relation to targetID.
func AncestorOwns(inherit InheritanceMap, own OwnershipMap, classID, targetID string) bool {
	for ancestor := range inherit.Ancestors(classID) {
		if _, ok := own[ancestor][targetID]; ok {
			return true
		}
	}
	return false
}

// propValueObject marks a dependency as a value-object reference; such
// edges carry no structural information worth drawing.
const propValueObject = "is_value_object"

// Normalize removes dependency edges that would only clutter the diagram
// and collapses competing relationship kinds between the same ordered pair
// into the single strongest kind. Input links are expected to be
// class-relation edges between known classes; anything else passes through
// the same dedup rules untouched. Normalizing already-normalized output is
// a no-op.
func Normalize(links []graph.Link, classIDs map[string]bool) []graph.Link {
	inherit := BuildInheritanceMap(links, classIDs)
	own := BuildOwnershipMap(links, classIDs)

	// Pass 1: drop noise dependencies.
	filtered := make([]graph.Link, 0, len(links))
	for _, link := range links {
		if link.Type == graph.RelDependency {
			if link.Props.Bool(propValueObject) {
				continue
			}
			if AncestorOwns(inherit, own, link.SourceID, link.TargetID) {
				continue
			}
		}
		filtered = append(filtered, link)
	}

	// Pass 2: dedup. Ownership edges compete on strength per ordered pair;
	// all other types only merge exact (pair, type) duplicates.
	type pairKey struct{ source, target string }
	type typedKey struct{ source, target, relType string }

	strongest := make(map[pairKey]graph.Link)
	pairOrder := make(map[pairKey]int)
	seenTyped := make(map[typedKey]bool)

	out := make([]graph.Link, 0, len(filtered))
	for _, link := range filtered {
		if link.Type.IsOwnership() {
			key := pairKey{link.SourceID, link.TargetID}
			best, exists := strongest[key]
			if !exists {
				pairOrder[key] = len(out)
				strongest[key] = link
				out = append(out, link)
				continue
			}
			if link.Type.OwnershipStrength() > best.Type.OwnershipStrength() {
				strongest[key] = link
				out[pairOrder[key]] = link
			}
			continue
		}

		key := typedKey{link.SourceID, link.TargetID, string(link.Type)}
		if seenTyped[key] {
			continue
		}
		seenTyped[key] = true
		out = append(out, link)
	}

	return out
}

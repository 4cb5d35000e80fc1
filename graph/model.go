package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Role classifies a node by what it represents in the source model.
// Roles are computed once when a node enters the store, from its label list.
type Role int

const (
	RoleOther Role = iota
	RoleClass
	RoleInterface
	RoleEnum
	RoleField
	RoleMethod
	RoleConstructor
	RoleParameter
)

// ClassKind is the UML stereotype of a class-like node.
type ClassKind string

const (
	KindClass     ClassKind = "class"
	KindInterface ClassKind = "interface"
	KindEnum      ClassKind = "enum"
)

// RelationType identifies the kind of a graph link.
type RelationType string

const (
	RelExtends      RelationType = "EXTENDS"
	RelImplements   RelationType = "IMPLEMENTS"
	RelAssociation  RelationType = "ASSOCIATION"
	RelAggregation  RelationType = "AGGREGATION"
	RelComposition  RelationType = "COMPOSITION"
	RelDependency   RelationType = "DEPENDENCY"
	RelParentOf     RelationType = "PARENT_OF"
	RelHasParameter RelationType = "HAS_PARAMETER"
)

// Properties is the heterogeneous property bag carried by nodes and links.
type Properties map[string]any

// Node is a single vertex of the property graph produced by the
// understanding backend. Nodes are immutable once stored; a new
// understanding run replaces them wholesale.
type Node struct {
	ID     string     `json:"id"`
	Labels []string   `json:"labels"`
	Props  Properties `json:"properties"`
	Role   Role       `json:"-"`
}

// Link is a directed edge of the property graph.
type Link struct {
	ID       string       `json:"id"`
	SourceID string       `json:"source"`
	TargetID string       `json:"target"`
	Type     RelationType `json:"type"`
	Props    Properties   `json:"properties"`
}

// Label vocabularies accepted per role. Matching is case-insensitive and
// tolerates pluralized labels emitted by older backend versions.
var roleLabels = map[string]Role{
	"CLASS":        RoleClass,
	"CLASSES":      RoleClass,
	"INTERFACE":    RoleInterface,
	"INTERFACES":   RoleInterface,
	"ENUM":         RoleEnum,
	"ENUMS":        RoleEnum,
	"FIELD":        RoleField,
	"FIELDS":       RoleField,
	"METHOD":       RoleMethod,
	"METHODS":      RoleMethod,
	"CONSTRUCTOR":  RoleConstructor,
	"CONSTRUCTORS": RoleConstructor,
	"PARAMETER":    RoleParameter,
	"PARAMETERS":   RoleParameter,
}

// ClassifyLabels resolves the node role from a raw label list.
// Interface and enum labels take precedence over a plain class label so a
// node labeled ["Class", "Interface"] classifies as an interface.
func ClassifyLabels(labels []string) Role {
	role := RoleOther
	for _, label := range labels {
		r, ok := roleLabels[strings.ToUpper(label)]
		if !ok {
			continue
		}
		switch r {
		case RoleInterface, RoleEnum:
			// Kind-refining labels win over a generic class label.
			return r
		default:
			if role == RoleOther {
				role = r
			}
		}
	}
	return role
}

// IsClassLike reports whether the node projects to a UML class box.
func (n Node) IsClassLike() bool {
	return n.Role == RoleClass || n.Role == RoleInterface || n.Role == RoleEnum
}

// IsMemberLike reports whether the node can appear inside a class box.
func (n Node) IsMemberLike() bool {
	return n.Role == RoleField || n.IsMethodLike()
}

// IsMethodLike reports whether the node renders in the methods section.
// Constructors are method-like: they share the PARENT_OF containment shape.
func (n Node) IsMethodLike() bool {
	return n.Role == RoleMethod || n.Role == RoleConstructor
}

// ClassName resolves the display name of a class-like node: the
// `class_name` property, falling back to `name`, falling back to "".
func (n Node) ClassName() string {
	if s := n.Props.String("class_name"); s != "" {
		return s
	}
	return n.Props.String("name")
}

// Directory resolves the namespace-like grouping of a node.
func (n Node) Directory() string {
	return n.Props.String("directory")
}

// Kind resolves the UML stereotype of a class-like node.
// Checked in order interface, enum, class; first match wins.
func (n Node) Kind() ClassKind {
	switch n.Role {
	case RoleInterface:
		return KindInterface
	case RoleEnum:
		return KindEnum
	default:
		return KindClass
	}
}

// Visibility resolves a member node's visibility, defaulting to "default"
// (package-private) when the property is absent or unrecognized.
func (n Node) Visibility() string {
	switch v := strings.ToLower(n.Props.String("visibility")); v {
	case "public", "private", "protected":
		return v
	default:
		return "default"
	}
}

// IsClassRelation reports whether the relation type participates in the
// class diagram (as opposed to structural containment links).
func (t RelationType) IsClassRelation() bool {
	switch t {
	case RelExtends, RelImplements, RelAssociation, RelAggregation, RelComposition, RelDependency:
		return true
	}
	return false
}

// IsInheritance reports whether the relation expresses an is-a edge.
func (t RelationType) IsInheritance() bool {
	return t == RelExtends || t == RelImplements
}

// OwnershipStrength ranks ownership relations: COMPOSITION > AGGREGATION >
// ASSOCIATION. Non-ownership types rank 0 and never compete on strength.
func (t RelationType) OwnershipStrength() int {
	switch t {
	case RelComposition:
		return 3
	case RelAggregation:
		return 2
	case RelAssociation:
		return 1
	}
	return 0
}

// IsOwnership reports whether the relation implies one class holding a
// reference to another.
func (t RelationType) IsOwnership() bool {
	return t.OwnershipStrength() > 0
}

// String returns the property as a string, coercing scalar values and
// returning "" when the key is absent.
func (p Properties) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Bool returns the property as a boolean. String forms of true/false are
// accepted; anything else is false.
func (p Properties) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	return false
}

// Int returns the property as an integer with a default for absent or
// non-numeric values. JSON numbers arrive as float64.
func (p Properties) Int(key string, fallback int) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// StringList returns the property as a list of strings. A scalar string
// yields a single-element list; heterogeneous list elements are coerced.
func (p Properties) StringList(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprintf("%v", item))
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

package uml

import (
	"strings"

	"github.com/jinyoung/classdiag/graph"
)

// link property keys read during relationship projection.
const (
	propLabel        = "label"
	propMultiplicity = "multiplicity"
)

// node property keys for the embedded member fallback and flags.
const (
	propAbstract        = "is_abstract"
	propEmbeddedFields  = "fields"
	propEmbeddedMethods = "methods"
)

// BuildClassDiagram projects the graph snapshot onto a UML class model
// restricted to the neighborhood of the focal node ids.
//
// Resolution misses (unknown endpoints, unnamed classes) are dropped
// silently: the output favors a partial-but-valid diagram over an error.
// An empty focal set, or a depth selection that empties out, is a valid
// empty diagram.
func BuildClassDiagram(g graph.Graph, focalIDs []string, maxDepth int) ClassDiagram {
	// Class-like nodes, keyed by id. Name resolution for relationship
	// endpoints uses this full lookup; only edge retention is depth-bounded.
	classNodes := make(map[string]graph.Node)
	classIDs := make(map[string]bool)
	for _, node := range g.Nodes {
		if node.IsClassLike() && node.ClassName() != "" {
			classNodes[node.ID] = node
			classIDs[node.ID] = true
		}
	}

	nodesByID := g.NodeByID()
	members := BuildClassMembers(nodesByID, g.Links)
	params := BuildMethodParameters(nodesByID, g.Links)

	// Class-relation edges whose endpoints both project to classes.
	classLinks := make([]graph.Link, 0, len(g.Links))
	for _, link := range g.Links {
		if !link.Type.IsClassRelation() {
			continue
		}
		if !classIDs[link.SourceID] || !classIDs[link.TargetID] {
			continue
		}
		classLinks = append(classLinks, link)
	}

	classLinks = Normalize(classLinks, classIDs)
	selected := NodesWithinDepth(focalIDs, classLinks, maxDepth)

	diagram := ClassDiagram{
		Classes:       []Class{},
		Relationships: []Relationship{},
	}

	for _, node := range g.Nodes {
		if !selected[node.ID] {
			continue
		}
		classNode, ok := classNodes[node.ID]
		if !ok {
			continue
		}
		diagram.Classes = append(diagram.Classes, projectClass(classNode, members[node.ID], params))
	}

	for _, link := range classLinks {
		if !selected[link.SourceID] || !selected[link.TargetID] {
			continue
		}
		rel, ok := projectRelationship(link, classNodes)
		if !ok {
			continue
		}
		diagram.Relationships = append(diagram.Relationships, rel)
	}

	return diagram
}

// projectClass maps one class-like node to its UML class. When the class
// has no PARENT_OF-derived members, embedded `fields`/`methods` property
// arrays on the node itself are used instead (some graphs embed structure
// rather than expanding it into child nodes).
func projectClass(node graph.Node, members *ClassMembers, params map[string][]graph.Node) Class {
	cls := Class{
		ID:        node.ID,
		Name:      node.ClassName(),
		Directory: node.Directory(),
		Kind:      node.Kind(),
		Abstract:  node.Props.Bool(propAbstract),
		Fields:    []Field{},
		Methods:   []Method{},
	}

	if members != nil && (len(members.Fields) > 0 || len(members.Methods) > 0) {
		for _, fieldNode := range members.Fields {
			cls.Fields = append(cls.Fields, Field{
				Name:       fieldNode.Props.String("name"),
				Type:       fieldNode.Props.String("type"),
				Visibility: fieldNode.Visibility(),
			})
		}
		for _, methodNode := range members.Methods {
			cls.Methods = append(cls.Methods, projectMethod(methodNode, params[methodNode.ID]))
		}
		return cls
	}

	cls.Fields = append(cls.Fields, embeddedFields(node)...)
	cls.Methods = append(cls.Methods, embeddedMethods(node)...)
	return cls
}

func projectMethod(node graph.Node, paramNodes []graph.Node) Method {
	method := Method{
		Name:        node.Props.String("name"),
		ReturnType:  node.Props.String("return_type"),
		Visibility:  node.Visibility(),
		Parameters:  []Parameter{},
		Constructor: node.Role == graph.RoleConstructor,
	}
	if method.ReturnType == "" {
		method.ReturnType = VoidReturnType
	}
	for _, p := range paramNodes {
		method.Parameters = append(method.Parameters, Parameter{
			Name: p.Props.String("name"),
			Type: p.Props.String("type"),
		})
	}
	return method
}

// embeddedFields reads the fallback `fields` property array. Elements are
// either plain strings (field names) or objects with name/type/visibility.
func embeddedFields(node graph.Node) []Field {
	raw, ok := node.Props[propEmbeddedFields].([]any)
	if !ok {
		return nil
	}
	fields := make([]Field, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			if v != "" {
				fields = append(fields, Field{Name: v, Visibility: "default"})
			}
		case map[string]any:
			props := graph.Properties(v)
			name := props.String("name")
			if name == "" {
				continue
			}
			visibility := strings.ToLower(props.String("visibility"))
			switch visibility {
			case "public", "private", "protected":
			default:
				visibility = "default"
			}
			fields = append(fields, Field{
				Name:       name,
				Type:       props.String("type"),
				Visibility: visibility,
			})
		}
	}
	return fields
}

// embeddedMethods reads the fallback `methods` property array.
func embeddedMethods(node graph.Node) []Method {
	raw, ok := node.Props[propEmbeddedMethods].([]any)
	if !ok {
		return nil
	}
	methods := make([]Method, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			if v != "" {
				methods = append(methods, Method{
					Name:       v,
					ReturnType: VoidReturnType,
					Visibility: "default",
					Parameters: []Parameter{},
				})
			}
		case map[string]any:
			props := graph.Properties(v)
			name := props.String("name")
			if name == "" {
				continue
			}
			visibility := strings.ToLower(props.String("visibility"))
			switch visibility {
			case "public", "private", "protected":
			default:
				visibility = "default"
			}
			returnType := props.String("return_type")
			if returnType == "" {
				returnType = VoidReturnType
			}
			methods = append(methods, Method{
				Name:       name,
				ReturnType: returnType,
				Visibility: visibility,
				Parameters: []Parameter{},
			})
		}
	}
	return methods
}

// projectRelationship maps one retained link to a UML relationship. Both
// endpoints must resolve to named classes or the link is dropped.
func projectRelationship(link graph.Link, classNodes map[string]graph.Node) (Relationship, bool) {
	source, ok := classNodes[link.SourceID]
	if !ok {
		return Relationship{}, false
	}
	target, ok := classNodes[link.TargetID]
	if !ok {
		return Relationship{}, false
	}
	sourceName := source.ClassName()
	targetName := target.ClassName()
	if sourceName == "" || targetName == "" {
		return Relationship{}, false
	}

	return Relationship{
		ID:           link.ID,
		SourceID:     link.SourceID,
		TargetID:     link.TargetID,
		SourceName:   sourceName,
		TargetName:   targetName,
		Type:         strings.ToUpper(string(link.Type)),
		Label:        strings.Join(link.Props.StringList(propLabel), ", "),
		Multiplicity: link.Props.String(propMultiplicity),
	}, true
}

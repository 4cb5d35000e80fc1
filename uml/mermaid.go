package uml

import (
	"fmt"
	"strings"
)

// visibilityGlyph maps a member visibility to its UML prefix.
func visibilityGlyph(visibility string) string {
	switch visibility {
	case "public":
		return "+"
	case "private":
		return "-"
	case "protected":
		return "#"
	default:
		return "~"
	}
}

// mermaidArrow maps a relationship type to the Mermaid classDiagram edge
// operator, drawn from source to target.
func mermaidArrow(relType string) string {
	switch relType {
	case "EXTENDS":
		return "--|>"
	case "IMPLEMENTS":
		return "..|>"
	case "COMPOSITION":
		return "*--"
	case "AGGREGATION":
		return "o--"
	case "DEPENDENCY":
		return "..>"
	default:
		return "-->"
	}
}

// ToMermaid renders the diagram in Mermaid classDiagram format.
// If title is not empty it is emitted as a front-matter title.
func (d ClassDiagram) ToMermaid(title string) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", title))
		sb.WriteString("---\n")
	}

	sb.WriteString("classDiagram\n")

	// Class names are arbitrary strings; Mermaid identifiers are not.
	// Assign stable synthetic ids and carry the real name as a label.
	nodeIDs := make(map[string]string, len(d.Classes))
	for i, cls := range d.Classes {
		nodeIDs[cls.ID] = fmt.Sprintf("c%d", i)
	}

	for _, cls := range d.Classes {
		label := strings.ReplaceAll(cls.Name, "\"", "#quot;")
		sb.WriteString(fmt.Sprintf("    class %s[\"%s\"] {\n", nodeIDs[cls.ID], label))

		switch cls.Kind {
		case "interface":
			sb.WriteString("        <<interface>>\n")
		case "enum":
			sb.WriteString("        <<enumeration>>\n")
		default:
			if cls.Abstract {
				sb.WriteString("        <<abstract>>\n")
			}
		}

		for _, field := range cls.Fields {
			if field.Type != "" {
				sb.WriteString(fmt.Sprintf("        %s%s : %s\n", visibilityGlyph(field.Visibility), field.Name, field.Type))
			} else {
				sb.WriteString(fmt.Sprintf("        %s%s\n", visibilityGlyph(field.Visibility), field.Name))
			}
		}
		for _, method := range cls.Methods {
			params := make([]string, 0, len(method.Parameters))
			for _, p := range method.Parameters {
				if p.Type != "" {
					params = append(params, fmt.Sprintf("%s %s", p.Type, p.Name))
				} else {
					params = append(params, p.Name)
				}
			}
			sb.WriteString(fmt.Sprintf("        %s%s(%s) %s\n",
				visibilityGlyph(method.Visibility), method.Name, strings.Join(params, ", "), method.ReturnType))
		}

		sb.WriteString("    }\n")
	}

	if len(d.Relationships) > 0 {
		sb.WriteString("\n")
	}

	for _, rel := range d.Relationships {
		sourceID, ok := nodeIDs[rel.SourceID]
		if !ok {
			continue
		}
		targetID, ok := nodeIDs[rel.TargetID]
		if !ok {
			continue
		}

		line := fmt.Sprintf("    %s %s %s", sourceID, mermaidArrow(rel.Type), targetID)
		if rel.Multiplicity != "" {
			line = fmt.Sprintf("    %s %s \"%s\" %s", sourceID, mermaidArrow(rel.Type), rel.Multiplicity, targetID)
		}
		if rel.Label != "" {
			line += fmt.Sprintf(" : %s", rel.Label)
		}
		sb.WriteString(line + "\n")
	}

	return sb.String()
}

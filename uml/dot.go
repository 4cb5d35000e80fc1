package uml

import (
	"fmt"
	"strings"

	"github.com/jinyoung/classdiag/layout"
)

// dotEdgeAttrs maps a relationship type to Graphviz edge attributes using
// conventional UML arrowheads. Ownership diamonds sit at the source
// (owning) end, so those edges flip direction and draw backwards.
func dotEdgeAttrs(relType string) string {
	switch relType {
	case "EXTENDS":
		return "arrowhead=empty"
	case "IMPLEMENTS":
		return "arrowhead=empty, style=dashed"
	case "COMPOSITION":
		return "dir=both, arrowtail=diamond, arrowhead=vee"
	case "AGGREGATION":
		return "dir=both, arrowtail=odiamond, arrowhead=vee"
	case "DEPENDENCY":
		return "arrowhead=vee, style=dashed"
	default:
		return "arrowhead=vee"
	}
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	s = strings.ReplaceAll(s, "<", "\\<")
	s = strings.ReplaceAll(s, ">", "\\>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}

// ToDOT renders the diagram in Graphviz DOT format with record-shaped
// class boxes. If positions is non-nil, each class gets a pinned pos
// attribute so neato-compatible renderers honor the computed layout.
func (d ClassDiagram) ToDOT(title string, positions layout.Positions) string {
	var sb strings.Builder
	sb.WriteString("digraph classes {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=record, fontname=Helvetica];\n")

	if title != "" {
		sb.WriteString(fmt.Sprintf("  label=\"%s\";\n", dotEscape(title)))
		sb.WriteString("  labelloc=t;\n")
	}
	sb.WriteString("\n")

	for _, cls := range d.Classes {
		var label strings.Builder
		label.WriteString("{")
		switch cls.Kind {
		case "interface":
			label.WriteString("\\<\\<interface\\>\\> ")
		case "enum":
			label.WriteString("\\<\\<enumeration\\>\\> ")
		}
		label.WriteString(dotEscape(cls.Name))

		label.WriteString("|")
		for _, field := range cls.Fields {
			row := visibilityGlyph(field.Visibility) + field.Name
			if field.Type != "" {
				row += " : " + field.Type
			}
			label.WriteString(dotEscape(row) + "\\l")
		}

		label.WriteString("|")
		for _, method := range cls.Methods {
			params := make([]string, 0, len(method.Parameters))
			for _, p := range method.Parameters {
				if p.Type != "" {
					params = append(params, p.Type+" "+p.Name)
				} else {
					params = append(params, p.Name)
				}
			}
			row := fmt.Sprintf("%s%s(%s) : %s",
				visibilityGlyph(method.Visibility), method.Name, strings.Join(params, ", "), method.ReturnType)
			label.WriteString(dotEscape(row) + "\\l")
		}
		label.WriteString("}")

		attrs := fmt.Sprintf("label=\"%s\"", label.String())
		if positions != nil {
			if p, ok := positions[cls.ID]; ok {
				attrs += fmt.Sprintf(", pos=\"%.0f,%.0f!\"", p.X, p.Y)
			}
		}
		sb.WriteString(fmt.Sprintf("  \"%s\" [%s];\n", cls.ID, attrs))
	}

	sb.WriteString("\n")

	for _, rel := range d.Relationships {
		attrs := dotEdgeAttrs(rel.Type)
		if rel.Label != "" {
			attrs += fmt.Sprintf(", label=\"%s\"", dotEscape(rel.Label))
		}
		if rel.Multiplicity != "" {
			attrs += fmt.Sprintf(", headlabel=\"%s\"", dotEscape(rel.Multiplicity))
		}
		sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [%s];\n", rel.SourceID, rel.TargetID, attrs))
	}

	sb.WriteString("}\n")
	return sb.String()
}

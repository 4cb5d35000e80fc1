package uml

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jinyoung/classdiag/graph"
	"github.com/jinyoung/classdiag/layout"
)

// renderFixture is a small diagram exercising every class kind, member
// shape, and a labeled relationship with multiplicity.
func renderFixture() ClassDiagram {
	return ClassDiagram{
		Classes: []Class{
			{
				ID:   "c1",
				Name: "Order",
				Kind: graph.KindClass,
				Fields: []Field{
					{Name: "total", Type: "Money", Visibility: "private"},
				},
				Methods: []Method{
					{
						Name:       "submit",
						ReturnType: "Receipt",
						Visibility: "public",
						Parameters: []Parameter{{Name: "customer", Type: "Customer"}},
					},
					{
						Name:        "Order",
						ReturnType:  VoidReturnType,
						Visibility:  "public",
						Parameters:  []Parameter{},
						Constructor: true,
					},
				},
			},
			{ID: "c2", Name: "OrderRepo", Kind: graph.KindInterface, Fields: []Field{}, Methods: []Method{}},
			{
				ID:   "c3",
				Name: "Status",
				Kind: graph.KindEnum,
				Fields: []Field{
					{Name: "NEW", Visibility: "default"},
					{Name: "PAID", Visibility: "default"},
				},
				Methods: []Method{},
			},
		},
		Relationships: []Relationship{
			{ID: "l5", SourceID: "c1", TargetID: "c2", SourceName: "Order", TargetName: "OrderRepo", Type: "IMPLEMENTS"},
			{ID: "l6", SourceID: "c1", TargetID: "c3", SourceName: "Order", TargetName: "Status", Type: "COMPOSITION", Label: "has", Multiplicity: "1"},
		},
	}
}

func TestToMermaid(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte(renderFixture().ToMermaid("Orders")))
}

func TestToMermaidWithoutTitle(t *testing.T) {
	out := renderFixture().ToMermaid("")
	assert.True(t, strings.HasPrefix(out, "classDiagram\n"))
	assert.NotContains(t, out, "title:")
}

func TestToMermaidEscapesQuotesInClassNames(t *testing.T) {
	d := ClassDiagram{Classes: []Class{{ID: "c1", Name: `Weird"Name`, Kind: graph.KindClass}}}
	out := d.ToMermaid("")
	assert.Contains(t, out, `class c0["Weird#quot;Name"]`)
}

func TestToDOT(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte(renderFixture().ToDOT("", nil)))
}

func TestToDOTPinsPositions(t *testing.T) {
	d := ClassDiagram{Classes: []Class{{ID: "c1", Name: "Order", Kind: graph.KindClass}}}
	positions := layout.Positions{"c1": {X: 120, Y: 340}}

	out := d.ToDOT("", positions)
	assert.Contains(t, out, `pos="120,340!"`)
}

func TestRelationshipArrows(t *testing.T) {
	tests := []struct {
		relType string
		arrow   string
	}{
		{"EXTENDS", "--|>"},
		{"IMPLEMENTS", "..|>"},
		{"COMPOSITION", "*--"},
		{"AGGREGATION", "o--"},
		{"DEPENDENCY", "..>"},
		{"ASSOCIATION", "-->"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.arrow, mermaidArrow(tt.relType), tt.relType)
	}
}

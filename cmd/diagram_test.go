package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinyoung/classdiag/diagram"
)

const exportFixture = `{
  "nodes": [
    {"id": "c1", "labels": ["Class"], "properties": {"class_name": "Order"}},
    {"id": "c2", "labels": ["Interface"], "properties": {"name": "OrderRepo"}},
    {"id": "c3", "labels": ["Class"], "properties": {"class_name": "Unrelated"}}
  ],
  "links": [
    {"id": "l1", "source": "c1", "target": "c2", "type": "IMPLEMENTS"}
  ]
}`

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(exportFixture), 0o644))
	return path
}

func runDiagram(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// The command binds package-level flag variables; reset them so tests
	// do not leak state into each other.
	focusClasses = nil
	diagramDepth = 2
	outputFormat = "mermaid"
	layoutName = "stress"
	outputPath = ""
	diagramTitle = ""

	var out bytes.Buffer
	diagramCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"diagram"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDiagramCommand_Mermaid(t *testing.T) {
	out, err := runDiagram(t, writeExport(t), "--focus", "Order", "--depth", "1", "--layout", "grid")
	require.NoError(t, err)

	assert.Contains(t, out, "classDiagram")
	assert.Contains(t, out, `["Order"]`)
	assert.Contains(t, out, `["OrderRepo"]`)
	assert.NotContains(t, out, "Unrelated")
	assert.Contains(t, out, "..|>")
}

func TestDiagramCommand_WritesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "order.dot")
	stdout, err := runDiagram(t, writeExport(t),
		"--focus", "Order", "--layout", "grid", "--format", "dot", "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "digraph")
}

func TestDiagramCommand_UnknownFormat(t *testing.T) {
	_, err := runDiagram(t, writeExport(t), "--focus", "Order", "--format", "svg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestParseSelections_SplitsOnLastColon(t *testing.T) {
	selections := parseSelections([]string{" Order ", "com/acme:Invoice", "", "a:b:C"})

	require.Len(t, selections, 3)
	assert.Equal(t, diagram.Selection{ClassName: "Order"}, selections[0])
	assert.Equal(t, diagram.Selection{ClassName: "Invoice", Directory: "com/acme"}, selections[1])
	assert.Equal(t, diagram.Selection{ClassName: "C", Directory: "a:b"}, selections[2])
}

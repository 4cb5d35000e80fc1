package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jinyoung/classdiag/diagram"
	"github.com/jinyoung/classdiag/graph"
	"github.com/jinyoung/classdiag/layout"
)

var (
	focusClasses []string
	diagramDepth int
	outputFormat string
	layoutName   string
	outputPath   string
	diagramTitle string
)

// diagramCmd represents the diagram command
var diagramCmd = &cobra.Command{
	Use:   "diagram <graph.json>",
	Short: "Build a UML class diagram from a graph export",
	Long: `Builds a depth-bounded UML class diagram from an understanding-graph
export file and writes it to stdout or a file.

Focal classes seed the diagram; everything reachable within --depth hops
over class relations (EXTENDS, IMPLEMENTS, ASSOCIATION, AGGREGATION,
COMPOSITION, DEPENDENCY) is included. Without --focus the diagram is empty
by design: there is no implicit select-everything.

Output formats:
  - mermaid: Mermaid classDiagram markup (default)
  - dot:     Graphviz DOT with record-shaped class boxes and positions
  - json:    the raw {classes, relationships, positions} artifact

Example usage:
  classdiag diagram graph.json --focus OrderService
  classdiag diagram graph.json --focus com/acme/order:OrderService --depth 3
  classdiag diagram graph.json --focus Order --focus Customer --format dot
  classdiag diagram graph.json --focus Order --layout hierarchy --out order.mmd`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("depth") {
			diagramDepth = viper.GetInt("depth")
		}
		if !cmd.Flags().Changed("format") {
			outputFormat = viper.GetString("format")
		}
		if !cmd.Flags().Changed("layout") {
			layoutName = viper.GetString("layout")
		}

		nodes, links, err := graph.DecodeFile(args[0])
		if err != nil {
			return err
		}
		store := graph.NewStore()
		store.Merge(nodes, links)

		builder := diagram.NewBuilder(store, layout.ByName(layoutName))
		result, err := builder.Rebuild(context.Background(), parseSelections(focusClasses), diagramDepth)
		if err != nil {
			return fmt.Errorf("diagram build failed: %w", err)
		}

		var out string
		switch outputFormat {
		case "mermaid":
			out = result.Diagram.ToMermaid(diagramTitle)
		case "dot":
			out = result.Diagram.ToDOT(diagramTitle, result.Positions)
		case "json":
			artifact := struct {
				Classes       any `json:"classes"`
				Relationships any `json:"relationships"`
				Positions     any `json:"positions"`
			}{result.Diagram.Classes, result.Diagram.Relationships, result.Positions}
			encoded, err := json.MarshalIndent(artifact, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode diagram: %w", err)
			}
			out = string(encoded) + "\n"
		default:
			return fmt.Errorf("unknown output format: %s (expected mermaid, dot, or json)", outputFormat)
		}

		if outputPath != "" {
			if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// parseSelections splits --focus values of the form "Name" or "dir:Name"
// into focal selections. The last colon splits, so directories may contain
// colons.
func parseSelections(values []string) []diagram.Selection {
	selections := make([]diagram.Selection, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if i := strings.LastIndex(v, ":"); i >= 0 {
			dir, name := v[:i], v[i+1:]
			selections = append(selections, diagram.Selection{ClassName: name, Directory: dir})
		} else {
			selections = append(selections, diagram.Selection{ClassName: v})
		}
	}
	return selections
}

func init() {
	diagramCmd.Flags().StringArrayVarP(&focusClasses, "focus", "f", nil, "Focal class to expand from, as 'Name' or 'directory:Name' (repeatable)")
	diagramCmd.Flags().IntVarP(&diagramDepth, "depth", "d", 2, "Maximum traversal depth from the focal classes")
	diagramCmd.Flags().StringVar(&outputFormat, "format", "mermaid", "Output format: mermaid, dot, or json")
	diagramCmd.Flags().StringVar(&layoutName, "layout", "stress", "Layout strategy: stress, hierarchy, or grid")
	diagramCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Write output to a file instead of stdout")
	diagramCmd.Flags().StringVar(&diagramTitle, "title", "", "Diagram title")
}

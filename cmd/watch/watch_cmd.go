package watch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jinyoung/classdiag/cmd/watch/protocol"
	"github.com/jinyoung/classdiag/diagram"
	"github.com/jinyoung/classdiag/graph"
	"github.com/jinyoung/classdiag/internal/logging"
	"github.com/jinyoung/classdiag/layout"
)

type watchOptions struct {
	port       int
	depth      int
	layoutName string
	focus      []string
	title      string
	verbose    bool
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <graph.json>",
		Short: "Watch a graph export and serve a live class diagram",
		Long: `Watches an understanding-graph export file, rebuilds the UML class
diagram whenever it changes, and serves a live-updating viewer at
localhost. Diagram snapshots stream to the browser over SSE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				opts.port = viper.GetInt("port")
			}
			if !cmd.Flags().Changed("depth") {
				opts.depth = viper.GetInt("depth")
			}
			if !cmd.Flags().Changed("layout") {
				opts.layoutName = viper.GetString("layout")
			}
			return runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "P", 4900, "HTTP server port")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", 2, "Maximum traversal depth from the focal classes")
	cmd.Flags().StringVar(&opts.layoutName, "layout", "stress", "Layout strategy: stress, hierarchy, or grid")
	cmd.Flags().StringArrayVarP(&opts.focus, "focus", "f", nil, "Focal class as 'Name' or 'directory:Name' (repeatable)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Diagram title")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runWatch(cmd *cobra.Command, exportPath string, opts *watchOptions) error {
	log := logging.New(opts.verbose)
	defer log.Sync()

	store := graph.NewStore()
	builder := diagram.NewBuilder(store, layout.ByName(opts.layoutName))
	focal := parseSelections(opts.focus)

	b := newBroker()
	srv := newServer(b, opts.port)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", opts.port, err)
	}
	go srv.Serve(ln)

	rebuild := func() {
		if err := loadExport(store, exportPath); err != nil {
			log.Warnw("export reload failed", "path", exportPath, "error", err)
			return
		}
		result, err := builder.Rebuild(ctx, focal, opts.depth)
		if errors.Is(err, diagram.ErrStale) {
			log.Debugw("discarded stale rebuild")
			return
		}
		if err != nil {
			log.Warnw("rebuild failed", "error", err)
			return
		}
		if err := b.publish(snapshotOf(result, opts.title)); err != nil {
			log.Warnw("publish failed", "error", err)
			return
		}
		log.Infow("diagram rebuilt",
			"classes", len(result.Diagram.Classes),
			"relationships", len(result.Diagram.Relationships),
			"generation", result.Generation)
	}

	rebuild()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", exportPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving at http://localhost:%d\n", opts.port)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	err = watchAndRebuild(ctx, exportPath, func() { go rebuild() }, log)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	return err
}

// snapshotOf converts a rebuild result into the viewer wire form.
func snapshotOf(result diagram.Result, title string) protocol.DiagramSnapshot {
	positions := make(map[string]protocol.Position, len(result.Positions))
	for id, p := range result.Positions {
		positions[id] = protocol.Position{X: p.X, Y: p.Y}
	}
	return protocol.DiagramSnapshot{
		Timestamp: time.Now(),
		Mermaid:   result.Diagram.ToMermaid(title),
		Positions: positions,
		Classes:   len(result.Diagram.Classes),
		Edges:     len(result.Diagram.Relationships),
	}
}

// parseSelections splits focus values of the form "Name" or "dir:Name".
func parseSelections(values []string) []diagram.Selection {
	selections := make([]diagram.Selection, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if dir, name, found := cutFocus(v); found {
			selections = append(selections, diagram.Selection{ClassName: name, Directory: dir})
		} else {
			selections = append(selections, diagram.Selection{ClassName: v})
		}
	}
	return selections
}

func cutFocus(v string) (dir, name string, found bool) {
	for i := len(v) - 1; i >= 0; i-- {
		if v[i] == ':' {
			return v[:i], v[i+1:], true
		}
	}
	return "", v, false
}

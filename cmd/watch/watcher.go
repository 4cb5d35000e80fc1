package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jinyoung/classdiag/graph"
)

const debounceInterval = 300 * time.Millisecond

// watchAndRebuild watches the graph export file and triggers a rebuild
// after each debounced change. Rebuild failures are logged and waited out:
// the next file change gets another chance.
func watchAndRebuild(ctx context.Context, exportPath string, rebuild func(), log *zap.SugaredLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and exporters replace
	// files via rename, which drops a direct file watch.
	dir := filepath.Dir(exportPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isExportChange(event, exportPath) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, rebuild)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("file watch error", "error", err)
		}
	}
}

// isExportChange reports whether the event touches the export file with an
// operation that changes its contents.
func isExportChange(event fsnotify.Event, exportPath string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(exportPath) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// loadExport reads the export file into a fresh store state.
func loadExport(store *graph.Store, exportPath string) error {
	nodes, links, err := graph.DecodeFile(exportPath)
	if err != nil {
		return err
	}
	// A new export replaces the graph wholesale; ids are only stable
	// within one understanding run.
	store.Reset()
	store.Merge(nodes, links)
	return nil
}

package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/treescope/treescope/internal/analysis"
)

// Watcher re-analyzes query files whenever they change on disk.
type Watcher struct {
	engine     *Engine
	watcher    *fsnotify.Watcher
	isWatching bool
	report     func(path string, rep analysis.Report)
}

// NewWatcher wraps the engine with a filesystem watcher. The report callback
// receives the fresh analysis for every changed query file.
func NewWatcher(engine *Engine, report func(path string, rep analysis.Report)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{engine: engine, watcher: fsw, report: report}, nil
}

// StartWatching registers every directory under the given roots and begins
// the watch loop.
func (w *Watcher) StartWatching(dirs []string) error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.isWatching = true
	go w.watchLoop()
	return nil
}

func (w *Watcher) StopWatching() error {
	if !w.isWatching {
		log.Println("not watching")
	}

	w.isWatching = false
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !IsQueryFile(event.Name) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)

	content, err := os.ReadFile(event.Name)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	w.report(event.Name, w.engine.Analyze(string(content)))
}

// IsQueryFile reports whether a path looks like a query file.
func IsQueryFile(path string) bool {
	return strings.HasSuffix(path, ".scm") || strings.HasSuffix(path, ".query") || strings.HasSuffix(path, ".tsq")
}

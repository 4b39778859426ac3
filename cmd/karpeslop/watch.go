package main

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchCmd re-runs the analysis whenever a source file changes, debounced
// so editor save storms collapse into one run.
func watchCmd(args []string) {
	opts := parseAnalyzeFlags("watch", args)
	runWatch(opts, nil)
}

func runWatch(opts analyzeOpts, stop <-chan struct{}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("watch init failed", "err", err)
		os.Exit(1)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, opts.inPath); err != nil {
		slog.Error("watch setup failed", "err", err)
		os.Exit(1)
	}

	runAnalysis(opts)

	var timer *time.Timer
	debounce := 300 * time.Millisecond
	trigger := func() {
		id, issues := runAnalysis(opts)
		slog.Info("rescan complete", "run", id, "issues", issues)
	}

	for {
		select {
		case <-stop:
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !interestingEvent(ev.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, trigger)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch error", "err", werr)
		}
	}
}

func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
}

func skipDir(name string) bool {
	switch name {
	case "node_modules", ".next", "dist", "build", "out", "coverage", ".git", "vendor":
		return true
	}
	return false
}

func interestingEvent(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ts", ".tsx", ".js", ".jsx", ".yaml", ".yml":
		return true
	}
	return false
}

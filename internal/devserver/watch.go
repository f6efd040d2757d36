package devserver

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watchDirs are the project directories the --reload watcher covers.
var watchDirs = []string{"agents", "workflows", "functions", "llm", "cmd"}

// watch starts the fsnotify watcher over the project's source
// directories and returns a stop function.
func (s *Server) watch(root string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range watchDirs {
		base := filepath.Join(root, dir)
		// Walk so nested packages are covered; fsnotify watches are
		// not recursive.
		filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				watcher.Add(path)
			}
			return nil
		})
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(event.Name, ".go") {
					continue
				}
				s.changes.Add(1)
				s.log.Info().
					Str("file", event.Name).
					Str("op", event.Op.String()).
					Msg("source change detected")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn().Err(err).Msg("file watcher error")
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

// Package watch notifies on config-file changes so the CLI can regenerate
// a level whenever its YAML input is edited.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce suppresses the editor write/rename bursts that fsnotify reports
// as several events for one save.
const debounce = 100 * time.Millisecond

// Watcher emits the path of a changed YAML config on Events. The Events and
// Errors channels are closed when the watcher shuts down; receivers must
// handle the closed-channel case.
type Watcher struct {
	fs      *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	done    chan struct{}
	stopped sync.WaitGroup
	once    sync.Once
}

// New watches the directories containing the given files and emits one
// event per settled change to a YAML file.
func New(files ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, f := range files {
		dir := filepath.Dir(f)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fs,
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	w.stopped.Add(1)
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for the forwarding goroutine to finish.
// The goroutine owns Events and Errors, so they are guaranteed closed (and
// never written again) by the time Close returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	w.stopped.Wait()
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		w.stopped.Done()
	}()

	lastSeen := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event, lastSeen) {
				continue
			}
			// A receiver may be gone; never block past shutdown.
			select {
			case w.Events <- event.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

// relevant filters for settled changes to YAML files, dropping events that
// arrive within the debounce window of the previous one for the same path.
func (w *Watcher) relevant(event fsnotify.Event, lastSeen map[string]time.Time) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if ext := strings.ToLower(filepath.Ext(event.Name)); ext != ".yaml" && ext != ".yml" {
		return false
	}
	now := time.Now()
	if t, ok := lastSeen[event.Name]; ok && now.Sub(t) < debounce {
		return false
	}
	lastSeen[event.Name] = now
	return true
}

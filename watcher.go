package main

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigChangedEvent signals that the config file has been written
type ConfigChangedEvent struct {
	Path string
}

// ConfigWatcher watches the config file's directory and reports writes to
// the file itself. Bursts of events collapse into one pending notification.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ConfigChangedEvent
	done    chan struct{}
}

// NewConfigWatcher starts watching configPath. The directory is watched
// rather than the file so editors that replace the file are still seen.
func NewConfigWatcher(configPath string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	configPath = filepath.Clean(configPath)
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &ConfigWatcher{
		watcher: watcher,
		path:    configPath,
		events:  make(chan ConfigChangedEvent, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *ConfigWatcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			select {
			case w.events <- ConfigChangedEvent{Path: w.path}:
			default:
				// a reload is already pending
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}

// Events delivers change notifications. Receive without blocking from Update.
func (w *ConfigWatcher) Events() <-chan ConfigChangedEvent {
	return w.events
}

// Close stops watching and waits for the event loop to exit.
func (w *ConfigWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

package server

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/epigraph-tools/lapis/dataset"
)

// ============================================================================
// FILE WATCHER — Reload on Change
// ============================================================================
// Watches the directory holding the data file and swaps the session dataset
// when the file is written. Rapid saves are debounced; a file that fails to
// parse leaves the current dataset in place.
// ============================================================================

// Watcher reloads the session dataset when the backing file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	session  *Session
	log      *zap.Logger
	path     string
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for path feeding session. Call Start to begin
// watching and Stop to shut down.
func NewWatcher(path string, session *Session, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory: editors replace files by rename, which
	// drops a watch placed on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		session:  session,
		log:      log,
		path:     path,
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start runs the watch loop in a goroutine. Non-blocking.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	ds, err := dataset.LoadFile(w.path)
	if err != nil {
		w.log.Warn("reload failed, keeping current dataset",
			zap.String("file", w.path), zap.Error(err))
		return
	}
	w.session.Replace(ds, w.path)
	w.log.Info("dataset reloaded",
		zap.String("file", w.path),
		zap.Int("rows", ds.Len()))
}

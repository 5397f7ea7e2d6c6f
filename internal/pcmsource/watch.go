package pcmsource

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watcher watches a directory for .wav/.flac capture files being created or
// written and reports their paths on Files, a hot folder for offline batch
// demodulation of recordings dropped by some other process.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *logrus.Logger
	Files   chan string
}

// NewWatcher starts watching dir. Call Run in its own goroutine to begin
// delivering paths on Files; Close stops watching and closes Files.
func NewWatcher(dir string, logger *logrus.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "pcmsource: create fsnotify watcher")
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "pcmsource: watch directory %s", dir)
	}

	return &Watcher{
		watcher: fw,
		logger:  logger,
		Files:   make(chan string, 16),
	}, nil
}

// Run delivers a capture file's path on Files for every create or write
// event on it until ctx is done, so one file can be delivered more than once.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.Files)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isCapture(event.Name) {
				continue
			}
			w.logger.WithField("file", event.Name).Info("new capture file detected")
			select {
			case w.Files <- event.Name:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("capture directory watch error")
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func isCapture(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav", ".flac":
		return true
	default:
		return false
	}
}
